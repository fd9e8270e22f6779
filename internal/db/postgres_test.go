package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func TestPostgresSchema(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Postgres container test in short mode")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "user",
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_DB":       "yatube",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Postgres container unavailable: %v", err)
	}
	defer container.Terminate(ctx)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://user:password@%s:%s/yatube?sslmode=disable", host, port.Port())

	db, err := Open("postgres", dsn, "silent")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	alice := &models.User{Username: "alice", Password: "x"}
	bob := &models.User{Username: "bob", Password: "x"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	t.Run("follow constraints", func(t *testing.T) {
		require.NoError(t, db.Create(&models.Follow{UserID: alice.ID, FollowingID: bob.ID}).Error)

		err := db.Create(&models.Follow{UserID: alice.ID, FollowingID: bob.ID}).Error
		assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

		err = db.Create(&models.Follow{UserID: bob.ID, FollowingID: bob.ID}).Error
		assert.True(t, errors.Is(err, gorm.ErrCheckConstraintViolated), "got %v", err)
	})

	t.Run("group delete sets null", func(t *testing.T) {
		group := &models.Group{Title: "Dogs", Slug: "dogs", Description: "d"}
		require.NoError(t, db.Create(group).Error)
		post := &models.Post{Text: "woof", PubDate: time.Now(), AuthorID: bob.ID, GroupID: &group.ID}
		require.NoError(t, db.Create(post).Error)

		require.NoError(t, db.Delete(&models.Group{}, group.ID).Error)

		var reloaded models.Post
		require.NoError(t, db.First(&reloaded, post.ID).Error)
		assert.Nil(t, reloaded.GroupID)
	})
}
