package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"yatube/internal/db/dbtest"
	"yatube/internal/models"
	"yatube/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// onePixelPNG is a valid 1x1 PNG.
const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

type testEnv struct {
	db       *gorm.DB
	images   *ImageStore
	users    *UserService
	posts    *PostService
	comments *CommentService
	groups   *GroupService
	follows  *FollowService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	conn := dbtest.Open(t)
	images := NewImageStore(t.TempDir(), "/media/")
	users := NewUserService(conn, images)
	return &testEnv{
		db:       conn,
		images:   images,
		users:    users,
		posts:    NewPostService(conn, images),
		comments: NewCommentService(conn),
		groups:   NewGroupService(conn, utils.NewCache(100)),
		follows:  NewFollowService(conn, users),
	}
}

func (e *testEnv) user(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), UserInput{Username: username, Password: "password123"})
	require.NoError(t, err)
	return u
}

func (e *testEnv) group(t *testing.T, slug string) *models.Group {
	t.Helper()
	g, err := e.groups.Create(context.Background(), GroupInput{Title: "Group " + slug, Slug: slug, Description: "about " + slug})
	require.NoError(t, err)
	return g
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(onePixelPNG)
	require.NoError(t, err)
	return data
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }

// assertFieldError checks err is a ValidationError carrying msg for field.
func assertFieldError(t *testing.T, err error, field, msg string) {
	t.Helper()
	var verr *ValidationError
	if assert.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err) {
		assert.Contains(t, verr.Fields[field], msg)
	}
}
