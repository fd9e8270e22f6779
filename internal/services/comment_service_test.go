package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	bob := env.user(t, "bob")

	post, err := env.posts.Create(ctx, alice, PostInput{Text: strPtr("post")})
	require.NoError(t, err)
	other, err := env.posts.Create(ctx, alice, PostInput{Text: strPtr("other")})
	require.NoError(t, err)

	t.Run("create injects post and author", func(t *testing.T) {
		c, err := env.comments.Create(ctx, bob, post.ID, CommentInput{Text: strPtr("first!")})
		require.NoError(t, err)
		assert.Equal(t, post.ID, c.PostID)
		assert.Equal(t, "bob", c.Author.Username)
		assert.False(t, c.Created.IsZero())
	})

	t.Run("unknown post is not found", func(t *testing.T) {
		_, err := env.comments.List(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = env.comments.Create(ctx, bob, 999, CommentInput{Text: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("text kept verbatim", func(t *testing.T) {
		c, err := env.comments.Create(ctx, bob, post.ID, CommentInput{Text: strPtr(" 1 < 2 <i>really</i> ")})
		require.NoError(t, err)
		reloaded, err := env.comments.Get(ctx, post.ID, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "1 < 2 <i>really</i>", reloaded.Text)

		_, err = env.comments.Create(ctx, bob, post.ID, CommentInput{Text: strPtr("   ")})
		assertFieldError(t, err, "text", MsgBlank)
	})

	t.Run("text required", func(t *testing.T) {
		_, err := env.comments.Create(ctx, bob, post.ID, CommentInput{})
		assertFieldError(t, err, "text", MsgRequired)
	})

	t.Run("scoped to post", func(t *testing.T) {
		c, err := env.comments.Create(ctx, bob, post.ID, CommentInput{Text: strPtr("scoped")})
		require.NoError(t, err)

		_, err = env.comments.Get(ctx, other.ID, c.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		list, err := env.comments.List(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("author-only mutation", func(t *testing.T) {
		c, err := env.comments.Create(ctx, bob, post.ID, CommentInput{Text: strPtr("bob says")})
		require.NoError(t, err)

		_, err = env.comments.Update(ctx, alice, post.ID, c.ID, CommentInput{Text: strPtr("alice edits")}, true)
		assert.ErrorIs(t, err, ErrForbidden)
		assert.ErrorIs(t, env.comments.Delete(ctx, alice, post.ID, c.ID), ErrForbidden)

		updated, err := env.comments.Update(ctx, bob, post.ID, c.ID, CommentInput{Text: strPtr("bob edits")}, false)
		require.NoError(t, err)
		assert.Equal(t, "bob edits", updated.Text)
		assert.True(t, c.Created.Equal(updated.Created))

		require.NoError(t, env.comments.Delete(ctx, bob, post.ID, c.ID))
		_, err = env.comments.Get(ctx, post.ID, c.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
