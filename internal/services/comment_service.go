package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yatube/internal/models"

	"gorm.io/gorm"
)

type CommentInput struct {
	Text *string
}

// CommentService scopes every operation to the post named in the path.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) List(ctx context.Context, postID uint) ([]models.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).Preload("Author").
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

func (s *CommentService) Get(ctx context.Context, postID, id uint) (*models.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	var comment models.Comment
	err := s.db.WithContext(ctx).Preload("Author").
		Where("id = ? AND post_id = ?", id, postID).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}
	return &comment, nil
}

// Create adds a comment by author to the post; the post always comes from
// the caller, never from client input.
func (s *CommentService) Create(ctx context.Context, author *models.User, postID uint, in CommentInput) (*models.Comment, error) {
	if author == nil {
		return nil, ErrNotAuthenticated
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	verr := NewValidationError()
	text := cleanText(verr, "text", in.Text, true)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	comment := models.Comment{
		AuthorID: author.ID,
		PostID:   postID,
		Text:     text,
		Created:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			// The post vanished between the check and the insert.
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = *author
	return &comment, nil
}

func (s *CommentService) Update(ctx context.Context, actor *models.User, postID, id uint, in CommentInput, partial bool) (*models.Comment, error) {
	comment, err := s.getOwned(ctx, actor, postID, id)
	if err != nil {
		return nil, err
	}

	if in.Text != nil || !partial {
		verr := NewValidationError()
		comment.Text = cleanText(verr, "text", in.Text, true)
		if err := verr.OrNil(); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Model(comment).Select("Text").Updates(comment).Error; err != nil {
		return nil, fmt.Errorf("update comment %d: %w", id, err)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *models.User, postID, id uint) error {
	comment, err := s.getOwned(ctx, actor, postID, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID).Error; err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return nil
}

func (s *CommentService) getOwned(ctx context.Context, actor *models.User, postID, id uint) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	comment, err := s.Get(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actor.ID {
		return nil, ErrForbidden
	}
	return comment, nil
}

func (s *CommentService) requirePost(ctx context.Context, postID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return fmt.Errorf("check post %d: %w", postID, err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
