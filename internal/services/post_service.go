package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// PostInput carries the writable post fields. Has* flags tell an omitted key
// apart from an explicit null.
type PostInput struct {
	Text     *string
	GroupID  *uint
	HasGroup bool
	Image    []byte
	HasImage bool
}

type PostFilter struct {
	GroupID *uint
	Limit   int // 0 means no limit
	Offset  int
}

type PostService struct {
	db     *gorm.DB
	images *ImageStore
}

func NewPostService(db *gorm.DB, images *ImageStore) *PostService {
	return &PostService{db: db, images: images}
}

// List returns posts in id order together with the unpaginated total.
func (s *PostService) List(ctx context.Context, f PostFilter) ([]models.Post, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Post{})
	if f.GroupID != nil {
		query = query.Where("group_id = ?", *f.GroupID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	if f.Limit > 0 {
		query = query.Limit(f.Limit).Offset(f.Offset)
	}

	var posts []models.Post
	if err := query.Preload("Author").Order("id ASC").Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

// Create publishes a post by author. pub_date is always the server time.
func (s *PostService) Create(ctx context.Context, author *models.User, in PostInput) (*models.Post, error) {
	if author == nil {
		return nil, ErrNotAuthenticated
	}

	verr := NewValidationError()
	text := cleanText(verr, "text", in.Text, true)
	if err := s.checkGroup(ctx, verr, in); err != nil {
		return nil, err
	}
	if in.HasImage && len(in.Image) > 0 {
		if _, err := s.images.Validate(in.Image); err != nil {
			mergeInto(verr, err)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	post := models.Post{
		Text:     text,
		PubDate:  time.Now(),
		AuthorID: author.ID,
	}
	if in.HasGroup {
		post.GroupID = in.GroupID
	}
	if in.HasImage && len(in.Image) > 0 {
		rel, err := s.images.Save(in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = &rel
	}

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		if post.Image != nil {
			s.images.Remove(*post.Image)
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, FieldError("group", invalidPK(in.GroupID))
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Author = *author
	return &post, nil
}

// Update changes text, group or image of a post owned by actor. A full
// update (partial == false) requires text.
func (s *PostService) Update(ctx context.Context, actor *models.User, id uint, in PostInput, partial bool) (*models.Post, error) {
	post, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	verr := NewValidationError()
	if in.Text != nil || !partial {
		post.Text = cleanText(verr, "text", in.Text, true)
	}
	if err := s.checkGroup(ctx, verr, in); err != nil {
		return nil, err
	}
	if in.HasImage && len(in.Image) > 0 {
		if _, err := s.images.Validate(in.Image); err != nil {
			mergeInto(verr, err)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if in.HasGroup {
		post.GroupID = in.GroupID
	}
	oldImage := post.Image
	if in.HasImage {
		post.Image = nil
		if len(in.Image) > 0 {
			rel, err := s.images.Save(in.Image)
			if err != nil {
				return nil, err
			}
			post.Image = &rel
		}
	}

	err = s.db.WithContext(ctx).Model(post).Select("Text", "GroupID", "Image").Updates(post).Error
	if err != nil {
		if in.HasImage && post.Image != nil {
			s.images.Remove(*post.Image)
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, FieldError("group", invalidPK(in.GroupID))
		}
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	if in.HasImage && oldImage != nil {
		s.images.Remove(*oldImage)
	}
	return post, nil
}

// Delete removes a post owned by actor; its comments cascade.
func (s *PostService) Delete(ctx context.Context, actor *models.User, id uint) error {
	post, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.Post{}, post.ID).Error; err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if post.Image != nil {
		s.images.Remove(*post.Image)
	}
	return nil
}

func (s *PostService) getOwned(ctx context.Context, actor *models.User, id uint) (*models.Post, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.ID {
		return nil, ErrForbidden
	}
	return post, nil
}

// checkGroup records a field error when the referenced group is missing.
// Storage failures are returned, not reported as a bad reference.
func (s *PostService) checkGroup(ctx context.Context, verr *ValidationError, in PostInput) error {
	if !in.HasGroup || in.GroupID == nil {
		return nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", *in.GroupID).Count(&count).Error; err != nil {
		return fmt.Errorf("check group %d: %w", *in.GroupID, err)
	}
	if count == 0 {
		verr.Add("group", invalidPK(in.GroupID))
	}
	return nil
}

// cleanText trims a text field and records required/blank errors. The text
// is otherwise stored as sent.
func cleanText(verr *ValidationError, field string, text *string, required bool) string {
	if text == nil {
		if required {
			verr.Add(field, MsgRequired)
		}
		return ""
	}
	clean := strings.TrimSpace(*text)
	if clean == "" {
		verr.Add(field, MsgBlank)
	}
	return clean
}

func invalidPK(id *uint) string {
	if id == nil {
		return "Invalid pk - object does not exist."
	}
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *id)
}

// mergeInto copies field errors from err into verr.
func mergeInto(verr *ValidationError, err error) {
	var other *ValidationError
	if errors.As(err, &other) {
		for field, msgs := range other.Fields {
			for _, m := range msgs {
				verr.Add(field, m)
			}
		}
		return
	}
	verr.Add(NonFieldErrors, err.Error())
}
