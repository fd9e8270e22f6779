package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"yatube/internal/models"

	"gorm.io/gorm"
)

type FollowInput struct {
	Following string `json:"following" validate:"required"`
}

type FollowService struct {
	db    *gorm.DB
	users *UserService
}

func NewFollowService(db *gorm.DB, users *UserService) *FollowService {
	return &FollowService{db: db, users: users}
}

// List returns the follows of caller, optionally only those whose followed
// username contains search (case-insensitive).
func (s *FollowService) List(ctx context.Context, caller *models.User, search string) ([]models.Follow, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}

	query := s.db.WithContext(ctx).Preload("User").Preload("Following").
		Where("user_id = ?", caller.ID)
	if search = strings.TrimSpace(search); search != "" {
		matching := s.db.Model(&models.User{}).Select("id").
			Where("LOWER(username) LIKE ?", "%"+strings.ToLower(search)+"%")
		query = query.Where("following_id IN (?)", matching)
	}

	var follows []models.Follow
	if err := query.Order("id ASC").Find(&follows).Error; err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	return follows, nil
}

// Create makes caller follow in.Following. Checks run in a fixed order:
// the username must resolve, then self-follow is rejected, then an
// existing pair is rejected. The unique constraint on the table remains the
// authority when two identical requests race past the pre-check.
func (s *FollowService) Create(ctx context.Context, caller *models.User, in FollowInput) (*models.Follow, error) {
	if caller == nil {
		return nil, ErrNotAuthenticated
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	following, err := s.users.GetByUsername(ctx, in.Following)
	if errors.Is(err, ErrNotFound) {
		return nil, FieldError("following", fmt.Sprintf("Object with username=%s does not exist.", in.Following))
	}
	if err != nil {
		return nil, err
	}

	if following.ID == caller.ID {
		return nil, FieldError("following", MsgCannotSelf)
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND following_id = ?", caller.ID, following.ID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("check follow: %w", err)
	}
	if count > 0 {
		return nil, FieldError(NonFieldErrors, MsgAlreadyFollows)
	}

	follow := models.Follow{UserID: caller.ID, FollowingID: following.ID}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, FieldError(NonFieldErrors, MsgAlreadyFollows)
		case errors.Is(err, gorm.ErrCheckConstraintViolated):
			return nil, FieldError("following", MsgCannotSelf)
		}
		return nil, fmt.Errorf("create follow: %w", err)
	}
	follow.User = *caller
	follow.Following = *following
	return &follow, nil
}
