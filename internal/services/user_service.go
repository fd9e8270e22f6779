package services

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/models"
	"yatube/internal/utils"

	"gorm.io/gorm"
)

// UserInput is the registration payload.
type UserInput struct {
	Username  string `json:"username" form:"username" validate:"required,max=150,username"`
	Password  string `json:"password" form:"password" validate:"required,min=8"`
	Email     string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	FirstName string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" form:"last_name" validate:"max=150"`
}

type UserService struct {
	db     *gorm.DB
	images *ImageStore
}

// NewUserService builds the service. images is where the user's post
// images live; they are removed along with the user.
func NewUserService(db *gorm.DB, images *ImageStore) *UserService {
	return &UserService{db: db, images: images}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, in UserInput) (*models.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, FieldError("username", MsgUsernameTaken)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldError("username", MsgUsernameTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &user, nil
}

// Delete removes a user. Their posts, comments and follows go with them
// through the foreign key cascades; image files of their posts are removed
// afterwards.
func (s *UserService) Delete(ctx context.Context, username string) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	var images []string
	err = s.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ? AND image IS NOT NULL AND image <> ''", user.ID).
		Pluck("image", &images).Error
	if err != nil {
		return fmt.Errorf("list images of %q: %w", username, err)
	}

	res := s.db.WithContext(ctx).Delete(&models.User{}, user.ID)
	if res.Error != nil {
		return fmt.Errorf("delete user %q: %w", username, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	if s.images != nil {
		for _, rel := range images {
			s.images.Remove(rel)
		}
	}
	return nil
}
