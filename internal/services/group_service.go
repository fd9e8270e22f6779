package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yatube/internal/models"
	"yatube/internal/utils"

	"gorm.io/gorm"
)

const (
	groupCacheTTL     = time.Minute
	groupListCacheKey = "groups:list"
)

type GroupInput struct {
	Title       string `json:"title" validate:"required,max=250"`
	Slug        string `json:"slug" validate:"required,max=100,slug"`
	Description string `json:"description" validate:"required"`
}

// GroupService serves groups read-only to the API; Create and Delete are
// for out-of-band management.
type GroupService struct {
	db    *gorm.DB
	cache *utils.Cache
}

func NewGroupService(db *gorm.DB, cache *utils.Cache) *GroupService {
	return &GroupService{db: db, cache: cache}
}

// List returns every group in id order. Callers get their own copy of the
// cached slice.
func (s *GroupService) List(ctx context.Context) ([]models.Group, error) {
	if cached, ok := s.cache.Get(groupListCacheKey).([]models.Group); ok {
		return append([]models.Group(nil), cached...), nil
	}

	var groups []models.Group
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	s.cache.Set(groupListCacheKey, append([]models.Group(nil), groups...), groupCacheTTL)
	return groups, nil
}

func (s *GroupService) Get(ctx context.Context, id uint) (*models.Group, error) {
	key := groupCacheKey(id)
	if cached, ok := s.cache.Get(key).(models.Group); ok {
		return &cached, nil
	}

	var group models.Group
	if err := s.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get group %d: %w", id, err)
	}
	s.cache.Set(key, group, groupCacheTTL)
	return &group, nil
}

func (s *GroupService) Create(ctx context.Context, in GroupInput) (*models.Group, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	group := models.Group{Title: in.Title, Slug: in.Slug, Description: in.Description}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, FieldError("slug", MsgSlugTaken)
		}
		return nil, fmt.Errorf("create group: %w", err)
	}
	s.cache.Delete(groupListCacheKey)
	return &group, nil
}

// Delete removes a group. Its posts stay, with their group cleared.
func (s *GroupService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Group{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete group %d: %w", id, res.Error)
	}
	// The list and any number of entries may hold the group.
	s.cache.Purge()
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func groupCacheKey(id uint) string {
	return fmt.Sprintf("groups:%d", id)
}
