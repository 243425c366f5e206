package repository

import (
	"context"

	"gorm.io/gorm"

	"armentum/internal/model"
)

// AnnouncementRepository defines announcement persistence operations.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	ListPublic(ctx context.Context, limit, offset int) ([]model.Announcement, error)
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new announcement repository.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

// Create creates a new announcement.
func (r *announcementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

// ListPublic returns announcements directed to everyone, newest first.
func (r *announcementRepository) ListPublic(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	var news []model.Announcement
	err := r.db.WithContext(ctx).
		Where("dirigido_a = ?", model.AudienceAll).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&news).Error
	if err != nil {
		return nil, err
	}
	return news, nil
}
