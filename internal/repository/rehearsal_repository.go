package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"armentum/internal/model"
)

// RehearsalRepository defines rehearsal persistence operations.
type RehearsalRepository interface {
	Create(ctx context.Context, rehearsal *model.Rehearsal) error
	Update(ctx context.Context, rehearsal *model.Rehearsal) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Rehearsal, error)
	List(ctx context.Context, limit, offset int) ([]model.Rehearsal, int64, error)
}

type rehearsalRepository struct {
	db *gorm.DB
}

// NewRehearsalRepository creates a new rehearsal repository.
func NewRehearsalRepository(db *gorm.DB) RehearsalRepository {
	return &rehearsalRepository{db: db}
}

// Create creates a new rehearsal.
func (r *rehearsalRepository) Create(ctx context.Context, rehearsal *model.Rehearsal) error {
	return r.db.WithContext(ctx).Create(rehearsal).Error
}

// Update updates an existing rehearsal.
func (r *rehearsalRepository) Update(ctx context.Context, rehearsal *model.Rehearsal) error {
	return r.db.WithContext(ctx).Save(rehearsal).Error
}

// Delete removes a rehearsal.
func (r *rehearsalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Rehearsal{}, "id = ?", id).Error
}

// FindByID finds a rehearsal by ID.
func (r *rehearsalRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Rehearsal, error) {
	var rehearsal model.Rehearsal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rehearsal).Error; err != nil {
		return nil, err
	}
	return &rehearsal, nil
}

// List returns a page of rehearsals plus the total count, newest first.
func (r *rehearsalRepository) List(ctx context.Context, limit, offset int) ([]model.Rehearsal, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Rehearsal{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rehearsals []model.Rehearsal
	err := r.db.WithContext(ctx).
		Order("fecha DESC").
		Offset(offset).
		Limit(limit).
		Find(&rehearsals).Error
	if err != nil {
		return nil, 0, err
	}
	return rehearsals, total, nil
}
