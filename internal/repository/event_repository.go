package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"armentum/internal/model"
)

// EventRepository defines public event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.PublicEvent) error
	Update(ctx context.Context, event *model.PublicEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PublicEvent, error)
	List(ctx context.Context, limit, offset int) ([]model.PublicEvent, int64, error)
	ListByStatus(ctx context.Context, estados []model.EventStatus, limit, offset int) ([]model.PublicEvent, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new public event.
func (r *eventRepository) Create(ctx context.Context, event *model.PublicEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// Update updates an existing public event.
func (r *eventRepository) Update(ctx context.Context, event *model.PublicEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes a public event.
func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PublicEvent{}, "id = ?", id).Error
}

// FindByID finds a public event by ID.
func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.PublicEvent, error) {
	var event model.PublicEvent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns a page of events plus the total count, newest first.
func (r *eventRepository) List(ctx context.Context, limit, offset int) ([]model.PublicEvent, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.PublicEvent{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []model.PublicEvent
	err := r.db.WithContext(ctx).
		Order("fecha DESC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListByStatus returns events in any of the given states, newest first.
func (r *eventRepository) ListByStatus(ctx context.Context, estados []model.EventStatus, limit, offset int) ([]model.PublicEvent, error) {
	var events []model.PublicEvent
	err := r.db.WithContext(ctx).
		Where("estado IN ?", estados).
		Order("fecha DESC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
