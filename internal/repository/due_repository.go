package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"armentum/internal/model"
)

// DueListParams filters and paginates admin due listings.
type DueListParams struct {
	Limit     int
	Offset    int
	Estado    model.DueStatus
	MiembroID *uuid.UUID
}

// DueRepository defines due persistence operations. Aggregation over dues
// lives in the finance service so the derived-overdue rule has one home.
type DueRepository interface {
	Create(ctx context.Context, due *model.Due) error
	Update(ctx context.Context, due *model.Due) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Due, error)
	List(ctx context.Context, params DueListParams) ([]model.Due, int64, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, estado model.DueStatus) ([]model.Due, error)
	ListPaidByMember(ctx context.Context, memberID uuid.UUID) ([]model.Due, error)
	ListByDateRange(ctx context.Context, desde, hasta *time.Time) ([]model.Due, error)
	ListAll(ctx context.Context, memberID *uuid.UUID) ([]model.Due, error)
}

type dueRepository struct {
	db *gorm.DB
}

// NewDueRepository creates a new due repository.
func NewDueRepository(db *gorm.DB) DueRepository {
	return &dueRepository{db: db}
}

// Create creates a new due.
func (r *dueRepository) Create(ctx context.Context, due *model.Due) error {
	return r.db.WithContext(ctx).Create(due).Error
}

// Update updates an existing due.
func (r *dueRepository) Update(ctx context.Context, due *model.Due) error {
	return r.db.WithContext(ctx).Save(due).Error
}

// FindByID finds a due by ID.
func (r *dueRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Due, error) {
	var due model.Due
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&due).Error; err != nil {
		return nil, err
	}
	return &due, nil
}

// List returns a page of dues plus the total count, latest due date first,
// with member and linked user preloaded for display.
func (r *dueRepository) List(ctx context.Context, params DueListParams) ([]model.Due, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Due{})
	if params.Estado != "" {
		query = query.Where("estado = ?", params.Estado)
	}
	if params.MiembroID != nil {
		query = query.Where("miembro_id = ?", *params.MiembroID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dues []model.Due
	err := query.Preload("Member").Preload("Member.User").
		Order("fecha_vencimiento DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&dues).Error
	if err != nil {
		return nil, 0, err
	}
	return dues, total, nil
}

// ListByMember returns a member's dues ascending by due date, optionally
// filtered by status.
func (r *dueRepository) ListByMember(ctx context.Context, memberID uuid.UUID, estado model.DueStatus) ([]model.Due, error) {
	query := r.db.WithContext(ctx).Where("miembro_id = ?", memberID)
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}
	var dues []model.Due
	if err := query.Order("fecha_vencimiento ASC").Find(&dues).Error; err != nil {
		return nil, err
	}
	return dues, nil
}

// ListPaidByMember returns a member's paid dues, most recent payment first.
func (r *dueRepository) ListPaidByMember(ctx context.Context, memberID uuid.UUID) ([]model.Due, error) {
	var dues []model.Due
	err := r.db.WithContext(ctx).
		Where("miembro_id = ? AND estado = ?", memberID, model.DueStatusPaid).
		Order("fecha_pago DESC").
		Find(&dues).Error
	if err != nil {
		return nil, err
	}
	return dues, nil
}

// ListByDateRange returns dues whose due date falls in the range, ascending
// by due date. Nil bounds are open.
func (r *dueRepository) ListByDateRange(ctx context.Context, desde, hasta *time.Time) ([]model.Due, error) {
	query := r.db.WithContext(ctx).Model(&model.Due{})
	if desde != nil {
		query = query.Where("fecha_vencimiento >= ?", *desde)
	}
	if hasta != nil {
		query = query.Where("fecha_vencimiento <= ?", *hasta)
	}
	var dues []model.Due
	if err := query.Order("fecha_vencimiento ASC").Find(&dues).Error; err != nil {
		return nil, err
	}
	return dues, nil
}

// ListAll returns every due, or one member's dues when memberID is set.
func (r *dueRepository) ListAll(ctx context.Context, memberID *uuid.UUID) ([]model.Due, error) {
	query := r.db.WithContext(ctx).Model(&model.Due{})
	if memberID != nil {
		query = query.Where("miembro_id = ?", *memberID)
	}
	var dues []model.Due
	if err := query.Find(&dues).Error; err != nil {
		return nil, err
	}
	return dues, nil
}
