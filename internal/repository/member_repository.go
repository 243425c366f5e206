package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"armentum/internal/model"
)

// MemberListParams filters and paginates admin member listings.
type MemberListParams struct {
	Limit  int
	Offset int
	Search string
	Estado model.MemberStatus
}

// MemberRepository defines member profile persistence operations.
type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	Update(ctx context.Context, member *model.Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Member, error)
	List(ctx context.Context, params MemberListParams) ([]model.Member, int64, error)
	ListActive(ctx context.Context, voz string) ([]model.Member, error)
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create creates a new member profile.
func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// Update updates an existing member profile.
func (r *memberRepository) Update(ctx context.Context, member *model.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// FindByID finds a member by ID with the linked user preloaded.
func (r *memberRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByUserID finds the member profile linked to a user.
func (r *memberRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns a page of members plus the total count, newest joiners first.
func (r *memberRepository) List(ctx context.Context, params MemberListParams) ([]model.Member, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Member{}).
		Joins("JOIN users ON users.id = members.user_id")
	if params.Estado != "" {
		query = query.Where("members.estado = ?", params.Estado)
	}
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(users.nombre) LIKE ? OR LOWER(users.email) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []model.Member
	err := query.Preload("User").
		Order("members.fecha_ingreso DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// ListActive returns active members, optionally filtered by voice part.
func (r *memberRepository) ListActive(ctx context.Context, voz string) ([]model.Member, error) {
	query := r.db.WithContext(ctx).Preload("User").
		Where("estado = ?", model.MemberStatusActive)
	if voz != "" {
		query = query.Where("voz = ?", voz)
	}
	var members []model.Member
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
