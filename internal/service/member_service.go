package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"armentum/internal/auth"
	apperrors "armentum/internal/errors"
	"armentum/internal/model"
	"armentum/internal/repository"
)

// CreateMemberInput carries the fields an administrator provides when
// enrolling a member. The linked user account is created on the fly when
// the email is unknown.
type CreateMemberInput struct {
	Email        string
	Password     string
	Nombre       string
	Voz          string
	FechaIngreso time.Time
	Telefono     string
}

// UpdateMemberInput carries the optional fields of an admin member update.
// Nil pointers leave the stored value untouched.
type UpdateMemberInput struct {
	Voz         *string
	Estado      *model.MemberStatus
	Telefono    *string
	SaldoActual *decimal.Decimal
}

// MemberService manages choir member profiles.
type MemberService interface {
	List(ctx context.Context, params repository.MemberListParams) ([]model.Member, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Member, error)
	Create(ctx context.Context, input CreateMemberInput) (*model.Member, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateMemberInput) (*model.Member, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Member, error)
	UpdateSelf(ctx context.Context, userID uuid.UUID, voz, telefono *string) (*model.Member, error)
}

type memberService struct {
	members repository.MemberRepository
	users   repository.UserRepository
	roles   repository.RoleRepository
}

// NewMemberService creates a new member service.
func NewMemberService(
	members repository.MemberRepository,
	users repository.UserRepository,
	roles repository.RoleRepository,
) MemberService {
	return &memberService{members: members, users: users, roles: roles}
}

func (s *memberService) List(ctx context.Context, params repository.MemberListParams) ([]model.Member, int64, error) {
	return s.members.List(ctx, params)
}

func (s *memberService) Get(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return member, nil
}

// Create enrolls a member, reusing an existing user account with the same
// email or creating one. An email that already has a member profile is
// rejected.
func (s *memberService) Create(ctx context.Context, input CreateMemberInput) (*model.Member, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		if _, err := s.members.FindByUserID(ctx, user.ID); err == nil {
			return nil, apperrors.ErrMemberAlreadyExists
		} else if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check member existence: %w", err)
		}
		if input.Nombre != "" && user.Nombre != input.Nombre {
			user.Nombre = input.Nombre
			if err := s.users.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("update user: %w", err)
			}
		}
	case err == gorm.ErrRecordNotFound:
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user = &model.User{
			Email:         input.Email,
			PasswordHash:  hash,
			Nombre:        input.Nombre,
			IsActive:      true,
			EmailVerified: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}

	role, err := s.roles.FindOrCreateByName(ctx, model.RoleCorista, "Rol corista")
	if err != nil {
		return nil, fmt.Errorf("find corista role: %w", err)
	}
	hasRole, err := s.roles.HasRole(ctx, user.ID, role.ID)
	if err != nil {
		return nil, fmt.Errorf("check role: %w", err)
	}
	if !hasRole {
		if err := s.roles.Assign(ctx, user.ID, role.ID); err != nil {
			return nil, fmt.Errorf("assign role: %w", err)
		}
	}

	member := &model.Member{
		UserID:       user.ID,
		Voz:          input.Voz,
		FechaIngreso: input.FechaIngreso,
		Estado:       model.MemberStatusActive,
		Telefono:     input.Telefono,
		SaldoActual:  decimal.Zero,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	member.User = *user
	return member, nil
}

func (s *memberService) Update(ctx context.Context, id uuid.UUID, input UpdateMemberInput) (*model.Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Voz != nil {
		member.Voz = *input.Voz
	}
	if input.Estado != nil {
		member.Estado = *input.Estado
	}
	if input.Telefono != nil {
		member.Telefono = *input.Telefono
	}
	if input.SaldoActual != nil {
		member.SaldoActual = *input.SaldoActual
	}

	if err := s.members.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return member, nil
}

// Deactivate marks the member inactive. Records are never deleted so the
// attendance and dues history stays intact.
func (s *memberService) Deactivate(ctx context.Context, id uuid.UUID) error {
	member, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	member.Estado = model.MemberStatusInactive
	if err := s.members.Update(ctx, member); err != nil {
		return fmt.Errorf("deactivate member: %w", err)
	}
	return nil
}

func (s *memberService) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Member, error) {
	member, err := s.members.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return member, nil
}

// UpdateSelf lets a member change their own voice part and phone number.
// Everything else stays admin-only.
func (s *memberService) UpdateSelf(ctx context.Context, userID uuid.UUID, voz, telefono *string) (*model.Member, error) {
	member, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if voz != nil {
		member.Voz = *voz
	}
	if telefono != nil {
		member.Telefono = *telefono
	}
	if err := s.members.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return member, nil
}
