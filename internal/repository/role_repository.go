package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"armentum/internal/model"
)

// RoleRepository defines role and role-assignment persistence operations.
type RoleRepository interface {
	Create(ctx context.Context, role *model.Role) error
	FindByName(ctx context.Context, name string) (*model.Role, error)
	FindOrCreateByName(ctx context.Context, name, description string) (*model.Role, error)
	Assign(ctx context.Context, userID, roleID uuid.UUID) error
	HasRole(ctx context.Context, userID, roleID uuid.UUID) (bool, error)
	NamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// Create creates a new role.
func (r *roleRepository) Create(ctx context.Context, role *model.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// FindByName finds a role by its unique name.
func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("nombre = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// FindOrCreateByName finds a role by name, creating it when missing. Used
// as the first-use fallback for the default "corista" role.
func (r *roleRepository) FindOrCreateByName(ctx context.Context, name, description string) (*model.Role, error) {
	role, err := r.FindByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	role = &model.Role{Nombre: name, Descripcion: description}
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// Assign links a user to a role.
func (r *roleRepository) Assign(ctx context.Context, userID, roleID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&model.UserRole{UserID: userID, RoleID: roleID}).Error
}

// HasRole reports whether a user already holds a role.
func (r *roleRepository) HasRole(ctx context.Context, userID, roleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count).Error
	return count > 0, err
}

// NamesForUser returns the role names held by a user. These are the names
// embedded in access tokens at issuance.
func (r *roleRepository) NamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&model.Role{}).
		Joins("JOIN users_roles ON users_roles.role_id = roles.id").
		Where("users_roles.user_id = ?", userID).
		Pluck("roles.nombre", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
