package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeded role names. "corista" is also created lazily as a first-use
// fallback when member creation finds it missing.
const (
	RoleAdmin   = "admin"
	RoleCorista = "corista"
)

// Role is a named permission group. Permisos is an opaque payload; the
// authorization gate only ever checks role names.
type Role struct {
	ID          uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Nombre      string         `json:"nombre" gorm:"uniqueIndex;size:100;not null"`
	Descripcion string         `json:"descripcion" gorm:"type:text"`
	Permisos    map[string]any `json:"permisos" gorm:"serializer:json"`
	CreatedAt   time.Time      `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// UserRole joins users to roles. A user may hold multiple roles.
type UserRole struct {
	ID     uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	RoleID uuid.UUID `json:"role_id" gorm:"type:char(36);not null;index"`
}

// TableName keeps the join table name GORM uses for the many2many relation.
func (UserRole) TableName() string {
	return "users_roles"
}

// BeforeCreate sets UUID before creating the record.
func (ur *UserRole) BeforeCreate(tx *gorm.DB) error {
	if ur.ID == uuid.Nil {
		ur.ID = uuid.New()
	}
	return nil
}
