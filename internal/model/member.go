package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MemberStatus represents the status of a member profile.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "activo"
	MemberStatusInactive  MemberStatus = "inactivo"
	MemberStatusSuspended MemberStatus = "suspendido"
)

// Voice parts of the choir.
const (
	VoiceSoprano   = "soprano"
	VoiceContralto = "contralto"
	VoiceTenor     = "tenor"
	VoiceBajo      = "bajo"
)

// Member is the choir profile linked one-to-one to a User.
type Member struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID       `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	Voz          string          `json:"voz" gorm:"size:50;not null"`
	FechaIngreso time.Time       `json:"fecha_ingreso" gorm:"type:date;not null"`
	Estado       MemberStatus    `json:"estado" gorm:"type:varchar(50);not null;default:'activo';index"`
	Telefono     string          `json:"telefono" gorm:"size:20"`
	SaldoActual  decimal.Decimal `json:"saldo_actual" gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID and default status before creating the record.
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Estado == "" {
		m.Estado = MemberStatusActive
	}
	return nil
}
