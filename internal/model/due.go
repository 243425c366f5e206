package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DueStatus represents the payment status of a due.
//
// "vencida" exists both as a stored status and as a derived condition
// (pendiente past its due date); reporting always checks both forms.
type DueStatus string

const (
	DueStatusPending DueStatus = "pendiente"
	DueStatusPaid    DueStatus = "pagada"
	DueStatusOverdue DueStatus = "vencida"
)

// DueType distinguishes regular membership fees from one-off charges.
type DueType string

const (
	DueTypeRegular       DueType = "regular"
	DueTypeExtraordinary DueType = "extraordinaria"
)

// Due is a billable fee owed by a member. FechaPago is set only on payment.
type Due struct {
	ID               uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	MiembroID        uuid.UUID       `json:"miembro_id" gorm:"type:char(36);not null;index"`
	Monto            decimal.Decimal `json:"monto" gorm:"type:decimal(10,2);not null"`
	Descripcion      string          `json:"descripcion" gorm:"size:255"`
	Tipo             DueType         `json:"tipo" gorm:"type:varchar(50);not null;default:'regular'"`
	FechaVencimiento time.Time       `json:"fecha_vencimiento" gorm:"type:date;not null;index"`
	Estado           DueStatus       `json:"estado" gorm:"type:varchar(50);not null;default:'pendiente';index"`
	FechaPago        *time.Time      `json:"fecha_pago" gorm:"type:date"`
	CreatedBy        uuid.UUID       `json:"created_by" gorm:"type:char(36);not null"`
	CreatedAt        time.Time       `json:"created_at"`

	// Relations
	Member Member `json:"-" gorm:"foreignKey:MiembroID"`
}

// BeforeCreate sets UUID and default status before creating the record.
func (d *Due) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Estado == "" {
		d.Estado = DueStatusPending
	}
	return nil
}

// IsOverdue reports whether the due counts as overdue on the given day,
// either by stored status or by a pending due date in the past.
func (d *Due) IsOverdue(today time.Time) bool {
	if d.Estado == DueStatusOverdue {
		return true
	}
	return d.Estado == DueStatusPending && d.FechaVencimiento.Before(today)
}
