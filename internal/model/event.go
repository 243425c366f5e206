package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventStatus represents the lifecycle state of a public event.
type EventStatus string

const (
	EventStatusPlanned   EventStatus = "planificado"
	EventStatusOngoing   EventStatus = "en_curso"
	EventStatusFinished  EventStatus = "finalizado"
	EventStatusCancelled EventStatus = "cancelado"
)

// PublicEvent is published content visible without authentication.
type PublicEvent struct {
	ID          uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Nombre      string      `json:"nombre" gorm:"size:255;not null"`
	Descripcion string      `json:"descripcion" gorm:"type:text"`
	Fecha       time.Time   `json:"fecha" gorm:"type:date;not null;index"`
	Hora        string      `json:"hora" gorm:"size:10;not null"`
	Lugar       string      `json:"lugar" gorm:"size:255;not null"`
	Tipo        string      `json:"tipo" gorm:"size:50;not null"`
	Estado      EventStatus `json:"estado" gorm:"type:varchar(50);not null;default:'planificado';index"`
	ImagenURL   string      `json:"imagen_url" gorm:"size:255"`
	CreatedBy   uuid.UUID   `json:"created_by" gorm:"type:char(36);not null"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// BeforeCreate sets UUID and default status before creating the record.
func (e *PublicEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Estado == "" {
		e.Estado = EventStatusPlanned
	}
	return nil
}
