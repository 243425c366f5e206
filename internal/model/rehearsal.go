package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rehearsal is a scheduled practice session. Cuerdas lists the voice
// sections called for sectional rehearsals.
type Rehearsal struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Tipo        string    `json:"tipo" gorm:"size:50;not null"`
	Nombre      string    `json:"nombre" gorm:"size:255"`
	Fecha       time.Time `json:"fecha" gorm:"type:date;not null;index"`
	Hora        string    `json:"hora" gorm:"size:10;not null"`
	Lugar       string    `json:"lugar" gorm:"size:255;not null"`
	Cuerdas     string    `json:"cuerdas" gorm:"size:255"`
	Descripcion string    `json:"descripcion" gorm:"type:text"`
	CreatedBy   uuid.UUID `json:"created_by" gorm:"type:char(36);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Rehearsal) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
