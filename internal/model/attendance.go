package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendance links a member to a rehearsal. The composite unique index
// enforces at most one record per (member, rehearsal) pair; registration
// uses an atomic upsert keyed on that index.
type Attendance struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	MiembroID     uuid.UUID `json:"miembro_id" gorm:"type:char(36);not null;uniqueIndex:idx_asistencia_miembro_ensayo"`
	EnsayoID      uuid.UUID `json:"ensayo_id" gorm:"type:char(36);not null;uniqueIndex:idx_asistencia_miembro_ensayo"`
	Presente      bool      `json:"presente" gorm:"not null"`
	Justificacion *string   `json:"justificacion" gorm:"type:text"`
	RegistradoPor uuid.UUID `json:"registrado_por" gorm:"type:char(36);not null"`
	RegistradoEn  time.Time `json:"registrado_en"`

	// Relations
	Member    Member    `json:"-" gorm:"foreignKey:MiembroID"`
	Rehearsal Rehearsal `json:"-" gorm:"foreignKey:EnsayoID"`
}

// BeforeCreate sets UUID and registration timestamp before creating the record.
func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.RegistradoEn.IsZero() {
		a.RegistradoEn = time.Now().UTC()
	}
	return nil
}
