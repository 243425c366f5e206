package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoredFile records an object uploaded to a storage bucket: a score, a
// recording or an image, optionally tied to an event or rehearsal.
type StoredFile struct {
	ID        uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Nombre    string     `json:"nombre" gorm:"size:255;not null"`
	Tipo      string     `json:"tipo" gorm:"size:50;not null"`
	Voz       string     `json:"voz" gorm:"size:50"`
	EventoID  *uuid.UUID `json:"evento_id" gorm:"type:char(36)"`
	EnsayoID  *uuid.UUID `json:"ensayo_id" gorm:"type:char(36)"`
	URL       string     `json:"url" gorm:"size:255;not null"`
	Privado   bool       `json:"privado" gorm:"not null"`
	SubidoPor uuid.UUID  `json:"subido_por" gorm:"type:char(36);not null"`
	CreatedAt time.Time  `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (f *StoredFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
