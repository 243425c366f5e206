package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Announcement audiences.
const (
	AudienceAll   = "todos"
	AudienceGroup = "grupo"
)

// Announcement is a communication sent to all members, a voice group, or a
// single member. Entries with DirigidoA="todos" double as public news.
type Announcement struct {
	ID             uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Titulo         string     `json:"titulo" gorm:"size:255;not null"`
	Contenido      string     `json:"contenido" gorm:"type:text;not null"`
	DirigidoA      string     `json:"dirigido_a" gorm:"size:50;index"`
	GrupoDestino   string     `json:"grupo_destino" gorm:"size:255"`
	MiembroDestino *uuid.UUID `json:"miembro_destino" gorm:"type:char(36)"`
	EnviadoPor     uuid.UUID  `json:"enviado_por" gorm:"type:char(36);not null"`
	ProgramadoPara *time.Time `json:"programado_para"`
	EnviadoEn      *time.Time `json:"enviado_en"`
	CreatedAt      time.Time  `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
