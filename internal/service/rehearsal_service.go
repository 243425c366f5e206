package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "armentum/internal/errors"
	"armentum/internal/model"
	"armentum/internal/repository"
)

// CreateRehearsalInput carries the fields for scheduling a rehearsal.
type CreateRehearsalInput struct {
	Tipo        string
	Nombre      string
	Fecha       time.Time
	Hora        string
	Lugar       string
	Cuerdas     string
	Descripcion string
	CreatedBy   uuid.UUID
}

// UpdateRehearsalInput carries the optional fields of a rehearsal update.
type UpdateRehearsalInput struct {
	Tipo        *string
	Nombre      *string
	Fecha       *time.Time
	Hora        *string
	Lugar       *string
	Cuerdas     *string
	Descripcion *string
}

// RosterEntry is one active member on a rehearsal call sheet, with their
// attendance record merged in when one exists.
type RosterEntry struct {
	MiembroID     uuid.UUID  `json:"miembro_id"`
	Nombre        string     `json:"nombre"`
	Voz           string     `json:"voz"`
	Registrada    bool       `json:"registrada"`
	Presente      bool       `json:"presente"`
	Justificacion *string    `json:"justificacion"`
	RegistradoEn  *time.Time `json:"registrado_en"`
}

// RehearsalService manages rehearsal scheduling and call sheets.
type RehearsalService interface {
	Create(ctx context.Context, input CreateRehearsalInput) (*model.Rehearsal, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRehearsalInput) (*model.Rehearsal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*model.Rehearsal, error)
	List(ctx context.Context, limit, offset int) ([]model.Rehearsal, int64, error)
	Roster(ctx context.Context, id uuid.UUID, voz string) ([]RosterEntry, error)
}

type rehearsalService struct {
	rehearsals  repository.RehearsalRepository
	members     repository.MemberRepository
	attendances repository.AttendanceRepository
}

// NewRehearsalService creates a new rehearsal service.
func NewRehearsalService(
	rehearsals repository.RehearsalRepository,
	members repository.MemberRepository,
	attendances repository.AttendanceRepository,
) RehearsalService {
	return &rehearsalService{rehearsals: rehearsals, members: members, attendances: attendances}
}

func (s *rehearsalService) Create(ctx context.Context, input CreateRehearsalInput) (*model.Rehearsal, error) {
	rehearsal := &model.Rehearsal{
		Tipo:        input.Tipo,
		Nombre:      input.Nombre,
		Fecha:       input.Fecha,
		Hora:        input.Hora,
		Lugar:       input.Lugar,
		Cuerdas:     input.Cuerdas,
		Descripcion: input.Descripcion,
		CreatedBy:   input.CreatedBy,
	}
	if err := s.rehearsals.Create(ctx, rehearsal); err != nil {
		return nil, fmt.Errorf("create rehearsal: %w", err)
	}
	return rehearsal, nil
}

func (s *rehearsalService) Update(ctx context.Context, id uuid.UUID, input UpdateRehearsalInput) (*model.Rehearsal, error) {
	rehearsal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Tipo != nil {
		rehearsal.Tipo = *input.Tipo
	}
	if input.Nombre != nil {
		rehearsal.Nombre = *input.Nombre
	}
	if input.Fecha != nil {
		rehearsal.Fecha = *input.Fecha
	}
	if input.Hora != nil {
		rehearsal.Hora = *input.Hora
	}
	if input.Lugar != nil {
		rehearsal.Lugar = *input.Lugar
	}
	if input.Cuerdas != nil {
		rehearsal.Cuerdas = *input.Cuerdas
	}
	if input.Descripcion != nil {
		rehearsal.Descripcion = *input.Descripcion
	}

	if err := s.rehearsals.Update(ctx, rehearsal); err != nil {
		return nil, fmt.Errorf("update rehearsal: %w", err)
	}
	return rehearsal, nil
}

func (s *rehearsalService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.rehearsals.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete rehearsal: %w", err)
	}
	return nil
}

func (s *rehearsalService) Get(ctx context.Context, id uuid.UUID) (*model.Rehearsal, error) {
	rehearsal, err := s.rehearsals.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrRehearsalNotFound
		}
		return nil, fmt.Errorf("find rehearsal: %w", err)
	}
	return rehearsal, nil
}

func (s *rehearsalService) List(ctx context.Context, limit, offset int) ([]model.Rehearsal, int64, error) {
	return s.rehearsals.List(ctx, limit, offset)
}

// Roster lists every active member, optionally filtered by voice part,
// merged with whatever attendance has been registered for the rehearsal.
// Members without a record appear as unregistered absences, which is what
// makes the call sheet usable before anyone takes attendance.
func (s *rehearsalService) Roster(ctx context.Context, id uuid.UUID, voz string) ([]RosterEntry, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	members, err := s.members.ListActive(ctx, voz)
	if err != nil {
		return nil, fmt.Errorf("list active members: %w", err)
	}
	records, err := s.attendances.ListByRehearsal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	byMember := make(map[uuid.UUID]*model.Attendance, len(records))
	for i := range records {
		byMember[records[i].MiembroID] = &records[i]
	}

	roster := make([]RosterEntry, 0, len(members))
	for _, member := range members {
		entry := RosterEntry{
			MiembroID: member.ID,
			Nombre:    member.User.Nombre,
			Voz:       member.Voz,
		}
		if record, ok := byMember[member.ID]; ok {
			entry.Registrada = true
			entry.Presente = record.Presente
			entry.Justificacion = record.Justificacion
			registradoEn := record.RegistradoEn
			entry.RegistradoEn = &registradoEn
		}
		roster = append(roster, entry)
	}
	return roster, nil
}
