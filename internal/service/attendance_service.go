package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"armentum/internal/model"
	"armentum/internal/repository"
)

// RegisterAttendanceInput carries one attendance registration. Registering
// the same (member, rehearsal) pair again overwrites the previous record.
type RegisterAttendanceInput struct {
	MiembroID     uuid.UUID
	EnsayoID      uuid.UUID
	Presente      bool
	Justificacion *string
	RegistradoPor uuid.UUID
}

// AttendanceStats summarizes a member's attendance across all rehearsals.
type AttendanceStats struct {
	Total         int64   `json:"total"`
	Asistencias   int64   `json:"asistencias"`
	Inasistencias int64   `json:"inasistencias"`
	Porcentaje    float64 `json:"porcentaje"`
}

// AttendanceService records and reports rehearsal attendance.
type AttendanceService interface {
	Register(ctx context.Context, input RegisterAttendanceInput) (*model.Attendance, error)
	List(ctx context.Context, filter repository.AttendanceFilter) ([]model.Attendance, error)
	ListForMember(ctx context.Context, userID uuid.UUID) ([]model.Attendance, error)
	StatsForMember(ctx context.Context, userID uuid.UUID) (*AttendanceStats, error)
}

type attendanceService struct {
	attendances repository.AttendanceRepository
	members     repository.MemberRepository
	rehearsals  RehearsalService
	memberSvc   MemberService
}

// NewAttendanceService creates a new attendance service.
func NewAttendanceService(
	attendances repository.AttendanceRepository,
	members repository.MemberRepository,
	rehearsals RehearsalService,
	memberSvc MemberService,
) AttendanceService {
	return &attendanceService{
		attendances: attendances,
		members:     members,
		rehearsals:  rehearsals,
		memberSvc:   memberSvc,
	}
}

// Register upserts an attendance record. The unique index on
// (miembro_id, ensayo_id) makes concurrent registrations for the same pair
// converge on a single row with the last writer's values.
func (s *attendanceService) Register(ctx context.Context, input RegisterAttendanceInput) (*model.Attendance, error) {
	if _, err := s.memberSvc.Get(ctx, input.MiembroID); err != nil {
		return nil, err
	}
	if _, err := s.rehearsals.Get(ctx, input.EnsayoID); err != nil {
		return nil, err
	}

	attendance := &model.Attendance{
		MiembroID:     input.MiembroID,
		EnsayoID:      input.EnsayoID,
		Presente:      input.Presente,
		Justificacion: input.Justificacion,
		RegistradoPor: input.RegistradoPor,
		RegistradoEn:  time.Now().UTC(),
	}
	if err := s.attendances.Upsert(ctx, attendance); err != nil {
		return nil, fmt.Errorf("register attendance: %w", err)
	}

	// reload so the caller sees the surviving row, not the insert attempt
	stored, err := s.attendances.FindByMemberAndRehearsal(ctx, input.MiembroID, input.EnsayoID)
	if err != nil {
		return nil, fmt.Errorf("reload attendance: %w", err)
	}
	return stored, nil
}

func (s *attendanceService) List(ctx context.Context, filter repository.AttendanceFilter) ([]model.Attendance, error) {
	return s.attendances.List(ctx, filter)
}

// ListForMember returns the attendance history of the member linked to the
// given user account.
func (s *attendanceService) ListForMember(ctx context.Context, userID uuid.UUID) ([]model.Attendance, error) {
	member, err := s.memberSvc.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attendances.List(ctx, repository.AttendanceFilter{MiembroID: &member.ID})
}

// StatsForMember computes the member's attendance percentage. A member with
// no registered rehearsals reports zero percent, not an error.
func (s *attendanceService) StatsForMember(ctx context.Context, userID uuid.UUID) (*AttendanceStats, error) {
	member, err := s.memberSvc.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, present, err := s.attendances.CountForMember(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("count attendance: %w", err)
	}

	stats := &AttendanceStats{
		Total:         total,
		Asistencias:   present,
		Inasistencias: total - present,
	}
	if total > 0 {
		stats.Porcentaje = float64(present) / float64(total) * 100
	}
	return stats, nil
}
