package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"armentum/internal/model"
)

// AttendanceFilter narrows attendance report queries.
type AttendanceFilter struct {
	EnsayoID  *uuid.UUID
	MiembroID *uuid.UUID
}

// AttendanceRepository defines attendance persistence operations.
type AttendanceRepository interface {
	Upsert(ctx context.Context, attendance *model.Attendance) error
	FindByMemberAndRehearsal(ctx context.Context, memberID, rehearsalID uuid.UUID) (*model.Attendance, error)
	ListByRehearsal(ctx context.Context, rehearsalID uuid.UUID) ([]model.Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error)
	CountForMember(ctx context.Context, memberID uuid.UUID) (total int64, present int64, err error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Upsert registers attendance atomically: the unique (miembro_id, ensayo_id)
// index turns a concurrent double-insert into an update of the same row.
func (r *attendanceRepository) Upsert(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "miembro_id"}, {Name: "ensayo_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"presente", "justificacion", "registrado_por", "registrado_en",
		}),
	}).Create(attendance).Error
}

// FindByMemberAndRehearsal finds the attendance record for a pair.
func (r *attendanceRepository) FindByMemberAndRehearsal(ctx context.Context, memberID, rehearsalID uuid.UUID) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Where("miembro_id = ? AND ensayo_id = ?", memberID, rehearsalID).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

// ListByRehearsal returns all attendance records for one rehearsal.
func (r *attendanceRepository) ListByRehearsal(ctx context.Context, rehearsalID uuid.UUID) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Where("ensayo_id = ?", rehearsalID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// List returns attendance records matching the filter, newest registration
// first, with member, linked user and rehearsal preloaded for reporting.
func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]model.Attendance, error) {
	query := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Member.User").
		Preload("Rehearsal")
	if filter.EnsayoID != nil {
		query = query.Where("ensayo_id = ?", *filter.EnsayoID)
	}
	if filter.MiembroID != nil {
		query = query.Where("miembro_id = ?", *filter.MiembroID)
	}

	var records []model.Attendance
	if err := query.Order("registrado_en DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CountForMember returns total and present attendance counts for a member.
func (r *attendanceRepository) CountForMember(ctx context.Context, memberID uuid.UUID) (total int64, present int64, err error) {
	base := r.db.WithContext(ctx).Model(&model.Attendance{}).Where("miembro_id = ?", memberID)
	if err := base.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("miembro_id = ? AND presente = ?", memberID, true).
		Count(&present).Error
	if err != nil {
		return 0, 0, err
	}
	return total, present, nil
}
