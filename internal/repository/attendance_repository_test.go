package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"armentum/internal/model"
)

func seedMemberAndRehearsal(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID, uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	user := &model.User{Email: "corista@example.com", PasswordHash: "x", Nombre: "Lucía", IsActive: true}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))

	member := &model.Member{
		UserID:       user.ID,
		Voz:          model.VoiceSoprano,
		FechaIngreso: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, NewMemberRepository(db).Create(ctx, member))

	admin := &model.User{Email: "admin@example.com", PasswordHash: "x", Nombre: "Dirección", IsActive: true}
	require.NoError(t, NewUserRepository(db).Create(ctx, admin))

	rehearsal := &model.Rehearsal{
		Tipo:      "general",
		Fecha:     time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Hora:      "19:00",
		Lugar:     "Sala principal",
		CreatedBy: admin.ID,
	}
	require.NoError(t, NewRehearsalRepository(db).Create(ctx, rehearsal))

	return member.ID, rehearsal.ID, admin.ID
}

func TestAttendanceRepository_Upsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	memberID, rehearsalID, adminID := seedMemberAndRehearsal(t, db)
	repo := NewAttendanceRepository(db)

	require.NoError(t, repo.Upsert(ctx, &model.Attendance{
		MiembroID:     memberID,
		EnsayoID:      rehearsalID,
		Presente:      true,
		RegistradoPor: adminID,
		RegistradoEn:  time.Now().UTC(),
	}))

	justificacion := "enfermedad"
	require.NoError(t, repo.Upsert(ctx, &model.Attendance{
		MiembroID:     memberID,
		EnsayoID:      rehearsalID,
		Presente:      false,
		Justificacion: &justificacion,
		RegistradoPor: adminID,
		RegistradoEn:  time.Now().UTC(),
	}))

	// second registration replaced the first instead of adding a row
	var count int64
	require.NoError(t, db.Model(&model.Attendance{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.FindByMemberAndRehearsal(ctx, memberID, rehearsalID)
	require.NoError(t, err)
	assert.False(t, stored.Presente)
	require.NotNil(t, stored.Justificacion)
	assert.Equal(t, "enfermedad", *stored.Justificacion)
}

func TestAttendanceRepository_Upsert_FirstRegistrationAbsent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	memberID, rehearsalID, adminID := seedMemberAndRehearsal(t, db)
	repo := NewAttendanceRepository(db)

	require.NoError(t, repo.Upsert(ctx, &model.Attendance{
		MiembroID:     memberID,
		EnsayoID:      rehearsalID,
		Presente:      false,
		RegistradoPor: adminID,
		RegistradoEn:  time.Now().UTC(),
	}))

	stored, err := repo.FindByMemberAndRehearsal(ctx, memberID, rehearsalID)
	require.NoError(t, err)
	assert.False(t, stored.Presente)
}

func TestAttendanceRepository_CountForMember(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	memberID, rehearsalID, adminID := seedMemberAndRehearsal(t, db)
	repo := NewAttendanceRepository(db)

	second := &model.Rehearsal{
		Tipo:      "seccional",
		Fecha:     time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
		Hora:      "19:00",
		Lugar:     "Sala 2",
		CreatedBy: adminID,
	}
	require.NoError(t, NewRehearsalRepository(db).Create(ctx, second))

	require.NoError(t, repo.Upsert(ctx, &model.Attendance{
		MiembroID: memberID, EnsayoID: rehearsalID, Presente: true, RegistradoPor: adminID, RegistradoEn: time.Now().UTC(),
	}))
	require.NoError(t, repo.Upsert(ctx, &model.Attendance{
		MiembroID: memberID, EnsayoID: second.ID, Presente: false, RegistradoPor: adminID, RegistradoEn: time.Now().UTC(),
	}))

	total, present, err := repo.CountForMember(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(1), present)
}
