package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "armentum/internal/errors"
	"armentum/internal/model"
	"armentum/internal/repository"
)

func newTestAttendanceService(
	attendances *MockAttendanceRepository,
	members *MockMemberRepository,
	rehearsals *MockRehearsalRepository,
) AttendanceService {
	users := new(MockUserRepository)
	roles := new(MockRoleRepository)
	memberSvc := NewMemberService(members, users, roles)
	rehearsalSvc := NewRehearsalService(rehearsals, members, attendances)
	return NewAttendanceService(attendances, members, rehearsalSvc, memberSvc)
}

func TestAttendanceService_Register(t *testing.T) {
	memberID := uuid.New()
	rehearsalID := uuid.New()
	adminID := uuid.New()

	tests := []struct {
		name          string
		setupMock     func(*MockAttendanceRepository, *MockMemberRepository, *MockRehearsalRepository)
		expectedError error
	}{
		{
			name: "successful registration",
			setupMock: func(attendances *MockAttendanceRepository, members *MockMemberRepository, rehearsals *MockRehearsalRepository) {
				members.On("FindByID", mock.Anything, memberID).Return(&model.Member{ID: memberID}, nil)
				rehearsals.On("FindByID", mock.Anything, rehearsalID).Return(&model.Rehearsal{ID: rehearsalID}, nil)
				attendances.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Attendance")).Return(nil)
				attendances.On("FindByMemberAndRehearsal", mock.Anything, memberID, rehearsalID).Return(&model.Attendance{
					ID:        uuid.New(),
					MiembroID: memberID,
					EnsayoID:  rehearsalID,
					Presente:  true,
				}, nil)
			},
		},
		{
			name: "unknown member",
			setupMock: func(attendances *MockAttendanceRepository, members *MockMemberRepository, rehearsals *MockRehearsalRepository) {
				members.On("FindByID", mock.Anything, memberID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrMemberNotFound,
		},
		{
			name: "unknown rehearsal",
			setupMock: func(attendances *MockAttendanceRepository, members *MockMemberRepository, rehearsals *MockRehearsalRepository) {
				members.On("FindByID", mock.Anything, memberID).Return(&model.Member{ID: memberID}, nil)
				rehearsals.On("FindByID", mock.Anything, rehearsalID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrRehearsalNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attendances := new(MockAttendanceRepository)
			members := new(MockMemberRepository)
			rehearsals := new(MockRehearsalRepository)
			tt.setupMock(attendances, members, rehearsals)

			svc := newTestAttendanceService(attendances, members, rehearsals)
			attendance, err := svc.Register(context.Background(), RegisterAttendanceInput{
				MiembroID:     memberID,
				EnsayoID:      rehearsalID,
				Presente:      true,
				RegistradoPor: adminID,
			})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, attendance)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, memberID, attendance.MiembroID)
				assert.True(t, attendance.Presente)
			}
			attendances.AssertExpectations(t)
		})
	}
}

func TestAttendanceService_StatsForMember(t *testing.T) {
	userID := uuid.New()
	memberID := uuid.New()

	tests := []struct {
		name              string
		total             int64
		present           int64
		wantPorcentaje    float64
		wantInasistencias int64
	}{
		{"half attendance", 2, 1, 50.0, 1},
		{"full attendance", 4, 4, 100.0, 0},
		{"no rehearsals yet", 0, 0, 0.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attendances := new(MockAttendanceRepository)
			members := new(MockMemberRepository)
			rehearsals := new(MockRehearsalRepository)
			members.On("FindByUserID", mock.Anything, userID).Return(&model.Member{ID: memberID, UserID: userID}, nil)
			attendances.On("CountForMember", mock.Anything, memberID).Return(tt.total, tt.present, nil)

			svc := newTestAttendanceService(attendances, members, rehearsals)
			stats, err := svc.StatsForMember(context.Background(), userID)
			assert.NoError(t, err)
			assert.Equal(t, tt.total, stats.Total)
			assert.Equal(t, tt.present, stats.Asistencias)
			assert.Equal(t, tt.wantInasistencias, stats.Inasistencias)
			assert.InDelta(t, tt.wantPorcentaje, stats.Porcentaje, 0.001)
		})
	}
}

func TestAttendanceService_ListForMember(t *testing.T) {
	userID := uuid.New()
	memberID := uuid.New()

	attendances := new(MockAttendanceRepository)
	members := new(MockMemberRepository)
	rehearsals := new(MockRehearsalRepository)
	members.On("FindByUserID", mock.Anything, userID).Return(&model.Member{ID: memberID, UserID: userID}, nil)
	attendances.On("List", mock.Anything, repository.AttendanceFilter{MiembroID: &memberID}).Return([]model.Attendance{
		{MiembroID: memberID, Presente: true},
		{MiembroID: memberID, Presente: false},
	}, nil)

	svc := newTestAttendanceService(attendances, members, rehearsals)
	records, err := svc.ListForMember(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRehearsalService_Roster(t *testing.T) {
	rehearsalID := uuid.New()
	presentID := uuid.New()
	absentID := uuid.New()

	attendances := new(MockAttendanceRepository)
	members := new(MockMemberRepository)
	rehearsals := new(MockRehearsalRepository)

	rehearsals.On("FindByID", mock.Anything, rehearsalID).Return(&model.Rehearsal{ID: rehearsalID}, nil)
	members.On("ListActive", mock.Anything, "").Return([]model.Member{
		{ID: presentID, Voz: model.VoiceSoprano, User: model.User{Nombre: "Lucía"}},
		{ID: absentID, Voz: model.VoiceTenor, User: model.User{Nombre: "Andrés"}},
	}, nil)
	attendances.On("ListByRehearsal", mock.Anything, rehearsalID).Return([]model.Attendance{
		{MiembroID: presentID, EnsayoID: rehearsalID, Presente: true},
	}, nil)

	svc := NewRehearsalService(rehearsals, members, attendances)
	roster, err := svc.Roster(context.Background(), rehearsalID, "")
	assert.NoError(t, err)
	assert.Len(t, roster, 2)

	assert.True(t, roster[0].Registrada)
	assert.True(t, roster[0].Presente)
	// members with no record still appear on the call sheet
	assert.False(t, roster[1].Registrada)
	assert.False(t, roster[1].Presente)
}
