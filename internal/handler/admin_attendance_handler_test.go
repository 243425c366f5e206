package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"armentum/internal/model"
	"armentum/internal/repository"
	"armentum/internal/service"
)

type mockAttendanceService struct {
	mock.Mock
}

func (m *mockAttendanceService) Register(ctx context.Context, input service.RegisterAttendanceInput) (*model.Attendance, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Attendance), args.Error(1)
}

func (m *mockAttendanceService) List(ctx context.Context, filter repository.AttendanceFilter) ([]model.Attendance, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attendance), args.Error(1)
}

func (m *mockAttendanceService) ListForMember(ctx context.Context, userID uuid.UUID) ([]model.Attendance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attendance), args.Error(1)
}

func (m *mockAttendanceService) StatsForMember(ctx context.Context, userID uuid.UUID) (*service.AttendanceStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AttendanceStats), args.Error(1)
}

type handlerValidator struct {
	validate *validator.Validate
}

func (v *handlerValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newAttendanceTestServer(svc service.AttendanceService, admin *model.User) *echo.Echo {
	h := NewAdminAttendanceHandler(svc)
	e := echo.New()
	e.Validator = &handlerValidator{validate: validator.New()}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("current_user", admin)
			return next(c)
		}
	})
	e.POST("/admin/attendance", h.Register)
	e.PUT("/admin/rehearsals/:id/attendance/:miembro_id", h.RegisterForRehearsal)
	return e
}

func TestAdminAttendanceHandler_Register(t *testing.T) {
	admin := &model.User{ID: uuid.New(), IsActive: true}
	miembroID := uuid.New()
	ensayoID := uuid.New()

	svc := new(mockAttendanceService)
	svc.On("Register", mock.Anything, mock.MatchedBy(func(input service.RegisterAttendanceInput) bool {
		return input.MiembroID == miembroID && input.EnsayoID == ensayoID &&
			!input.Presente && input.RegistradoPor == admin.ID
	})).Return(&model.Attendance{
		ID:            uuid.New(),
		MiembroID:     miembroID,
		EnsayoID:      ensayoID,
		Presente:      false,
		RegistradoPor: admin.ID,
		RegistradoEn:  time.Now().UTC(),
	}, nil)

	e := newAttendanceTestServer(svc, admin)

	body := `{"miembro_id":"` + miembroID.String() + `","ensayo_id":"` + ensayoID.String() + `","presente":false}`
	req := httptest.NewRequest(http.MethodPost, "/admin/attendance", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"presente":false`)
	svc.AssertExpectations(t)
}

func TestAdminAttendanceHandler_Register_MissingPresente(t *testing.T) {
	admin := &model.User{ID: uuid.New(), IsActive: true}
	svc := new(mockAttendanceService)
	e := newAttendanceTestServer(svc, admin)

	body := `{"miembro_id":"` + uuid.NewString() + `","ensayo_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/attendance", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	svc.AssertNotCalled(t, "Register")
}

func TestAdminAttendanceHandler_RegisterForRehearsal(t *testing.T) {
	admin := &model.User{ID: uuid.New(), IsActive: true}
	miembroID := uuid.New()
	ensayoID := uuid.New()

	svc := new(mockAttendanceService)
	svc.On("Register", mock.Anything, mock.MatchedBy(func(input service.RegisterAttendanceInput) bool {
		return input.MiembroID == miembroID && input.EnsayoID == ensayoID && !input.Presente
	})).Return(&model.Attendance{
		ID:            uuid.New(),
		MiembroID:     miembroID,
		EnsayoID:      ensayoID,
		Presente:      false,
		RegistradoPor: admin.ID,
		RegistradoEn:  time.Now().UTC(),
	}, nil)

	e := newAttendanceTestServer(svc, admin)

	req := httptest.NewRequest(http.MethodPut,
		"/admin/rehearsals/"+ensayoID.String()+"/attendance/"+miembroID.String(),
		strings.NewReader(`{"presente":false}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"presente":false`)
	svc.AssertExpectations(t)
}
