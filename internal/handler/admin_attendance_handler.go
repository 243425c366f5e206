package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"armentum/internal/auth"
	"armentum/internal/errors"
	"armentum/internal/model"
	"armentum/internal/repository"
	"armentum/internal/service"
)

// AdminAttendanceHandler handles the admin attendance endpoints.
type AdminAttendanceHandler struct {
	attendanceService service.AttendanceService
}

// NewAdminAttendanceHandler creates a new admin attendance handler.
func NewAdminAttendanceHandler(attendanceService service.AttendanceService) *AdminAttendanceHandler {
	return &AdminAttendanceHandler{attendanceService: attendanceService}
}

// RegisterAttendanceRequest represents one attendance registration.
type RegisterAttendanceRequest struct {
	MiembroID     string  `json:"miembro_id" validate:"required,uuid"`
	EnsayoID      string  `json:"ensayo_id" validate:"required,uuid"`
	Presente      *bool   `json:"presente" validate:"required"`
	Justificacion *string `json:"justificacion"`
}

// RehearsalAttendanceRequest registers attendance with both ids in the path.
type RehearsalAttendanceRequest struct {
	Presente      *bool   `json:"presente" validate:"required"`
	Justificacion *string `json:"justificacion"`
}

// AttendanceResponse represents an attendance record in API responses.
type AttendanceResponse struct {
	ID            string  `json:"id"`
	MiembroID     string  `json:"miembro_id"`
	EnsayoID      string  `json:"ensayo_id"`
	Presente      bool    `json:"presente"`
	Justificacion *string `json:"justificacion"`
	RegistradoPor string  `json:"registrado_por"`
	RegistradoEn  string  `json:"registrado_en"`
}

func newAttendanceResponse(attendance *model.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            attendance.ID.String(),
		MiembroID:     attendance.MiembroID.String(),
		EnsayoID:      attendance.EnsayoID.String(),
		Presente:      attendance.Presente,
		Justificacion: attendance.Justificacion,
		RegistradoPor: attendance.RegistradoPor.String(),
		RegistradoEn:  attendance.RegistradoEn.UTC().Format(time.RFC3339),
	}
}

func newAttendanceResponses(records []model.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, newAttendanceResponse(&records[i]))
	}
	return out
}

// Register godoc
// @Summary Register attendance for a member at a rehearsal
// @Tags admin-attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterAttendanceRequest true "Attendance data"
// @Success 201 {object} AttendanceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/attendance [post]
func (h *AdminAttendanceHandler) Register(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return serviceError(errors.ErrAuthentication)
	}

	var req RegisterAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	miembroID, err := uuid.Parse(req.MiembroID)
	if err != nil {
		return invalidParam("miembro_id")
	}
	ensayoID, err := uuid.Parse(req.EnsayoID)
	if err != nil {
		return invalidParam("ensayo_id")
	}

	attendance, err := h.attendanceService.Register(c.Request().Context(), service.RegisterAttendanceInput{
		MiembroID:     miembroID,
		EnsayoID:      ensayoID,
		Presente:      *req.Presente,
		Justificacion: req.Justificacion,
		RegistradoPor: user.ID,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newAttendanceResponse(attendance))
}

// RegisterForRehearsal godoc
// @Summary Register attendance for a member at a rehearsal by path
// @Tags admin-attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rehearsal ID"
// @Param miembro_id path string true "Member ID"
// @Param request body RehearsalAttendanceRequest true "Attendance data"
// @Success 200 {object} AttendanceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/rehearsals/{id}/attendance/{miembro_id} [put]
func (h *AdminAttendanceHandler) RegisterForRehearsal(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return serviceError(errors.ErrAuthentication)
	}

	ensayoID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	miembroID, err := parseUUIDParam(c, "miembro_id")
	if err != nil {
		return err
	}

	var req RehearsalAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	attendance, err := h.attendanceService.Register(c.Request().Context(), service.RegisterAttendanceInput{
		MiembroID:     miembroID,
		EnsayoID:      ensayoID,
		Presente:      *req.Presente,
		Justificacion: req.Justificacion,
		RegistradoPor: user.ID,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newAttendanceResponse(attendance))
}

// List godoc
// @Summary List attendance records
// @Tags admin-attendance
// @Produce json
// @Security BearerAuth
// @Param ensayo_id query string false "Filter by rehearsal"
// @Param miembro_id query string false "Filter by member"
// @Success 200 {array} AttendanceResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/attendance [get]
func (h *AdminAttendanceHandler) List(c echo.Context) error {
	var filter repository.AttendanceFilter
	if raw := c.QueryParam("ensayo_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return invalidParam("ensayo_id")
		}
		filter.EnsayoID = &id
	}
	if raw := c.QueryParam("miembro_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return invalidParam("miembro_id")
		}
		filter.MiembroID = &id
	}

	records, err := h.attendanceService.List(c.Request().Context(), filter)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newAttendanceResponses(records))
}

// AttendanceReportResponse bundles filtered records with their aggregates.
type AttendanceReportResponse struct {
	Registros     []AttendanceResponse `json:"registros"`
	Total         int64                `json:"total"`
	Asistencias   int64                `json:"asistencias"`
	Inasistencias int64                `json:"inasistencias"`
	Porcentaje    float64              `json:"porcentaje"`
}

// Report godoc
// @Summary Aggregate attendance over optional rehearsal and member filters
// @Tags admin-attendance
// @Produce json
// @Security BearerAuth
// @Param ensayo_id query string false "Filter by rehearsal"
// @Param miembro_id query string false "Filter by member"
// @Success 200 {object} AttendanceReportResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/attendance/reports [get]
func (h *AdminAttendanceHandler) Report(c echo.Context) error {
	var filter repository.AttendanceFilter
	if raw := c.QueryParam("ensayo_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return invalidParam("ensayo_id")
		}
		filter.EnsayoID = &id
	}
	if raw := c.QueryParam("miembro_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return invalidParam("miembro_id")
		}
		filter.MiembroID = &id
	}

	records, err := h.attendanceService.List(c.Request().Context(), filter)
	if err != nil {
		return serviceError(err)
	}

	report := AttendanceReportResponse{
		Registros: newAttendanceResponses(records),
		Total:     int64(len(records)),
	}
	for i := range records {
		if records[i].Presente {
			report.Asistencias++
		}
	}
	report.Inasistencias = report.Total - report.Asistencias
	if report.Total > 0 {
		report.Porcentaje = float64(report.Asistencias) / float64(report.Total) * 100
	}
	return c.JSON(http.StatusOK, report)
}
