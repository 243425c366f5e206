package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"armentum/internal/model"
	"armentum/internal/service"
)

// MemberHandler handles the authenticated member self-service endpoints.
type MemberHandler struct {
	memberService     service.MemberService
	financeService    service.FinanceService
	attendanceService service.AttendanceService
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(
	memberService service.MemberService,
	financeService service.FinanceService,
	attendanceService service.AttendanceService,
) *MemberHandler {
	return &MemberHandler{
		memberService:     memberService,
		financeService:    financeService,
		attendanceService: attendanceService,
	}
}

// UpdateProfileRequest carries the fields a member may change themselves.
type UpdateProfileRequest struct {
	Voz      *string `json:"voz" validate:"omitempty,oneof=soprano contralto tenor bajo"`
	Telefono *string `json:"telefono"`
}

// MemberResponse represents a member profile in API responses.
type MemberResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Nombre       string  `json:"nombre"`
	Email        string  `json:"email"`
	Voz          string  `json:"voz"`
	FechaIngreso string  `json:"fecha_ingreso"`
	Estado       string  `json:"estado"`
	Telefono     string  `json:"telefono"`
	SaldoActual  float64 `json:"saldo_actual"`
}

func newMemberResponse(member *model.Member) MemberResponse {
	return MemberResponse{
		ID:           member.ID.String(),
		UserID:       member.UserID.String(),
		Nombre:       member.User.Nombre,
		Email:        member.User.Email,
		Voz:          member.Voz,
		FechaIngreso: member.FechaIngreso.Format(dateLayout),
		Estado:       string(member.Estado),
		Telefono:     member.Telefono,
		SaldoActual:  member.SaldoActual.InexactFloat64(),
	}
}

// MyProfile godoc
// @Summary Get the authenticated member's profile
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MemberResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /members/me [get]
func (h *MemberHandler) MyProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	member, err := h.memberService.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newMemberResponse(member))
}

// UpdateMyProfile godoc
// @Summary Update the authenticated member's voice part or phone
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile changes"
// @Success 200 {object} MemberResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /members/me [put]
func (h *MemberHandler) UpdateMyProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	member, err := h.memberService.UpdateSelf(c.Request().Context(), userID, req.Voz, req.Telefono)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newMemberResponse(member))
}

// MyDues godoc
// @Summary List the authenticated member's dues
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param estado query string false "Filter by status" Enums(pendiente, pagada, vencida)
// @Success 200 {array} DueResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /finance/me [get]
func (h *MemberHandler) MyDues(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	dues, err := h.financeService.MemberDues(c.Request().Context(), userID, model.DueStatus(c.QueryParam("estado")))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newDueResponses(dues))
}

// MyPaymentHistory godoc
// @Summary List the authenticated member's paid dues
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} DueResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /finance/me/history [get]
func (h *MemberHandler) MyPaymentHistory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	dues, err := h.financeService.MemberHistory(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newDueResponses(dues))
}

// MyFinanceSummary godoc
// @Summary Summarize the authenticated member's dues
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SummaryResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /finance/me/summary [get]
func (h *MemberHandler) MyFinanceSummary(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.financeService.MemberSummary(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newSummaryResponse(summary))
}

// MyAttendance godoc
// @Summary List the authenticated member's attendance history
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AttendanceResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /attendance/me [get]
func (h *MemberHandler) MyAttendance(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	records, err := h.attendanceService.ListForMember(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newAttendanceResponses(records))
}

// MyAttendanceStats godoc
// @Summary Get the authenticated member's attendance statistics
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AttendanceStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /attendance/me/stats [get]
func (h *MemberHandler) MyAttendanceStats(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	stats, err := h.attendanceService.StatsForMember(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
