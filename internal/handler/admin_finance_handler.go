package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"armentum/internal/auth"
	"armentum/internal/errors"
	"armentum/internal/model"
	"armentum/internal/repository"
	"armentum/internal/service"
)

// AdminFinanceHandler handles the admin dues and reporting endpoints.
type AdminFinanceHandler struct {
	financeService service.FinanceService
}

// NewAdminFinanceHandler creates a new admin finance handler.
func NewAdminFinanceHandler(financeService service.FinanceService) *AdminFinanceHandler {
	return &AdminFinanceHandler{financeService: financeService}
}

// CreateDueRequest represents billing a member.
type CreateDueRequest struct {
	MiembroID        string  `json:"miembro_id" validate:"required,uuid"`
	Monto            float64 `json:"monto" validate:"required"`
	Descripcion      string  `json:"descripcion"`
	Tipo             string  `json:"tipo" validate:"omitempty,oneof=regular extraordinaria"`
	FechaVencimiento string  `json:"fecha_vencimiento" validate:"required"`
}

// PayDueRequest carries an optional payment date; it defaults to today.
type PayDueRequest struct {
	FechaPago string `json:"fecha_pago"`
}

// DueResponse represents a due in API responses.
type DueResponse struct {
	ID               string  `json:"id"`
	MiembroID        string  `json:"miembro_id"`
	Monto            float64 `json:"monto"`
	Descripcion      string  `json:"descripcion"`
	Tipo             string  `json:"tipo"`
	FechaVencimiento string  `json:"fecha_vencimiento"`
	Estado           string  `json:"estado"`
	FechaPago        *string `json:"fecha_pago"`
}

// SummaryResponse represents aggregated due totals.
type SummaryResponse struct {
	TotalIngresos  float64 `json:"total_ingresos"`
	TotalPendiente float64 `json:"total_pendiente"`
	TotalVencido   float64 `json:"total_vencido"`
	TotalCuotas    int     `json:"total_cuotas"`
}

// ReportResponse represents a date-ranged financial report.
type ReportResponse struct {
	Desde   *string         `json:"desde"`
	Hasta   *string         `json:"hasta"`
	Resumen SummaryResponse `json:"resumen"`
	Cuotas  []DueResponse   `json:"cuotas"`
}

func newDueResponse(due *model.Due) DueResponse {
	resp := DueResponse{
		ID:               due.ID.String(),
		MiembroID:        due.MiembroID.String(),
		Monto:            due.Monto.InexactFloat64(),
		Descripcion:      due.Descripcion,
		Tipo:             string(due.Tipo),
		FechaVencimiento: due.FechaVencimiento.Format(dateLayout),
		Estado:           string(due.Estado),
	}
	if due.FechaPago != nil {
		fechaPago := due.FechaPago.Format(dateLayout)
		resp.FechaPago = &fechaPago
	}
	return resp
}

func newDueResponses(dues []model.Due) []DueResponse {
	out := make([]DueResponse, 0, len(dues))
	for i := range dues {
		out = append(out, newDueResponse(&dues[i]))
	}
	return out
}

func newSummaryResponse(summary *service.FinanceSummary) SummaryResponse {
	return SummaryResponse{
		TotalIngresos:  summary.TotalIngresos.InexactFloat64(),
		TotalPendiente: summary.TotalPendiente.InexactFloat64(),
		TotalVencido:   summary.TotalVencido.InexactFloat64(),
		TotalCuotas:    summary.TotalCuotas,
	}
}

// CreateDue godoc
// @Summary Bill a member
// @Tags admin-finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateDueRequest true "Due data"
// @Success 201 {object} DueResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/finance/dues [post]
func (h *AdminFinanceHandler) CreateDue(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return serviceError(errors.ErrAuthentication)
	}

	var req CreateDueRequest
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
	fechaVencimiento, err := time.Parse(dateLayout, req.FechaVencimiento)
	if err != nil {
		return invalidParam("fecha_vencimiento")
	}

	due, err := h.financeService.CreateDue(c.Request().Context(), service.CreateDueInput{
		MiembroID:        miembroID,
		Monto:            decimal.NewFromFloat(req.Monto),
		Descripcion:      req.Descripcion,
		Tipo:             model.DueType(req.Tipo),
		FechaVencimiento: fechaVencimiento,
		CreatedBy:        user.ID,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newDueResponse(due))
}

// ListDues godoc
// @Summary List dues
// @Tags admin-finance
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param estado query string false "Filter by status" Enums(pendiente, pagada, vencida)
// @Param miembro_id query string false "Filter by member"
// @Success 200 {object} ListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/finance/dues [get]
func (h *AdminFinanceHandler) ListDues(c echo.Context) error {
	limit, offset := pagination(c)
	params := repository.DueListParams{
		Limit:  limit,
		Offset: offset,
		Estado: model.DueStatus(c.QueryParam("estado")),
	}
	if raw := c.QueryParam("miembro_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return invalidParam("miembro_id")
		}
		params.MiembroID = &id
	}

	dues, total, err := h.financeService.ListDues(c.Request().Context(), params)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, ListResponse{Items: newDueResponses(dues), Total: total})
}

// PayDue godoc
// @Summary Mark a due as paid
// @Tags admin-finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Due ID"
// @Param request body PayDueRequest false "Payment date"
// @Success 200 {object} DueResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/finance/dues/{id}/pay [post]
func (h *AdminFinanceHandler) PayDue(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req PayDueRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	fechaPago := time.Now().UTC().Truncate(24 * time.Hour)
	if req.FechaPago != "" {
		parsed, err := time.Parse(dateLayout, req.FechaPago)
		if err != nil {
			return invalidParam("fecha_pago")
		}
		fechaPago = parsed
	}

	due, err := h.financeService.MarkPaid(c.Request().Context(), id, fechaPago)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newDueResponse(due))
}

// RecordPaymentRequest settles a due identified in the body.
type RecordPaymentRequest struct {
	CuotaID   string `json:"cuota_id" validate:"required,uuid"`
	FechaPago string `json:"fecha_pago"`
}

// RecordPayment godoc
// @Summary Record a payment for a due
// @Tags admin-finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordPaymentRequest true "Payment data"
// @Success 200 {object} DueResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/finance/payments [put]
func (h *AdminFinanceHandler) RecordPayment(c echo.Context) error {
	var req RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	id, err := uuid.Parse(req.CuotaID)
	if err != nil {
		return invalidParam("cuota_id")
	}
	fechaPago := time.Now().UTC().Truncate(24 * time.Hour)
	if req.FechaPago != "" {
		parsed, err := time.Parse(dateLayout, req.FechaPago)
		if err != nil {
			return invalidParam("fecha_pago")
		}
		fechaPago = parsed
	}

	due, err := h.financeService.MarkPaid(c.Request().Context(), id, fechaPago)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newDueResponse(due))
}

// ListPayments godoc
// @Summary List paid dues
// @Tags admin-finance
// @Produce json
// @Security BearerAuth
// @Param miembro_id query string false "Filter by member"
// @Success 200 {array} DueResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/finance/payments [get]
func (h *AdminFinanceHandler) ListPayments(c echo.Context) error {
	var memberID *uuid.UUID
	if raw := c.QueryParam("miembro_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return invalidParam("miembro_id")
		}
		memberID = &id
	}

	dues, err := h.financeService.ListPayments(c.Request().Context(), memberID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newDueResponses(dues))
}

// Summary godoc
// @Summary Summarize the dues ledger
// @Tags admin-finance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SummaryResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/finance/summary [get]
func (h *AdminFinanceHandler) Summary(c echo.Context) error {
	summary, err := h.financeService.Summary(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newSummaryResponse(summary))
}

// Report godoc
// @Summary Build a financial report over a due date range
// @Tags admin-finance
// @Produce json
// @Security BearerAuth
// @Param desde query string false "Start date (YYYY-MM-DD)"
// @Param hasta query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} ReportResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/finance/reports [get]
func (h *AdminFinanceHandler) Report(c echo.Context) error {
	desde, err := parseDateQuery(c, "desde")
	if err != nil {
		return err
	}
	hasta, err := parseDateQuery(c, "hasta")
	if err != nil {
		return err
	}

	report, err := h.financeService.Report(c.Request().Context(), desde, hasta)
	if err != nil {
		return serviceError(err)
	}

	resp := ReportResponse{
		Resumen: newSummaryResponse(&report.Resumen),
		Cuotas:  newDueResponses(report.Cuotas),
	}
	if report.Desde != nil {
		s := report.Desde.Format(dateLayout)
		resp.Desde = &s
	}
	if report.Hasta != nil {
		s := report.Hasta.Format(dateLayout)
		resp.Hasta = &s
	}
	return c.JSON(http.StatusOK, resp)
}
