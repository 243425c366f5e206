package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"armentum/internal/model"
	"armentum/internal/repository"
	"armentum/internal/service"
)

// AdminMemberHandler handles the admin member management endpoints.
type AdminMemberHandler struct {
	memberService service.MemberService
}

// NewAdminMemberHandler creates a new admin member handler.
func NewAdminMemberHandler(memberService service.MemberService) *AdminMemberHandler {
	return &AdminMemberHandler{memberService: memberService}
}

// CreateMemberRequest represents an admin member enrollment.
type CreateMemberRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Nombre       string `json:"nombre" validate:"required"`
	Voz          string `json:"voz" validate:"required,oneof=soprano contralto tenor bajo"`
	FechaIngreso string `json:"fecha_ingreso" validate:"required"`
	Telefono     string `json:"telefono"`
}

// UpdateMemberRequest represents an admin member update.
type UpdateMemberRequest struct {
	Voz         *string  `json:"voz" validate:"omitempty,oneof=soprano contralto tenor bajo"`
	Estado      *string  `json:"estado" validate:"omitempty,oneof=activo inactivo suspendido"`
	Telefono    *string  `json:"telefono"`
	SaldoActual *float64 `json:"saldo_actual"`
}

// List godoc
// @Summary List members
// @Tags admin-members
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param search query string false "Search by name or email"
// @Param estado query string false "Filter by status" Enums(activo, inactivo, suspendido)
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/members [get]
func (h *AdminMemberHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	members, total, err := h.memberService.List(c.Request().Context(), repository.MemberListParams{
		Limit:  limit,
		Offset: offset,
		Search: c.QueryParam("search"),
		Estado: model.MemberStatus(c.QueryParam("estado")),
	})
	if err != nil {
		return serviceError(err)
	}

	items := make([]MemberResponse, 0, len(members))
	for i := range members {
		items = append(items, newMemberResponse(&members[i]))
	}
	return c.JSON(http.StatusOK, ListResponse{Items: items, Total: total})
}

// Create godoc
// @Summary Enroll a member
// @Tags admin-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMemberRequest true "Member data"
// @Success 201 {object} MemberResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/members [post]
func (h *AdminMemberHandler) Create(c echo.Context) error {
	var req CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	fechaIngreso, err := time.Parse(dateLayout, req.FechaIngreso)
	if err != nil {
		return invalidParam("fecha_ingreso")
	}

	member, err := h.memberService.Create(c.Request().Context(), service.CreateMemberInput{
		Email:        req.Email,
		Password:     req.Password,
		Nombre:       req.Nombre,
		Voz:          req.Voz,
		FechaIngreso: fechaIngreso,
		Telefono:     req.Telefono,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newMemberResponse(member))
}

// Get godoc
// @Summary Get a member
// @Tags admin-members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} MemberResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/members/{id} [get]
func (h *AdminMemberHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	member, err := h.memberService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newMemberResponse(member))
}

// Update godoc
// @Summary Update a member
// @Tags admin-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body UpdateMemberRequest true "Member changes"
// @Success 200 {object} MemberResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/members/{id} [put]
func (h *AdminMemberHandler) Update(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	input := service.UpdateMemberInput{
		Voz:      req.Voz,
		Telefono: req.Telefono,
	}
	if req.Estado != nil {
		estado := model.MemberStatus(*req.Estado)
		input.Estado = &estado
	}
	if req.SaldoActual != nil {
		saldo := decimal.NewFromFloat(*req.SaldoActual)
		input.SaldoActual = &saldo
	}

	member, err := h.memberService.Update(c.Request().Context(), id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newMemberResponse(member))
}

// Deactivate godoc
// @Summary Deactivate a member
// @Tags admin-members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/members/{id} [delete]
func (h *AdminMemberHandler) Deactivate(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.memberService.Deactivate(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Miembro desactivado"})
}
