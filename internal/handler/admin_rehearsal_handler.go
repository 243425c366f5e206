package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"armentum/internal/auth"
	"armentum/internal/errors"
	"armentum/internal/model"
	"armentum/internal/service"
)

// AdminRehearsalHandler handles the admin rehearsal endpoints.
type AdminRehearsalHandler struct {
	rehearsalService service.RehearsalService
}

// NewAdminRehearsalHandler creates a new admin rehearsal handler.
func NewAdminRehearsalHandler(rehearsalService service.RehearsalService) *AdminRehearsalHandler {
	return &AdminRehearsalHandler{rehearsalService: rehearsalService}
}

// CreateRehearsalRequest represents a rehearsal creation.
type CreateRehearsalRequest struct {
	Tipo        string `json:"tipo" validate:"required,oneof=general seccional extraordinario"`
	Nombre      string `json:"nombre"`
	Fecha       string `json:"fecha" validate:"required"`
	Hora        string `json:"hora" validate:"required"`
	Lugar       string `json:"lugar" validate:"required"`
	Cuerdas     string `json:"cuerdas"`
	Descripcion string `json:"descripcion"`
}

// UpdateRehearsalRequest represents a rehearsal update.
type UpdateRehearsalRequest struct {
	Tipo        *string `json:"tipo" validate:"omitempty,oneof=general seccional extraordinario"`
	Nombre      *string `json:"nombre"`
	Fecha       *string `json:"fecha"`
	Hora        *string `json:"hora"`
	Lugar       *string `json:"lugar"`
	Cuerdas     *string `json:"cuerdas"`
	Descripcion *string `json:"descripcion"`
}

// RehearsalResponse represents a rehearsal in API responses.
type RehearsalResponse struct {
	ID          string `json:"id"`
	Tipo        string `json:"tipo"`
	Nombre      string `json:"nombre"`
	Fecha       string `json:"fecha"`
	Hora        string `json:"hora"`
	Lugar       string `json:"lugar"`
	Cuerdas     string `json:"cuerdas"`
	Descripcion string `json:"descripcion"`
}

func newRehearsalResponse(rehearsal *model.Rehearsal) RehearsalResponse {
	return RehearsalResponse{
		ID:          rehearsal.ID.String(),
		Tipo:        rehearsal.Tipo,
		Nombre:      rehearsal.Nombre,
		Fecha:       rehearsal.Fecha.Format(dateLayout),
		Hora:        rehearsal.Hora,
		Lugar:       rehearsal.Lugar,
		Cuerdas:     rehearsal.Cuerdas,
		Descripcion: rehearsal.Descripcion,
	}
}

// List godoc
// @Summary List rehearsals
// @Tags admin-rehearsals
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/rehearsals [get]
func (h *AdminRehearsalHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	rehearsals, total, err := h.rehearsalService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(err)
	}

	items := make([]RehearsalResponse, 0, len(rehearsals))
	for i := range rehearsals {
		items = append(items, newRehearsalResponse(&rehearsals[i]))
	}
	return c.JSON(http.StatusOK, ListResponse{Items: items, Total: total})
}

// Create godoc
// @Summary Schedule a rehearsal
// @Tags admin-rehearsals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRehearsalRequest true "Rehearsal data"
// @Success 201 {object} RehearsalResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/rehearsals [post]
func (h *AdminRehearsalHandler) Create(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return serviceError(errors.ErrAuthentication)
	}

	var req CreateRehearsalRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	fecha, err := time.Parse(dateLayout, req.Fecha)
	if err != nil {
		return invalidParam("fecha")
	}

	rehearsal, err := h.rehearsalService.Create(c.Request().Context(), service.CreateRehearsalInput{
		Tipo:        req.Tipo,
		Nombre:      req.Nombre,
		Fecha:       fecha,
		Hora:        req.Hora,
		Lugar:       req.Lugar,
		Cuerdas:     req.Cuerdas,
		Descripcion: req.Descripcion,
		CreatedBy:   user.ID,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newRehearsalResponse(rehearsal))
}

// Get godoc
// @Summary Get a rehearsal
// @Tags admin-rehearsals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rehearsal ID"
// @Success 200 {object} RehearsalResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/rehearsals/{id} [get]
func (h *AdminRehearsalHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	rehearsal, err := h.rehearsalService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newRehearsalResponse(rehearsal))
}

// Update godoc
// @Summary Update a rehearsal
// @Tags admin-rehearsals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rehearsal ID"
// @Param request body UpdateRehearsalRequest true "Rehearsal changes"
// @Success 200 {object} RehearsalResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/rehearsals/{id} [put]
func (h *AdminRehearsalHandler) Update(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateRehearsalRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	input := service.UpdateRehearsalInput{
		Tipo:        req.Tipo,
		Nombre:      req.Nombre,
		Hora:        req.Hora,
		Lugar:       req.Lugar,
		Cuerdas:     req.Cuerdas,
		Descripcion: req.Descripcion,
	}
	if req.Fecha != nil {
		fecha, err := time.Parse(dateLayout, *req.Fecha)
		if err != nil {
			return invalidParam("fecha")
		}
		input.Fecha = &fecha
	}

	rehearsal, err := h.rehearsalService.Update(c.Request().Context(), id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newRehearsalResponse(rehearsal))
}

// Delete godoc
// @Summary Delete a rehearsal
// @Tags admin-rehearsals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rehearsal ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/rehearsals/{id} [delete]
func (h *AdminRehearsalHandler) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.rehearsalService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Ensayo eliminado"})
}

// Roster godoc
// @Summary Get the call sheet of a rehearsal
// @Tags admin-rehearsals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rehearsal ID"
// @Param voz query string false "Filter by voice part" Enums(soprano, contralto, tenor, bajo)
// @Success 200 {array} service.RosterEntry
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/rehearsals/{id}/roster [get]
func (h *AdminRehearsalHandler) Roster(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	roster, err := h.rehearsalService.Roster(c.Request().Context(), id, c.QueryParam("voz"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, roster)
}
