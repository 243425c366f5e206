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

// AdminEventHandler handles the admin public-event endpoints.
type AdminEventHandler struct {
	eventService service.EventService
}

// NewAdminEventHandler creates a new admin event handler.
func NewAdminEventHandler(eventService service.EventService) *AdminEventHandler {
	return &AdminEventHandler{eventService: eventService}
}

// CreateEventRequest represents an event creation.
type CreateEventRequest struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion"`
	Fecha       string `json:"fecha" validate:"required"`
	Hora        string `json:"hora" validate:"required"`
	Lugar       string `json:"lugar" validate:"required"`
	Tipo        string `json:"tipo"`
	Estado      string `json:"estado" validate:"omitempty,oneof=planificado en_curso finalizado cancelado"`
	ImagenURL   string `json:"imagen_url"`
}

// UpdateEventRequest represents an event update.
type UpdateEventRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Fecha       *string `json:"fecha"`
	Hora        *string `json:"hora"`
	Lugar       *string `json:"lugar"`
	Tipo        *string `json:"tipo"`
	Estado      *string `json:"estado" validate:"omitempty,oneof=planificado en_curso finalizado cancelado"`
	ImagenURL   *string `json:"imagen_url"`
}

// EventResponse represents a public event in API responses.
type EventResponse struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Fecha       string `json:"fecha"`
	Hora        string `json:"hora"`
	Lugar       string `json:"lugar"`
	Tipo        string `json:"tipo"`
	Estado      string `json:"estado"`
	ImagenURL   string `json:"imagen_url"`
}

func newEventResponse(event *model.PublicEvent) EventResponse {
	return EventResponse{
		ID:          event.ID.String(),
		Nombre:      event.Nombre,
		Descripcion: event.Descripcion,
		Fecha:       event.Fecha.Format(dateLayout),
		Hora:        event.Hora,
		Lugar:       event.Lugar,
		Tipo:        event.Tipo,
		Estado:      string(event.Estado),
		ImagenURL:   event.ImagenURL,
	}
}

func newEventResponses(events []model.PublicEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, newEventResponse(&events[i]))
	}
	return out
}

// List godoc
// @Summary List all events including finished and cancelled
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/events [get]
func (h *AdminEventHandler) List(c echo.Context) error {
	limit, offset := pagination(c)
	events, total, err := h.eventService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, ListResponse{Items: newEventResponses(events), Total: total})
}

// Create godoc
// @Summary Create an event
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "Event data"
// @Success 201 {object} EventResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/events [post]
func (h *AdminEventHandler) Create(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return serviceError(errors.ErrAuthentication)
	}

	var req CreateEventRequest
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

	event, err := h.eventService.Create(c.Request().Context(), service.CreateEventInput{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Fecha:       fecha,
		Hora:        req.Hora,
		Lugar:       req.Lugar,
		Tipo:        req.Tipo,
		Estado:      model.EventStatus(req.Estado),
		ImagenURL:   req.ImagenURL,
		CreatedBy:   user.ID,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newEventResponse(event))
}

// Update godoc
// @Summary Update an event
// @Tags admin-events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body UpdateEventRequest true "Event changes"
// @Success 200 {object} EventResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/events/{id} [put]
func (h *AdminEventHandler) Update(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	input := service.UpdateEventInput{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Hora:        req.Hora,
		Lugar:       req.Lugar,
		Tipo:        req.Tipo,
		ImagenURL:   req.ImagenURL,
	}
	if req.Fecha != nil {
		fecha, err := time.Parse(dateLayout, *req.Fecha)
		if err != nil {
			return invalidParam("fecha")
		}
		input.Fecha = &fecha
	}
	if req.Estado != nil {
		estado := model.EventStatus(*req.Estado)
		input.Estado = &estado
	}

	event, err := h.eventService.Update(c.Request().Context(), id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newEventResponse(event))
}

// Delete godoc
// @Summary Delete an event
// @Tags admin-events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/events/{id} [delete]
func (h *AdminEventHandler) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.eventService.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Evento eliminado"})
}
