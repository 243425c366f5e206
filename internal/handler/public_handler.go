package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"armentum/internal/errors"
	"armentum/internal/service"
)

// PublicHandler handles the unauthenticated public website endpoints.
type PublicHandler struct {
	eventService   service.EventService
	contentService service.ContentService
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(eventService service.EventService, contentService service.ContentService) *PublicHandler {
	return &PublicHandler{eventService: eventService, contentService: contentService}
}

// PageResponse represents a static institutional page.
type PageResponse struct {
	Slug      string `json:"slug"`
	Titulo    string `json:"titulo"`
	Contenido string `json:"contenido"`
}

// staticPages is the institutional content served without a CMS.
var staticPages = map[string]PageResponse{
	"historia": {
		Slug:      "historia",
		Titulo:    "Nuestra Historia",
		Contenido: "El coro Armentum nació como un proyecto comunitario dedicado a la música coral.",
	},
	"mision": {
		Slug:      "mision",
		Titulo:    "Misión",
		Contenido: "Difundir la música coral y formar cantantes comprometidos con la excelencia artística.",
	},
	"vision": {
		Slug:      "vision",
		Titulo:    "Visión",
		Contenido: "Ser un coro de referencia, reconocido por su calidad interpretativa y su labor comunitaria.",
	},
	"contacto": {
		Slug:      "contacto",
		Titulo:    "Contacto",
		Contenido: "Escríbenos para audiciones, contrataciones o colaboraciones.",
	},
}

// ListEvents godoc
// @Summary List upcoming public events
// @Tags public
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} EventResponse
// @Router /events [get]
func (h *PublicHandler) ListEvents(c echo.Context) error {
	limit, offset := pagination(c)
	events, err := h.eventService.ListUpcoming(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newEventResponses(events))
}

// GetEvent godoc
// @Summary Get a public event
// @Tags public
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /events/{id} [get]
func (h *PublicHandler) GetEvent(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	event, err := h.eventService.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newEventResponse(event))
}

// ListNews godoc
// @Summary List public news
// @Tags public
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} AnnouncementResponse
// @Router /news [get]
func (h *PublicHandler) ListNews(c echo.Context) error {
	limit, offset := pagination(c)
	news, err := h.contentService.PublicNews(c.Request().Context(), limit, offset)
	if err != nil {
		return serviceError(err)
	}

	items := make([]AnnouncementResponse, 0, len(news))
	for i := range news {
		items = append(items, newAnnouncementResponse(&news[i]))
	}
	return c.JSON(http.StatusOK, items)
}

// GetPage godoc
// @Summary Get a static institutional page
// @Tags public
// @Produce json
// @Param slug path string true "Page slug" Enums(historia, mision, vision, contacto)
// @Success 200 {object} PageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pages/{slug} [get]
func (h *PublicHandler) GetPage(c echo.Context) error {
	page, ok := staticPages[c.Param("slug")]
	if !ok {
		return serviceError(errors.ErrPageNotFound)
	}
	return c.JSON(http.StatusOK, page)
}

// Health godoc
// @Summary Health check
// @Tags public
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *PublicHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
