package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"armentum/internal/auth"
	"armentum/internal/errors"
	"armentum/internal/model"
	"armentum/internal/service"
)

// AdminContentHandler handles announcements and file management.
type AdminContentHandler struct {
	contentService service.ContentService
}

// NewAdminContentHandler creates a new admin content handler.
func NewAdminContentHandler(contentService service.ContentService) *AdminContentHandler {
	return &AdminContentHandler{contentService: contentService}
}

// CreateAnnouncementRequest represents an announcement creation.
type CreateAnnouncementRequest struct {
	Titulo         string  `json:"titulo" validate:"required"`
	Contenido      string  `json:"contenido" validate:"required"`
	DirigidoA      string  `json:"dirigido_a" validate:"omitempty,oneof=todos grupo miembro"`
	GrupoDestino   string  `json:"grupo_destino"`
	MiembroDestino *string `json:"miembro_destino" validate:"omitempty,uuid"`
}

// AnnouncementResponse represents an announcement in API responses.
type AnnouncementResponse struct {
	ID        string  `json:"id"`
	Titulo    string  `json:"titulo"`
	Contenido string  `json:"contenido"`
	DirigidoA string  `json:"dirigido_a"`
	EnviadoEn *string `json:"enviado_en"`
}

// FileResponse represents a stored file in API responses.
type FileResponse struct {
	ID      string `json:"id"`
	Nombre  string `json:"nombre"`
	Tipo    string `json:"tipo"`
	Voz     string `json:"voz"`
	URL     string `json:"url"`
	Privado bool   `json:"privado"`
}

func newAnnouncementResponse(announcement *model.Announcement) AnnouncementResponse {
	resp := AnnouncementResponse{
		ID:        announcement.ID.String(),
		Titulo:    announcement.Titulo,
		Contenido: announcement.Contenido,
		DirigidoA: announcement.DirigidoA,
	}
	if announcement.EnviadoEn != nil {
		enviadoEn := announcement.EnviadoEn.UTC().Format(time.RFC3339)
		resp.EnviadoEn = &enviadoEn
	}
	return resp
}

func newFileResponse(file *model.StoredFile) FileResponse {
	return FileResponse{
		ID:      file.ID.String(),
		Nombre:  file.Nombre,
		Tipo:    file.Tipo,
		Voz:     file.Voz,
		URL:     file.URL,
		Privado: file.Privado,
	}
}

// CreateAnnouncement godoc
// @Summary Publish an announcement
// @Tags admin-content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAnnouncementRequest true "Announcement data"
// @Success 201 {object} AnnouncementResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /admin/news [post]
func (h *AdminContentHandler) CreateAnnouncement(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return serviceError(errors.ErrAuthentication)
	}

	var req CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return bindError()
	}
	if err := c.Validate(&req); err != nil {
		return validationError(err)
	}

	input := service.CreateAnnouncementInput{
		Titulo:       req.Titulo,
		Contenido:    req.Contenido,
		DirigidoA:    req.DirigidoA,
		GrupoDestino: req.GrupoDestino,
		EnviadoPor:   user.ID,
	}
	if req.MiembroDestino != nil {
		id, err := uuid.Parse(*req.MiembroDestino)
		if err != nil {
			return invalidParam("miembro_destino")
		}
		input.MiembroDestino = &id
	}

	announcement, err := h.contentService.CreateAnnouncement(c.Request().Context(), input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newAnnouncementResponse(announcement))
}

// UploadFile godoc
// @Summary Upload a file to a storage bucket
// @Tags admin-content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File content"
// @Param bucket formData string true "Target bucket"
// @Param tipo formData string true "File kind"
// @Param voz formData string false "Voice part for scores"
// @Success 201 {object} FileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/files [post]
func (h *AdminContentHandler) UploadFile(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return serviceError(errors.ErrAuthentication)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return invalidParam("file")
	}
	bucket := c.FormValue("bucket")
	tipo := c.FormValue("tipo")
	if bucket == "" || tipo == "" {
		return invalidParam("bucket")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return invalidParam("file")
	}
	defer src.Close()
	content, err := io.ReadAll(src)
	if err != nil {
		return invalidParam("file")
	}

	input := service.UploadFileInput{
		Nombre:      fileHeader.Filename,
		Tipo:        tipo,
		Voz:         c.FormValue("voz"),
		Bucket:      bucket,
		Content:     content,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SubidoPor:   user.ID,
	}
	if raw := c.FormValue("evento_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return invalidParam("evento_id")
		}
		input.EventoID = &id
	}
	if raw := c.FormValue("ensayo_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return invalidParam("ensayo_id")
		}
		input.EnsayoID = &id
	}

	file, err := h.contentService.UploadFile(c.Request().Context(), input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			// bucket policy rejections are client errors
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "UPLOAD_REJECTED",
			})
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, newFileResponse(file))
}

// ListFiles godoc
// @Summary List stored files
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param tipo query string false "Filter by file kind"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/files [get]
func (h *AdminContentHandler) ListFiles(c echo.Context) error {
	limit, offset := pagination(c)
	files, total, err := h.contentService.ListFiles(c.Request().Context(), c.QueryParam("tipo"), limit, offset)
	if err != nil {
		return serviceError(err)
	}

	items := make([]FileResponse, 0, len(files))
	for i := range files {
		items = append(items, newFileResponse(&files[i]))
	}
	return c.JSON(http.StatusOK, ListResponse{Items: items, Total: total})
}

// DeleteFile godoc
// @Summary Delete a stored file
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param id path string true "File ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/files/{id} [delete]
func (h *AdminContentHandler) DeleteFile(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.contentService.DeleteFile(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Archivo eliminado"})
}

// FileDownloadURL godoc
// @Summary Get a download URL for a stored file
// @Tags admin-content
// @Produce json
// @Security BearerAuth
// @Param id path string true "File ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id}/url [get]
func (h *AdminContentHandler) FileDownloadURL(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	url, err := h.contentService.FileDownloadURL(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
