package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestPublicHandler_GetPage(t *testing.T) {
	h := NewPublicHandler(nil, nil)
	e := echo.New()
	e.GET("/pages/:slug", h.GetPage)

	tests := []struct {
		name       string
		slug       string
		wantStatus int
		wantBody   string
	}{
		{"historia", "historia", http.StatusOK, "Nuestra Historia"},
		{"mision", "mision", http.StatusOK, "Misión"},
		{"vision", "vision", http.StatusOK, "Visión"},
		{"contacto", "contacto", http.StatusOK, "Contacto"},
		{"unknown slug", "equipo", http.StatusNotFound, "PAGE_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/pages/"+tt.slug, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestPublicHandler_Health(t *testing.T) {
	h := NewPublicHandler(nil, nil)
	e := echo.New()
	e.GET("/healthz", h.Health)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
