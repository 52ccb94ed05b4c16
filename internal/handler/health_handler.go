package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// GET /healthz
type HealthHandler struct {
	storage Pinger
}

// DI
func NewHealthHandler(storage Pinger) *HealthHandler {
	return &HealthHandler{storage: storage}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.health)
}

func (h *HealthHandler) health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "storage unavailable"})
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "ok"})
}
