package server

import (
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

// Catalog と AdminCatalog はDBが無いとき nil（/products を出さない）
type Handlers struct {
	Health       *handler.HealthHandler
	Catalog      *handler.CatalogHandler
	AdminCatalog *handler.AdminCatalogHandler
	Cart         *handler.CartHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers, adminToken string) {
	h.Health.RegisterRoutes(e)
	if h.Catalog != nil {
		h.Catalog.RegisterRoutes(e)
	}
	if h.AdminCatalog != nil {
		h.AdminCatalog.RegisterRoutes(e, adminToken)
	}
	h.Cart.RegisterRoutes(e)
}
