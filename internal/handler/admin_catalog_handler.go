package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type SuccessResponse struct {
	Message string `json:"message"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type ProductCreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Stock       int64           `json:"stock"`
	IsActive    bool            `json:"is_active"`
}

type StockUpdateRequest struct {
	Stock int64 `json:"stock"`
}

// /admin/products, /admin/stock, /admin/audit-logs
type AdminCatalogHandler struct {
	uc *usecase.AdminCatalogUsecase
}

// DI
func NewAdminCatalogHandler(uc *usecase.AdminCatalogUsecase) *AdminCatalogHandler {
	return &AdminCatalogHandler{uc: uc}
}

// adminを登録
func (h *AdminCatalogHandler) RegisterRoutes(e *echo.Echo, adminToken string) {
	admin := e.Group("/admin")
	admin.Use(middleware.AdminTokenGuard(adminToken))

	admin.POST("/products", h.createProduct)
	admin.PUT("/stock/:id", h.setStock)
	admin.GET("/audit-logs", h.listAuditLogs)
}

// 監査ログに残すリクエストID（RequestID ミドルウェアが付ける）
func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func (h *AdminCatalogHandler) createProduct(c echo.Context) error {
	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	id, err := h.uc.AdminCreateProduct(c.Request().Context(), requestID(c), usecase.AdminCreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

func (h *AdminCatalogHandler) setStock(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req StockUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminSetStock(c.Request().Context(), requestID(c), id, req.Stock); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminCatalogHandler) listAuditLogs(c echo.Context) error {
	var in usecase.ListAuditLogsInput
	in.Action = c.QueryParam("action")

	for name, dst := range map[string]*int{"limit": &in.Limit, "offset": &in.Offset} {
		if v := c.QueryParam(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
			}
			*dst = n
		}
	}
	if v := c.QueryParam("resource_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid resource_id"})
		}
		in.ResourceID = id
	}

	logs, err := h.uc.ListAuditLogs(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
