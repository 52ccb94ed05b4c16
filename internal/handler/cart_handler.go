package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /cartのHTTP
type CartHandler struct {
	store *usecase.CartStore
}

// DI
func NewCartHandler(store *usecase.CartStore) *CartHandler {
	return &CartHandler{store: store}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
}

type UpdateCartItemRequest struct {
	Amount int64 `json:"amount"`
}

type CartResponse struct {
	Items model.Cart      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// 失敗時も今のカートを返す（画面を描き直せるように）
type CartErrorResponse struct {
	Error string       `json:"error"`
	Cart  CartResponse `json:"cart"`
}

func newCartResponse(cart model.Cart) CartResponse {
	if cart == nil {
		cart = model.Cart{}
	}
	return CartResponse{Items: cart, Total: cart.Total(), Count: cart.Count()}
}

// /cart, /cart/:product_id を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.GET("", h.getCart)
	g.POST("", h.addProduct)
	g.PATCH("/:product_id", h.updateAmount)
	g.DELETE("/:product_id", h.removeProduct)
}

func (h *CartHandler) getCart(c echo.Context) error {
	return c.JSON(http.StatusOK, newCartResponse(h.store.Cart()))
}

func (h *CartHandler) addProduct(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil || req.ProductID <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	return h.respond(c, h.store.AddProduct(c.Request().Context(), req.ProductID))
}

func (h *CartHandler) updateAmount(c echo.Context) error {
	id, ok := parseID(c, "product_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	return h.respond(c, h.store.UpdateProductAmount(c.Request().Context(), usecase.UpdateProductAmount{
		ProductID: id,
		Amount:    req.Amount,
	}))
}

func (h *CartHandler) removeProduct(c echo.Context) error {
	id, ok := parseID(c, "product_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	return h.respond(c, h.store.RemoveProduct(c.Request().Context(), id))
}

func (h *CartHandler) respond(c echo.Context, err error) error {
	cart := newCartResponse(h.store.Cart())
	if err == nil {
		return c.JSON(http.StatusOK, cart)
	}

	ce, ok := usecase.AsCartError(err)
	if !ok {
		return c.JSON(http.StatusInternalServerError, CartErrorResponse{Error: "internal error", Cart: cart})
	}
	return c.JSON(cartErrorStatus(ce.Kind), CartErrorResponse{Error: ce.Message, Cart: cart})
}

func cartErrorStatus(kind usecase.CartErrorKind) int {
	switch kind {
	case usecase.KindValidation:
		return http.StatusBadRequest
	case usecase.KindOutOfStock:
		return http.StatusConflict
	case usecase.KindCatalog:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
