package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// /products と /stock の業務ロジック
type CatalogUsecase struct {
	catalogRepo repo.CatalogRepository
}

// DI
func NewCatalogUsecase(catalogRepo repo.CatalogRepository) *CatalogUsecase {
	return &CatalogUsecase{catalogRepo: catalogRepo}
}

// GET /products の入力DTO
type ListProductsInput struct {
	Page  int
	Limit int
	Q     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	rows, total, err := u.catalogRepo.ListActive(ctx, repo.CatalogListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     strings.TrimSpace(in.Q),
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.ToProduct())
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.findActive(ctx, productID)
	if err != nil {
		return model.Product{}, err
	}
	return p.ToProduct(), nil
}

func (u *CatalogUsecase) GetStock(ctx context.Context, productID int64) (model.StockEntry, error) {
	p, err := u.findActive(ctx, productID)
	if err != nil {
		return model.StockEntry{}, err
	}
	return p.ToStock(), nil
}

// 非公開の商品は存在しない扱い
func (u *CatalogUsecase) findActive(ctx context.Context, productID int64) (model.CatalogProduct, error) {
	if productID <= 0 {
		return model.CatalogProduct{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.catalogRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.CatalogProduct{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.CatalogProduct{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.CatalogProduct{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	return p, nil
}
