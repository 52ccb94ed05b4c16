package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type CatalogListQuery struct {
	Page  int
	Limit int
	Q     string
}

// カタログ（商品と在庫）の永続化だけを約束。
type CatalogRepository interface {
	ListActive(ctx context.Context, q CatalogListQuery) ([]model.CatalogProduct, int64, error)
	FindByID(ctx context.Context, id int64) (model.CatalogProduct, error)
	Create(ctx context.Context, p model.CatalogProduct) (model.CatalogProduct, error)
	SetStock(ctx context.Context, id int64, stock int64) error
}

// カートから見たカタログ。HTTP でもDB直結でもよい。
type ProductCatalog interface {
	GetStock(ctx context.Context, productID int64) (model.StockEntry, error)
	GetProduct(ctx context.Context, productID int64) (model.Product, error)
}
