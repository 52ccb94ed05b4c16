package catalog

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// LocalCatalog はDBのカタログをそのまま使う（APIサーバーで CATALOG_URL が空のとき）
type LocalCatalog struct {
	catalogRepo repo.CatalogRepository
}

// DI
func NewLocalCatalog(catalogRepo repo.CatalogRepository) *LocalCatalog {
	return &LocalCatalog{catalogRepo: catalogRepo}
}

func (c *LocalCatalog) GetStock(ctx context.Context, productID int64) (model.StockEntry, error) {
	p, err := c.findActive(ctx, productID)
	if err != nil {
		return model.StockEntry{}, err
	}
	return p.ToStock(), nil
}

func (c *LocalCatalog) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	p, err := c.findActive(ctx, productID)
	if err != nil {
		return model.Product{}, err
	}
	return p.ToProduct(), nil
}

// 非公開の商品は見つからない扱い（HTTP の /products と揃える）
func (c *LocalCatalog) findActive(ctx context.Context, productID int64) (model.CatalogProduct, error) {
	p, err := c.catalogRepo.FindByID(ctx, productID)
	if err != nil {
		return model.CatalogProduct{}, err
	}
	if !p.IsActive {
		return model.CatalogProduct{}, repo.ErrNotFound
	}
	return p, nil
}
