package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

// DI
func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// 公開商品のみを、名前検索とページング付きで返す。
func (r *CatalogGormRepository) ListActive(ctx context.Context, q repo.CatalogListQuery) ([]model.CatalogProduct, int64, error) {
	var products []model.CatalogProduct
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.CatalogProduct{}).
		Where("is_active = ?", true)

	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("name ILIKE ?", like)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.CatalogProduct{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Order("id asc").Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.CatalogProduct{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *CatalogGormRepository) FindByID(ctx context.Context, id int64) (model.CatalogProduct, error) {
	var p model.CatalogProduct
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CatalogProduct{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CatalogProduct{}, err
	}
	return p, nil
}

// 商品の作成
func (r *CatalogGormRepository) Create(ctx context.Context, p model.CatalogProduct) (model.CatalogProduct, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.CatalogProduct{}, err
	}
	return p, nil
}

// 在庫の現在値を設定
func (r *CatalogGormRepository) SetStock(ctx context.Context, id int64, stock int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CatalogProduct{}).
		Where("id = ?", id).
		Update("stock", stock)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
