package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// price はカタログ/スナップショットとも JSON の数値で入出力する。
	// グローバル設定なので影響はプロセス全体に及ぶ（doc.go 参照）。
	decimal.MarshalJSONWithoutQuotes = true
}

// カタログの商品（在庫数もこの行で持つ）
type CatalogProduct struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:text;column:image_url" json:"image_url"`
	Stock       int64           `gorm:"not null" json:"stock"`
	IsActive    bool            `gorm:"not null;default:false" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (CatalogProduct) TableName() string {
	return "products"
}

// カート行の形に写す（amount は 0）
func (p CatalogProduct) ToProduct() Product {
	return Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
	}
}

func (p CatalogProduct) ToStock() StockEntry {
	return StockEntry{ID: p.ID, Amount: p.Stock}
}

// Product はカートの1行。Amount はカート内の数量。
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Amount   int64           `json:"amount"`
}

// 単価 × 数量
func (p Product) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Amount))
}
