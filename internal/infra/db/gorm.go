package db

import (
	"storefront/internal/config"
	"storefront/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{}
	if cfg.IsProd() {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	return gorm.Open(postgres.Open(cfg.PostgresDSN()), gcfg)
}

// カタログ・監査ログ・スナップショット用のテーブル
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.CatalogProduct{},
		&model.AuditLog{},
		&model.StorageEntry{},
	)
}
