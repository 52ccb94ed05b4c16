// Package bootstrap は設定からスナップショットの置き場とカタログを組み立てる。
// API サーバーと CLI の両方から使う。
package bootstrap

import (
	"context"
	"fmt"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/infra/catalog"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// テストで差し替える
var (
	connectPostgres = db.Connect
	migrateStorage  = func(g *gorm.DB) error { return g.AutoMigrate(&model.StorageEntry{}) }
)

func closeGorm(g *gorm.DB) error {
	sqlDB, err := g.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Pinger はヘルスチェックできる置き場
type Pinger interface {
	Ping(ctx context.Context) error
}

type Storage struct {
	repo.SnapshotStorage
	Driver string
	close  func() error
}

func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Ping は置き場が対応していれば疎通を確認する（memory は常に成功）
func (s *Storage) Ping(ctx context.Context) error {
	if p, ok := s.SnapshotStorage.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// OpenStorage は CART_STORAGE_DRIVER に応じた置き場を開く。
// gormDB は postgres のとき使い回す（nil なら自分で接続する）。
func OpenStorage(ctx context.Context, cfg config.Config, gormDB *gorm.DB, log *zap.Logger) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return &Storage{SnapshotStorage: infraRepo.NewMemorySnapshotStorage(), Driver: cfg.StorageDriver}, nil

	case config.StorageSQLite:
		s, err := infraRepo.OpenSQLiteSnapshotStorage(ctx, cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		log.Debug("cart storage opened", zap.String("driver", cfg.StorageDriver), zap.String("path", cfg.StoragePath))
		return &Storage{SnapshotStorage: s, Driver: cfg.StorageDriver, close: s.Close}, nil

	case config.StoragePostgres:
		var closeFn func() error
		if gormDB == nil {
			var err error
			gormDB, err = connectPostgres(cfg)
			if err != nil {
				return nil, fmt.Errorf("connect postgres: %w", err)
			}
			owned := gormDB
			closeFn = func() error { return closeGorm(owned) }
			if err := migrateStorage(gormDB); err != nil {
				if cerr := closeFn(); cerr != nil {
					log.Warn("close postgres after failed migration", zap.Error(cerr))
				}
				return nil, fmt.Errorf("migrate storage_entries: %w", err)
			}
		}
		return &Storage{SnapshotStorage: infraRepo.NewSnapshotGormRepository(gormDB), Driver: cfg.StorageDriver, close: closeFn}, nil

	case config.StorageRedis:
		client, err := db.ConnectRedis(ctx, cfg, 5)
		if err != nil {
			return nil, err
		}
		return &Storage{
			SnapshotStorage: infraRepo.NewRedisSnapshotStorage(client, cfg.SnapshotTTL),
			Driver:          cfg.StorageDriver,
			close:           client.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// NewCatalog は CATALOG_URL があれば HTTP、無ければ DB のカタログを使う
func NewCatalog(cfg config.Config, catalogRepo repo.CatalogRepository) (repo.ProductCatalog, error) {
	if cfg.CatalogURL != "" {
		return catalog.NewHTTPCatalog(cfg.CatalogURL, cfg.CatalogTimeout), nil
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("CATALOG_URL is required without a database")
	}
	return catalog.NewLocalCatalog(catalogRepo), nil
}
