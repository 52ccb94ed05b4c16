package main

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/bootstrap"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logger"
	"storefront/internal/notify"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/shutdown"
	"storefront/internal/tracing"
	"storefront/internal/usecase"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.GoEnv)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	shutdownTracing, err := tracing.Init(cfg.TracingEnabled, os.Stderr)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	//DB接続（カタログ。無ければ CATALOG_URL を使う）
	var gormDB *gorm.DB
	var catalogRepo repo.CatalogRepository
	if cfg.HasDatabase() {
		gormDB, err = db.Connect(cfg)
		if err != nil {
			return fmt.Errorf("connect db: %w", err)
		}
		if err := db.Migrate(gormDB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		catalogRepo = infraRepo.NewCatalogGormRepository(gormDB)
	}

	productCatalog, err := bootstrap.NewCatalog(cfg, catalogRepo)
	if err != nil {
		return err
	}

	storage, err := bootstrap.OpenStorage(ctx, cfg, gormDB, log)
	if err != nil {
		return fmt.Errorf("open cart storage: %w", err)
	}
	defer func() { _ = storage.Close() }()

	//Usecase生成
	store := usecase.NewCartStore(ctx, productCatalog, storage, notify.NewLogNotifier(log),
		usecase.WithStorageKey(cfg.StorageKey),
		usecase.WithLogger(log),
	)

	//Handler生成
	e := server.New(log)
	hs := server.Handlers{
		Health: handler.NewHealthHandler(storage),
		Cart:   handler.NewCartHandler(store),
	}
	if catalogRepo != nil {
		adminUC := usecase.NewAdminCatalogUsecase(
			infraRepo.NewTxManagerGorm(gormDB),
			infraRepo.NewAuditLogGormRepository(gormDB),
		)
		hs.Catalog = handler.NewCatalogHandler(usecase.NewCatalogUsecase(catalogRepo))
		hs.AdminCatalog = handler.NewAdminCatalogHandler(adminUC)
	}
	server.RegisterRoutes(e, hs, cfg.AdminToken)

	log.Info("storefront api",
		zap.String("storage", storage.Driver),
		zap.Bool("local_catalog", cfg.CatalogURL == ""),
	)

	//Server起動
	return server.Start(ctx, e, cfg.Addr(), log)
}
