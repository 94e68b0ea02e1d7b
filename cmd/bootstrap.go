package cmd

import (
	"context"
	"fmt"

	"traceability/core/config"
	"traceability/core/database"
	"traceability/core/loader"
	"traceability/core/logger"
	"traceability/core/storage"
	"traceability/feature/calibration"
	"traceability/feature/intake"
	"traceability/feature/inventory"
	"traceability/feature/maintenance"
	"traceability/feature/registry"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is the wired application shared by the server and the CLI commands.
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	storage storage.Client

	inventory   *inventory.Feature
	registry    *registry.Feature
	intake      *intake.Feature
	calibration *calibration.Feature
	maintenance *maintenance.Feature
}

// bootstrap loads the configuration, connects the store and builds every feature.
// The schema is auto-migrated; existing rows are kept.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Database.Driver, err)
	}
	logg.Debug("Connected to database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))

	return wire(ctx, cfg, logg, db)
}

// wire builds every feature over an open database and migrates the schema.
// The database is closed when wiring fails.
func wire(ctx context.Context, cfg *config.Config, logg *zap.Logger, db *gorm.DB) (*runtime, error) {
	rt := &runtime{cfg: cfg, log: logg, db: db}

	var archive *calibration.Archive
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			_ = database.Close(db)
			return nil, err
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			// The archive is best effort; reconciliation still runs.
			logg.Warn("Archive bucket unavailable", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		}
		rt.storage = client
		archive = calibration.NewArchive(client, cfg.Storage)
	}

	rt.inventory = inventory.NewFeature(logg, db)
	store := rt.inventory.Service().Store()
	rt.registry = registry.NewFeature(logg, db, cfg.Registry)
	rt.intake = intake.NewFeature(logg, store)
	rt.calibration = calibration.NewFeature(logg, store, archive, cfg.Calibration)
	rt.maintenance = maintenance.NewFeature(logg, db, rt.storage, cfg.Storage, rt.registry.Service())

	if err := rt.maintenance.Service().Migrate(ctx); err != nil {
		rt.Close()
		return nil, err
	}

	return rt, nil
}

// features returns every feature in load order.
func (rt *runtime) features() *loader.Manager {
	mgr := loader.NewManager()
	mgr.Register(rt.registry)
	mgr.Register(rt.intake)
	mgr.Register(rt.calibration)
	mgr.Register(rt.inventory)
	mgr.Register(rt.maintenance)
	return mgr
}

// Close releases the store and flushes the logger.
func (rt *runtime) Close() {
	if err := database.Close(rt.db); err != nil {
		rt.log.Warn("Failed to close database", zap.Error(err))
	}
	_ = rt.log.Sync()
}
