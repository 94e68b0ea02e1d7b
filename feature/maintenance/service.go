package maintenance

import (
	"context"
	"fmt"

	"traceability/core/database"
	"traceability/core/errs"
	"traceability/core/storage"
	"traceability/feature/inventory/models"
	"traceability/feature/maintenance/checks"
	registrymodels "traceability/feature/registry/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists every persisted entity, in creation order.
func Models() []any {
	return []any{&registrymodels.ModelName{}, &registrymodels.ClientName{}, &models.Unit{}}
}

// Invalidator drops cached state derived from the tables.
type Invalidator interface {
	Invalidate()
}

// Service runs administrative operations on the store.
type Service struct {
	db          *gorm.DB
	client      storage.Client
	storageCfg  storage.Config
	logger      *zap.Logger
	invalidates []Invalidator
}

// NewService creates a maintenance service. client may be nil when storage is disabled.
func NewService(db *gorm.DB, client storage.Client, storageCfg storage.Config, logger *zap.Logger, invalidates ...Invalidator) *Service {
	return &Service{db: db, client: client, storageCfg: storageCfg, logger: logger, invalidates: invalidates}
}

// Migrate creates missing tables and columns without touching existing rows.
func (s *Service) Migrate(ctx context.Context) error {
	err := database.WithConn(ctx, s.db, func(conn *gorm.DB) error {
		return conn.AutoMigrate(Models()...)
	})
	return errs.Store("migrate schema", err)
}

// Reset drops every table and recreates the schema empty. Surrogate ids restart.
func (s *Service) Reset(ctx context.Context) error {
	err := database.WithConn(ctx, s.db, func(conn *gorm.DB) error {
		tables := Models()
		// Drop in reverse creation order.
		for i := len(tables) - 1; i >= 0; i-- {
			if err := conn.Migrator().DropTable(tables[i]); err != nil {
				return fmt.Errorf("drop %T: %w", tables[i], err)
			}
		}
		return conn.AutoMigrate(tables...)
	})
	if err != nil {
		s.logger.Error("Reset failed", zap.Error(err))
		return errs.Store("reset", err)
	}

	for _, inv := range s.invalidates {
		inv.Invalidate()
	}
	s.logger.Warn("System reset: all units, models and clients discarded")
	return nil
}

// CheckSchema reports how the live tables differ from the models.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	var report *checks.SchemaReport
	err := database.WithConn(ctx, s.db, func(conn *gorm.DB) error {
		var err error
		report, err = checks.CheckSchema(conn, Models()...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// CheckStorage reports on the archive bucket, creating it when fix is set.
func (s *Service) CheckStorage(ctx context.Context, fix bool) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, errs.Validation("storage is disabled")
	}
	return checks.CheckStorage(ctx, s.client, s.storageCfg.Bucket, s.storageCfg.Region, fix)
}
