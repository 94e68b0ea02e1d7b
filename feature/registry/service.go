package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"traceability/core/database"
	"traceability/core/errs"
	"traceability/feature/registry/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Kind selects one of the reference registries.
type Kind string

const (
	KindModel  Kind = "model"
	KindClient Kind = "client"
)

// Kinds lists every registry.
var Kinds = []Kind{KindModel, KindClient}

// ParseKind maps a route or CLI segment ("model", "models", "client", "clients") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.TrimSuffix(strings.ToLower(s), "s") {
	case string(KindModel):
		return KindModel, nil
	case string(KindClient):
		return KindClient, nil
	}
	return "", errs.Validation("unknown registry %q", s)
}

// Service manages the model and client registries.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	cache  *listCache
}

// NewService creates a new registry service.
func NewService(db *gorm.DB, logger *zap.Logger, cfg Config) *Service {
	return &Service{db: db, logger: logger, cache: newListCache(cfg.CacheTTL())}
}

func record(kind Kind, name string) (any, error) {
	switch kind {
	case KindModel:
		return &models.ModelName{Entry: models.Entry{Name: name}}, nil
	case KindClient:
		return &models.ClientName{Entry: models.Entry{Name: name}}, nil
	}
	return nil, errs.Validation("unknown registry %q", kind)
}

// Register adds a name to the registry. An existing name fails with ErrDuplicateKey
// and leaves the registry unchanged.
func (s *Service) Register(ctx context.Context, kind Kind, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.Validation("%s name is required", kind)
	}
	rec, err := record(kind, name)
	if err != nil {
		return err
	}

	err = database.WithConn(ctx, s.db, func(conn *gorm.DB) error {
		return conn.Create(rec).Error
	})
	if err != nil {
		err = errs.Store("register "+string(kind), err)
		if errors.Is(err, errs.ErrDuplicateKey) {
			return fmt.Errorf("%s %q already registered: %w", kind, name, errs.ErrDuplicateKey)
		}
		return err
	}

	s.cache.invalidate(kind)
	s.logger.Info("Registry entry created", zap.String("kind", string(kind)), zap.String("name", name))
	return nil
}

// List returns every name of the registry sorted by name.
func (s *Service) List(ctx context.Context, kind Kind) ([]string, error) {
	rec, err := record(kind, "")
	if err != nil {
		return nil, err
	}
	return s.cache.get(kind, func() ([]string, error) {
		names := []string{}
		err := database.WithConn(ctx, s.db, func(conn *gorm.DB) error {
			return conn.Model(rec).Order("name").Pluck("name", &names).Error
		})
		if err != nil {
			return nil, errs.Store("list "+string(kind), err)
		}
		return names, nil
	})
}

// Invalidate drops every cached listing. Reset calls it after wiping the tables.
func (s *Service) Invalidate() {
	s.cache.invalidate()
}
