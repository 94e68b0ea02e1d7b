package inventory

import (
	"context"

	"traceability/feature/inventory/models"

	"go.uber.org/zap"
)

// Service is the read-only Inventory Query Service.
type Service struct {
	store  *Store
	logger *zap.Logger
}

// NewService creates a new inventory service.
func NewService(store *Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Store exposes the underlying store to the features writing to it.
func (s *Service) Store() *Store {
	return s.store
}

// Query returns the units whose batch label, serials, client or order contain filter.
func (s *Service) Query(ctx context.Context, filter string) ([]models.View, error) {
	var views []models.View
	err := s.store.Acquire(ctx, func(st *Store) error {
		var err error
		views, err = st.Query(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Inventory queried", zap.String("filter", filter), zap.Int("count", len(views)))
	return views, nil
}
