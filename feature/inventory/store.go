package inventory

import (
	"context"
	"errors"
	"strings"

	"traceability/core/database"
	"traceability/core/errs"
	"traceability/core/reconcile"
	"traceability/feature/inventory/models"

	"gorm.io/gorm"
)

// likeEscaper turns operator text into a literal LIKE pattern (escape character '!').
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Store is the gorm-backed Inventory Store. It satisfies reconcile.Target.
type Store struct {
	db *gorm.DB
}

var _ reconcile.Target = (*Store)(nil)

// NewStore creates a store over the given pool.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Acquire runs fn with a store bound to one reserved connection, released when fn returns.
func (s *Store) Acquire(ctx context.Context, fn func(s *Store) error) error {
	var fnErr error
	err := database.WithConn(ctx, s.db, func(conn *gorm.DB) error {
		fnErr = fn(&Store{db: conn})
		return fnErr
	})
	if err != nil && fnErr == nil {
		return errs.Store("acquire connection", err)
	}
	return err
}

// Insert creates a unit in Available status. It reports false when the origin serial
// already exists; the existing row is left untouched.
func (s *Store) Insert(ctx context.Context, u *models.Unit) (bool, error) {
	u.Status = models.StatusAvailable
	err := s.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, errs.Store("insert unit", err)
	}
	return true, nil
}

// IsAvailable reports whether a unit with exactly this origin serial is Available.
// The comparison is repeated in Go so collations that fold case or pad spaces never match.
func (s *Store) IsAvailable(ctx context.Context, originSerial string) (bool, error) {
	var serials []string
	err := s.db.WithContext(ctx).
		Model(&models.Unit{}).
		Where("serial_origin = ? AND status = ?", originSerial, models.StatusAvailable).
		Pluck("serial_origin", &serials).Error
	if err != nil {
		return false, errs.Store("lookup unit", err)
	}
	for _, serial := range serials {
		if serial == originSerial {
			return true, nil
		}
	}
	return false, nil
}

// Finalize writes the assignment and the Finalized status in one statement, conditioned
// on the unit still being Available.
func (s *Store) Finalize(ctx context.Context, originSerial string, a reconcile.Assignment) (bool, error) {
	f := a.Fields
	res := s.db.WithContext(ctx).
		Model(&models.Unit{}).
		Where("serial_origin = ? AND status = ?", originSerial, models.StatusAvailable).
		Updates(map[string]any{
			"client_name":                   a.ClientName,
			"order_reference":               a.OrderReference,
			"serial_local":                  f.LocalSerial,
			"reading_before":                f.ReadingBefore,
			"reading_after":                 f.ReadingAfter,
			"corner_deviation_top_left":     f.CornerTopLeft,
			"corner_deviation_top_right":    f.CornerTopRight,
			"corner_deviation_bottom_left":  f.CornerBottomLeft,
			"corner_deviation_bottom_right": f.CornerBottomRight,
			"max_load":                      f.MaxLoad,
			"zero_reading":                  f.ZeroReading,
			"status":                        models.StatusFinalized,
		})
	if res.Error != nil {
		return false, errs.Store("finalize unit", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Query returns the units matching filter, ordered by id. An empty filter returns all units.
func (s *Store) Query(ctx context.Context, filter string) ([]models.View, error) {
	q := s.db.WithContext(ctx).Order("id")
	if filter != "" {
		pattern := "%" + likeEscaper.Replace(filter) + "%"
		q = q.Where(
			"batch_label LIKE ? ESCAPE '!' OR serial_origin LIKE ? ESCAPE '!' OR serial_local LIKE ? ESCAPE '!' OR client_name LIKE ? ESCAPE '!' OR order_reference LIKE ? ESCAPE '!'",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	var units []models.Unit
	if err := q.Find(&units).Error; err != nil {
		return nil, errs.Store("query units", err)
	}

	views := make([]models.View, 0, len(units))
	for _, u := range units {
		v := u.View()
		// LIKE folds case on most collations; the contract is case-sensitive.
		if v.Matches(filter) {
			views = append(views, v)
		}
	}
	return views, nil
}

// Get loads one unit by origin serial.
func (s *Store) Get(ctx context.Context, originSerial string) (*models.Unit, error) {
	var u models.Unit
	err := s.db.WithContext(ctx).Where("serial_origin = ?", originSerial).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Store("get unit", err)
	}
	return &u, nil
}
