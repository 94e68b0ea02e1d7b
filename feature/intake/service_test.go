package intake

import (
	"context"
	"errors"
	"strings"
	"testing"

	"traceability/core/database"
	"traceability/core/errs"
	"traceability/core/middleware/metrics"
	"traceability/feature/inventory"
	"traceability/feature/inventory/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Open(sqlite.Open(":memory:"), database.DriverSQLite, 0)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Unit{}))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	db := setupTestDB(t)
	return NewService(inventory.NewStore(db), zap.NewNop()), db
}

func TestSplitSerials(t *testing.T) {
	assert.Equal(t, []string{"SN-1", "SN-2", "SN 3"}, SplitSerials(" SN-1\r\n\n  \nSN-2\nSN 3  \n"))
	assert.Empty(t, SplitSerials("\n \n"))
}

func TestProcess(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	res, err := svc.Process(ctx, Request{
		BatchLabel:      "LOTE-A",
		ImportReference: "DI-1",
		ModelName:       "BAL-30",
		Serials:         "SN-1\nSN-2\n\nSN-1\n",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, "2 of 3 units registered", res.Message())

	var units []models.Unit
	require.NoError(t, db.Order("id").Find(&units).Error)
	require.Len(t, units, 2)
	assert.Equal(t, "SN-1", units[0].SerialOrigin)
	assert.Equal(t, "DI-1", units[0].ImportReference)
	assert.Equal(t, models.StatusAvailable, units[1].Status)
	assert.Nil(t, units[1].OrderReference)
}

func TestProcess_ExistingSerialsAreSkipped(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Process(ctx, Request{BatchLabel: "LOTE-A", ModelName: "BAL-30", Serials: "SN-1"})
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.IntakeUnits.WithLabelValues("skipped"))
	res, err := svc.Process(ctx, Request{BatchLabel: "LOTE-B", ModelName: "BAL-30", Serials: "SN-1\nSN-9"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.IntakeUnits.WithLabelValues("skipped")))
}

func TestProcess_Preconditions(t *testing.T) {
	svc, db := newTestService(t)

	tests := []struct {
		name string
		req  Request
	}{
		{"MissingBatch", Request{ModelName: "BAL-30", Serials: "SN-1"}},
		{"MissingModel", Request{BatchLabel: "LOTE-A", Serials: "SN-1"}},
		{"MissingSerials", Request{BatchLabel: "LOTE-A", ModelName: "BAL-30"}},
		{"BlankSerials", Request{BatchLabel: "LOTE-A", ModelName: "BAL-30", Serials: " \n "}},
		{"SerialTooLong", Request{BatchLabel: "LOTE-A", ModelName: "BAL-30", Serials: "SN-1\n" + strings.Repeat("9", models.MaxKeyLength+1)}},
		{"BatchTooLong", Request{BatchLabel: strings.Repeat("L", models.MaxKeyLength+1), ModelName: "BAL-30", Serials: "SN-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Process(context.Background(), tt.req)
			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.Nil(t, res)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Unit{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProcess_StoreUnavailable(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `units`").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	svc := NewService(inventory.NewStore(db), zap.NewNop())
	res, err := svc.Process(context.Background(), Request{BatchLabel: "LOTE-A", ModelName: "BAL-30", Serials: "SN-1\nSN-2"})
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
	require.NotNil(t, res)
	assert.Zero(t, res.Inserted)
	assert.Equal(t, 2, res.Total)
}

func TestProcess_SerialAtKeyLimit(t *testing.T) {
	svc, _ := newTestService(t)

	// Multi-byte characters count once.
	serial := strings.Repeat("é", models.MaxKeyLength)
	res, err := svc.Process(context.Background(), Request{BatchLabel: "LOTE-A", ModelName: "BAL-30", Serials: serial})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
}
