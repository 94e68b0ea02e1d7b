package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"traceability/core/database"
	"traceability/core/errs"
	"traceability/feature/registry/models"

	"github.com/DATA-DOG/go-sqlmock"
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
	require.NoError(t, db.AutoMigrate(&models.ModelName{}, &models.ClientName{}))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	gormDB, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"model": KindModel, "models": KindModel, "Clients": KindClient, "client": KindClient} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseKind("orders")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestService_Register(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, zap.NewNop(), Config{})
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, KindModel, "BAL-30"))
	require.NoError(t, svc.Register(ctx, KindModel, "  BAL-15 "))

	err := svc.Register(ctx, KindModel, "BAL-30")
	assert.ErrorIs(t, err, errs.ErrDuplicateKey)

	names, err := svc.List(ctx, KindModel)
	require.NoError(t, err)
	assert.Equal(t, []string{"BAL-15", "BAL-30"}, names)

	// Registries are independent.
	require.NoError(t, svc.Register(ctx, KindClient, "BAL-30"))
	clients, err := svc.List(ctx, KindClient)
	require.NoError(t, err)
	assert.Equal(t, []string{"BAL-30"}, clients)
}

func TestService_RegisterBlank(t *testing.T) {
	svc := NewService(setupTestDB(t), zap.NewNop(), Config{})

	err := svc.Register(context.Background(), KindClient, "   ")
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestService_ListEmpty(t *testing.T) {
	svc := NewService(setupTestDB(t), zap.NewNop(), Config{})

	names, err := svc.List(context.Background(), KindClient)
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestService_ListCache(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, zap.NewNop(), Config{CacheTTLSeconds: 60})
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, KindModel, "BAL-30"))
	names, err := svc.List(ctx, KindModel)
	require.NoError(t, err)
	assert.Equal(t, []string{"BAL-30"}, names)

	// A write that bypasses the service is not visible until invalidation.
	require.NoError(t, db.Create(&models.ModelName{Entry: models.Entry{Name: "BAL-60"}}).Error)
	names, err = svc.List(ctx, KindModel)
	require.NoError(t, err)
	assert.Equal(t, []string{"BAL-30"}, names)

	svc.Invalidate()
	names, err = svc.List(ctx, KindModel)
	require.NoError(t, err)
	assert.Equal(t, []string{"BAL-30", "BAL-60"}, names)

	// Register invalidates its own kind.
	require.NoError(t, svc.Register(ctx, KindModel, "BAL-01"))
	names, err = svc.List(ctx, KindModel)
	require.NoError(t, err)
	assert.Equal(t, []string{"BAL-01", "BAL-30", "BAL-60"}, names)
}

func TestListCache_SharesLoad(t *testing.T) {
	c := newListCache(0)
	var (
		mu    sync.Mutex
		calls int
	)
	release := make(chan struct{})
	load := func() ([]string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return []string{"a"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			names, err := c.get(KindModel, load)
			assert.NoError(t, err)
			assert.Equal(t, []string{"a"}, names)
		}()
	}
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, calls, 1)
	assert.LessOrEqual(t, calls, 5)
}

func TestListCache_InvalidateDuringLoad(t *testing.T) {
	c := newListCache(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan []string)
	go func() {
		names, err := c.get(KindClient, func() ([]string, error) {
			close(started)
			<-release
			return []string{"old"}, nil
		})
		assert.NoError(t, err)
		done <- names
	}()

	<-started
	c.invalidate(KindClient)
	close(release)
	assert.Equal(t, []string{"old"}, <-done)

	names, err := c.get(KindClient, func() ([]string, error) {
		return []string{"new", "old"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, names)

	// The fresh listing is cached.
	names, err = c.get(KindClient, func() ([]string, error) {
		return nil, errors.New("store must not be read")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, names)
}

func TestListCache_InvalidateAll(t *testing.T) {
	c := newListCache(time.Minute)
	for _, k := range Kinds {
		_, err := c.get(k, func() ([]string, error) { return []string{"cached"}, nil })
		require.NoError(t, err)
	}

	c.invalidate()

	for _, k := range Kinds {
		names, err := c.get(k, func() ([]string, error) { return []string{"reloaded"}, nil })
		require.NoError(t, err)
		assert.Equal(t, []string{"reloaded"}, names, string(k))
	}
}

func TestService_StoreUnavailable(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, zap.NewNop(), Config{})
	mock.ExpectQuery("SELECT `name` FROM `clients`").WillReturnError(errors.New("connection refused"))

	_, err := svc.List(context.Background(), KindClient)
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
}
