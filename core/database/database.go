package database

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the store described by cfg and verifies it with a ping.
// Duplicate key violations are translated into gorm.ErrDuplicatedKey for both drivers.
func Connect(cfg Config) (*gorm.DB, error) {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.Name)
	case DriverMySQL, "":
		dialector = mysql.Open(MySQLDSN(cfg, time.Duration(timeout)*time.Second))
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	return Open(dialector, cfg.Driver, time.Duration(timeout)*time.Second)
}

// MySQLDSN renders cfg as a go-sql-driver DSN with utf8mb4 and parsed times.
func MySQLDSN(cfg Config, timeout time.Duration) string {
	mc := gomysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Timeout = timeout
	mc.ReadTimeout = timeout
	mc.WriteTimeout = timeout
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Open wraps an existing dialector with the application's gorm settings.
// Tests use it to put sqlmock behind the mysql dialector.
func Open(dialector gorm.Dialector, driver string, timeout time.Duration) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite allows one writer; a single connection also keeps ":memory:" databases coherent.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// WithConn runs fn on a connection reserved from the pool for the duration of the call.
// The connection is returned to the pool on every exit path, including panics.
func WithConn(ctx context.Context, db *gorm.DB, fn func(conn *gorm.DB) error) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.WithContext(ctx).Connection(fn)
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
