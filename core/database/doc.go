// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL server or an embedded SQLite file,
// based on the application's configuration. Connections are pooled; every
// operation that needs an exclusive handle reserves one with WithConn, which
// returns it to the pool on every exit path.
//
// # Schema Inspection
//
// GetTableColumns lists the live columns of a table. The maintenance feature
// compares them with the gorm models to tell an operator whether a reset is
// needed, since a reset is the only migration path.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	err = database.WithConn(ctx, db, func(conn *gorm.DB) error {
//	    return conn.Create(&unit).Error
//	})
package database
