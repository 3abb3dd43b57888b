package database

import (
	"fmt"
	"log"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDbSeq uint64

// ConnectTest opens a fresh in-memory SQLite database with the same
// callbacks and migrations as the real connection, and points the global
// Database at it. Each call gets an isolated database.
func ConnectTest() *gorm.DB {
	n := atomic.AddUint64(&testDbSeq, 1)
	dsn := fmt.Sprintf("file:lmstest%d?mode=memory&cache=shared", n)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to open test database: %v", err)
	}

	if err := RegisterSoftDelete(db); err != nil {
		log.Fatalf("Failed to register soft-delete callback: %v", err)
	}

	runMigrations(db)

	Database = DbInstance{Db: db}
	return db
}
