package db

import (
	"fmt"
	"sync/atomic"

	"github.com/pizza6inch/ProjectNest/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// CreateTestDB opens a fresh in-memory sqlite database, migrates the full
// schema into it and installs it as the package-level DB. Each call uses a
// unique database name so tests cannot see each other's rows.
func CreateTestDB() *gorm.DB {
	counter := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:test_%d.db?mode=memory&cache=shared&_foreign_keys=on", counter)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectUser{},
		&models.TrackProjectUser{},
		&models.ProjectProgress{},
		&models.Comment{},
		&models.ProjectEvent{},
	); err != nil {
		panic(err)
	}

	DB = gdb
	return gdb
}
