// Package testutil opens throwaway databases and seeds fixtures for package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"testing"

	"freelink_backend/database"
	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated SQLite database in a temp dir, with the city catalogue seeded.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "freelink.db")
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)

	db, err := gorm.Open(sqlite.Open(dsn), database.Config(false))
	require.NoError(t, err, "open sqlite")

	require.NoError(t, db.AutoMigrate(models.All()...), "auto migrate")
	require.NoError(t, repositories.NewProfileRepository().SeedCities(db, database.DefaultCities), "seed cities")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// FirstCityID returns the id of any seeded city.
func FirstCityID(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	var city models.City
	require.NoError(t, db.Order("id").First(&city).Error)
	return city.ID
}
