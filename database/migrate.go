package database

import (
	"embed"
	"fmt"
	"log/slog"
	"time"

	"freelink_backend/internal/logger"
	"freelink_backend/internal/models"
	"freelink_backend/internal/repositories"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// DefaultCities seeds the city catalogue on every start. Existing rows are kept.
var DefaultCities = []string{
	"Barranquilla",
	"Bogotá",
	"Bucaramanga",
	"Cali",
	"Cartagena",
	"Cúcuta",
	"Ibagué",
	"Manizales",
	"Medellín",
	"Pereira",
	"Santa Marta",
	"Villavicencio",
}

// Config returns the gorm settings shared by every driver.
func Config(debug bool) *gorm.Config {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger.StdLogger(slog.LevelWarn), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// Open connects with the driver named in config. SQLite is opened by tests through testutil.
func Open(driver, dsn string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres, "":
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, Config(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return db, nil
}

// Migrate brings the schema up to date: embedded goose migrations on postgres,
// AutoMigrate on the other drivers. Cities are seeded afterwards.
func Migrate(db *gorm.DB, driver string) error {
	if driver == DriverPostgres || driver == "" {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get *sql.DB: %w", err)
		}
		goose.SetBaseFS(embedMigrations)
		if err := goose.SetDialect("postgres"); err != nil {
			return fmt.Errorf("goose dialect: %w", err)
		}
		if err := goose.Up(sqlDB, "migrations"); err != nil {
			return fmt.Errorf("goose up failed: %w", err)
		}
	} else {
		if err := db.AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto migrate failed: %w", err)
		}
	}

	if err := repositories.NewProfileRepository().SeedCities(db, DefaultCities); err != nil {
		return fmt.Errorf("seed cities: %w", err)
	}
	logger.Info("Database schema is up to date", "driver", driver)
	return nil
}

// Reset drops every table, the goose version table included. Data is lost.
func Reset(db *gorm.DB) error {
	all := models.All()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop %T: %w", all[i], err)
		}
	}
	if err := db.Migrator().DropTable("goose_db_version"); err != nil {
		return fmt.Errorf("drop goose_db_version: %w", err)
	}
	logger.Warn("Database schema dropped")
	return nil
}
