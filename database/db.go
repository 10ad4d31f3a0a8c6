package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog" // use slog for structured logging
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bloghub/internal/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Direction selects which way Migrate moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ConnectDB opens the pgx-backed *sql.DB and verifies the connection.
func ConnectDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		// close the db handle if ping fails to avoid resource leak
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("database_connected")
	return db, nil
}

// Migrate applies the embedded SQL migrations. It uses its own connection
// because closing a migrate instance closes the database handle it was given.
func Migrate(cfg *config.Config, logger *slog.Logger, direction Direction) error {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("database_migrated", "direction", string(direction), "version", version, "dirty", dirty)
	return nil
}

// OpenGorm wraps an existing connection pool with GORM.
func OpenGorm(db *sql.DB, cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() && cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialise gorm: %w", err)
	}
	return gdb, nil
}

// Connect runs pending migrations and returns a ready GORM handle together with
// the pool underneath it, which the caller closes on shutdown.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gorm.DB, *sql.DB, error) {
	if err := Migrate(cfg, logger, Up); err != nil {
		return nil, nil, err
	}

	sqlDB, err := ConnectDB(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	gdb, err := OpenGorm(sqlDB, cfg)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return gdb, sqlDB, nil
}
