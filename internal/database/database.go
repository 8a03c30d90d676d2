package database

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"als-tracker-api/internal/config"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

type Database struct {
	DB *sql.DB
}

var (
	once      sync.Once
	shared    *Database
	sharedErr error
)

// Get returns the process-wide database handle, opening it on first use.
// Every caller after the first gets the memoized handle (or the original
// open error).
func Get(cfg *config.Config) (*Database, error) {
	once.Do(func() {
		shared, sharedErr = open(cfg)
	})
	return shared, sharedErr
}

func open(cfg *config.Config) (*Database, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	var db *sql.DB
	var err error
	maxRetries := 5
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", psqlInfo)
		if err != nil {
			zap.L().Warn("Failed to open database",
				zap.Int("attempt", i+1), zap.Int("maxRetries", maxRetries), zap.Error(err))
			time.Sleep(retryDelay)
			continue
		}

		err = db.Ping()
		if err != nil {
			zap.L().Warn("Failed to ping database",
				zap.Int("attempt", i+1), zap.Int("maxRetries", maxRetries), zap.Error(err))
			db.Close()
			time.Sleep(retryDelay)
			continue
		}
		break
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	zap.L().Info("Successfully connected to database")

	// Optimize connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := runMigrations(db, cfg.MigrationsDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Database{DB: db}, nil
}

func runMigrations(db *sql.DB, dir string) error {
	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	n, err := migrate.Exec(db, "postgres", migrations, migrate.Up)
	if err != nil {
		return err
	}

	if n > 0 {
		zap.L().Info("Applied database migrations", zap.Int("count", n))
	} else {
		zap.L().Info("No database migrations to apply")
	}

	return nil
}

func (d *Database) Close() error {
	return d.DB.Close()
}
