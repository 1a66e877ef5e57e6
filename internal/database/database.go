package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"yatube/internal/config"
	"yatube/internal/logger"
)

type DB struct {
	*sqlx.DB
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	log := logger.Default()
	log.Info("database", "connecting to postgres", "host", cfg.DB.Host, "dbname", cfg.DB.Name)

	db, err := sqlx.Connect("postgres", cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к БД: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}
	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("проверка БД не пройдена: %w", err)
	}

	log.Info("database", "connected to postgres")
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return errors.New("подключение к БД не инициализировано")
	}

	return db.Ping()
}

func newMigrator(cfg *config.Config) (*migrate.Migrate, error) {
	path, err := filepath.Abs(cfg.MigrationsPath)
	if err != nil {
		return nil, fmt.Errorf("неверный путь к миграциям: %w", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(path), cfg.DB.URL())
	if err != nil {
		return nil, fmt.Errorf("ошибка при инициализации миграций: %w", err)
	}
	return m, nil
}

// MigrateUp applies all pending migrations. No pending migrations is not an error.
func MigrateUp(cfg *config.Config) error {
	log := logger.Default()

	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("database", "no new migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("ошибка при выполнении миграций: %w", err)
	}

	log.Info("database", "migrations applied", "path", cfg.MigrationsPath)
	return nil
}

// MigrateDown rolls back the given number of migrations.
func MigrateDown(cfg *config.Config, steps int) error {
	if steps < 1 {
		return fmt.Errorf("количество шагов должно быть положительным: %d", steps)
	}

	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("ошибка при откате миграций: %w", err)
	}

	logger.Default().Info("database", "migrations rolled back", "steps", steps)
	return nil
}
