package database

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/yukikurage/project-tasks-api/internal/config"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database selected by cfg.DBDriver.
func Connect(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Silent
	if cfg.DBDebug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		// SQLite allows one writer; an in-memory database also lives on a
		// single connection only.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if log != nil {
		log.Info("database connection established", slog.String("driver", cfg.DBDriver))
	}
	return db, nil
}

// Dialector builds the GORM dialector for the configured driver.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		return mysql.Open(MySQLDSN(cfg)), nil
	case "postgres":
		return postgres.Open(PostgresDSN(cfg)), nil
	case "sqlite":
		return sqlite.Open(cfg.DBPath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// MySQLDSN returns a go-sql-driver DSN.
func MySQLDSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)
}

// PostgresDSN returns a key=value DSN for pgx.
func PostgresDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBSSLMode,
	)
}

// PostgresURL returns the URL form expected by golang-migrate.
func PostgresURL(cfg *config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:     cfg.DBHost + ":" + cfg.DBPort,
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": []string{cfg.DBSSLMode}}.Encode(),
	}
	return u.String()
}

// Migrate brings the schema up to date. MIGRATIONS=sql runs the versioned
// SQL files (PostgreSQL only); anything else uses GORM AutoMigrate.
func Migrate(cfg *config.Config, db *gorm.DB, log *slog.Logger) error {
	if cfg.Migrations == "sql" {
		if cfg.DBDriver != "postgres" {
			return fmt.Errorf("sql migrations require the postgres driver, got %q", cfg.DBDriver)
		}
		if log != nil {
			log.Info("running sql migrations", slog.String("dir", cfg.MigrationsDir))
		}
		if err := RunSQLMigrations(PostgresURL(cfg), cfg.MigrationsDir); err != nil {
			return err
		}
	} else {
		if log != nil {
			log.Info("running database auto-migration")
		}
		if err := AutoMigrate(db); err != nil {
			return err
		}
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	if log != nil {
		log.Info("database migrations completed")
	}
	return nil
}

// AutoMigrate creates or alters the tables of all models.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
