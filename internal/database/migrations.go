package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	// Register the postgres database driver and the file source.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/yukikurage/project-tasks-api/internal/models"
	"gorm.io/gorm"
)

// compositeIndexes back the ownership and tree queries. Single-column
// indexes are declared on the models.
var compositeIndexes = []struct {
	model   interface{}
	table   string
	name    string
	columns string
}{
	{&models.Project{}, "projects", "idx_projects_user_deleted", "user_id, deleted_at"},
	{&models.Task{}, "tasks", "idx_tasks_project_parent", "project_id, parent_task_id"},
	{&models.Task{}, "tasks", "idx_tasks_parent_deleted", "parent_task_id, deleted_at"},
}

// AddIndexes creates the composite indexes that do not exist yet
func AddIndexes(db *gorm.DB, log *slog.Logger) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			if log != nil {
				log.Debug("index already exists, skipping", slog.String("index", idx.name))
			}
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		if log != nil {
			log.Info("created index", slog.String("index", idx.name), slog.String("table", idx.table))
		}
	}

	return nil
}

// RunSQLMigrations applies the versioned migrations in dir.
func RunSQLMigrations(databaseURL, dir string) error {
	m, err := migrate.New("file://"+dir, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to init sql migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply sql migrations: %w", err)
	}
	return nil
}
