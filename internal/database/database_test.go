package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tasks-api/internal/config"
	"github.com/yukikurage/project-tasks-api/internal/models"
)

func memoryConfig() *config.Config {
	return &config.Config{
		DBDriver:   "sqlite",
		DBPath:     ":memory:",
		Migrations: "auto",
	}
}

func TestConnectAndMigrateSQLite(t *testing.T) {
	cfg := memoryConfig()

	db, err := Connect(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(cfg, db, nil))

	migrator := db.Migrator()
	assert.True(t, migrator.HasTable(&models.User{}))
	assert.True(t, migrator.HasTable(&models.Project{}))
	assert.True(t, migrator.HasTable(&models.Task{}))

	for _, idx := range compositeIndexes {
		assert.True(t, migrator.HasIndex(idx.model, idx.name), idx.name)
	}

	// existing indexes are skipped
	require.NoError(t, AddIndexes(db, nil))
}

func TestDialectorUnsupportedDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestMigrateSQLRequiresPostgres(t *testing.T) {
	cfg := memoryConfig()
	db, err := Connect(cfg, nil)
	require.NoError(t, err)

	cfg.Migrations = "sql"
	err = Migrate(cfg, db, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

func TestDSNBuilders(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "app",
		DBPassword: "p@ss",
		DBName:     "tasks",
		DBSSLMode:  "disable",
	}

	assert.Equal(t,
		"app:p@ss@tcp(db:5432)/tasks?charset=utf8mb4&parseTime=True&loc=Local",
		MySQLDSN(cfg),
	)
	assert.Equal(t,
		"host=db port=5432 user=app password=p@ss dbname=tasks sslmode=disable",
		PostgresDSN(cfg),
	)

	migrateURL := PostgresURL(cfg)
	assert.Contains(t, migrateURL, "postgres://app:p%40ss@db:5432/tasks")
	assert.Contains(t, migrateURL, "sslmode=disable")
}
