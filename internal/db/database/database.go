// Package database opens the gorm connection and prepares the schema.
package database

import (
	"context"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GoUserManagement/UserManagement/internal/config"
	"github.com/GoUserManagement/UserManagement/internal/db/dsn"
	"github.com/GoUserManagement/UserManagement/internal/db/models"
	gormadapter "github.com/GoUserManagement/UserManagement/internal/logger/adapter/gorm"
)

// Dialector picks the gorm driver for the configured engine.
func Dialector(db config.DB) (gorm.Dialector, error) {
	switch db.GormEngine {
	case config.EngineSQLite, "":
		return sqlite.Open(dsn.SQLite(db)), nil
	case config.EngineMySQL:
		return gormmysql.Open(dsn.MySQL(db)), nil
	case config.EnginePostgres:
		return gormpostgres.Open(dsn.Postgres(db)), nil
	default:
		return nil, errors.Wrap(config.ErrUnknownGormEngine, db.GormEngine)
	}
}

// Open connects to the configured database, migrates the schema and seeds it.
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DB)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, Config(cfg.DevMode))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = Prepare(ctx, db, cfg.DB.SeedSampleUsers); err != nil {
		return nil, err
	}

	log.Info().Str("engine", dialector.Name()).Msg("database ready")

	return db, nil
}

// Config is the gorm configuration shared by every engine.
func Config(debug bool) *gorm.Config {
	return &gorm.Config{
		Logger:         gormadapter.New(debug),
		TranslateError: true,
	}
}

// Prepare migrates the schema and seeds the reference data.
func Prepare(ctx context.Context, db *gorm.DB, sampleUsers bool) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Permission{},
		&models.Group{},
		&models.GroupPermission{},
		&models.User{},
		&models.UserGroup{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return Seed(ctx, db, sampleUsers)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "can't get sql db")
	}

	return errors.Wrap(sqlDB.Close(), "can't close db")
}
