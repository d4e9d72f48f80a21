// Package group provides read access to the seeded groups.
package group

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/GoUserManagement/UserManagement/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Repository lists groups.
type Repository interface {
	// List returns all groups ordered by id with their permissions.
	List(ctx context.Context) ([]models.Group, error)
}

// GormRepository implements Repository with gorm.
type GormRepository struct {
	db *gorm.DB
}

// New creates a GormRepository.
func New(db *gorm.DB) (*GormRepository, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return &GormRepository{db: db}, nil
}

// List returns all groups ordered by id with their permissions.
func (r *GormRepository) List(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group

	err := r.db.WithContext(ctx).
		Preload("GroupPermissions", func(db *gorm.DB) *gorm.DB {
			return db.Order("permission_id")
		}).
		Preload("GroupPermissions.Permission").
		Order("id").
		Find(&groups).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list groups")
	}

	return groups, nil
}
