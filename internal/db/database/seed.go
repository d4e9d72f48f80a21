package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoUserManagement/UserManagement/internal/db/models"
)

// Seeded group ids.
const (
	GroupAdmin  uint = 1
	GroupLevel1 uint = 2
	GroupLevel2 uint = 3
)

func seedGroups() []models.Group {
	return []models.Group{
		{ID: GroupAdmin, Name: "Admin", Description: "Administrator group with full access"},
		{ID: GroupLevel1, Name: "Level 1", Description: "Basic user access level"},
		{ID: GroupLevel2, Name: "Level 2", Description: "Intermediate user access level"},
	}
}

func seedPermissions() []models.Permission {
	return []models.Permission{
		{ID: 1, Name: "Read", Description: "Read access"},
		{ID: 2, Name: "Write", Description: "Write access"},
		{ID: 3, Name: "Delete", Description: "Delete access"},
		{ID: 4, Name: "Manage Users", Description: "User management access"},
	}
}

func seedGroupPermissions() []models.GroupPermission {
	return []models.GroupPermission{
		{GroupID: GroupAdmin, PermissionID: 1},
		{GroupID: GroupAdmin, PermissionID: 2},
		{GroupID: GroupAdmin, PermissionID: 3},
		{GroupID: GroupAdmin, PermissionID: 4},
		{GroupID: GroupLevel1, PermissionID: 1},
		{GroupID: GroupLevel2, PermissionID: 1},
		{GroupID: GroupLevel2, PermissionID: 2},
	}
}

func sampleUsers(now time.Time) []models.User {
	return []models.User{
		{
			FirstName:  "Admin",
			LastName:   "User",
			Email:      "admin@example.com",
			CreatedAt:  now,
			UserGroups: []models.UserGroup{{GroupID: GroupAdmin}},
		},
		{
			FirstName:  "John",
			LastName:   "Doe",
			Email:      "john.doe@example.com",
			CreatedAt:  now,
			UserGroups: []models.UserGroup{{GroupID: GroupLevel1}},
		},
		{
			FirstName:  "Jane",
			LastName:   "Smith",
			Email:      "jane.smith@example.com",
			CreatedAt:  now,
			UserGroups: []models.UserGroup{{GroupID: GroupLevel2}},
		},
	}
}

// Seed inserts groups and permissions into an empty store.
// Sample users are added only to an empty users table.
func Seed(ctx context.Context, db *gorm.DB, withSampleUsers bool) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Group{}).Count(&count).Error; err != nil {
			return errors.Wrap(err, "seed: count groups")
		}

		if count == 0 {
			if err := tx.Create(seedPermissions()).Error; err != nil {
				return errors.Wrap(err, "seed: permissions")
			}

			if err := tx.Create(seedGroups()).Error; err != nil {
				return errors.Wrap(err, "seed: groups")
			}

			if err := tx.Create(seedGroupPermissions()).Error; err != nil {
				return errors.Wrap(err, "seed: group permissions")
			}

			log.Info().Msg("seeded groups and permissions")
		}

		if !withSampleUsers {
			return nil
		}

		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return errors.Wrap(err, "seed: count users")
		}

		if count > 0 {
			return nil
		}

		if err := tx.Create(sampleUsers(time.Now().UTC())).Error; err != nil {
			return errors.Wrap(err, "seed: users")
		}

		log.Info().Msg("seeded sample users")

		return nil
	})
}
