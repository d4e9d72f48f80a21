// Package user provides data access for users and their group memberships.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoUserManagement/UserManagement/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// GroupCount is the number of members of a single group.
type GroupCount struct {
	GroupID   uint
	GroupName string
	UserCount int64
}

// Repository is the data access boundary for users.
type Repository interface {
	List(ctx context.Context) ([]models.User, error)
	// Get returns nil without error if the user does not exist.
	Get(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	// Hydrate reloads u and its groups from the store.
	Hydrate(ctx context.Context, u *models.User) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByGroup(ctx context.Context) ([]GroupCount, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// GormRepository implements Repository with gorm.
type GormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// New creates a GormRepository.
func New(db *gorm.DB) (*GormRepository, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return &GormRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// withGroups eager loads memberships ordered by group id.
func (r *GormRepository) withGroups(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("UserGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("group_id")
		}).
		Preload("UserGroups.Group")
}

// List returns all users with their groups.
func (r *GormRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.withGroups(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list users")
	}

	return users, nil
}

// Get returns a user with groups by id.
func (r *GormRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User

	err := r.withGroups(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil // absence is not an error
	}

	if err != nil {
		return nil, pkgerrors.Wrapf(err, "get user %d", id)
	}

	return &u, nil
}

// Create inserts u together with its memberships.
func (r *GormRepository) Create(ctx context.Context, u *models.User) error {
	u.CreatedAt = r.now()
	u.UpdatedAt = nil

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return pkgerrors.Wrap(err, "create user")
	}

	return nil
}

// Update overwrites the scalar fields of u and replaces its memberships.
func (r *GormRepository) Update(ctx context.Context, u *models.User) error {
	now := r.now()
	u.UpdatedAt = &now

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", u.ID).Updates(map[string]any{
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"email":      u.Email,
			"updated_at": u.UpdatedAt,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", u.ID).Delete(&models.UserGroup{}).Error; err != nil {
			return err
		}

		if len(u.UserGroups) == 0 {
			return nil
		}

		rows := make([]models.UserGroup, 0, len(u.UserGroups))
		for _, ug := range u.UserGroups {
			rows = append(rows, models.UserGroup{UserID: u.ID, GroupID: ug.GroupID})
		}

		return tx.Omit(clause.Associations).Create(&rows).Error
	})
	if err != nil {
		return pkgerrors.Wrapf(err, "update user %d", u.ID)
	}

	return nil
}

// Hydrate reloads u and its groups by u.ID.
func (r *GormRepository) Hydrate(ctx context.Context, u *models.User) error {
	var fresh models.User
	if err := r.withGroups(ctx).First(&fresh, u.ID).Error; err != nil {
		return pkgerrors.Wrapf(err, "hydrate user %d", u.ID)
	}

	*u = fresh

	return nil
}

// Delete removes a user, memberships go by cascade.
func (r *GormRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return false, pkgerrors.Wrapf(result.Error, "delete user %d", id)
	}

	return result.RowsAffected > 0, nil
}

// Count returns the number of users.
func (r *GormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, pkgerrors.Wrap(err, "count users")
	}

	return n, nil
}

// CountByGroup returns the member count of every group, empty groups included.
func (r *GormRepository) CountByGroup(ctx context.Context) ([]GroupCount, error) {
	// groups is reserved in mysql 8
	g := r.db.Statement.Quote(models.Group{}.TableName())

	query := fmt.Sprintf(
		"SELECT %[1]s.id AS group_id, %[1]s.name AS group_name, COUNT(user_groups.user_id) AS user_count "+
			"FROM %[1]s LEFT JOIN user_groups ON user_groups.group_id = %[1]s.id "+
			"GROUP BY %[1]s.id, %[1]s.name ORDER BY %[1]s.id",
		g,
	)

	var counts []GroupCount
	if err := r.db.WithContext(ctx).Raw(query).Scan(&counts).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "count users by group")
	}

	return counts, nil
}

// Exists reports whether a user with id exists.
func (r *GormRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, pkgerrors.Wrapf(err, "exists user %d", id)
	}

	return n > 0, nil
}
