// Package models holds the gorm entities of the user management store.
package models

import "time"

// User represents a managed user account.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:100;not null"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:100;not null"`
	// Email is the user's email address, unique over all users.
	Email string `gorm:"size:200;not null;uniqueIndex"`
	// CreatedAt is stamped by the repository on insert.
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	// UpdatedAt is nil until the first update.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
	// UserGroups are the group memberships, removed together with the user.
	UserGroups []UserGroup `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// GroupIDs returns the ids of the user's memberships in stored order.
func (u *User) GroupIDs() []uint {
	ids := make([]uint, 0, len(u.UserGroups))
	for _, ug := range u.UserGroups {
		ids = append(ids, ug.GroupID)
	}

	return ids
}

// SetGroupIDs replaces the memberships by the given group ids.
func (u *User) SetGroupIDs(ids []uint) {
	u.UserGroups = make([]UserGroup, 0, len(ids))
	for _, id := range ids {
		u.UserGroups = append(u.UserGroups, UserGroup{UserID: u.ID, GroupID: id})
	}
}
