// Package dto holds the transfer objects exchanged over the HTTP API.
package dto

import "time"

// Group is a group as attached to a user.
type Group struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// User is the user representation returned by the API.
type User struct {
	ID        uint       `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	Groups    []Group    `json:"groups"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasGroup reports whether the user is member of group id.
func (u User) HasGroup(id uint) bool {
	for _, g := range u.Groups {
		if g.ID == id {
			return true
		}
	}

	return false
}

// CreateUser is the input of a user creation.
type CreateUser struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email,max=200"`
	GroupIDs  []uint `json:"groupIds"`
}

// UpdateUser is the input of a user update, the group ids replace the current ones.
type UpdateUser struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email,max=200"`
	GroupIDs  []uint `json:"groupIds"`
}

// UserCountByGroup is the number of members of one group.
type UserCountByGroup struct {
	GroupID   uint   `json:"groupId"`
	GroupName string `json:"groupName"`
	UserCount int64  `json:"userCount"`
}
