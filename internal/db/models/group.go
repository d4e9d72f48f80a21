package models

// Group represents a user group. Groups are seeded, never edited over the API.
type Group struct {
	// ID is the unique identifier for the group.
	ID uint `gorm:"primaryKey"`
	// Name is the display name, unique over all groups.
	Name string `gorm:"size:100;not null;uniqueIndex"`
	// Description provides a human-readable explanation of the group's purpose.
	Description string `gorm:"size:500"`
	// GroupPermissions are the granted permissions of the group.
	GroupPermissions []GroupPermission `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the Group model.
// This overrides GORM's default pluralized table naming.
func (Group) TableName() string {
	return "groups"
}
