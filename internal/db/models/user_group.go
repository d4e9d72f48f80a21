package models

// UserGroup represents the many-to-many relationship between users and groups.
// Rows are removed when either side is deleted (CASCADE).
type UserGroup struct {
	// UserID is the ID of the user in this membership.
	UserID uint `gorm:"primaryKey;autoIncrement:false;column:user_id"`
	// GroupID is the ID of the group in this membership.
	GroupID uint `gorm:"primaryKey;autoIncrement:false;column:group_id"`
	// Group is the associated group.
	Group Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the UserGroup model.
// This overrides GORM's default pluralized table naming.
func (UserGroup) TableName() string {
	return "user_groups"
}
