package dto

// Permission is a permission granted to a group.
type Permission struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupWithPermissions is a group as listed by the groups endpoint.
type GroupWithPermissions struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions"`
}
