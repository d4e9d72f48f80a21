package service

import (
	"context"

	"github.com/GoUserManagement/UserManagement/internal/db/controller/group"
	"github.com/GoUserManagement/UserManagement/internal/dto"
)

// GroupService lists groups.
type GroupService struct {
	repo group.Repository
}

// NewGroupService creates a GroupService.
func NewGroupService(repo group.Repository) *GroupService {
	return &GroupService{repo: repo}
}

// List returns all groups with their permissions.
func (s *GroupService) List(ctx context.Context) ([]dto.GroupWithPermissions, error) {
	groups, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.GroupWithPermissions, 0, len(groups))

	for _, g := range groups {
		perms := make([]dto.Permission, 0, len(g.GroupPermissions))
		for _, gp := range g.GroupPermissions {
			perms = append(perms, dto.Permission{
				ID:          gp.Permission.ID,
				Name:        gp.Permission.Name,
				Description: gp.Permission.Description,
			})
		}

		out = append(out, dto.GroupWithPermissions{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			Permissions: perms,
		})
	}

	return out, nil
}
