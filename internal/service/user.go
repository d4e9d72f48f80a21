// Package service maps between the store entities and the API transfer objects.
package service

import (
	"context"

	"github.com/GoUserManagement/UserManagement/internal/db/controller/user"
	"github.com/GoUserManagement/UserManagement/internal/db/models"
	"github.com/GoUserManagement/UserManagement/internal/dto"
)

// UserService orchestrates user repository calls.
type UserService struct {
	repo user.Repository
}

// NewUserService creates a UserService.
func NewUserService(repo user.Repository) *UserService {
	return &UserService{repo: repo}
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]dto.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.User, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}

	return out, nil
}

// Get returns nil without error if the user does not exist.
func (s *UserService) Get(ctx context.Context, id uint) (*dto.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}

	out := toUserDTO(u)

	return &out, nil
}

// Create inserts a user and returns it with its groups.
func (s *UserService) Create(ctx context.Context, in dto.CreateUser) (*dto.User, error) {
	u := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	u.SetGroupIDs(uniqueIDs(in.GroupIDs))

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := s.repo.Hydrate(ctx, u); err != nil {
		return nil, err
	}

	out := toUserDTO(u)

	return &out, nil
}

// Update overwrites a user and replaces its groups.
// A missing user yields a *UserNotFoundError.
func (s *UserService) Update(ctx context.Context, id uint, in dto.UpdateUser) (*dto.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if u == nil {
		return nil, &UserNotFoundError{ID: id}
	}

	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Email = in.Email
	u.SetGroupIDs(uniqueIDs(in.GroupIDs))

	if err = s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = s.repo.Hydrate(ctx, u); err != nil {
		return nil, err
	}

	out := toUserDTO(u)

	return &out, nil
}

// Delete reports whether the user existed.
func (s *UserService) Delete(ctx context.Context, id uint) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Count returns the number of users.
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// CountByGroup returns the member count of every group.
func (s *UserService) CountByGroup(ctx context.Context) ([]dto.UserCountByGroup, error) {
	counts, err := s.repo.CountByGroup(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserCountByGroup, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.UserCountByGroup{GroupID: c.GroupID, GroupName: c.GroupName, UserCount: c.UserCount})
	}

	return out, nil
}

func toUserDTO(u *models.User) dto.User {
	groups := make([]dto.Group, 0, len(u.UserGroups))
	for _, ug := range u.UserGroups {
		groups = append(groups, dto.Group{
			ID:          ug.Group.ID,
			Name:        ug.Group.Name,
			Description: ug.Group.Description,
		})
	}

	return dto.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Groups:    groups,
	}
}

// uniqueIDs drops repeated ids and keeps the input order.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
