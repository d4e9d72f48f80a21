// Package group serves the groups endpoint of the REST API.
package group

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/GoUserManagement/UserManagement/internal/dto"
)

// Path is the base path of the groups endpoint.
const Path = "/api/groups"

// Service lists groups.
type Service interface {
	List(ctx context.Context) ([]dto.GroupWithPermissions, error)
}

// Handler serves the groups endpoint.
type Handler struct {
	svc Service
}

// New creates a Handler.
func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

// Register adds the routes to router.
func (h *Handler) Register(router fiber.Router) {
	router.Get(Path, h.List)
}

// List returns all groups with permissions.
func (h *Handler) List(c fiber.Ctx) error {
	groups, err := h.svc.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(groups)
}
