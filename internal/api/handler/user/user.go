// Package user serves the users endpoints of the REST API.
package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/GoUserManagement/UserManagement/internal/api/validation"
	"github.com/GoUserManagement/UserManagement/internal/dto"
	"github.com/GoUserManagement/UserManagement/internal/service"
)

const (
	// Path is the base path of the users endpoints.
	Path = "/api/users"

	msgCreateFailed = "Error creating user."
	msgUpdateFailed = "Error updating user."
)

// Service is the application service behind the handlers.
type Service interface {
	List(ctx context.Context) ([]dto.User, error)
	Get(ctx context.Context, id uint) (*dto.User, error)
	Create(ctx context.Context, in dto.CreateUser) (*dto.User, error)
	Update(ctx context.Context, id uint, in dto.UpdateUser) (*dto.User, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByGroup(ctx context.Context) ([]dto.UserCountByGroup, error)
}

// Message is the body of not-found and failure responses.
type Message struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Handler serves the users endpoints.
type Handler struct {
	svc       Service
	validator *validation.Validator
}

// New creates a Handler.
func New(svc Service, v *validation.Validator) *Handler {
	return &Handler{svc: svc, validator: v}
}

// Register adds the routes to router.
// The count routes go first so they are not taken for an id.
func (h *Handler) Register(router fiber.Router) {
	r := router.Group(Path)

	r.Get("/count", h.Count)
	r.Get("/count-by-group", h.CountByGroup)
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

// List returns all users.
func (h *Handler) List(c fiber.Ctx) error {
	users, err := h.svc.List(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(users)
}

// Get returns one user.
func (h *Handler) Get(c fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	u, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return err
	}

	if u == nil {
		return notFound(c, id)
	}

	return c.JSON(u)
}

// Create adds a user and answers with its location.
func (h *Handler) Create(c fiber.Ctx) error {
	var in dto.CreateUser
	if ok, err := h.bindAndValidate(c, &in); !ok {
		return err
	}

	u, err := h.svc.Create(c.Context(), in)
	if err != nil {
		log.Error().Err(err).Str("email", in.Email).Msg("error creating user")

		return c.Status(fiber.StatusBadRequest).JSON(Message{Message: msgCreateFailed, Error: err.Error()})
	}

	c.Location(fmt.Sprintf("%s%s/%d", c.BaseURL(), Path, u.ID))

	return c.Status(fiber.StatusCreated).JSON(u)
}

// Update overwrites a user and its groups.
func (h *Handler) Update(c fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	var in dto.UpdateUser
	if ok, bindErr := h.bindAndValidate(c, &in); !ok {
		return bindErr
	}

	u, err := h.svc.Update(c.Context(), id, in)

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(Message{Message: err.Error()})
	case err != nil:
		log.Error().Err(err).Uint("userID", id).Msg("error updating user")

		return c.Status(fiber.StatusBadRequest).JSON(Message{Message: msgUpdateFailed, Error: err.Error()})
	}

	return c.JSON(u)
}

// Delete removes a user.
func (h *Handler) Delete(c fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	deleted, err := h.svc.Delete(c.Context(), id)
	if err != nil {
		return err
	}

	if !deleted {
		return notFound(c, id)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Count returns the number of users as a bare integer.
func (h *Handler) Count(c fiber.Ctx) error {
	n, err := h.svc.Count(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(n)
}

// CountByGroup returns the member count of every group.
func (h *Handler) CountByGroup(c fiber.Ctx) error {
	counts, err := h.svc.CountByGroup(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(counts)
}

// bindAndValidate decodes the body into in.
// If it returns false the response is already written.
func (h *Handler) bindAndValidate(c fiber.Ctx, in any) (bool, error) {
	if err := c.Bind().Body(in); err != nil {
		return false, problem(c, map[string][]string{"body": {err.Error()}})
	}

	fields, err := h.validator.Validate(in)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	if len(fields) > 0 {
		return false, problem(c, fields)
	}

	return true, nil
}

func problem(c fiber.Ctx, fields map[string][]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(validation.Problem{
		Title:  validation.Title,
		Status: fiber.StatusBadRequest,
		Errors: fields,
	})
}

func notFound(c fiber.Ctx, id uint) error {
	return c.Status(fiber.StatusNotFound).JSON(Message{Message: (&service.UserNotFoundError{ID: id}).Error()})
}

func userID(c fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid user id "+strconv.Quote(c.Params("id")))
	}

	return uint(id), nil
}
