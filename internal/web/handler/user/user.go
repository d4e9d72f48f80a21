// Package user serves the user pages of the web front-end.
package user

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/csrf"
	"github.com/rs/zerolog/log"

	"github.com/GoUserManagement/UserManagement/internal/api/validation"
	"github.com/GoUserManagement/UserManagement/internal/dto"
	"github.com/GoUserManagement/UserManagement/internal/web/handler"
	"github.com/GoUserManagement/UserManagement/internal/web/navigation"
	"github.com/GoUserManagement/UserManagement/internal/web/session"
)

const (
	// Path is the base path of the user pages.
	Path = handler.RootPath + "users"

	// TemplateIndex lists users.
	TemplateIndex = "users/index"
	// TemplateDetails shows one user.
	TemplateDetails = "users/details"
	// TemplateForm creates or edits a user.
	TemplateForm = "users/form"
	// TemplateDelete confirms a deletion.
	TemplateDelete = "users/delete"

	msgLoadFailed   = "Unable to load users. Please ensure the API is running."
	msgCreateFailed = "Error creating user. Please try again."
	msgUpdateFailed = "Error updating user. Please try again."
	msgDeleteFailed = "Error deleting user. Please try again."
	msgDeleted      = "User deleted successfully."
)

// API is the part of the REST API the pages use.
type API interface {
	ListUsers(ctx context.Context) ([]dto.User, error)
	GetUser(ctx context.Context, id uint) (*dto.User, error)
	CreateUser(ctx context.Context, in dto.CreateUser) (*dto.User, error)
	UpdateUser(ctx context.Context, id uint, in dto.UpdateUser) (*dto.User, error)
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)
	CountUsersByGroup(ctx context.Context) ([]dto.UserCountByGroup, error)
	ListGroups(ctx context.Context) ([]dto.GroupWithPermissions, error)
}

// Handler serves the user pages.
type Handler struct {
	api       API
	flash     *session.Store
	validator *validation.Validator
	title     string
}

// New creates a Handler. title is shown in the page header.
func New(api API, flash *session.Store, v *validation.Validator, title string) *Handler {
	return &Handler{api: api, flash: flash, validator: v, title: title}
}

// Register adds the routes to router.
// create goes before :id.
func (h *Handler) Register(router fiber.Router) {
	r := router.Group(Path)

	r.Get("/", h.Index)
	r.Get("/create", h.CreateForm)
	r.Post("/create", h.Create)
	r.Get("/:id", h.Details)
	r.Get("/:id/edit", h.EditForm)
	r.Post("/:id/edit", h.Edit)
	r.Get("/:id/delete", h.DeleteConfirm)
	r.Post("/:id/delete", h.Delete)
}

// Index lists all users with their counts.
func (h *Handler) Index(c fiber.Ctx) error {
	nav := navigation.NewContext("Users", navigation.PageUsers).Current()
	data := h.page(c, nav)

	users, err := h.api.ListUsers(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("list users failed")

		data["Error"] = msgLoadFailed
		data["Users"] = []dto.User{}
		data["Total"] = 0

		return c.Render(TemplateIndex, data, handler.BaseLayout)
	}

	data["Users"] = users
	data["Total"] = len(users)

	if n, err := h.api.CountUsers(c.Context()); err == nil {
		data["Total"] = n
	} else {
		log.Warn().Err(err).Msg("count users failed")
	}

	if counts, err := h.api.CountUsersByGroup(c.Context()); err == nil {
		data["CountsByGroup"] = counts
	} else {
		log.Warn().Err(err).Msg("count users by group failed")
	}

	return c.Render(TemplateIndex, data, handler.BaseLayout)
}

// Details shows one user.
func (h *Handler) Details(c fiber.Ctx) error {
	u, ok, err := h.loadUser(c)
	if !ok {
		return err
	}

	nav := navigation.NewContext(u.FullName(), "").AddBreadcrumb(u.FullName(), "", true)
	data := h.page(c, nav)
	data["User"] = u

	return c.Render(TemplateDetails, data, handler.BaseLayout)
}

// CreateForm shows an empty user form.
func (h *Handler) CreateForm(c fiber.Ctx) error {
	return h.renderForm(c, createNav(), Path+"/create", dto.UpdateUser{}, nil, "")
}

// Create posts the form to the API.
func (h *Handler) Create(c fiber.Ctx) error {
	form := parseForm(c)

	fields, err := h.validator.Validate(form)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if len(fields) > 0 {
		return h.renderForm(c, createNav(), Path+"/create", form, fields, "")
	}

	u, err := h.api.CreateUser(c.Context(), dto.CreateUser(form))
	if err != nil {
		log.Error().Err(err).Str("email", form.Email).Msg("create user failed")

		return h.renderForm(c, createNav(), Path+"/create", form, nil, msgCreateFailed)
	}

	if err = h.flash.SetSuccess(c, fmt.Sprintf("User '%s' created successfully.", u.FullName())); err != nil {
		return err
	}

	return c.Redirect().To(Path)
}

// EditForm shows the form filled with the current user.
func (h *Handler) EditForm(c fiber.Ctx) error {
	u, ok, err := h.loadUser(c)
	if !ok {
		return err
	}

	form := dto.UpdateUser{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		GroupIDs:  make([]uint, 0, len(u.Groups)),
	}

	for _, g := range u.Groups {
		form.GroupIDs = append(form.GroupIDs, g.ID)
	}

	return h.renderForm(c, editNav(u.ID, u.FullName()), editPath(u.ID), form, nil, "")
}

// Edit posts the form to the API.
func (h *Handler) Edit(c fiber.Ctx) error {
	id, ok, err := h.userID(c)
	if !ok {
		return err
	}

	form := parseForm(c)
	nav := editNav(id, form.FirstName+" "+form.LastName)

	fields, err := h.validator.Validate(form)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if len(fields) > 0 {
		return h.renderForm(c, nav, editPath(id), form, fields, "")
	}

	u, err := h.api.UpdateUser(c.Context(), id, form)
	if err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("update user failed")

		return h.renderForm(c, nav, editPath(id), form, nil, msgUpdateFailed)
	}

	if err = h.flash.SetSuccess(c, fmt.Sprintf("User '%s' updated successfully.", u.FullName())); err != nil {
		return err
	}

	return c.Redirect().To(Path)
}

// DeleteConfirm asks before deleting.
func (h *Handler) DeleteConfirm(c fiber.Ctx) error {
	u, ok, err := h.loadUser(c)
	if !ok {
		return err
	}

	nav := navigation.NewContext("Delete user", "").
		AddBreadcrumb(u.FullName(), userPath(u.ID), false).
		AddBreadcrumb("Delete", "", true)

	data := h.page(c, nav)
	data["User"] = u

	return c.Render(TemplateDelete, data, handler.BaseLayout)
}

// Delete removes the user.
func (h *Handler) Delete(c fiber.Ctx) error {
	id, ok, err := h.userID(c)
	if !ok {
		return err
	}

	if err = h.api.DeleteUser(c.Context(), id); err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("delete user failed")

		if err = h.flash.SetError(c, msgDeleteFailed); err != nil {
			return err
		}

		return c.Redirect().To(userPath(id) + "/delete")
	}

	if err = h.flash.SetSuccess(c, msgDeleted); err != nil {
		return err
	}

	return c.Redirect().To(Path)
}

// page returns the data every template needs and consumes the flash.
func (h *Handler) page(c fiber.Ctx, nav *navigation.Context) fiber.Map {
	f, err := h.flash.PopFlash(c)
	if err != nil {
		log.Warn().Err(err).Msg("read flash failed")
	}

	return fiber.Map{
		"Title":      h.title,
		"Navigation": nav,
		"Flash":      f,
		"CSRFField":  handler.CSRFField,
		"CSRFToken":  csrf.TokenFromContext(c),
	}
}

func (h *Handler) renderForm(
	c fiber.Ctx,
	nav *navigation.Context,
	action string,
	form dto.UpdateUser,
	fields map[string][]string,
	errMsg string,
) error {
	groups, err := h.api.ListGroups(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("list groups failed")

		groups = []dto.GroupWithPermissions{}
	}

	if fields == nil {
		fields = map[string][]string{}
	}

	data := h.page(c, nav)
	data["Action"] = action
	data["Form"] = form
	data["Groups"] = groups
	data["Errors"] = fields

	if errMsg != "" {
		data["Error"] = errMsg
	}

	return c.Render(TemplateForm, data, handler.BaseLayout)
}

// loadUser fetches the user of the :id param.
// If ok is false the redirect to the list is already written.
func (h *Handler) loadUser(c fiber.Ctx) (*dto.User, bool, error) {
	id, ok, err := h.userID(c)
	if !ok {
		return nil, false, err
	}

	u, err := h.api.GetUser(c.Context(), id)
	if err != nil {
		log.Warn().Err(err).Uint("userID", id).Msg("get user failed")

		return nil, false, h.notFound(c, strconv.FormatUint(uint64(id), 10))
	}

	return u, true, nil
}

// userID parses the :id param.
// If ok is false the redirect to the list is already written.
func (h *Handler) userID(c fiber.Ctx) (uint, bool, error) {
	raw := c.Params("id")

	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, false, h.notFound(c, raw)
	}

	return uint(id), true, nil
}

func (h *Handler) notFound(c fiber.Ctx, id string) error {
	if err := h.flash.SetError(c, fmt.Sprintf("User with ID %s not found.", id)); err != nil {
		return err
	}

	return c.Redirect().To(Path)
}

func parseForm(c fiber.Ctx) dto.UpdateUser {
	form := dto.UpdateUser{
		FirstName: c.FormValue("firstName"),
		LastName:  c.FormValue("lastName"),
		Email:     c.FormValue("email"),
		GroupIDs:  []uint{},
	}

	for _, raw := range c.Request().PostArgs().PeekMulti("groupIds") {
		id, err := strconv.ParseUint(string(raw), 10, 0)
		if err != nil {
			continue
		}

		form.GroupIDs = append(form.GroupIDs, uint(id))
	}

	return form
}

func createNav() *navigation.Context {
	return navigation.NewContext("Create user", navigation.PageCreate).AddBreadcrumb("Create", "", true)
}

func editNav(id uint, name string) *navigation.Context {
	return navigation.NewContext("Edit user", "").
		AddBreadcrumb(name, userPath(id), false).
		AddBreadcrumb("Edit", "", true)
}

func userPath(id uint) string {
	return Path + "/" + strconv.FormatUint(uint64(id), 10)
}

func editPath(id uint) string {
	return userPath(id) + "/edit"
}
