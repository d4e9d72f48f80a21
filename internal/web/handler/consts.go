// Package handler holds what the web page handlers share.
package handler

import "github.com/gofiber/fiber/v3"

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// CSRFField is the form field carrying the csrf token.
	CSRFField = "_csrf"
)

// Registrar is implemented by every page handler.
type Registrar interface {
	Register(router fiber.Router)
}
