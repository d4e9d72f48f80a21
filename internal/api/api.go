// Package api builds the REST API fiber application.
package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	grouphandler "github.com/GoUserManagement/UserManagement/internal/api/handler/group"
	userhandler "github.com/GoUserManagement/UserManagement/internal/api/handler/user"
	"github.com/GoUserManagement/UserManagement/internal/api/validation"
	"github.com/GoUserManagement/UserManagement/internal/config"
	fiberlog "github.com/GoUserManagement/UserManagement/internal/logger/adapter/fiber"
	"github.com/GoUserManagement/UserManagement/internal/server"
)

// AppName is reported in the Server header.
const AppName = "UserManagement API"

// ErrorBody is the body written by the error handler.
type ErrorBody struct {
	Message string `json:"message"`
}

// New creates the API server with all routes registered.
func New(cfg *config.Config, users userhandler.Service, groups grouphandler.Service) *server.Server {
	if cfg == nil || users == nil || groups == nil {
		log.Fatal().Msg("cfg, users or groups is nil")

		return nil
	}

	app := fiber.New(fiber.Config{
		AppName:       AppName,
		CaseSensitive: true,
		Immutable:     true,
		ErrorHandler:  ErrorHandler,
	})

	if !cfg.API.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlog.New(fiberlog.Config{
		Config:        cfg.Log,
		CheckAliveURI: server.CheckAlivePath,
	}))

	srv := server.New(app, cfg.API, cfg.DevMode)

	v := validation.New()
	userhandler.New(users, v).Register(app)
	grouphandler.New(groups).Register(app)

	return srv
}

// ErrorHandler answers every unhandled error with a JSON message.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(code).JSON(ErrorBody{Message: err.Error()})
}
