// Package web builds the server-rendered front-end that consumes the REST API.
package web

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/extractors"
	"github.com/gofiber/fiber/v3/middleware/csrf"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/gofiber/template/html/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GoUserManagement/UserManagement/internal/api/validation"
	"github.com/GoUserManagement/UserManagement/internal/config"
	fiberlog "github.com/GoUserManagement/UserManagement/internal/logger/adapter/fiber"
	"github.com/GoUserManagement/UserManagement/internal/server"
	"github.com/GoUserManagement/UserManagement/internal/web/handler"
	"github.com/GoUserManagement/UserManagement/internal/web/handler/user"
	"github.com/GoUserManagement/UserManagement/internal/web/session"
)

const (
	// AppName is reported in the Server header.
	AppName = "UserManagement Web"

	devTemplateDir = "./internal/web/templates"
	dateLayout     = "2006-01-02 15:04"
)

// NewEngine returns the html template engine.
// In dev mode templates are read from disk and reloaded on every render.
func NewEngine(devMode bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), ".gohtml")

	if devMode {
		engine = html.New(devTemplateDir, ".gohtml")
		engine.Reload(true)

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	engine.AddFunc("date", formatDate)
	engine.AddFunc("hasID", func(ids []uint, id uint) bool {
		return slices.Contains(ids, id)
	})

	return engine
}

// formatDate accepts time.Time and *time.Time.
func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(dateLayout)
	case *time.Time:
		if t == nil {
			return ""
		}

		return t.UTC().Format(dateLayout)
	default:
		return ""
	}
}

// New creates the web server with all pages registered.
func New(cfg *config.Config, api user.API, flash *session.Store, views fiber.Views) *server.Server {
	if cfg == nil || api == nil || flash == nil {
		log.Fatal().Msg("cfg, api or flash is nil")

		return nil
	}

	if views == nil {
		views = NewEngine(cfg.DevMode)
	}

	app := fiber.New(fiber.Config{
		AppName:       AppName,
		CaseSensitive: true,
		Immutable:     true,
		Views:         views,
		ErrorHandler:  ErrorHandler,
	})

	if !cfg.Web.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlog.New(fiberlog.Config{
		Config:        cfg.Log,
		CheckAliveURI: server.CheckAlivePath,
	}))

	srv := server.New(app, cfg.Web.Webserver, cfg.DevMode)

	// tokens are kept in the session backend, outside the session itself
	app.Use(csrf.New(csrf.Config{
		Storage:        flash.Backend(),
		Extractor:      extractors.FromForm(handler.CSRFField),
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		IdleTimeout:    cfg.Web.Session.Expiration,
	}))

	app.Get("/static/site.css", func(c fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")

		return c.Send(siteCSS)
	})

	pages := []handler.Registrar{
		user.New(api, flash, validation.New(), cfg.Title),
	}

	for _, p := range pages {
		p.Register(app)
	}

	app.Get(handler.RootPath, func(c fiber.Ctx) error {
		return c.Redirect().To(user.Path)
	})

	return srv
}

// ErrorHandler answers unhandled errors in plain text.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.Status(code).SendString(err.Error())
}
