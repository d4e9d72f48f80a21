// Package daemon wires the api and web processes from the configuration.
package daemon

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoUserManagement/UserManagement/internal/api"
	"github.com/GoUserManagement/UserManagement/internal/config"
	"github.com/GoUserManagement/UserManagement/internal/db/controller/group"
	"github.com/GoUserManagement/UserManagement/internal/db/controller/user"
	"github.com/GoUserManagement/UserManagement/internal/db/database"
	"github.com/GoUserManagement/UserManagement/internal/server"
	"github.com/GoUserManagement/UserManagement/internal/service"
	"github.com/GoUserManagement/UserManagement/internal/tracing"
	"github.com/GoUserManagement/UserManagement/internal/web"
	"github.com/GoUserManagement/UserManagement/internal/web/apiclient"
	"github.com/GoUserManagement/UserManagement/internal/web/session"
)

const closeTimeout = 10 * time.Second

// Daemon represents one running process.
type Daemon struct {
	srv     *server.Server
	closers []func(context.Context) error
}

// NewAPI creates the REST API daemon.
func NewAPI(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	d := &Daemon{}

	if err := d.initTracing(ctx, cfg, "api"); err != nil {
		return nil, err
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		d.Close()

		return nil, err
	}

	d.closers = append(d.closers, func(context.Context) error { return database.Close(db) })

	users, groups, err := services(db)
	if err != nil {
		d.Close()

		return nil, err
	}

	d.srv = api.New(cfg, users, groups)

	return d, nil
}

func services(db *gorm.DB) (*service.UserService, *service.GroupService, error) {
	users, err := user.New(db)
	if err != nil {
		return nil, nil, err
	}

	groups, err := group.New(db)
	if err != nil {
		return nil, nil, err
	}

	return service.NewUserService(users), service.NewGroupService(groups), nil
}

// NewWeb creates the web front-end daemon.
func NewWeb(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	d := &Daemon{}

	if err := d.initTracing(ctx, cfg, "web"); err != nil {
		return nil, err
	}

	client, err := apiclient.New(cfg.Web.APIBaseURL, cfg.Web.APITimeout)
	if err != nil {
		d.Close()

		return nil, err
	}

	storage, err := session.Storage(cfg.Web.Session)
	if err != nil {
		d.Close()

		return nil, err
	}

	if storage != nil {
		d.closers = append(d.closers, func(context.Context) error { return storage.Close() })
	}

	d.srv = web.New(cfg, client, session.New(storage, cfg.Web.Session), nil)

	return d, nil
}

func (d *Daemon) initTracing(ctx context.Context, cfg *config.Config, component string) error {
	shutdown, err := tracing.Init(ctx, cfg.Tracing, cfg.Log.ServiceName+"-"+component)
	if err != nil {
		return err
	}

	d.closers = append(d.closers, shutdown)

	return nil
}

// Run serves until SIGINT or SIGTERM and releases all resources afterwards.
func (d *Daemon) Run() error {
	if err := d.srv.Start(); err != nil {
		d.Close()

		return err
	}

	d.srv.WaitShutdown()
	d.Close()

	return nil
}

// Close releases resources in reverse order of creation.
func (d *Daemon) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](ctx); err != nil {
			log.Error().Err(err).Msg("close failed")
		}
	}

	d.closers = nil
}
