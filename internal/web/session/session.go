// Package session keeps the flash messages of the web front-end in a fiber session.
package session

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/GoUserManagement/UserManagement/internal/config"
)

const (
	keySuccess = "flash_success"
	keyError   = "flash_error"

	defaultTable = "web_sessions"
)

// Flash holds the one-shot messages shown on the next page.
type Flash struct {
	Success string
	Error   string
}

// Store wraps the fiber session store.
type Store struct {
	store   *session.Store
	storage fiber.Storage
}

// Storage picks the session backend from the config.
// A nil storage means fiber's in-memory storage.
func Storage(cfg config.Session) (fiber.Storage, error) {
	table := cfg.Table
	if table == "" {
		table = defaultTable
	}

	switch cfg.Storage {
	case config.SessionStorageMemory, "":
		return nil, nil //nolint:nilnil // memory is fiber's default
	case config.SessionStoragePostgres:
		return postgres.New(postgres.Config{ConnectionURI: cfg.ConnectionURI, Table: table}), nil
	case config.SessionStorageMySQL:
		return mysql.New(mysql.Config{ConnectionURI: cfg.ConnectionURI, Table: table}), nil
	default:
		return nil, errors.Wrap(config.ErrUnknownSessionStorage, cfg.Storage)
	}
}

// New creates a Store on storage.
func New(storage fiber.Storage, cfg config.Session) *Store {
	sc := session.Config{
		KeyGenerator:   uuid.NewString,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	}

	if storage != nil {
		sc.Storage = storage
	}

	if cfg.Expiration > 0 {
		sc.IdleTimeout = cfg.Expiration
	}

	return &Store{store: session.NewStore(sc), storage: storage}
}

// Backend returns the storage the sessions live in, nil for memory.
func (s *Store) Backend() fiber.Storage {
	return s.storage
}

// SetSuccess stores a success message for the next page.
func (s *Store) SetSuccess(c fiber.Ctx, msg string) error {
	return s.set(c, keySuccess, msg)
}

// SetError stores an error message for the next page.
func (s *Store) SetError(c fiber.Ctx, msg string) error {
	return s.set(c, keyError, msg)
}

func (s *Store) set(c fiber.Ctx, key, msg string) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return errors.Wrap(err, "session get")
	}

	defer sess.Release()

	sess.Set(key, msg)

	return errors.Wrap(sess.Save(), "session save")
}

// PopFlash returns and clears the pending messages.
func (s *Store) PopFlash(c fiber.Ctx) (Flash, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return Flash{}, errors.Wrap(err, "session get")
	}

	defer sess.Release()

	var f Flash

	if v, ok := sess.Get(keySuccess).(string); ok {
		f.Success = v
	}

	if v, ok := sess.Get(keyError).(string); ok {
		f.Error = v
	}

	if f.Success == "" && f.Error == "" {
		return f, nil
	}

	sess.Delete(keySuccess)
	sess.Delete(keyError)

	return f, errors.Wrap(sess.Save(), "session save")
}
