// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/GoUserManagement/UserManagement/internal/config"
)

// MySQL builds the go-sql-driver Data Source Name from the configuration.
func MySQL(db config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s)/%s",
		db.User,
		db.Password,
		net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + db.Extras
	}

	return out
}

// Postgres builds a postgres URL from the configuration.
// Extras are appended as query string, e.g. "sslmode=disable".
func Postgres(db config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:     "/" + db.Name,
		RawQuery: db.Extras,
	}

	return u.String()
}

// SQLite returns the sqlite file DSN with foreign keys switched on.
// Extras are appended as further query parameters.
func SQLite(db config.DB) string {
	var b strings.Builder

	b.WriteString(db.Path)
	b.WriteString("?_pragma=foreign_keys(1)")

	if db.Extras != "" {
		b.WriteString("&")
		b.WriteString(db.Extras)
	}

	return b.String()
}
