package config

import (
	"time"

	"github.com/GoUserManagement/UserManagement/internal/logger"
)

const (
	// SessionStorageMemory keeps web sessions in process memory.
	SessionStorageMemory = "memory"
	// SessionStorageMySQL keeps web sessions in a mysql table.
	SessionStorageMySQL = "mysql"
	// SessionStoragePostgres keeps web sessions in a postgres table.
	SessionStoragePostgres = "postgres"
)

// Session settings.
type Session struct {
	Storage       string        // memory, mysql or postgres
	ConnectionURI string        `json:"-"` // used by mysql and postgres storage
	Table         string        // storage table name
	Expiration    time.Duration // idle time until a session is dropped
}

// Config overall data structure.
type Config struct {
	DevMode bool // enable dev mode for development
	DB      DB
	Log     logger.Log
	Title   string
	API     Webserver
	Web     Web
	Tracing Tracing
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}

// Web holds the settings of the web front-end.
type Web struct {
	Webserver `mapstructure:",squash"`

	APIBaseURL string        // where the REST API can be reached
	APITimeout time.Duration // timeout of a single API call
	Session    Session       // flash message session settings
}

// Tracing holds the OpenTelemetry exporter settings.
type Tracing struct {
	Enabled  bool
	Endpoint string // OTLP/HTTP collector, host:port
	Insecure bool   // plain http to the collector
}
