package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyAPIBaseURL error if the web front-end does not know where the API lives.
	ErrEmptyAPIBaseURL = errors.New("toml config web.apibaseurl can not be empty")

	// ErrUnknownGormEngine error if db.gormengine is none of sqlite, mysql or postgres.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine is unknown")

	// ErrUnknownSessionStorage error if web.session.storage is none of memory, mysql or postgres.
	ErrUnknownSessionStorage = errors.New("toml config web.session.storage is unknown")

	// ErrEmptyTracingEndpoint error if tracing is enabled without an endpoint.
	ErrEmptyTracingEndpoint = errors.New("toml config tracing.endpoint can not be empty if tracing is enabled")
)
