// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix of single-key environment overrides, e.g. USERMANAGEMENT_API_PORT.
	EnvPrefix = "USERMANAGEMENT"

	// EnvConfigJSON holds a JSON document merged over the file configuration.
	EnvConfigJSON = EnvPrefix + "_CONFIG_JSON"

	// DefaultPath is used when no config path was given.
	DefaultPath = "./etc/"

	defaultShutDownTime = 5 // seconds
	defaultAPITimeout   = 10 * time.Second
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = DefaultPath
	}

	v := viper.New()
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	// single keys can be overridden from env
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config from "+EnvConfigJSON)
	}

	return c, nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings.
// Defaults are applied in place.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	switch c.DB.GormEngine {
	case EngineSQLite, EngineMySQL, EnginePostgres:
	case "":
		c.DB.GormEngine = EngineSQLite
	default:
		return errors.Wrap(ErrUnknownGormEngine, c.DB.GormEngine)
	}

	if err := validateWebserver(&c.API); err != nil {
		return errors.Wrap(err, invalidErrMessage+" [API]")
	}

	if err := validateWebserver(&c.Web.Webserver); err != nil {
		return errors.Wrap(err, invalidErrMessage+" [Web]")
	}

	if c.Web.APIBaseURL == "" {
		return errors.Wrap(ErrEmptyAPIBaseURL, invalidErrMessage)
	}

	if c.Web.APITimeout == 0 {
		c.Web.APITimeout = defaultAPITimeout
	}

	switch c.Web.Session.Storage {
	case SessionStorageMemory, SessionStorageMySQL, SessionStoragePostgres:
	case "":
		c.Web.Session.Storage = SessionStorageMemory
	default:
		return errors.Wrap(ErrUnknownSessionStorage, c.Web.Session.Storage)
	}

	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return errors.Wrap(ErrEmptyTracingEndpoint, invalidErrMessage)
	}

	return nil
}

func validateWebserver(w *Webserver) error {
	// validate webserver listening port
	if w.Port == 0 {
		return ErrWebServerPortCanNotBeZero
	}

	if w.URL == "" {
		return ErrEmptyURL
	}

	if w.ShutDownTime == 0 {
		w.ShutDownTime = defaultShutDownTime
	}

	return nil
}
