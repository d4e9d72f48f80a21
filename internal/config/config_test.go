package config

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etcPath(t *testing.T) string {
	t.Helper()

	// project root is two levels up from internal/config
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(etcPath(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.API.Port == 0 {
		t.Error("API.Port should not be 0")
	}

	if cfg.Web.Port == 0 {
		t.Error("Web.Port should not be 0")
	}

	if cfg.Web.URL == "" {
		t.Error("Web.URL should not be empty")
	}

	if cfg.DB.GormEngine != EngineSQLite {
		t.Errorf("DB.GormEngine = %q, want %q", cfg.DB.GormEngine, EngineSQLite)
	}

	if cfg.Web.APITimeout != 10*time.Second {
		t.Errorf("Web.APITimeout = %s, want 10s", cfg.Web.APITimeout)
	}

	if cfg.Log.File.AccessLog != "access.log" {
		t.Errorf("Log.File.AccessLog = %q, want access.log", cfg.Log.File.AccessLog)
	}
}

func TestReadConfigEnvOverride(t *testing.T) {
	t.Setenv(EnvPrefix+"_API_PORT", "6000")
	t.Setenv(EnvConfigJSON, `{"Title":"from env"}`)

	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.Equal(t, 6000, cfg.API.Port)
	assert.Equal(t, "from env", cfg.Title)
}

func TestReadConfigBrokenJSONEnv(t *testing.T) {
	t.Setenv(EnvConfigJSON, `{"Title":`)

	_, err := ReadConfig(etcPath(t))
	assert.Error(t, err)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(t.TempDir())
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		API: Webserver{Port: 5000, URL: "http://localhost:5000"},
		Web: Web{
			Webserver:  Webserver{Port: 5001, URL: "http://localhost:5001"},
			APIBaseURL: "http://localhost:5000/",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		want   error
	}{
		{name: "valid", modify: func(_ *Config) {}},
		{name: "api port zero", modify: func(c *Config) { c.API.Port = 0 }, want: ErrWebServerPortCanNotBeZero},
		{name: "web url empty", modify: func(c *Config) { c.Web.URL = "" }, want: ErrEmptyURL},
		{name: "api base url empty", modify: func(c *Config) { c.Web.APIBaseURL = "" }, want: ErrEmptyAPIBaseURL},
		{name: "unknown engine", modify: func(c *Config) { c.DB.GormEngine = "oracle" }, want: ErrUnknownGormEngine},
		{
			name:   "unknown session storage",
			modify: func(c *Config) { c.Web.Session.Storage = "redis" },
			want:   ErrUnknownSessionStorage,
		},
		{
			name:   "tracing without endpoint",
			modify: func(c *Config) { c.Tracing.Enabled = true },
			want:   ErrEmptyTracingEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.modify(&c)

			err := validate(&c)
			if tt.want == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	c := validConfig()
	require.NoError(t, validate(&c))

	assert.Equal(t, EngineSQLite, c.DB.GormEngine)
	assert.Equal(t, SessionStorageMemory, c.Web.Session.Storage)
	assert.Equal(t, defaultAPITimeout, c.Web.APITimeout)
	assert.Equal(t, defaultShutDownTime, c.API.ShutDownTime)
	assert.Equal(t, defaultShutDownTime, c.Web.ShutDownTime)
}

func TestDumpConfigJSONHidesSecrets(t *testing.T) {
	c := validConfig()
	c.DB.Password = "secret-db"
	c.Web.Session.ConnectionURI = "postgres://u:secret-uri@db/x"
	c.Log.DataDog.APIKey = "secret-dd"

	out, err := DumpConfigJSON(&c)
	require.NoError(t, err)

	assert.True(t, json.Valid([]byte(out)))

	for _, secret := range []string{"secret-db", "secret-uri", "secret-dd"} {
		assert.False(t, strings.Contains(out, secret), "dump leaks %s", secret)
	}
}
