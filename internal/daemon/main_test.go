package daemon

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoUserManagement/UserManagement/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Title: "UserManagement",
		DB: config.DB{
			GormEngine: config.EngineSQLite,
			Path:       filepath.Join(t.TempDir(), "um.db"),
		},
		API: config.Webserver{Port: 5000, URL: "http://localhost:5000", ShutDownTime: 1},
		Web: config.Web{
			Webserver:  config.Webserver{Port: 5001, URL: "http://localhost:5001", ShutDownTime: 1},
			APIBaseURL: "http://localhost:5000/",
		},
	}
}

func TestNewAPI(t *testing.T) {
	d, err := NewAPI(context.Background(), testConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, d.srv)
	assert.Len(t, d.closers, 2)

	d.Close()
	assert.Empty(t, d.closers)
}

func TestNewWeb(t *testing.T) {
	d, err := NewWeb(context.Background(), testConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, d.srv)
	assert.Len(t, d.closers, 1)

	d.Close()
}

func TestNewWebBadBaseURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.Web.APIBaseURL = "localhost"

	_, err := NewWeb(context.Background(), cfg)
	assert.Error(t, err)
}
