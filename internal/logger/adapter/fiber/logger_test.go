package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoUserManagement/UserManagement/internal/logger"
	adapter "github.com/GoUserManagement/UserManagement/internal/logger/adapter/fiber"
)

// accessLine is the json format written per request.
type accessLine struct {
	IP           net.IP    `json:"IP"`
	Status       int       `json:"status"`
	XPerformance float32   `json:"X-Performance"`
	URI          string    `json:"URI"`
	Method       string    `json:"method"`
	Host         string    `json:"host"`
	RequestID    string    `json:"requestID"`
	UserAgent    string    `json:"User-Agent"`
	Time         time.Time `json:"time"`
}

func consoleConfig() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			Console:                  logger.Console{Enabled: true},
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *accessLine
	}{
		{
			name:       "empty no output at all",
			targetPath: "/",
			want:       nil,
		},
		{
			name:       "get / log to console json",
			config:     consoleConfig(),
			targetPath: "/",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "unknown path logs 404",
			config:     consoleConfig(),
			targetPath: "/api/users/unknown/path",
			want: &accessLine{
				Status: fiber.StatusNotFound,
				URI:    "/api/users/unknown/path",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name:       "query string is kept",
			config:     consoleConfig(),
			targetPath: "/?test=123",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/?test=123", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name: "check alive is skipped",
			config: adapter.Config{
				Config: logger.Log{
					EnableAccessLogToConsole: true,
					DisableCheckAlive:        true,
					Console:                  logger.Console{Enabled: true},
				},
				CheckAliveURI: "/checkalive",
			},
			targetPath: "/checkalive",
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testMiddlewareHelper(t, tt.targetPath, tt.config)

			if tt.want == nil {
				assert.Empty(t, output)

				return
			}

			require.NotEmpty(t, output)

			var decoded accessLine
			require.NoError(t, json.Unmarshal([]byte(output), &decoded))

			assert.Equal(t, tt.want.Host, decoded.Host)
			assert.Equal(t, tt.want.Method, decoded.Method)
			assert.Equal(t, tt.want.Status, decoded.Status)
			assert.Equal(t, tt.want.URI, decoded.URI)
			assert.NotEmpty(t, decoded.RequestID)
			assert.False(t, decoded.Time.IsZero())
		})
	}
}

func TestNewSetsPerformanceHeader(t *testing.T) {
	app := fiber.New()
	app.Use(adapter.New())
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	defer resp.Body.Close()

	assert.NotEmpty(t, resp.Header.Get("X-Performance"))
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) string {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(requestid.New())
	app.Use(adapter.New(adapterConfig))

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("hello test")
	})
	app.Get("/checkalive", func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, testErr := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil))
	if resp != nil {
		_ = resp.Body.Close()
	}

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr
	out := <-outC

	require.NoError(t, testErr)

	return out
}
