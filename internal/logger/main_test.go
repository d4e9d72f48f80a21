package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoUserManagement/UserManagement/internal/logger"
)

func TestInit(t *testing.T) {
	type testCase struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
		outPutIsJSON     bool
	}

	testCases := []testCase{
		{
			name: "no logger enabled log level not set",
			cfg: logger.Log{
				LogLevel:    "",
				ServiceName: "test",
				AppName:     "test",
			},
			shouldHaveOutPut: false,
		},
		{
			name: "console enabled console writer enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console enabled console writer disabled info expect json",
			cfg: logger.Log{
				LogLevel:    "info",
				LogEnv:      "test",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: false},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
		{
			name: "console enabled trace with caller expect json stack",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true, UseConsoleWriter: false},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureLoggerOutput(t, tc.cfg)

			if tc.shouldHaveOutPut {
				assert.NotEmpty(t, out)
			} else {
				assert.Empty(t, out)
			}

			if !tc.outPutIsJSON {
				return
			}

			for _, line := range strings.Split(out, "\n") {
				if line == "" {
					continue
				}

				var decoded struct {
					Level   string `json:"level"`
					Message string `json:"message"`
				}

				assert.NoError(t, json.Unmarshal([]byte(line), &decoded), "expected json output but got: %s", line)
			}
		})
	}
}

func TestInitErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  logger.Log
		want error
	}{
		{
			name: "missing service name",
			cfg:  logger.Log{LogLevel: "info", AppName: "test"},
			want: logger.ErrServiceNameIsEmpty,
		},
		{
			name: "missing app name",
			cfg:  logger.Log{LogLevel: "info", ServiceName: "test"},
			want: logger.ErrAppNameIsEmpty,
		},
		{
			name: "datadog without api key",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				DataDog:     logger.DataDog{Enabled: true},
			},
			want: logger.ErrDataDogAPIKeyIsEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, logger.Init(tt.cfg), tt.want)
		})
	}

	t.Run("unknown level", func(t *testing.T) {
		assert.Error(t, logger.Init(logger.Log{LogLevel: "loud", ServiceName: "test", AppName: "test"}))
	})
}

func TestNewDataDogWriter(t *testing.T) {
	w, err := logger.NewDataDogWriter(logger.Log{
		ServiceName: "usermanagement",
		DataDog:     logger.DataDog{Enabled: true, APIKey: "not-a-real-key", Site: "datadoghq.eu"},
	})
	require.NoError(t, err)
	assert.NotNil(t, w)
}

func TestLevelWriter(t *testing.T) {
	var errBuf, infoBuf, traceBuf, warnBuf bytes.Buffer

	lw := &logger.LevelWriter{
		ErrorWriter: &errBuf,
		InfoWriter:  &infoBuf,
		TraceWriter: &traceBuf,
		WarnWriter:  &warnBuf,
	}

	log.Logger = log.Output(lw)

	log.Error().Msg("e")
	log.Warn().Msg("w")
	log.Info().Msg("i")

	assert.Contains(t, errBuf.String(), `"message":"e"`)
	assert.Contains(t, warnBuf.String(), `"message":"w"`)
	assert.Contains(t, infoBuf.String(), `"message":"i"`)
	assert.Empty(t, traceBuf.String())
}

func alwaysErrFunc() error {
	return errors.New("a test error") //nolint:goerr113
}

func captureLoggerOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()
	// keep default std out
	stdout := os.Stdout
	stderr := os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	// restore before asserting so failures are visible
	initErr := logger.Init(cfg)

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(alwaysErrFunc()).Msg("this err message should be seen...")
	log.Trace().Err(alwaysErrFunc()).Msg("this trace message should be seen...")

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

	require.NoError(t, initErr)

	return out
}
