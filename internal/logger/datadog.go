package logger

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/pkg/errors"
)

const (
	defaultDataDogTimeout = 5 * time.Second
	defaultDataDogSource  = "go"
)

// DataDogWriter ships every log line to the DataDog logs intake.
// Writes are synchronous, a failed write is reported through zerolog.ErrorHandler.
type DataDogWriter struct {
	api      *datadogV2.LogsApi
	ctx      context.Context //nolint:containedctx // carries api keys and site for the client
	service  string
	source   string
	tags     string
	hostname string
	timeout  time.Duration
}

// NewDataDogWriter creates a DataDogWriter from the logger config.
func NewDataDogWriter(cfg Log) (*DataDogWriter, error) {
	dd := cfg.DataDog
	if dd.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	ctx := context.WithValue(
		context.Background(),
		datadog.ContextAPIKeys,
		map[string]datadog.APIKey{
			"apiKeyAuth": {Key: dd.APIKey},
		},
	)

	if dd.Site != "" {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": dd.Site})
	}

	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.Wrap(err, "datadog: can't resolve hostname")
	}

	w := &DataDogWriter{
		api:      datadogV2.NewLogsApi(datadog.NewAPIClient(datadog.NewConfiguration())),
		ctx:      ctx,
		service:  dd.ServiceName,
		source:   dd.Source,
		tags:     dd.Tags,
		hostname: hostname,
		timeout:  dd.Timeout,
	}

	if w.service == "" {
		w.service = cfg.ServiceName
	}

	if w.source == "" {
		w.source = defaultDataDogSource
	}

	if w.timeout == 0 {
		w.timeout = defaultDataDogTimeout
	}

	return w, nil
}

// Write implements io.Writer.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	item := datadogV2.NewHTTPLogItem(string(bytes.TrimSpace(p)))
	item.SetService(w.service)
	item.SetDdsource(w.source)
	item.SetHostname(w.hostname)

	if w.tags != "" {
		item.SetDdtags(w.tags)
	}

	_, _, err := w.api.SubmitLog(ctx, []datadogV2.HTTPLogItem{*item}, *datadogV2.NewSubmitLogOptionalParameters())
	if err != nil {
		return 0, errors.Wrap(err, "datadog: submit log")
	}

	return len(p), nil
}
