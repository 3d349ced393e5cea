package http

import (
	"bufio"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/classwire/handraise-server/internal/config"
	"github.com/classwire/handraise-server/internal/core"
	"github.com/classwire/handraise-server/internal/metrics"
)

// newTestHandler builds the full route tree against a fresh registry and an
// isolated metrics registry.
func newTestHandler(t *testing.T) (*core.Registry, stdhttp.Handler) {
	t.Helper()

	registry := core.NewRegistry(nil, 0)

	m, err := metrics.New("handraise", promclient.NewRegistry(), func() float64 {
		return float64(registry.Len())
	})
	if err != nil {
		t.Fatalf("init metrics: %v", err)
	}

	disabledLogger := zerolog.New(nil)
	cfg := config.Default()

	server := NewServer(registry, m, &cfg, &disabledLogger)
	return registry, server.Handler
}

// doJSON performs a request with a JSON body against the handler.
func doJSON(t *testing.T, handler stdhttp.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

// sseReader pulls "data:" payloads out of a live event stream.
type sseReader struct {
	t      *testing.T
	reader *bufio.Reader
}

func newSSEReader(t *testing.T, body io.Reader) *sseReader {
	t.Helper()
	return &sseReader{t: t, reader: bufio.NewReader(body)}
}

func (r *sseReader) next() string {
	r.t.Helper()

	for {
		line, err := r.reader.ReadString('\n')
		if err != nil {
			r.t.Fatalf("read sse stream: %v", err)
		}
		line = strings.TrimRight(line, "\r\n")
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			return data
		}
		// Blank separator lines between events.
	}
}
