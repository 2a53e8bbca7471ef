package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/slimmom/diet-service/pkg/logger"
)

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	e := echo.New()
	e.Use(RequestID(base), RequestLogger())
	e.GET("/ping", func(c echo.Context) error {
		logger.FromContext(c.Request().Context()).Info().Msg("inside")
		return c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Header().Get(echo.HeaderXRequestID) != "req-42" {
		t.Fatalf("request id not echoed")
	}

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
	for _, line := range lines {
		var ev map[string]any
		if err := json.Unmarshal(line, &ev); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if ev["request_id"] != "req-42" {
			t.Fatalf("missing request_id: %s", line)
		}
	}

	var access map[string]any
	_ = json.Unmarshal(lines[1], &access)
	if access["message"] != "request" || access["status"] != float64(200) || access["uri"] != "/ping" {
		t.Fatalf("unexpected access log: %v", access)
	}
}

func TestRequestID_Generated(t *testing.T) {
	e := echo.New()
	e.Use(RequestID(zerolog.Nop()))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(rec.Header().Get(echo.HeaderXRequestID)) != 36 {
		t.Fatalf("expected uuid request id, got %q", rec.Header().Get(echo.HeaderXRequestID))
	}
}
