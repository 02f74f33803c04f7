package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"DelistRadar/pkg/logger"

	"github.com/labstack/echo/v4"
)

func fileLogger(t *testing.T) (*logger.Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "http.log")
	log, err := logger.New(&logger.Config{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log, path
}

func TestRequestLoggingWritesStructuredLine(t *testing.T) {
	log, path := fileLogger(t)

	e := echo.New()
	e.Use(RequestLogging(log))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(b)
	for _, want := range []string{`"uri":"/ping"`, `"method":"GET"`, `"status":200`} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}

func TestRequestLoggingNilLoggerPassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogging(nil))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRecoverConvertsPanicTo500(t *testing.T) {
	log, path := fileLogger(t)

	e := echo.New()
	e.Use(Recover(log))
	e.GET("/boom", func(c echo.Context) error {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Internal Server Error") {
		t.Fatalf("body = %q", rec.Body.String())
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "handler panic") {
		t.Fatalf("panic not logged: %q", string(b))
	}
}
