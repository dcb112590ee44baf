package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-care-insights/internal/platform/logger"
)

type captured struct {
	level  string
	fields map[string]any
}

type captureLogger struct {
	entries *[]captured
}

func (c captureLogger) With(map[string]any) logger.Logger  { return c }
func (c captureLogger) Debug(msg string, f map[string]any) { c.add("debug", f) }
func (c captureLogger) Info(msg string, f map[string]any)  { c.add("info", f) }
func (c captureLogger) Warn(msg string, f map[string]any)  { c.add("warn", f) }
func (c captureLogger) Error(msg string, f map[string]any) { c.add("error", f) }

func (c captureLogger) add(level string, f map[string]any) {
	*c.entries = append(*c.entries, captured{level: level, fields: f})
}

func TestRequestLog_LevelByStatus(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{http.StatusOK, "debug"},
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	}

	for _, tc := range cases {
		var entries []captured
		h := AuthContext(nil)(RequestLog(captureLogger{entries: &entries})(
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}),
		))

		req := httptest.NewRequest(http.MethodGet, "/pets", nil)
		req.Header.Set("X-Debug-User-ID", "u1")
		h.ServeHTTP(httptest.NewRecorder(), req)

		if len(entries) != 1 {
			t.Fatalf("status %d: expected 1 entry, got %d", tc.status, len(entries))
		}
		got := entries[0]
		if got.level != tc.want {
			t.Fatalf("status %d: expected %s, got %s", tc.status, tc.want, got.level)
		}
		if got.fields["status"] != tc.status || got.fields["user_id"] != "u1" || got.fields["path"] != "/pets" {
			t.Fatalf("unexpected fields: %+v", got.fields)
		}
	}
}
