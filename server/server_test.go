package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"instawatch/models"

	"github.com/gin-gonic/gin"
)

type fakeSource struct {
	collected bool
}

func (f *fakeSource) Summary(context.Context) models.StatusSummary {
	return models.StatusSummary{Status: models.StatusPartial, InstaPyProcesses: 1, Timestamp: time.Now()}
}

func (f *fakeSource) Collect(ctx context.Context) models.StatusReport {
	f.collected = true
	return models.StatusReport{
		Summary:          f.Summary(ctx),
		InstaPyProcesses: []models.ProcessSample{{PID: 42, Name: "python3"}},
		FirefoxProcesses: []models.ProcessSample{},
		XvfbProcesses:    []models.ProcessSample{},
		LogFiles:         []models.LogFileInfo{},
	}
}

func serve(t *testing.T, src StatusSource, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	NewRouter(src).ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(t, &fakeSource{}, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestStatusSummary(t *testing.T) {
	src := &fakeSource{}
	rec := serve(t, src, "/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var summary models.StatusSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Status != models.StatusPartial {
		t.Fatalf("expected partial, got %q", summary.Status)
	}
	if src.collected {
		t.Fatalf("summary endpoint must not collect the full report")
	}
}

func TestStatusReport(t *testing.T) {
	rec := serve(t, &fakeSource{}, "/status/report")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"summary", "instapy_processes", "firefox_processes", "xvfb_processes", "system_info", "log_files", "database_info"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("expected key %q", key)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, "127.0.0.1:0", &fakeSource{}) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
