package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/debnit/MsmeBazaar-sub001/internal/remote"
)

type stubRemoteStatus struct {
	healthy bool
	last    *remote.HealthStatus
}

func (s *stubRemoteStatus) Healthy() bool                    { return s.healthy }
func (s *stubRemoteStatus) LastStatus() *remote.HealthStatus { return s.last }

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestHealthWithoutRemoteScorer(t *testing.T) {
	s := NewServer(zap.NewNop(), Config{}, nil, nil)

	rec := doRequest(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("expected ok status, got %q", resp.Status)
	}
	if resp.RemoteScorer.Configured {
		t.Fatalf("expected remote scorer to be reported unconfigured")
	}
}

func TestHealthReportsRemoteScorer(t *testing.T) {
	status := &stubRemoteStatus{
		healthy: true,
		last: &remote.HealthStatus{
			Status:       "ok",
			ModelVersion: "v2",
			LastUpdate:   "2026-08-01T00:00:00Z",
		},
	}
	s := NewServer(zap.NewNop(), Config{}, status, nil)

	rec := doRequest(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rs := resp.RemoteScorer
	if !rs.Configured || !rs.Healthy {
		t.Fatalf("expected configured healthy remote scorer, got %+v", rs)
	}
	if rs.ModelVersion != "v2" || rs.Status != "ok" {
		t.Fatalf("expected last health snapshot forwarded, got %+v", rs)
	}
}

func TestMetricsServesRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matchmaking_test_total",
		Help: "Test counter.",
	})
	registry.MustRegister(counter)
	counter.Inc()

	s := NewServer(zap.NewNop(), Config{}, nil, registry)

	rec := doRequest(t, s, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "matchmaking_test_total 1") {
		t.Fatalf("expected registered counter in metrics output, got:\n%s", rec.Body.String())
	}
}
