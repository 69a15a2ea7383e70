package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"park_palace/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample per family so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveExternal("backend", "hotel", 200, 3*time.Millisecond)
	observability.ObserveRender("rooms-container", errors.New("boom"))
	observability.ObserveNotification("success", "created")
	observability.ObserveBooking("confirmed")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"parkpalace_http_requests_total",
		"parkpalace_external_requests_total",
		`parkpalace_container_renders_total{container="rooms-container",outcome="error"}`,
		"parkpalace_notification_events_total",
		"parkpalace_booking_submissions_total",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}
