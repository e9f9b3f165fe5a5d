package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveSlotOp(t *testing.T) {
	m := New()
	m.ObserveSlotOp("add_slot", "ok")
	m.ObserveSlotOp("add_slot", "ok")
	m.ObserveSlotOp("add_slot", "error")

	require.Equal(t, 2.0, testutil.ToFloat64(m.SlotOpsTotal.WithLabelValues("add_slot", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SlotOpsTotal.WithLabelValues("add_slot", "error")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveSlotOp("add_slot", "ok")
	m.ObserveAuditFailure()
}

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/v1/campaigns/{campaignID}/slots", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/7/slots", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/campaigns/{campaignID}/slots", "200")))
}
