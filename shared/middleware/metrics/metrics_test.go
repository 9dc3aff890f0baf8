package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/v1/threads/{thread}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/v1/threads/{thread}", "418"))
	for _, id := range []string{"a", "b", "c"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/v1/threads/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/v1/threads/{thread}", "418"))
	assert.Equal(t, 3.0, after-before)

	before = testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ok", "200"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ok", nil))
	after = testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/ok", "200"))
	assert.Equal(t, 1.0, after-before, "implicit 200 is recorded")

	assert.Equal(t, 0.0, testutil.ToFloat64(httpRequestsInFlight))
}
