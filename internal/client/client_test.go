package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/tracing"
)

type staticAuthorizer struct {
	value string
}

func (a staticAuthorizer) AuthorizationHeader() (string, bool) {
	return a.value, a.value != ""
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Options{
		BaseURL:      srv.URL,
		Timeout:      2 * time.Second,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	})
}

func TestAuthorizationInjection(t *testing.T) {
	var got atomic.Value
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()
	call := Call{Method: http.MethodGet, Route: "/api/dashboard/stats"}

	t.Run("no authorizer", func(t *testing.T) {
		_, err := c.Do(ctx, call)
		require.NoError(t, err)
		assert.Equal(t, "", got.Load())
	})

	t.Run("authorizer with token", func(t *testing.T) {
		c.SetAuthorizer(staticAuthorizer{value: "Bearer abc"})
		_, err := c.Do(ctx, call)
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc", got.Load())
	})

	t.Run("authorizer without token", func(t *testing.T) {
		c.SetAuthorizer(staticAuthorizer{})
		_, err := c.Do(ctx, call)
		require.NoError(t, err)
		assert.Equal(t, "", got.Load())
	})

	t.Run("anonymous context", func(t *testing.T) {
		c.SetAuthorizer(staticAuthorizer{value: "Bearer abc"})
		_, err := c.Do(Anonymous(ctx), call)
		require.NoError(t, err)
		assert.Equal(t, "", got.Load())
	})
}

func TestRequestID(t *testing.T) {
	ids := make(chan string, 2)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get(RequestIDHeader)
	})

	for i := 0; i < 2; i++ {
		_, err := c.Do(context.Background(), Call{Method: http.MethodGet, Route: "/"})
		require.NoError(t, err)
	}

	first, second := <-ids, <-ids
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}

func TestTracePropagation(t *testing.T) {
	var got atomic.Value
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get(tracing.Header))
		w.WriteHeader(http.StatusNoContent)
	})
	call := Call{Method: http.MethodGet, Route: "/api/campaigns"}

	ctx := tracing.WithTraceID(context.Background(), "trace-abc")
	_, err := c.Do(ctx, call)
	require.NoError(t, err)
	assert.Equal(t, "trace-abc", got.Load())

	_, err = c.Do(context.Background(), call)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Load())
	assert.NotEqual(t, "trace-abc", got.Load())
}

func TestFormAndJSONBodies(t *testing.T) {
	type captured struct {
		contentType string
		body        string
		path        string
		query       string
	}
	var last atomic.Value
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		last.Store(captured{
			contentType: r.Header.Get("Content-Type"),
			body:        string(body),
			path:        r.URL.Path,
			query:       r.URL.RawQuery,
		})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	ctx := context.Background()

	t.Run("form", func(t *testing.T) {
		_, err := c.Do(ctx, Call{
			Method: http.MethodPost,
			Route:  "/api/auth/login",
			Form:   map[string]string{"username": "user", "password": "pass"},
		})
		require.NoError(t, err)

		got := last.Load().(captured)
		assert.Contains(t, got.contentType, "application/x-www-form-urlencoded")
		form, err := url.ParseQuery(got.body)
		require.NoError(t, err)
		assert.Equal(t, "user", form.Get("username"))
		assert.Equal(t, "pass", form.Get("password"))
	})

	t.Run("json with path and query", func(t *testing.T) {
		var result struct {
			OK bool `json:"ok"`
		}
		_, err := c.Do(ctx, Call{
			Method:     http.MethodPut,
			Route:      "/api/instagram-accounts/{id}",
			PathParams: map[string]string{"id": "7"},
			Query:      url.Values{"dry_run": {"1"}},
			Body:       map[string]bool{"is_active": false},
			Result:     &result,
		})
		require.NoError(t, err)
		assert.True(t, result.OK)

		got := last.Load().(captured)
		assert.Contains(t, got.contentType, "application/json")
		assert.JSONEq(t, `{"is_active":false}`, got.body)
		assert.Equal(t, "/api/instagram-accounts/7", got.path)
		assert.Equal(t, "dry_run=1", got.query)
	})
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"fastapi string detail", http.StatusUnauthorized, `{"detail":"Incorrect username or password"}`, "Incorrect username or password"},
		{"fastapi validation detail", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"bad value"}]}`, "field required; bad value"},
		{"error field", http.StatusBadRequest, `{"error":"Account already exists"}`, "Account already exists"},
		{"plain text", http.StatusBadRequest, `nope`, "nope"},
		{"empty body", http.StatusNotFound, ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Do(context.Background(), Call{Method: http.MethodPost, Route: "/api/x"})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
			assert.True(t, IsStatus(err, tt.status))
			assert.Contains(t, apiErr.Error(), "POST /api/x")
		})
	}
}

func TestDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":`))
	})

	var out map[string]string
	_, err := c.Do(context.Background(), Call{Method: http.MethodGet, Route: "/", Result: &out})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestUnauthorizedHook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	var calls atomic.Int32
	var rejected atomic.Value
	c.OnUnauthorized(func(ctx context.Context, authorization string) {
		calls.Add(1)
		rejected.Store(authorization)
	})
	ctx := context.Background()
	call := Call{Method: http.MethodGet, Route: "/api/prospects"}

	_, err := c.Do(ctx, call)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, int32(0), calls.Load(), "requests without credentials do not trigger the hook")

	c.SetAuthorizer(staticAuthorizer{value: "Bearer stale"})
	_, _ = c.Do(Anonymous(ctx), call)
	assert.Equal(t, int32(0), calls.Load(), "anonymous requests do not trigger the hook")

	_, _ = c.Do(ctx, call)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "Bearer stale", rejected.Load())
}

func TestRetries(t *testing.T) {
	t.Run("idempotent request retried on 503", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		c := New(Options{BaseURL: srv.URL, MaxRetries: 3, RetryWaitMin: time.Millisecond, RetryWaitMax: 2 * time.Millisecond})
		_, err := c.Do(context.Background(), Call{Method: http.MethodGet, Route: "/api/campaigns"})
		require.NoError(t, err)
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("post not retried", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := New(Options{BaseURL: srv.URL, MaxRetries: 3, RetryWaitMin: time.Millisecond, RetryWaitMax: 2 * time.Millisecond})
		_, err := c.Do(context.Background(), Call{Method: http.MethodPost, Route: "/api/prospects/{id}/send-message", PathParams: map[string]string{"id": "1"}})
		assert.True(t, IsStatus(err, http.StatusServiceUnavailable))
		assert.Equal(t, int32(1), hits.Load())
	})
}

func TestCircuitBreaker(t *testing.T) {
	t.Run("server errors open the circuit", func(t *testing.T) {
		var hits atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		})
		ctx := context.Background()
		call := Call{Method: http.MethodPost, Route: "/api/campaigns"}

		for i := 0; i < 5; i++ {
			_, err := c.Do(ctx, call)
			require.True(t, IsStatus(err, http.StatusInternalServerError))
		}
		assert.Equal(t, resilience.StateOpen, c.Breaker.State())

		_, err := c.Do(ctx, call)
		assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
		assert.Equal(t, int32(5), hits.Load())
	})

	t.Run("client errors do not", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		for i := 0; i < 10; i++ {
			_, _ = c.Do(context.Background(), Call{Method: http.MethodPost, Route: "/api/auth/login"})
		}
		assert.Equal(t, resilience.StateClosed, c.Breaker.State())
	})
}

func TestRateLimitHonorsContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	c.SetRateLimit(0.001)

	ctx := context.Background()
	_, err := c.Request(ctx)
	require.NoError(t, err, "first request uses the burst")

	ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	req, err := c.Request(ctx)
	assert.Error(t, err)
	assert.Nil(t, req)
}

func TestMetricsRecorded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	c := New(Options{BaseURL: srv.URL, Metrics: metrics})

	_, err := c.Do(context.Background(), Call{Method: http.MethodGet, Route: "/api/deployments"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.BackendRequests.WithLabelValues("GET", "/api/deployments", "200")))
}
