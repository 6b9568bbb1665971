package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jmorales/shopdesk/internal/session"
)

// fakeSessions is a session provider with a fixed session.
type fakeSessions struct {
	sess *session.Session
}

func (f fakeSessions) Current() *session.Session { return f.sess }

func testSessions() fakeSessions {
	return fakeSessions{sess: &session.Session{
		Token: "test-token",
		Claims: session.Claims{
			UserID: "user-1",
			OrgID:  "org-1",
		},
	}}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, testSessions(), zerolog.Nop())
}

func TestGetAttachesAuthHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "org-1", r.Header.Get("X-Org-ID"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	})

	var out map[string]string
	require.NoError(t, c.Get(context.Background(), "/api/ping", &out))
	require.Equal(t, "yes", out["ok"])
}

func TestGetUnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"id":"c1","name":"Alice"}}`))
	})

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, c.Get(context.Background(), "/api/customers/c1", &out))
	require.Equal(t, "c1", out.ID)
	require.Equal(t, "Alice", out.Name)
}

func TestGetAcceptsBarePayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"c1"},{"id":"c2"}]`))
	})

	var out []struct {
		ID string `json:"id"`
	}
	require.NoError(t, c.Get(context.Background(), "/api/customers", &out))
	require.Len(t, out, 2)
	require.Equal(t, "c2", out[1].ID)
}

func TestUnauthorizedBecomesAuthError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := c.Get(context.Background(), "/api/customers", nil)
	require.True(t, IsAuthError(err))
}

func TestNotFoundWrapsSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.Delete(context.Background(), "/api/customers/gone")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestValidationDetailsBecomeValidationError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"success": false,
			"message": "validation failed",
			"details": [{"field":"email","message":"must be a valid email address"}]
		}`))
	})

	err := c.Post(context.Background(), "/api/customers", map[string]string{}, nil)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Fields, 1)
	require.Equal(t, "email", ve.Fields[0].Field)
}

func TestNestedErrorObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"success": false,
			"error": {"message":"bad amount","details":[{"field":"amount","message":"must be greater than zero"}]}
		}`))
	})

	err := c.Post(context.Background(), "/api/refunds", map[string]string{}, nil)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	require.Equal(t, "amount", ve.Fields[0].Field)
}

func TestRateLimitRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"id":"c1"}`))
	})

	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, c.Get(context.Background(), "/api/customers/c1", &out))
	require.Equal(t, int32(2), calls.Load())
	require.Equal(t, "c1", out.ID)
}

func TestNoSessionFailsFast(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, fakeSessions{}, zerolog.Nop())
	err := c.Get(context.Background(), "/api/customers", nil)
	require.ErrorIs(t, err, session.ErrNoSession)
	require.Zero(t, calls.Load())
}

func TestMessageFallback(t *testing.T) {
	require.Equal(t, "", Message(nil))
	require.Equal(t, "session expired", Message(&AuthError{Message: "session expired"}))
	require.Equal(t, fallbackMessage, Message(&serverError{Status: 500}))
	require.Equal(t, "boom", Message(&serverError{Status: 500, Message: "boom"}))
}
