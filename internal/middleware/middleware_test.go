package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tucing-suites-calendar/internal/platform/logger"
	"tucing-suites-calendar/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return auth.Claims{UserID: "staff"}, nil
}

func whoami(w http.ResponseWriter, r *http.Request) {
	c, _ := GetClaims(r.Context())
	_, _ = w.Write([]byte(c.UserID))
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthContext_Sources(t *testing.T) {
	h := AuthContext(stubVerifier{})(RequireClaims(http.HandlerFunc(whoami)))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "staff", rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/ws?token=good", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/ws?token=bad", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthContext_DevMode(t *testing.T) {
	h := AuthContext(nil)(RequireClaims(http.HandlerFunc(whoami)))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Debug-User-ID", "front-desk")
	rec := serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "front-desk", rec.Body.String())

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type recordingObserver struct {
	method, route string
	status        int
}

func (o *recordingObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	o.method, o.route, o.status = method, route, status
}

func TestAccessLog_UsesRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Info, Format: logger.FormatJSON, Output: &buf})
	obs := &recordingObserver{}

	r := chi.NewRouter()
	r.Use(AccessLog(log, obs))
	r.Get("/bookings/{bookingID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/bookings/abc", nil))

	assert.Equal(t, "GET", obs.method)
	assert.Equal(t, "/bookings/{bookingID}", obs.route)
	assert.Equal(t, http.StatusTeapot, obs.status)
	assert.Contains(t, buf.String(), `"msg":"http request"`)
	assert.Contains(t, buf.String(), `"path":"/bookings/abc"`)
}

func TestRecover_LogsAndAnswers500(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf})

	h := Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), `"panic":"boom"`)
}
