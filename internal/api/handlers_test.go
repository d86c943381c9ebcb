package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajay-gandhi/alfred4.0/internal/config"
)

func testAPI(trigger func()) *API {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		AdminToken: "letmein",
	}
	return New(cfg, nil, trigger)
}

func login(t *testing.T, api *API) string {
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"token":"letmein"}`))
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.NotEmpty(t, body["token"])
	return body["token"]
}

func TestLoginIssuesToken(t *testing.T) {
	login(t, testAPI(nil))
}

func TestLoginRejectsBadToken(t *testing.T) {
	api := testAPI(nil)
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"token":"wrong"}`))
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	api := testAPI(nil)

	req := httptest.NewRequest("POST", "/api/run", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("POST", "/api/run", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w = httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRunEndpointTriggersRun(t *testing.T) {
	var (
		mu    sync.Mutex
		fired bool
	)
	api := testAPI(func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})
	token := login(t, api)

	req := httptest.NewRequest("POST", "/api/run", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired
	}, time.Second, 10*time.Millisecond)
}
