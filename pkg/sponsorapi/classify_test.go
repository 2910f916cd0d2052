package sponsorapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyResponse(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        any
		wantMessage string
		wantKind    error
		wantDetails any
	}{
		{"unauthorized", 401, map[string]any{"error": "Token expired"}, MsgUnauthorized, ErrUnauthorized, nil},
		{"forbidden with empty body", 403, map[string]any{}, MsgForbidden, ErrForbidden, nil},
		{"forbidden ignores error field", 403, map[string]any{"error": "Admin required"}, MsgForbidden, ErrForbidden, nil},
		{"not found", 404, nil, MsgNotFound, ErrNotFound, nil},
		{"server error", 500, map[string]any{"error": "db down"}, MsgServerError, ErrServerError, nil},
		{"gateway timeout", 504, "upstream", MsgServerError, ErrServerError, nil},
		{
			"application error",
			400,
			map[string]any{"error": "Invalid email format", "details": map[string]any{"field": "email"}},
			"Invalid email format",
			ErrRequestFailed,
			map[string]any{"field": "email"},
		},
		{"empty error field", 400, map[string]any{"error": ""}, MsgGeneric, ErrRequestFailed, nil},
		{"non-string error field", 422, map[string]any{"error": 42}, MsgGeneric, ErrRequestFailed, nil},
		{"text body", 409, "Conflict", MsgGeneric, ErrRequestFailed, nil},
		{"array body", 400, []any{"x"}, MsgGeneric, ErrRequestFailed, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClassifier(nil, nil, nil)
			apiErr := c.ClassifyResponse(tt.status, http.StatusText(tt.status), tt.body)

			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.ErrorIs(t, apiErr, tt.wantKind)
			assert.Equal(t, tt.wantDetails, apiErr.Details)
		})
	}
}

func TestClassifyResponseIsDeterministic(t *testing.T) {
	c := NewClassifier(nil, nil, nil)
	body := map[string]any{"error": "Sponsor not found", "details": "id=9"}

	first := c.ClassifyResponse(http.StatusBadRequest, "Bad Request", body)
	second := c.ClassifyResponse(http.StatusBadRequest, "Bad Request", body)
	assert.Equal(t, first, second)
}

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		failure     TransportFailure
		wantMessage string
		wantKind    error
	}{
		{FailureNetwork, MsgNetwork, ErrNetwork},
		{FailureTimeout, MsgTimeout, ErrTimeout},
		{FailureCanceled, MsgCanceled, ErrCanceled},
		{FailureInvalidResponse, MsgInvalidResponse, ErrInvalidResponse},
		{FailureInvalidRequest, MsgInvalidRequest, ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.wantMessage, func(t *testing.T) {
			apiErr := NewClassifier(nil, nil, nil).ClassifyTransport(tt.failure, context.DeadlineExceeded)
			assert.Equal(t, 0, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.ErrorIs(t, apiErr, tt.wantKind)
			assert.ErrorIs(t, apiErr, context.DeadlineExceeded)
		})
	}
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	tests := []struct {
		name        string
		location    string
		wantVisited []string
	}{
		{"redirects from another page", "/sponsors", []string{LandingLocation}},
		{"stays on landing page", LandingLocation, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			require.NoError(t, storage.Set(AuthTokenKey, "stale"))
			creds, err := NewCredentialStore(storage, nil)
			require.NoError(t, err)
			nav := &fakeNavigator{location: tt.location}

			apiErr := NewClassifier(creds, nav, nil).ClassifyResponse(http.StatusUnauthorized, "Unauthorized", nil)

			assert.Equal(t, MsgUnauthorized, apiErr.Message)
			assert.False(t, creds.HasToken())
			_, ok, _ := storage.Get(AuthTokenKey)
			assert.False(t, ok)
			assert.Equal(t, tt.wantVisited, nav.Visited())
		})
	}
}

func TestUnauthorizedClearsTokenForNextRequest(t *testing.T) {
	var authHeaders []string
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"expired"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	nav := &fakeNavigator{location: "/events"}
	client, sleeps := newTestClient(t, server.URL, func(o *Options) { o.Navigator = nav })
	require.NoError(t, client.SetAuthToken("old-token"))

	_, err := client.Get(context.Background(), "/events/")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, MsgUnauthorized, err.Error())
	assert.Empty(t, sleeps.Delays())
	assert.Equal(t, []string{LandingLocation}, nav.Visited())

	_, err = client.Get(context.Background(), "/events/")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer old-token", ""}, authHeaders)
}

func TestForbiddenEmptyBodyThroughClient(t *testing.T) {
	server, calls := scriptedServer(t, jsonResponse(http.StatusForbidden, `{}`))
	client, sleeps := newTestClient(t, server.URL)

	_, err := client.Delete(context.Background(), "/sponsors/1")
	require.Error(t, err)
	assert.Equal(t, "Access denied. You don't have permission for this action.", err.Error())
	assert.EqualValues(t, 1, *calls)
	assert.Empty(t, sleeps.Delays())
}
