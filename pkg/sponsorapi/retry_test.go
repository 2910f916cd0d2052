package sponsorapi

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryBackoff(t *testing.T) {
	tests := []struct {
		name          string
		responses     []scriptedResponse
		wantErr       error
		wantCalls     int32
		wantDelays    []time.Duration
		wantErrStatus int
	}{
		{
			name: "recovers after two server errors",
			responses: []scriptedResponse{
				jsonResponse(http.StatusServiceUnavailable, `{}`),
				jsonResponse(http.StatusServiceUnavailable, `{}`),
				jsonResponse(http.StatusOK, `{"ok":true}`),
			},
			wantCalls:  3,
			wantDelays: []time.Duration{time.Second, 2 * time.Second},
		},
		{
			name: "gives up after max attempts",
			responses: []scriptedResponse{
				jsonResponse(http.StatusServiceUnavailable, `{}`),
			},
			wantErr:       ErrServerError,
			wantErrStatus: http.StatusServiceUnavailable,
			wantCalls:     3,
			wantDelays:    []time.Duration{time.Second, 2 * time.Second},
		},
		{
			name: "unauthorized is final",
			responses: []scriptedResponse{
				jsonResponse(http.StatusUnauthorized, `{}`),
			},
			wantErr:       ErrUnauthorized,
			wantErrStatus: http.StatusUnauthorized,
			wantCalls:     1,
		},
		{
			name: "forbidden is final",
			responses: []scriptedResponse{
				jsonResponse(http.StatusForbidden, `{}`),
			},
			wantErr:       ErrForbidden,
			wantErrStatus: http.StatusForbidden,
			wantCalls:     1,
		},
		{
			name: "not found is retried",
			responses: []scriptedResponse{
				jsonResponse(http.StatusNotFound, `{}`),
				jsonResponse(http.StatusOK, `[]`),
			},
			wantCalls:  2,
			wantDelays: []time.Duration{time.Second},
		},
		{
			name: "validation errors are retried",
			responses: []scriptedResponse{
				jsonResponse(http.StatusBadRequest, `{"error":"Name required"}`),
			},
			wantErr:       ErrRequestFailed,
			wantErrStatus: http.StatusBadRequest,
			wantCalls:     3,
			wantDelays:    []time.Duration{time.Second, 2 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, calls := scriptedServer(t, tt.responses...)
			client, sleeps := newTestClient(t, server.URL)

			res, err := client.Get(context.Background(), "/sponsors/")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				apiErr, ok := AsAPIError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantErrStatus, apiErr.Status)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, res)
			}
			assert.Equal(t, tt.wantCalls, *calls)
			assert.Equal(t, tt.wantDelays, sleeps.Delays())
		})
	}
}

func TestRetryCustomPolicy(t *testing.T) {
	server, calls := scriptedServer(t, jsonResponse(http.StatusInternalServerError, `{}`))
	client, sleeps := newTestClient(t, server.URL, func(o *Options) {
		o.Retry = RetryPolicy{MaxAttempts: 4, InitialDelay: 100 * time.Millisecond}
	})

	_, err := client.Get(context.Background(), "/events/")
	require.Error(t, err)
	assert.EqualValues(t, 4, *calls)
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
	}, sleeps.Delays())
}

func TestRetrySingleAttempt(t *testing.T) {
	server, calls := scriptedServer(t, jsonResponse(http.StatusBadGateway, `{}`))
	client, sleeps := newTestClient(t, server.URL, func(o *Options) {
		o.Retry = RetryPolicy{MaxAttempts: 1, InitialDelay: time.Second}
	})

	_, err := client.Get(context.Background(), "/events/")
	require.Error(t, err)
	assert.EqualValues(t, 1, *calls)
	assert.Empty(t, sleeps.Delays())
}

func TestRetryStopsWhenSleepInterrupted(t *testing.T) {
	r := newRetryController(DefaultRetryPolicy(), func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}, DefaultLogger{})

	attempts := 0
	failure := &APIError{Status: http.StatusServiceUnavailable, Message: MsgServerError, kind: ErrServerError}
	_, err := r.run(context.Background(), func(ctx context.Context, attempt int) (*Result, error) {
		attempts++
		return nil, failure
	})

	assert.Same(t, failure, err)
	assert.Equal(t, 1, attempts)
}

func TestShouldRetry(t *testing.T) {
	assert.False(t, shouldRetry(errors.New("plain")))
	assert.False(t, shouldRetry(&APIError{Status: http.StatusUnauthorized}))
	assert.False(t, shouldRetry(&APIError{Status: http.StatusForbidden}))
	assert.False(t, shouldRetry(&APIError{kind: ErrCanceled}))
	assert.False(t, shouldRetry(&APIError{kind: ErrInvalidRequest}))
	assert.True(t, shouldRetry(&APIError{Status: http.StatusNotFound, kind: ErrNotFound}))
	assert.True(t, shouldRetry(&APIError{Status: http.StatusTooManyRequests, kind: ErrRequestFailed}))
	assert.True(t, shouldRetry(&APIError{kind: ErrTimeout}))
	assert.True(t, shouldRetry(&APIError{kind: ErrNetwork}))
}

func TestSleepWithContext(t *testing.T) {
	assert.NoError(t, sleepWithContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := sleepWithContext(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
