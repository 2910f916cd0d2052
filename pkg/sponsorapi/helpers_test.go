package sponsorapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// sleepRecorder replaces the retry sleep so tests observe delays without waiting.
type sleepRecorder struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

func (s *sleepRecorder) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

// fakeNavigator records redirects.
type fakeNavigator struct {
	mu       sync.Mutex
	location string
	visited  []string
}

func (n *fakeNavigator) CurrentLocation() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *fakeNavigator) NavigateTo(location string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = location
	n.visited = append(n.visited, location)
}

func (n *fakeNavigator) Visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.visited...)
}

// newTestClient points a client at baseURL with recorded sleeps.
func newTestClient(t *testing.T, baseURL string, mutate ...func(*Options)) (*Client, *sleepRecorder) {
	t.Helper()

	creds, err := NewCredentialStore(NewMemoryStorage(), nil)
	require.NoError(t, err)

	opts := Options{
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		Retry:       DefaultRetryPolicy(),
		Credentials: creds,
	}
	for _, m := range mutate {
		m(&opts)
	}

	client := NewClient(opts)
	recorder := &sleepRecorder{}
	client.retry.sleep = recorder.sleep
	return client, recorder
}

type scriptedResponse struct {
	status      int
	contentType string
	body        string
}

// scriptedServer answers with responses in order, repeating the last one.
func scriptedServer(t *testing.T, responses ...scriptedResponse) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(atomic.AddInt32(&calls, 1)) - 1
		if n >= len(responses) {
			n = len(responses) - 1
		}
		resp := responses[n]
		if resp.contentType != "" {
			w.Header().Set("Content-Type", resp.contentType)
		}
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func jsonResponse(status int, body string) scriptedResponse {
	return scriptedResponse{status: status, contentType: "application/json", body: body}
}
