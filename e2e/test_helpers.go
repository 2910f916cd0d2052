//go:build e2e

package e2e

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

// E2ETestHelper provides utilities for E2E testing against a running server.
type E2ETestHelper struct {
	Client *sponsorapi.Client
	Config *Config
	TestID string

	sponsors     []int
	events       []int
	sponsorships []int
}

// NewE2ETestHelper logs in with the configured account. Tests are skipped when
// no account is configured.
func NewE2ETestHelper(t *testing.T) *E2ETestHelper {
	t.Helper()

	cfg := LoadConfig()
	if cfg.Email == "" || cfg.Password == "" {
		t.Skip(`
E2E Testing Setup Required:

1. Start the sponsorship API (default http://localhost:5000/api).

2. Export an account that may create and delete records:
   export SPONSORCTL_E2E_EMAIL=admin@example.com
   export SPONSORCTL_E2E_PASSWORD=...

3. Optionally point at another server:
   export SPONSORCTL_E2E_BASE_URL=https://sponsors.example.com/api

4. Then run E2E tests:
   go test -tags=e2e -v ./e2e/...
`)
	}

	helper := &E2ETestHelper{
		Client: sponsorapi.NewClient(sponsorapi.Options{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}),
		Config: cfg,
		TestID: generateTestID(),
	}

	if _, err := helper.Client.Login(context.Background(), cfg.Email, cfg.Password); err != nil {
		t.Fatalf("Failed to log in as %s: %v", cfg.Email, err)
	}

	t.Cleanup(func() {
		helper.Cleanup(t)
	})
	return helper
}

// Name returns a record name unique to this run.
func (h *E2ETestHelper) Name(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, h.TestID)
}

// TrackSponsor schedules a sponsor for deletion at cleanup.
func (h *E2ETestHelper) TrackSponsor(id int) { h.sponsors = append(h.sponsors, id) }

// TrackEvent schedules an event for deletion at cleanup.
func (h *E2ETestHelper) TrackEvent(id int) { h.events = append(h.events, id) }

// TrackSponsorship schedules a sponsorship for deletion at cleanup.
func (h *E2ETestHelper) TrackSponsorship(id int) { h.sponsorships = append(h.sponsorships, id) }

// Cleanup deletes tracked records, sponsorships first, and logs out.
func (h *E2ETestHelper) Cleanup(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if h.Config.Cleanup && h.Client.Authenticated() {
		for _, id := range h.sponsorships {
			if err := h.Client.DeleteSponsorship(ctx, id); err != nil {
				t.Logf("Warning: failed to delete sponsorship %d: %v", id, err)
			}
		}
		for _, id := range h.events {
			if err := h.Client.DeleteEvent(ctx, id); err != nil {
				t.Logf("Warning: failed to delete event %d: %v", id, err)
			}
		}
		for _, id := range h.sponsors {
			if err := h.Client.DeleteSponsor(ctx, id); err != nil {
				t.Logf("Warning: failed to delete sponsor %d: %v", id, err)
			}
		}
	}

	if h.Client.Authenticated() {
		if err := h.Client.Logout(ctx); err != nil {
			t.Logf("Warning: logout failed: %v", err)
		}
	}
}

// LogTestInfo logs information about the current test run.
func (h *E2ETestHelper) LogTestInfo(t *testing.T) {
	t.Helper()
	t.Logf("E2E Test ID: %s", h.TestID)
	t.Logf("API base URL: %s", h.Client.BaseURL())
}

func generateTestID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "e2e"
	}
	return hex.EncodeToString(b)
}
