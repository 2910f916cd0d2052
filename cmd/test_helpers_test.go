package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/tonimelisma/sponsorctl/internal/app"
	"github.com/tonimelisma/sponsorctl/internal/logger"
	"github.com/tonimelisma/sponsorctl/internal/session"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

// MockSDK is a mock implementation of the SDK interface for testing.
type MockSDK struct {
	AuthenticatedFunc func() bool
	LoginFunc         func(email, password string) (*sponsorapi.LoginResponse, error)
	LogoutFunc        func() error
	ProfileFunc       func() (*sponsorapi.User, error)
	CheckAuthFunc     func() (*sponsorapi.AuthStatus, error)

	ListSponsorsFunc  func() ([]sponsorapi.Sponsor, error)
	GetSponsorFunc    func(id int) (*sponsorapi.Sponsor, error)
	CreateSponsorFunc func(in sponsorapi.SponsorInput) (*sponsorapi.Sponsor, error)
	UpdateSponsorFunc func(id int, in sponsorapi.SponsorInput) (*sponsorapi.Sponsor, error)
	DeleteSponsorFunc func(id int) error

	ListEventsFunc  func() ([]sponsorapi.Event, error)
	GetEventFunc    func(id int) (*sponsorapi.Event, error)
	CreateEventFunc func(in sponsorapi.EventInput) (*sponsorapi.Event, error)
	UpdateEventFunc func(id int, in sponsorapi.EventInput) (*sponsorapi.Event, error)
	DeleteEventFunc func(id int) error

	ListSponsorshipsFunc  func(filter sponsorapi.SponsorshipFilter) ([]sponsorapi.Sponsorship, error)
	GetSponsorshipFunc    func(id int) (*sponsorapi.Sponsorship, error)
	CreateSponsorshipFunc func(in sponsorapi.SponsorshipInput) (*sponsorapi.Sponsorship, error)
	UpdateSponsorshipFunc func(id int, in sponsorapi.SponsorshipInput) (*sponsorapi.Sponsorship, error)
	DeleteSponsorshipFunc func(id int) error
	SponsorshipStatsFunc  func() (*sponsorapi.SponsorshipStats, error)

	GetSettingsFunc     func() (*sponsorapi.SettingsResponse, error)
	UpdateSettingsFunc  func(changes sponsorapi.Settings) (*sponsorapi.SettingsUpdate, error)
	BackupSettingsFunc  func() ([]byte, error)
	RestoreSettingsFunc func(backup []byte) (*sponsorapi.SettingsRestore, error)
	ResetSettingsFunc   func() (*sponsorapi.SettingsReset, error)
	SystemInfoFunc      func() (*sponsorapi.SystemInfo, error)

	AnalyticsOverviewFunc  func() (*sponsorapi.AnalyticsOverview, error)
	AnalyticsTrendsFunc    func() (*sponsorapi.Trends, error)
	AnalyticsROIFunc       func() (*sponsorapi.ROIReport, error)
	AnalyticsReportsFunc   func() (*sponsorapi.Reports, error)
	AnalyticsDashboardFunc func() (*sponsorapi.DashboardAnalytics, error)

	UploadFunc func(path string, file sponsorapi.UploadFile, onProgress sponsorapi.ProgressFunc) (*sponsorapi.Result, error)
}

func (m *MockSDK) Authenticated() bool {
	if m.AuthenticatedFunc != nil {
		return m.AuthenticatedFunc()
	}
	return true
}

func (m *MockSDK) Login(ctx context.Context, email, password string) (*sponsorapi.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(email, password)
	}
	return &sponsorapi.LoginResponse{}, nil
}

func (m *MockSDK) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc()
	}
	return nil
}

func (m *MockSDK) Profile(ctx context.Context) (*sponsorapi.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc()
	}
	return &sponsorapi.User{}, nil
}

func (m *MockSDK) CheckAuth(ctx context.Context) (*sponsorapi.AuthStatus, error) {
	if m.CheckAuthFunc != nil {
		return m.CheckAuthFunc()
	}
	return &sponsorapi.AuthStatus{}, nil
}

func (m *MockSDK) ListSponsors(ctx context.Context) ([]sponsorapi.Sponsor, error) {
	if m.ListSponsorsFunc != nil {
		return m.ListSponsorsFunc()
	}
	return nil, nil
}

func (m *MockSDK) GetSponsor(ctx context.Context, id int) (*sponsorapi.Sponsor, error) {
	if m.GetSponsorFunc != nil {
		return m.GetSponsorFunc(id)
	}
	return &sponsorapi.Sponsor{ID: id}, nil
}

func (m *MockSDK) CreateSponsor(ctx context.Context, in sponsorapi.SponsorInput) (*sponsorapi.Sponsor, error) {
	if m.CreateSponsorFunc != nil {
		return m.CreateSponsorFunc(in)
	}
	return &sponsorapi.Sponsor{Name: in.Name}, nil
}

func (m *MockSDK) UpdateSponsor(ctx context.Context, id int, in sponsorapi.SponsorInput) (*sponsorapi.Sponsor, error) {
	if m.UpdateSponsorFunc != nil {
		return m.UpdateSponsorFunc(id, in)
	}
	return &sponsorapi.Sponsor{ID: id}, nil
}

func (m *MockSDK) DeleteSponsor(ctx context.Context, id int) error {
	if m.DeleteSponsorFunc != nil {
		return m.DeleteSponsorFunc(id)
	}
	return nil
}

func (m *MockSDK) ListEvents(ctx context.Context) ([]sponsorapi.Event, error) {
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc()
	}
	return nil, nil
}

func (m *MockSDK) GetEvent(ctx context.Context, id int) (*sponsorapi.Event, error) {
	if m.GetEventFunc != nil {
		return m.GetEventFunc(id)
	}
	return &sponsorapi.Event{ID: id}, nil
}

func (m *MockSDK) CreateEvent(ctx context.Context, in sponsorapi.EventInput) (*sponsorapi.Event, error) {
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(in)
	}
	return &sponsorapi.Event{Name: in.Name}, nil
}

func (m *MockSDK) UpdateEvent(ctx context.Context, id int, in sponsorapi.EventInput) (*sponsorapi.Event, error) {
	if m.UpdateEventFunc != nil {
		return m.UpdateEventFunc(id, in)
	}
	return &sponsorapi.Event{ID: id}, nil
}

func (m *MockSDK) DeleteEvent(ctx context.Context, id int) error {
	if m.DeleteEventFunc != nil {
		return m.DeleteEventFunc(id)
	}
	return nil
}

func (m *MockSDK) ListSponsorships(ctx context.Context, filter sponsorapi.SponsorshipFilter) ([]sponsorapi.Sponsorship, error) {
	if m.ListSponsorshipsFunc != nil {
		return m.ListSponsorshipsFunc(filter)
	}
	return nil, nil
}

func (m *MockSDK) GetSponsorship(ctx context.Context, id int) (*sponsorapi.Sponsorship, error) {
	if m.GetSponsorshipFunc != nil {
		return m.GetSponsorshipFunc(id)
	}
	return &sponsorapi.Sponsorship{ID: id}, nil
}

func (m *MockSDK) CreateSponsorship(ctx context.Context, in sponsorapi.SponsorshipInput) (*sponsorapi.Sponsorship, error) {
	if m.CreateSponsorshipFunc != nil {
		return m.CreateSponsorshipFunc(in)
	}
	return &sponsorapi.Sponsorship{SponsorID: in.SponsorID, EventID: in.EventID}, nil
}

func (m *MockSDK) UpdateSponsorship(ctx context.Context, id int, in sponsorapi.SponsorshipInput) (*sponsorapi.Sponsorship, error) {
	if m.UpdateSponsorshipFunc != nil {
		return m.UpdateSponsorshipFunc(id, in)
	}
	return &sponsorapi.Sponsorship{ID: id, Status: in.Status}, nil
}

func (m *MockSDK) DeleteSponsorship(ctx context.Context, id int) error {
	if m.DeleteSponsorshipFunc != nil {
		return m.DeleteSponsorshipFunc(id)
	}
	return nil
}

func (m *MockSDK) SponsorshipStats(ctx context.Context) (*sponsorapi.SponsorshipStats, error) {
	if m.SponsorshipStatsFunc != nil {
		return m.SponsorshipStatsFunc()
	}
	return &sponsorapi.SponsorshipStats{}, nil
}

func (m *MockSDK) GetSettings(ctx context.Context) (*sponsorapi.SettingsResponse, error) {
	if m.GetSettingsFunc != nil {
		return m.GetSettingsFunc()
	}
	return &sponsorapi.SettingsResponse{}, nil
}

func (m *MockSDK) UpdateSettings(ctx context.Context, changes sponsorapi.Settings) (*sponsorapi.SettingsUpdate, error) {
	if m.UpdateSettingsFunc != nil {
		return m.UpdateSettingsFunc(changes)
	}
	return &sponsorapi.SettingsUpdate{UpdatedSettings: changes}, nil
}

func (m *MockSDK) BackupSettings(ctx context.Context) ([]byte, error) {
	if m.BackupSettingsFunc != nil {
		return m.BackupSettingsFunc()
	}
	return []byte("{}"), nil
}

func (m *MockSDK) RestoreSettings(ctx context.Context, backup []byte) (*sponsorapi.SettingsRestore, error) {
	if m.RestoreSettingsFunc != nil {
		return m.RestoreSettingsFunc(backup)
	}
	return &sponsorapi.SettingsRestore{}, nil
}

func (m *MockSDK) ResetSettings(ctx context.Context) (*sponsorapi.SettingsReset, error) {
	if m.ResetSettingsFunc != nil {
		return m.ResetSettingsFunc()
	}
	return &sponsorapi.SettingsReset{}, nil
}

func (m *MockSDK) SystemInfo(ctx context.Context) (*sponsorapi.SystemInfo, error) {
	if m.SystemInfoFunc != nil {
		return m.SystemInfoFunc()
	}
	return &sponsorapi.SystemInfo{}, nil
}

func (m *MockSDK) AnalyticsOverview(ctx context.Context) (*sponsorapi.AnalyticsOverview, error) {
	if m.AnalyticsOverviewFunc != nil {
		return m.AnalyticsOverviewFunc()
	}
	return &sponsorapi.AnalyticsOverview{}, nil
}

func (m *MockSDK) AnalyticsTrends(ctx context.Context) (*sponsorapi.Trends, error) {
	if m.AnalyticsTrendsFunc != nil {
		return m.AnalyticsTrendsFunc()
	}
	return &sponsorapi.Trends{}, nil
}

func (m *MockSDK) AnalyticsROI(ctx context.Context) (*sponsorapi.ROIReport, error) {
	if m.AnalyticsROIFunc != nil {
		return m.AnalyticsROIFunc()
	}
	return &sponsorapi.ROIReport{}, nil
}

func (m *MockSDK) AnalyticsReports(ctx context.Context) (*sponsorapi.Reports, error) {
	if m.AnalyticsReportsFunc != nil {
		return m.AnalyticsReportsFunc()
	}
	return &sponsorapi.Reports{}, nil
}

func (m *MockSDK) AnalyticsDashboard(ctx context.Context) (*sponsorapi.DashboardAnalytics, error) {
	if m.AnalyticsDashboardFunc != nil {
		return m.AnalyticsDashboardFunc()
	}
	return &sponsorapi.DashboardAnalytics{}, nil
}

func (m *MockSDK) Upload(ctx context.Context, path string, file sponsorapi.UploadFile, onProgress sponsorapi.ProgressFunc) (*sponsorapi.Result, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(path, file, onProgress)
	}
	return &sponsorapi.Result{}, nil
}

var _ app.SDK = (*MockSDK)(nil)

// newTestApp creates a new app instance with a mock SDK for testing.
// Credential-side state lives in a temporary session store.
func newTestApp(t *testing.T, sdk app.SDK) *app.App {
	t.Helper()
	return &app.App{
		SDK:     sdk,
		Storage: session.NewStore(t.TempDir()),
		Logger:  logger.NewSlogLogger(io.Discard, slog.LevelDebug),
	}
}

// captureOutput captures stdout and stderr, returning them as a string.
func captureOutput(t *testing.T, f func()) string {
	t.Helper()

	oldStdout, oldStderr := os.Stdout, os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	os.Stdout = w
	os.Stderr = w

	done := make(chan []byte)
	go func() {
		b, _ := io.ReadAll(r)
		done <- b
	}()

	defer func() {
		os.Stdout, os.Stderr = oldStdout, oldStderr
	}()
	f()
	w.Close()

	return string(<-done)
}
