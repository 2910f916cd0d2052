package app

import (
	"context"

	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

// SDK defines the interface for interacting with the sponsorship API.
// This allows for mocking in tests.
type SDK interface {
	Authenticated() bool
	Login(ctx context.Context, email, password string) (*sponsorapi.LoginResponse, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*sponsorapi.User, error)
	CheckAuth(ctx context.Context) (*sponsorapi.AuthStatus, error)

	ListSponsors(ctx context.Context) ([]sponsorapi.Sponsor, error)
	GetSponsor(ctx context.Context, id int) (*sponsorapi.Sponsor, error)
	CreateSponsor(ctx context.Context, in sponsorapi.SponsorInput) (*sponsorapi.Sponsor, error)
	UpdateSponsor(ctx context.Context, id int, in sponsorapi.SponsorInput) (*sponsorapi.Sponsor, error)
	DeleteSponsor(ctx context.Context, id int) error

	ListEvents(ctx context.Context) ([]sponsorapi.Event, error)
	GetEvent(ctx context.Context, id int) (*sponsorapi.Event, error)
	CreateEvent(ctx context.Context, in sponsorapi.EventInput) (*sponsorapi.Event, error)
	UpdateEvent(ctx context.Context, id int, in sponsorapi.EventInput) (*sponsorapi.Event, error)
	DeleteEvent(ctx context.Context, id int) error

	ListSponsorships(ctx context.Context, filter sponsorapi.SponsorshipFilter) ([]sponsorapi.Sponsorship, error)
	GetSponsorship(ctx context.Context, id int) (*sponsorapi.Sponsorship, error)
	CreateSponsorship(ctx context.Context, in sponsorapi.SponsorshipInput) (*sponsorapi.Sponsorship, error)
	UpdateSponsorship(ctx context.Context, id int, in sponsorapi.SponsorshipInput) (*sponsorapi.Sponsorship, error)
	DeleteSponsorship(ctx context.Context, id int) error
	SponsorshipStats(ctx context.Context) (*sponsorapi.SponsorshipStats, error)

	GetSettings(ctx context.Context) (*sponsorapi.SettingsResponse, error)
	UpdateSettings(ctx context.Context, changes sponsorapi.Settings) (*sponsorapi.SettingsUpdate, error)
	BackupSettings(ctx context.Context) ([]byte, error)
	RestoreSettings(ctx context.Context, backup []byte) (*sponsorapi.SettingsRestore, error)
	ResetSettings(ctx context.Context) (*sponsorapi.SettingsReset, error)
	SystemInfo(ctx context.Context) (*sponsorapi.SystemInfo, error)

	AnalyticsOverview(ctx context.Context) (*sponsorapi.AnalyticsOverview, error)
	AnalyticsTrends(ctx context.Context) (*sponsorapi.Trends, error)
	AnalyticsROI(ctx context.Context) (*sponsorapi.ROIReport, error)
	AnalyticsReports(ctx context.Context) (*sponsorapi.Reports, error)
	AnalyticsDashboard(ctx context.Context) (*sponsorapi.DashboardAnalytics, error)

	Upload(ctx context.Context, path string, file sponsorapi.UploadFile, onProgress sponsorapi.ProgressFunc) (*sponsorapi.Result, error)
}

// The live client is the production SDK.
var _ SDK = (*sponsorapi.Client)(nil)
