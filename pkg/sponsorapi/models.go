package sponsorapi

// User is an authenticated account.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// AuthStatus is returned by GET /auth/check-auth.
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
	User          User `json:"user"`
}

// MessageResponse is the body of operations that only confirm success.
type MessageResponse struct {
	Message string `json:"message"`
}

type Sponsor struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Industry      string  `json:"industry,omitempty"`
	ContactPerson string  `json:"contact_person,omitempty"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	TotalInvested float64 `json:"total_invested"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

// SponsorInput is the writable subset of a Sponsor.
type SponsorInput struct {
	Name          string `json:"name,omitempty"`
	Industry      string `json:"industry,omitempty"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

type sponsorEnvelope struct {
	Message string  `json:"message"`
	Sponsor Sponsor `json:"sponsor"`
}

type Event struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Budget    float64 `json:"budget"`
	Footfall  int     `json:"footfall"`
	Revenue   float64 `json:"revenue"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// EventInput is the writable subset of an Event. Date is YYYY-MM-DD.
type EventInput struct {
	Name     string   `json:"name,omitempty"`
	Date     string   `json:"date,omitempty"`
	Budget   *float64 `json:"budget,omitempty"`
	Footfall *int     `json:"footfall,omitempty"`
	Revenue  *float64 `json:"revenue,omitempty"`
}

type eventEnvelope struct {
	Message string `json:"message"`
	Event   Event  `json:"event"`
}

type Sponsorship struct {
	ID          int     `json:"id"`
	SponsorID   int     `json:"sponsor_id"`
	SponsorName string  `json:"sponsor_name"`
	EventID     int     `json:"event_id"`
	EventName   string  `json:"event_name"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	ROI         float64 `json:"roi"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// SponsorshipInput is the writable subset of a Sponsorship.
type SponsorshipInput struct {
	SponsorID int      `json:"sponsor_id,omitempty"`
	EventID   int      `json:"event_id,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Status    string   `json:"status,omitempty"`
	ROI       *float64 `json:"roi,omitempty"`
}

// SponsorshipFilter narrows a sponsorship listing. Zero fields are ignored.
type SponsorshipFilter struct {
	SponsorID int
	EventID   int
	Status    string
}

type sponsorshipEnvelope struct {
	Message     string      `json:"message"`
	Sponsorship Sponsorship `json:"sponsorship"`
}

// StatusTotals aggregates sponsorships sharing a status.
type StatusTotals struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// SponsorshipStats is returned by GET /sponsorships/stats.
type SponsorshipStats struct {
	TotalSponsorships int                     `json:"total_sponsorships"`
	TotalAmount       float64                 `json:"total_amount"`
	AverageAmount     float64                 `json:"average_amount"`
	StatusBreakdown   map[string]StatusTotals `json:"status_breakdown"`
}

// Settings is the free-form system settings document.
type Settings map[string]any

// SettingsResponse is returned by GET /settings/.
type SettingsResponse struct {
	Settings    Settings `json:"settings"`
	LastUpdated string   `json:"last_updated"`
}

// SettingsUpdate is returned by PUT /settings/.
type SettingsUpdate struct {
	Message         string   `json:"message"`
	UpdatedSettings Settings `json:"updated_settings"`
	AllSettings     Settings `json:"all_settings"`
	UpdatedAt       string   `json:"updated_at"`
}

// SettingsRestore is returned by POST /settings/restore.
type SettingsRestore struct {
	Message          string   `json:"message"`
	RestoredSettings int      `json:"restored_settings"`
	CurrentSettings  Settings `json:"current_settings"`
	RestoredAt       string   `json:"restored_at"`
}

// SettingsReset is returned by POST /settings/reset.
type SettingsReset struct {
	Message         string   `json:"message"`
	DefaultSettings Settings `json:"default_settings"`
	ResetAt         string   `json:"reset_at"`
}

// SystemInfo is returned by GET /settings/system-info.
type SystemInfo struct {
	Database struct {
		TotalUsers        int `json:"total_users"`
		ActiveUsers       int `json:"active_users"`
		AdminUsers        int `json:"admin_users"`
		TotalSponsors     int `json:"total_sponsors"`
		TotalEvents       int `json:"total_events"`
		TotalSponsorships int `json:"total_sponsorships"`
	} `json:"database"`
	Application struct {
		Version     string `json:"version"`
		Environment string `json:"environment"`
		DebugMode   bool   `json:"debug_mode"`
	} `json:"application"`
	Security struct {
		PasswordMinLength      int `json:"password_min_length"`
		SessionTimeoutMinutes  int `json:"session_timeout_minutes"`
		MaxLoginAttempts       int `json:"max_login_attempts"`
		LockoutDurationMinutes int `json:"lockout_duration_minutes"`
	} `json:"security"`
	CurrentSettings Settings `json:"current_settings"`
	Timestamp       string   `json:"timestamp"`
}
