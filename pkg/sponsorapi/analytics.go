package sponsorapi

import (
	"context"
	"net/http"
)

// AnalyticsOverview is returned by GET /analytics/overview.
type AnalyticsOverview struct {
	TotalEvents            int     `json:"total_events"`
	TotalBudget            float64 `json:"total_budget"`
	TotalRevenue           float64 `json:"total_revenue"`
	TotalSponsorInvestment float64 `json:"total_sponsor_investment"`
	TotalSponsors          int     `json:"total_sponsors"`
	TotalUsers             int     `json:"total_users"`
	TotalFootfall          int     `json:"total_footfall"`
	Profit                 float64 `json:"profit"`
	ROIPercentage          float64 `json:"roi_percentage"`
}

// MonthlyTrend aggregates the events of one month.
type MonthlyTrend struct {
	Month      string  `json:"month"`
	Budget     float64 `json:"budget"`
	Revenue    float64 `json:"revenue"`
	Footfall   int     `json:"footfall"`
	EventCount int     `json:"event_count"`
	Profit     float64 `json:"profit"`
}

// Period is an inclusive date range formatted as YYYY-MM-DD.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Trends is returned by GET /analytics/trends and covers the last twelve months.
type Trends struct {
	Trends []MonthlyTrend `json:"trends"`
	Period Period         `json:"period"`
}

// SponsorROI is one sponsor's investment and average sponsorship ROI.
type SponsorROI struct {
	SponsorID        int     `json:"sponsor_id"`
	SponsorName      string  `json:"sponsor_name"`
	Industry         string  `json:"industry"`
	TotalInvestment  float64 `json:"total_investment"`
	AverageROI       float64 `json:"average_roi"`
	SponsorshipCount int     `json:"sponsorship_count"`
}

// EventROI is one event's return on its budget.
type EventROI struct {
	EventID           int     `json:"event_id"`
	EventName         string  `json:"event_name"`
	EventDate         string  `json:"event_date"`
	Budget            float64 `json:"budget"`
	Revenue           float64 `json:"revenue"`
	SponsorshipAmount float64 `json:"sponsorship_amount"`
	ROIPercentage     float64 `json:"roi_percentage"`
}

// ROIReport is returned by GET /analytics/roi.
type ROIReport struct {
	Sponsors []SponsorROI `json:"sponsors_roi"`
	Events   []EventROI   `json:"events_roi"`
	Summary  struct {
		TotalSponsorsAnalyzed int `json:"total_sponsors_analyzed"`
		TotalEventsAnalyzed   int `json:"total_events_analyzed"`
	} `json:"summary"`
}

// TopSponsor ranks a sponsor by total sponsorship amount.
type TopSponsor struct {
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
}

// TopEvent ranks an event by revenue.
type TopEvent struct {
	Name    string  `json:"name"`
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Budget  float64 `json:"budget"`
	Profit  float64 `json:"profit"`
}

// IndustryTotals groups sponsors by industry. Sponsors without one are
// reported as "Unknown".
type IndustryTotals struct {
	Industry        string  `json:"industry"`
	SponsorCount    int     `json:"sponsor_count"`
	TotalInvestment float64 `json:"total_investment"`
}

// Reports is returned by GET /analytics/reports.
type Reports struct {
	Performance struct {
		Events struct {
			Total       int `json:"total"`
			LastMonth   int `json:"last_month"`
			LastQuarter int `json:"last_quarter"`
			LastYear    int `json:"last_year"`
		} `json:"events"`
		Sponsors struct {
			Total  int `json:"total"`
			Active int `json:"active"`
		} `json:"sponsors"`
		Financial struct {
			LastMonthRevenue float64 `json:"last_month_revenue"`
			LastMonthBudget  float64 `json:"last_month_budget"`
			LastMonthProfit  float64 `json:"last_month_profit"`
		} `json:"financial"`
	} `json:"performance"`
	TopSponsors       []TopSponsor     `json:"top_sponsors"`
	TopEvents         []TopEvent       `json:"top_events"`
	IndustryBreakdown []IndustryTotals `json:"industry_breakdown"`
	GeneratedAt       string           `json:"generated_at"`
}

// DashboardAnalytics is returned by GET /analytics/dashboard.
type DashboardAnalytics struct {
	Overview struct {
		TotalEvents       int `json:"total_events"`
		TotalSponsors     int `json:"total_sponsors"`
		TotalSponsorships int `json:"total_sponsorships"`
		TotalUsers        int `json:"total_users"`
	} `json:"overview"`
	Financial struct {
		TotalBudget     float64 `json:"total_budget"`
		TotalRevenue    float64 `json:"total_revenue"`
		TotalInvestment float64 `json:"total_investment"`
		TotalProfit     float64 `json:"total_profit"`
		TotalFootfall   int     `json:"total_footfall"`
		ROIPercentage   float64 `json:"roi_percentage"`
	} `json:"financial"`
	Metrics struct {
		AvgEventSize        float64 `json:"avg_event_size"`
		SponsorshipPerEvent float64 `json:"sponsorship_per_event"`
		AvgSponsorshipValue float64 `json:"avg_sponsorship_value"`
	} `json:"metrics"`
	RecentActivity struct {
		RecentEvents       int `json:"recent_events"`
		RecentSponsorships int `json:"recent_sponsorships"`
	} `json:"recent_activity"`
	GeneratedAt string `json:"generated_at"`
}

// AnalyticsOverview returns organisation-wide totals.
func (c *Client) AnalyticsOverview(ctx context.Context) (*AnalyticsOverview, error) {
	var resp AnalyticsOverview
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/analytics/overview"}, &resp, "get analytics overview"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyticsTrends returns per-month event totals.
func (c *Client) AnalyticsTrends(ctx context.Context) (*Trends, error) {
	var resp Trends
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/analytics/trends"}, &resp, "get analytics trends"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyticsROI returns the sponsors and events ranked by return.
func (c *Client) AnalyticsROI(ctx context.Context) (*ROIReport, error) {
	var resp ROIReport
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/analytics/roi"}, &resp, "get ROI analytics"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyticsReports returns performance reports over recent periods.
func (c *Client) AnalyticsReports(ctx context.Context) (*Reports, error) {
	var resp Reports
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/analytics/reports"}, &resp, "get analytics reports"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AnalyticsDashboard returns the figures shown on the dashboard page.
func (c *Client) AnalyticsDashboard(ctx context.Context) (*DashboardAnalytics, error) {
	var resp DashboardAnalytics
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/analytics/dashboard"}, &resp, "get dashboard analytics"); err != nil {
		return nil, err
	}
	return &resp, nil
}
