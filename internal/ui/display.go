// Package ui (display.go) formats sponsors, events, sponsorships, settings and
// account details for the terminal. It also owns the upload progress bar and
// the standard success and error messages.
package ui

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

// Success prints a confirmation to standard output.
func Success(msg string) {
	fmt.Println(msg)
}

// PrintError writes err to standard error. Classified API errors print their
// user-facing message plus any details the server attached.
func PrintError(err error) {
	var apiErr *sponsorapi.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if apiErr.Details != nil {
			fmt.Fprintf(os.Stderr, "Details: %v\n", apiErr.Details)
		}
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}

func formatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := fmt.Sprintf("%.2f", amount)
	intPart, frac, _ := strings.Cut(whole, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

// formatBytes converts a size in bytes to a human-readable IEC string.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatDate shortens an ISO timestamp to its date.
func formatDate(ts string) string {
	if ts == "" {
		return "-"
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999", ts); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format("2006-01-02")
	}
	return ts
}

// DisplayUser prints the authenticated account.
func DisplayUser(user sponsorapi.User) {
	fmt.Printf("Logged in as: %s <%s> (role: %s, ID: %d)\n", user.Name, user.Email, user.Role, user.ID)
}

// DisplaySponsors prints a table of sponsors.
func DisplaySponsors(sponsors []sponsorapi.Sponsor) {
	if len(sponsors) == 0 {
		fmt.Println("No sponsors found.")
		return
	}

	fmt.Printf("%-6s %-30s %-18s %-24s %16s\n", "ID", "Name", "Industry", "Contact", "Total Invested")
	fmt.Println(strings.Repeat("-", 98))
	for _, s := range sponsors {
		fmt.Printf("%-6d %-30.30s %-18.18s %-24.24s %16s\n",
			s.ID, s.Name, orDash(s.Industry), orDash(s.ContactPerson), formatCurrency(s.TotalInvested))
	}
}

// DisplaySponsor prints one sponsor in detail.
func DisplaySponsor(s sponsorapi.Sponsor) {
	fmt.Println("Sponsor:")
	fmt.Printf("  ID:             %d\n", s.ID)
	fmt.Printf("  Name:           %s\n", s.Name)
	fmt.Printf("  Industry:       %s\n", orDash(s.Industry))
	fmt.Printf("  Contact:        %s\n", orDash(s.ContactPerson))
	fmt.Printf("  Email:          %s\n", orDash(s.Email))
	fmt.Printf("  Phone:          %s\n", orDash(s.Phone))
	fmt.Printf("  Total Invested: %s\n", formatCurrency(s.TotalInvested))
	if s.CreatedAt != "" {
		fmt.Printf("  Created:        %s\n", formatDate(s.CreatedAt))
	}
}

// DisplayEvents prints a table of events.
func DisplayEvents(events []sponsorapi.Event) {
	if len(events) == 0 {
		fmt.Println("No events found.")
		return
	}

	fmt.Printf("%-6s %-30s %-12s %14s %10s %14s\n", "ID", "Name", "Date", "Budget", "Footfall", "Revenue")
	fmt.Println(strings.Repeat("-", 91))
	for _, e := range events {
		fmt.Printf("%-6d %-30.30s %-12s %14s %10d %14s\n",
			e.ID, e.Name, orDash(e.Date), formatCurrency(e.Budget), e.Footfall, formatCurrency(e.Revenue))
	}
}

// DisplayEvent prints one event in detail.
func DisplayEvent(e sponsorapi.Event) {
	fmt.Println("Event:")
	fmt.Printf("  ID:       %d\n", e.ID)
	fmt.Printf("  Name:     %s\n", e.Name)
	fmt.Printf("  Date:     %s\n", orDash(e.Date))
	fmt.Printf("  Budget:   %s\n", formatCurrency(e.Budget))
	fmt.Printf("  Footfall: %d\n", e.Footfall)
	fmt.Printf("  Revenue:  %s\n", formatCurrency(e.Revenue))
}

// DisplaySponsorships prints a table of sponsorships.
func DisplaySponsorships(sponsorships []sponsorapi.Sponsorship) {
	if len(sponsorships) == 0 {
		fmt.Println("No sponsorships found.")
		return
	}

	fmt.Printf("%-6s %-24s %-24s %14s %-12s %6s\n", "ID", "Sponsor", "Event", "Amount", "Status", "ROI")
	fmt.Println(strings.Repeat("-", 91))
	for _, sp := range sponsorships {
		fmt.Printf("%-6d %-24.24s %-24.24s %14s %-12s %6.2f\n",
			sp.ID, orDash(sp.SponsorName), orDash(sp.EventName), formatCurrency(sp.Amount), sp.Status, sp.ROI)
	}
}

// DisplaySponsorship prints one sponsorship in detail.
func DisplaySponsorship(sp sponsorapi.Sponsorship) {
	fmt.Println("Sponsorship:")
	fmt.Printf("  ID:      %d\n", sp.ID)
	fmt.Printf("  Sponsor: %s (ID %d)\n", orDash(sp.SponsorName), sp.SponsorID)
	fmt.Printf("  Event:   %s (ID %d)\n", orDash(sp.EventName), sp.EventID)
	fmt.Printf("  Amount:  %s\n", formatCurrency(sp.Amount))
	fmt.Printf("  Status:  %s\n", sp.Status)
	fmt.Printf("  ROI:     %.2f\n", sp.ROI)
}

// DisplaySponsorshipStats prints totals and the per-status breakdown.
func DisplaySponsorshipStats(stats sponsorapi.SponsorshipStats) {
	fmt.Println("Sponsorship Statistics:")
	fmt.Printf("  Total Sponsorships: %d\n", stats.TotalSponsorships)
	fmt.Printf("  Total Amount:       %s\n", formatCurrency(stats.TotalAmount))
	fmt.Printf("  Average Amount:     %s\n", formatCurrency(stats.AverageAmount))
	if len(stats.StatusBreakdown) == 0 {
		return
	}

	fmt.Println("  By Status:")
	statuses := make([]string, 0, len(stats.StatusBreakdown))
	for status := range stats.StatusBreakdown {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		totals := stats.StatusBreakdown[status]
		fmt.Printf("    %-12s %4d  %s\n", status, totals.Count, formatCurrency(totals.TotalAmount))
	}
}

// DisplaySettings prints settings sorted by key.
func DisplaySettings(settings sponsorapi.Settings, lastUpdated string) {
	if len(settings) == 0 {
		fmt.Println("No settings found.")
		return
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println("System Settings:")
	for _, k := range keys {
		fmt.Printf("  %-28s %v\n", k, settings[k])
	}
	if lastUpdated != "" {
		fmt.Printf("Last updated: %s\n", lastUpdated)
	}
}

// Dashboard is the summary shown by the dashboard command.
type Dashboard struct {
	Analytics sponsorapi.DashboardAnalytics
	Sponsors  []sponsorapi.Sponsor
}

// DisplayDashboard prints headline numbers and the top sponsors.
func DisplayDashboard(d Dashboard) {
	a := d.Analytics
	fmt.Println("Dashboard")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Sponsors:            %d\n", a.Overview.TotalSponsors)
	fmt.Printf("Events:              %d\n", a.Overview.TotalEvents)
	fmt.Printf("Sponsorships:        %d\n", a.Overview.TotalSponsorships)
	fmt.Printf("Active Users:        %d\n", a.Overview.TotalUsers)
	fmt.Printf("Sponsorship Revenue: %s\n", formatCurrency(a.Financial.TotalInvestment))
	fmt.Printf("Event Budget:        %s\n", formatCurrency(a.Financial.TotalBudget))
	fmt.Printf("Event Revenue:       %s\n", formatCurrency(a.Financial.TotalRevenue))
	fmt.Printf("Profit:              %s (ROI %.2f%%)\n", formatCurrency(a.Financial.TotalProfit), a.Financial.ROIPercentage)
	fmt.Printf("Total Footfall:      %d\n", a.Financial.TotalFootfall)
	fmt.Printf("Avg Event Size:      %.2f\n", a.Metrics.AvgEventSize)
	fmt.Printf("Avg Sponsorship:     %s\n", formatCurrency(a.Metrics.AvgSponsorshipValue))
	fmt.Printf("Last 30 Days:        %d event(s), %d sponsorship(s)\n",
		a.RecentActivity.RecentEvents, a.RecentActivity.RecentSponsorships)

	if len(d.Sponsors) == 0 {
		return
	}
	top := append([]sponsorapi.Sponsor(nil), d.Sponsors...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].TotalInvested > top[j].TotalInvested })
	if len(top) > 5 {
		top = top[:5]
	}
	fmt.Println()
	fmt.Println("Top Sponsors:")
	for i, s := range top {
		fmt.Printf("  %d. %-30.30s %s\n", i+1, s.Name, formatCurrency(s.TotalInvested))
	}
}

// DisplayAnalyticsOverview prints organisation-wide totals.
func DisplayAnalyticsOverview(o sponsorapi.AnalyticsOverview) {
	fmt.Println("Analytics Overview:")
	fmt.Printf("  Events:             %d\n", o.TotalEvents)
	fmt.Printf("  Sponsors:           %d\n", o.TotalSponsors)
	fmt.Printf("  Active Users:       %d\n", o.TotalUsers)
	fmt.Printf("  Budget:             %s\n", formatCurrency(o.TotalBudget))
	fmt.Printf("  Revenue:            %s\n", formatCurrency(o.TotalRevenue))
	fmt.Printf("  Sponsor Investment: %s\n", formatCurrency(o.TotalSponsorInvestment))
	fmt.Printf("  Profit:             %s\n", formatCurrency(o.Profit))
	fmt.Printf("  ROI:                %.2f%%\n", o.ROIPercentage)
	fmt.Printf("  Footfall:           %d\n", o.TotalFootfall)
}

// DisplayTrends prints one row per month.
func DisplayTrends(t sponsorapi.Trends) {
	if len(t.Trends) == 0 {
		fmt.Println("No events in the last twelve months.")
		return
	}
	fmt.Printf("Monthly trends (%s to %s)\n", t.Period.Start, t.Period.End)
	fmt.Printf("%-8s %7s %14s %14s %14s %10s\n", "Month", "Events", "Budget", "Revenue", "Profit", "Footfall")
	fmt.Println(strings.Repeat("-", 72))
	for _, m := range t.Trends {
		fmt.Printf("%-8s %7d %14s %14s %14s %10d\n",
			m.Month, m.EventCount, formatCurrency(m.Budget), formatCurrency(m.Revenue), formatCurrency(m.Profit), m.Footfall)
	}
}

// DisplayROI prints sponsor and event returns.
func DisplayROI(r sponsorapi.ROIReport) {
	fmt.Println("Sponsor ROI:")
	if len(r.Sponsors) == 0 {
		fmt.Println("  No sponsorships yet.")
	}
	for _, s := range r.Sponsors {
		fmt.Printf("  %-30.30s %-16.16s %14s  avg ROI %.2f  (%d)\n",
			s.SponsorName, orDash(s.Industry), formatCurrency(s.TotalInvestment), s.AverageROI, s.SponsorshipCount)
	}
	fmt.Println()
	fmt.Println("Event ROI:")
	if len(r.Events) == 0 {
		fmt.Println("  No events yet.")
	}
	for _, e := range r.Events {
		fmt.Printf("  %-30.30s %-10s %14s %14s %8.2f%%\n",
			e.EventName, orDash(e.EventDate), formatCurrency(e.Budget), formatCurrency(e.Revenue), e.ROIPercentage)
	}
}

// DisplayReports prints recent performance and the leaderboards.
func DisplayReports(r sponsorapi.Reports) {
	p := r.Performance
	fmt.Println("Performance:")
	fmt.Printf("  Events:   %d total, %d last month, %d last quarter, %d last year\n",
		p.Events.Total, p.Events.LastMonth, p.Events.LastQuarter, p.Events.LastYear)
	fmt.Printf("  Sponsors: %d total, %d active\n", p.Sponsors.Total, p.Sponsors.Active)
	fmt.Printf("  Last month: revenue %s, budget %s, profit %s\n",
		formatCurrency(p.Financial.LastMonthRevenue), formatCurrency(p.Financial.LastMonthBudget), formatCurrency(p.Financial.LastMonthProfit))

	if len(r.TopSponsors) > 0 {
		fmt.Println("Top Sponsors:")
		for i, s := range r.TopSponsors {
			fmt.Printf("  %d. %-30.30s %s\n", i+1, s.Name, formatCurrency(s.TotalAmount))
		}
	}
	if len(r.TopEvents) > 0 {
		fmt.Println("Top Events:")
		for i, e := range r.TopEvents {
			fmt.Printf("  %d. %-30.30s %-10s %s\n", i+1, e.Name, orDash(e.Date), formatCurrency(e.Revenue))
		}
	}
	if len(r.IndustryBreakdown) > 0 {
		fmt.Println("Industries:")
		for _, ind := range r.IndustryBreakdown {
			fmt.Printf("  %-20.20s %4d  %s\n", ind.Industry, ind.SponsorCount, formatCurrency(ind.TotalInvestment))
		}
	}
	if r.GeneratedAt != "" {
		fmt.Printf("Generated: %s\n", r.GeneratedAt)
	}
}

// DisplaySystemInfo prints record counts and the server's security limits.
func DisplaySystemInfo(info sponsorapi.SystemInfo) {
	fmt.Println("System Information:")
	fmt.Printf("  Version:       %s (%s)\n", orDash(info.Application.Version), orDash(info.Application.Environment))
	fmt.Printf("  Users:         %d total, %d active, %d admin\n",
		info.Database.TotalUsers, info.Database.ActiveUsers, info.Database.AdminUsers)
	fmt.Printf("  Sponsors:      %d\n", info.Database.TotalSponsors)
	fmt.Printf("  Events:        %d\n", info.Database.TotalEvents)
	fmt.Printf("  Sponsorships:  %d\n", info.Database.TotalSponsorships)
	fmt.Printf("  Session:       %d min timeout, %d login attempts, %d min lockout\n",
		info.Security.SessionTimeoutMinutes, info.Security.MaxLoginAttempts, info.Security.LockoutDurationMinutes)
}

// DisplayUpload reports a finished upload and whatever the server returned.
func DisplayUpload(name string, size int64, result *sponsorapi.Result) {
	if size >= 0 {
		fmt.Printf("Uploaded %s (%s)\n", name, formatBytes(size))
	} else {
		fmt.Printf("Uploaded %s\n", name)
	}
	if result == nil {
		return
	}
	if fields, ok := result.Value.(map[string]any); ok && result.JSON {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %v\n", k, fields[k])
		}
		return
	}
	if text := result.Text(); text != "" {
		fmt.Println(text)
	}
}

// NewProgressBar creates a progress bar for an upload of maxBytes bytes.
// A negative size shows a spinner instead.
func NewProgressBar(maxBytes int64, description string) *progressbar.ProgressBar {
	if description == "" {
		description = "Uploading..."
	}
	return progressbar.NewOptions64(
		maxBytes,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

// ProgressSetter is the part of a progress bar that UploadProgress drives.
type ProgressSetter interface {
	Set64(num int64) error
	Finish() error
}

// UploadProgress converts fractional progress reports into byte positions on
// bar. A fraction of 1 finishes the bar.
func UploadProgress(bar ProgressSetter, totalBytes int64) sponsorapi.ProgressFunc {
	return func(fraction float64) {
		if fraction >= 1 {
			_ = bar.Finish()
			return
		}
		if totalBytes > 0 {
			_ = bar.Set64(int64(fraction * float64(totalBytes)))
		}
	}
}
