// Package cmd (analytics.go) defines the read-only analytics reports. The
// server only serves them to the admin and finance roles.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/internal/app"
	"github.com/tonimelisma/sponsorctl/internal/ui"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show analytics reports",
	Long:  `Provides the overview, monthly trends, ROI and performance reports computed by the server.`,
}

var analyticsOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show organisation-wide totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, analyticsOverviewLogic)
	},
}

var analyticsTrendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show monthly event totals for the last twelve months",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, analyticsTrendsLogic)
	},
}

var analyticsROICmd = &cobra.Command{
	Use:   "roi",
	Short: "Show sponsor and event returns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, analyticsROILogic)
	},
}

var analyticsReportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Show recent performance, top sponsors and events, and industries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, analyticsReportsLogic)
	},
}

func analyticsOverviewLogic(ctx context.Context, a *app.App) error {
	overview, err := a.SDK.AnalyticsOverview(ctx)
	if err != nil {
		return fmt.Errorf("getting analytics overview: %w", err)
	}
	ui.DisplayAnalyticsOverview(*overview)
	return nil
}

func analyticsTrendsLogic(ctx context.Context, a *app.App) error {
	trends, err := a.SDK.AnalyticsTrends(ctx)
	if err != nil {
		return fmt.Errorf("getting trends: %w", err)
	}
	ui.DisplayTrends(*trends)
	return nil
}

func analyticsROILogic(ctx context.Context, a *app.App) error {
	roi, err := a.SDK.AnalyticsROI(ctx)
	if err != nil {
		return fmt.Errorf("getting ROI analytics: %w", err)
	}
	ui.DisplayROI(*roi)
	return nil
}

func analyticsReportsLogic(ctx context.Context, a *app.App) error {
	reports, err := a.SDK.AnalyticsReports(ctx)
	if err != nil {
		return fmt.Errorf("getting reports: %w", err)
	}
	ui.DisplayReports(*reports)
	return nil
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(analyticsOverviewCmd, analyticsTrendsCmd, analyticsROICmd, analyticsReportsCmd)
}
