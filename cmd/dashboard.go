// Package cmd (dashboard.go) defines the 'dashboard' command, which fetches the
// dashboard analytics and the sponsor list concurrently and prints a summary.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/internal/app"
	"github.com/tonimelisma/sponsorctl/internal/ui"
	"golang.org/x/sync/errgroup"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show a summary of sponsors, events and sponsorships",
	Long:  `Shows the dashboard figures computed by the server, followed by the top sponsors by total investment. Requires the admin or finance role.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, dashboardLogic)
	},
}

func dashboardLogic(ctx context.Context, a *app.App) error {
	var d ui.Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		analytics, err := a.SDK.AnalyticsDashboard(gctx)
		if err != nil {
			return fmt.Errorf("getting dashboard analytics: %w", err)
		}
		d.Analytics = *analytics
		return nil
	})
	g.Go(func() error {
		sponsors, err := a.SDK.ListSponsors(gctx)
		if err != nil {
			return fmt.Errorf("listing sponsors: %w", err)
		}
		d.Sponsors = sponsors
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	ui.DisplayDashboard(d)
	return nil
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
