// Package cmd (sponsorships.go) defines the commands that manage
// sponsorships, the deals linking a sponsor to an event, and their statistics.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/internal/app"
	"github.com/tonimelisma/sponsorctl/internal/ui"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

var sponsorshipsCmd = &cobra.Command{
	Use:     "sponsorships",
	Aliases: []string{"deals"},
	Short:   "Manage sponsorships",
	Long:    `Provides commands to list, inspect, create, update and delete sponsorships, and to show aggregate statistics.`,
}

var sponsorshipsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sponsorships",
	Long:  `Lists sponsorships, optionally filtered by status, sponsor or event.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := ui.ParseSponsorshipFilterFlags(cmd)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return sponsorshipsListLogic(ctx, a, filter)
		})
	},
}

var sponsorshipsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a sponsorship",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return sponsorshipsGetLogic(ctx, a, id)
		})
	},
}

var sponsorshipsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a sponsorship",
	Long:  `Creates a sponsorship. --sponsor, --event and --amount are required. The status defaults to negotiating on the server.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := sponsorshipInputFromFlags(cmd)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return sponsorshipsCreateLogic(ctx, a, in)
		})
	},
}

var sponsorshipsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a sponsorship",
	Long:  `Updates the fields given as flags, for example --status paid, and leaves the others unchanged.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		in, err := sponsorshipInputFromFlags(cmd)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return sponsorshipsUpdateLogic(ctx, a, id, in)
		})
	},
}

var sponsorshipsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a sponsorship",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return sponsorshipsDeleteLogic(ctx, a, id)
		})
	},
}

var sponsorshipsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show sponsorship statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, sponsorshipsStatsLogic)
	},
}

func sponsorshipsListLogic(ctx context.Context, a *app.App, filter sponsorapi.SponsorshipFilter) error {
	sponsorships, err := a.SDK.ListSponsorships(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing sponsorships: %w", err)
	}
	ui.DisplaySponsorships(sponsorships)
	return nil
}

func sponsorshipsGetLogic(ctx context.Context, a *app.App, id int) error {
	sp, err := a.SDK.GetSponsorship(ctx, id)
	if err != nil {
		return fmt.Errorf("getting sponsorship %d: %w", id, err)
	}
	ui.DisplaySponsorship(*sp)
	return nil
}

func sponsorshipsCreateLogic(ctx context.Context, a *app.App, in sponsorapi.SponsorshipInput) error {
	if in.SponsorID == 0 || in.EventID == 0 || in.Amount == nil {
		return errors.New("--sponsor, --event and --amount are required")
	}
	sp, err := a.SDK.CreateSponsorship(ctx, in)
	if err != nil {
		return fmt.Errorf("creating sponsorship: %w", err)
	}
	ui.Success(fmt.Sprintf("Sponsorship created with ID %d (status: %s).", sp.ID, sp.Status))
	return nil
}

func sponsorshipsUpdateLogic(ctx context.Context, a *app.App, id int, in sponsorapi.SponsorshipInput) error {
	if in == (sponsorapi.SponsorshipInput{}) {
		return errors.New("nothing to update: pass at least one field flag")
	}
	sp, err := a.SDK.UpdateSponsorship(ctx, id, in)
	if err != nil {
		return fmt.Errorf("updating sponsorship %d: %w", id, err)
	}
	ui.Success(fmt.Sprintf("Sponsorship %d updated (status: %s).", sp.ID, sp.Status))
	return nil
}

func sponsorshipsDeleteLogic(ctx context.Context, a *app.App, id int) error {
	if err := a.SDK.DeleteSponsorship(ctx, id); err != nil {
		return fmt.Errorf("deleting sponsorship %d: %w", id, err)
	}
	ui.Success(fmt.Sprintf("Sponsorship %d deleted.", id))
	return nil
}

func sponsorshipsStatsLogic(ctx context.Context, a *app.App) error {
	stats, err := a.SDK.SponsorshipStats(ctx)
	if err != nil {
		return fmt.Errorf("getting sponsorship statistics: %w", err)
	}
	ui.DisplaySponsorshipStats(*stats)
	return nil
}

func addSponsorshipFlags(cmd *cobra.Command) {
	cmd.Flags().Int("sponsor", 0, "Sponsor ID")
	cmd.Flags().Int("event", 0, "Event ID")
	cmd.Flags().Float64("amount", 0, "Sponsorship amount")
	cmd.Flags().String("status", "", "Status (negotiating, confirmed, paid, cancelled)")
	cmd.Flags().Float64("roi", 0, "Return on investment")
}

func sponsorshipInputFromFlags(cmd *cobra.Command) (sponsorapi.SponsorshipInput, error) {
	var in sponsorapi.SponsorshipInput
	var err error
	in.SponsorID, _ = cmd.Flags().GetInt("sponsor")
	in.EventID, _ = cmd.Flags().GetInt("event")
	in.Status, _ = cmd.Flags().GetString("status")
	if in.Status != "" && !sponsorapi.ValidStatus(in.Status) {
		return in, fmt.Errorf("%w: %q", sponsorapi.ErrInvalidStatus, in.Status)
	}
	if in.Amount, err = optionalFloat(cmd, "amount"); err != nil {
		return in, err
	}
	if in.ROI, err = optionalFloat(cmd, "roi"); err != nil {
		return in, err
	}
	return in, nil
}

func init() {
	ui.AddSponsorshipFilterFlags(sponsorshipsListCmd)
	addSponsorshipFlags(sponsorshipsCreateCmd)
	addSponsorshipFlags(sponsorshipsUpdateCmd)

	rootCmd.AddCommand(sponsorshipsCmd)
	sponsorshipsCmd.AddCommand(sponsorshipsListCmd, sponsorshipsGetCmd, sponsorshipsCreateCmd,
		sponsorshipsUpdateCmd, sponsorshipsDeleteCmd, sponsorshipsStatsCmd)
}
