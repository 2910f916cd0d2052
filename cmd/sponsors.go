// Package cmd (sponsors.go) defines the commands that manage sponsors.
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

var sponsorsCmd = &cobra.Command{
	Use:   "sponsors",
	Short: "Manage sponsors",
	Long:  `Provides commands to list, inspect, create, update and delete sponsors.`,
}

var sponsorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sponsors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, sponsorsListLogic)
	},
}

var sponsorsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a sponsor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return sponsorsGetLogic(ctx, a, id)
		})
	},
}

var sponsorsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a sponsor",
	Long:  `Creates a sponsor. --name is required; the other fields are optional.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := sponsorInputFromFlags(cmd)
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return sponsorsCreateLogic(ctx, a, in)
		})
	},
}

var sponsorsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a sponsor",
	Long:  `Updates the fields given as flags and leaves the others unchanged.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		in := sponsorInputFromFlags(cmd)
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return sponsorsUpdateLogic(ctx, a, id, in)
		})
	},
}

var sponsorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a sponsor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return sponsorsDeleteLogic(ctx, a, id)
		})
	},
}

func sponsorsListLogic(ctx context.Context, a *app.App) error {
	sponsors, err := a.SDK.ListSponsors(ctx)
	if err != nil {
		return fmt.Errorf("listing sponsors: %w", err)
	}
	ui.DisplaySponsors(sponsors)
	return nil
}

func sponsorsGetLogic(ctx context.Context, a *app.App, id int) error {
	sponsor, err := a.SDK.GetSponsor(ctx, id)
	if err != nil {
		return fmt.Errorf("getting sponsor %d: %w", id, err)
	}
	ui.DisplaySponsor(*sponsor)
	return nil
}

func sponsorsCreateLogic(ctx context.Context, a *app.App, in sponsorapi.SponsorInput) error {
	if in.Name == "" {
		return errors.New("--name is required")
	}
	sponsor, err := a.SDK.CreateSponsor(ctx, in)
	if err != nil {
		return fmt.Errorf("creating sponsor: %w", err)
	}
	ui.Success(fmt.Sprintf("Sponsor '%s' created with ID %d.", sponsor.Name, sponsor.ID))
	return nil
}

func sponsorsUpdateLogic(ctx context.Context, a *app.App, id int, in sponsorapi.SponsorInput) error {
	if in == (sponsorapi.SponsorInput{}) {
		return errors.New("nothing to update: pass at least one field flag")
	}
	sponsor, err := a.SDK.UpdateSponsor(ctx, id, in)
	if err != nil {
		return fmt.Errorf("updating sponsor %d: %w", id, err)
	}
	ui.Success(fmt.Sprintf("Sponsor %d updated.", sponsor.ID))
	return nil
}

func sponsorsDeleteLogic(ctx context.Context, a *app.App, id int) error {
	if err := a.SDK.DeleteSponsor(ctx, id); err != nil {
		return fmt.Errorf("deleting sponsor %d: %w", id, err)
	}
	ui.Success(fmt.Sprintf("Sponsor %d deleted.", id))
	return nil
}

func addSponsorFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Sponsor name")
	cmd.Flags().String("industry", "", "Industry")
	cmd.Flags().String("contact", "", "Contact person")
	cmd.Flags().String("email", "", "Contact email")
	cmd.Flags().String("phone", "", "Contact phone")
}

func sponsorInputFromFlags(cmd *cobra.Command) sponsorapi.SponsorInput {
	var in sponsorapi.SponsorInput
	in.Name, _ = cmd.Flags().GetString("name")
	in.Industry, _ = cmd.Flags().GetString("industry")
	in.ContactPerson, _ = cmd.Flags().GetString("contact")
	in.Email, _ = cmd.Flags().GetString("email")
	in.Phone, _ = cmd.Flags().GetString("phone")
	return in
}

func init() {
	addSponsorFlags(sponsorsCreateCmd)
	addSponsorFlags(sponsorsUpdateCmd)

	rootCmd.AddCommand(sponsorsCmd)
	sponsorsCmd.AddCommand(sponsorsListCmd, sponsorsGetCmd, sponsorsCreateCmd, sponsorsUpdateCmd, sponsorsDeleteCmd)
}
