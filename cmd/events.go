// Package cmd (events.go) defines the commands that manage events.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/internal/app"
	"github.com/tonimelisma/sponsorctl/internal/ui"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

const eventDateLayout = "2006-01-02"

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage events",
	Long:  `Provides commands to list, inspect, create, update and delete events.`,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, eventsListLogic)
	},
}

var eventsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return eventsGetLogic(ctx, a, id)
		})
	},
}

var eventsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event",
	Long:  `Creates an event. --name and --date (YYYY-MM-DD) are required.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := eventInputFromFlags(cmd)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return eventsCreateLogic(ctx, a, in)
		})
	},
}

var eventsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an event",
	Long:  `Updates the fields given as flags and leaves the others unchanged.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		in, err := eventInputFromFlags(cmd)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return eventsUpdateLogic(ctx, a, id, in)
		})
	},
}

var eventsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return eventsDeleteLogic(ctx, a, id)
		})
	},
}

func eventsListLogic(ctx context.Context, a *app.App) error {
	events, err := a.SDK.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	ui.DisplayEvents(events)
	return nil
}

func eventsGetLogic(ctx context.Context, a *app.App, id int) error {
	event, err := a.SDK.GetEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("getting event %d: %w", id, err)
	}
	ui.DisplayEvent(*event)
	return nil
}

func eventsCreateLogic(ctx context.Context, a *app.App, in sponsorapi.EventInput) error {
	if in.Name == "" || in.Date == "" {
		return errors.New("--name and --date are required")
	}
	event, err := a.SDK.CreateEvent(ctx, in)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	ui.Success(fmt.Sprintf("Event '%s' created with ID %d.", event.Name, event.ID))
	return nil
}

func eventsUpdateLogic(ctx context.Context, a *app.App, id int, in sponsorapi.EventInput) error {
	if in == (sponsorapi.EventInput{}) {
		return errors.New("nothing to update: pass at least one field flag")
	}
	event, err := a.SDK.UpdateEvent(ctx, id, in)
	if err != nil {
		return fmt.Errorf("updating event %d: %w", id, err)
	}
	ui.Success(fmt.Sprintf("Event %d updated.", event.ID))
	return nil
}

func eventsDeleteLogic(ctx context.Context, a *app.App, id int) error {
	if err := a.SDK.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("deleting event %d: %w", id, err)
	}
	ui.Success(fmt.Sprintf("Event %d deleted.", id))
	return nil
}

func addEventFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Event name")
	cmd.Flags().String("date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().Float64("budget", 0, "Budget")
	cmd.Flags().Int("footfall", 0, "Expected or actual attendance")
	cmd.Flags().Float64("revenue", 0, "Revenue")
}

func eventInputFromFlags(cmd *cobra.Command) (sponsorapi.EventInput, error) {
	var in sponsorapi.EventInput
	var err error
	in.Name, _ = cmd.Flags().GetString("name")
	in.Date, _ = cmd.Flags().GetString("date")
	if in.Date != "" {
		if _, err := time.Parse(eventDateLayout, in.Date); err != nil {
			return in, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", in.Date)
		}
	}
	if in.Budget, err = optionalFloat(cmd, "budget"); err != nil {
		return in, err
	}
	if in.Footfall, err = optionalInt(cmd, "footfall"); err != nil {
		return in, err
	}
	if in.Revenue, err = optionalFloat(cmd, "revenue"); err != nil {
		return in, err
	}
	return in, nil
}

func init() {
	addEventFlags(eventsCreateCmd)
	addEventFlags(eventsUpdateCmd)

	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd, eventsGetCmd, eventsCreateCmd, eventsUpdateCmd, eventsDeleteCmd)
}
