package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/internal/app"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/tonimelisma/sponsorctl/cmd"

// runWithApp initializes the App for cmd and runs fn inside a span named
// after the command. Exported spans are flushed before returning.
func runWithApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	name := cmd.CommandPath()
	a, err := app.NewApp(cmd)
	if err != nil {
		return fmt.Errorf("initializing app for '%s': %w", name, err)
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			a.Logger.Warn("flushing spans failed", "error", err)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, name)
	defer span.End()
	a.Logger.WithTrace(ctx).Debug("running command", "command", name)

	if err := fn(ctx, a); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// parseID parses a positive numeric resource ID.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q: must be a positive integer", arg)
	}
	return id, nil
}

// optionalFloat returns the flag value when the user set it.
func optionalFloat(cmd *cobra.Command, name string) (*float64, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s flag: %w", name, err)
	}
	return &v, nil
}

func optionalInt(cmd *cobra.Command, name string) (*int, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s flag: %w", name, err)
	}
	return &v, nil
}
