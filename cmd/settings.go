// Package cmd (settings.go) defines the commands that read, change, back up and
// restore the system settings document.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/internal/app"
	"github.com/tonimelisma/sponsorctl/internal/ui"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage system settings",
	Long:  `Provides commands to show and change system settings, to back them up and restore them, and to show system information.`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show all settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, settingsGetLogic)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key=value>...",
	Short: "Change one or more settings",
	Long: `Changes settings. Values are read as JSON when possible, so 'true', '42'
and '{"a":1}' keep their types; anything else is sent as a string.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		changes, err := parseSettingAssignments(args)
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return settingsSetLogic(ctx, a, changes)
		})
	},
}

var settingsBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Download a backup of all settings",
	Long:  `Saves the settings backup document returned by the server to a local file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = fmt.Sprintf("settings-backup-%s.json", time.Now().Format("20060102-150405"))
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return settingsBackupLogic(ctx, a, output)
		})
	},
}

var settingsRestoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Restore settings from a backup file",
	Long:  `Sends a backup written by 'settings backup' to the server. Keys the server does not recognise are skipped.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backup, err := readBackupFile(args[0])
		if err != nil {
			return err
		}
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			return settingsRestoreLogic(ctx, a, backup)
		})
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all settings to their defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, settingsResetLogic)
	},
}

var settingsInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show system information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, settingsInfoLogic)
	},
}

func settingsGetLogic(ctx context.Context, a *app.App) error {
	resp, err := a.SDK.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("getting settings: %w", err)
	}
	ui.DisplaySettings(resp.Settings, resp.LastUpdated)
	return nil
}

func settingsSetLogic(ctx context.Context, a *app.App, changes sponsorapi.Settings) error {
	resp, err := a.SDK.UpdateSettings(ctx, changes)
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}
	ui.Success(fmt.Sprintf("Updated %d setting(s).", len(resp.UpdatedSettings)))
	return nil
}

func settingsBackupLogic(ctx context.Context, a *app.App, output string) error {
	data, err := a.SDK.BackupSettings(ctx)
	if err != nil {
		return fmt.Errorf("downloading settings backup: %w", err)
	}
	if err := os.WriteFile(output, data, 0600); err != nil {
		return fmt.Errorf("writing backup file: %w", err)
	}
	ui.Success(fmt.Sprintf("Settings backup saved to %s.", output))
	return nil
}

func settingsRestoreLogic(ctx context.Context, a *app.App, backup []byte) error {
	resp, err := a.SDK.RestoreSettings(ctx, backup)
	if err != nil {
		return fmt.Errorf("restoring settings: %w", err)
	}
	ui.Success(fmt.Sprintf("Restored %d setting(s).", resp.RestoredSettings))
	return nil
}

func settingsResetLogic(ctx context.Context, a *app.App) error {
	resp, err := a.SDK.ResetSettings(ctx)
	if err != nil {
		return fmt.Errorf("resetting settings: %w", err)
	}
	ui.Success(fmt.Sprintf("Reset %d setting(s) to their defaults.", len(resp.DefaultSettings)))
	return nil
}

func settingsInfoLogic(ctx context.Context, a *app.App) error {
	info, err := a.SDK.SystemInfo(ctx)
	if err != nil {
		return fmt.Errorf("getting system info: %w", err)
	}
	ui.DisplaySystemInfo(*info)
	return nil
}

// readBackupFile loads a backup document and checks that it is a JSON object
// with a "settings" object before anything is sent.
func readBackupFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup file: %w", err)
	}
	var doc struct {
		Settings map[string]any `json:"settings"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid backup file %q: %w", path, err)
	}
	if doc.Settings == nil {
		return nil, fmt.Errorf("invalid backup file %q: no settings object", path)
	}
	return data, nil
}

func parseSettingAssignments(args []string) (sponsorapi.Settings, error) {
	changes := make(sponsorapi.Settings, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid setting %q: expected key=value", arg)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		changes[key] = value
	}
	if len(changes) == 0 {
		return nil, errors.New("no settings given")
	}
	return changes, nil
}

func init() {
	settingsBackupCmd.Flags().StringP("output", "o", "", "File to write the backup to (default: settings-backup-<timestamp>.json)")

	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsBackupCmd,
		settingsRestoreCmd, settingsResetCmd, settingsInfoCmd)
}
