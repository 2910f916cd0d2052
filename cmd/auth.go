// Package cmd (auth.go) defines the authentication commands: 'auth login',
// 'auth logout', 'auth status' and 'auth profile'. The bearer token returned by
// login is persisted in the credential storage next to the config file.
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/internal/app"
	"github.com/tonimelisma/sponsorctl/internal/session"
	"github.com/tonimelisma/sponsorctl/internal/ui"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication with the sponsorship API",
	Long:  `Provides subcommands to log in, log out and check the current authentication status.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	Long: `Exchanges your email and password for a bearer token and stores it, so
that later commands are authenticated. The password is prompted for when
--password is not given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		return runWithApp(cmd, func(ctx context.Context, a *app.App) error {
			if password == "" && email != "" {
				var err error
				if password, err = promptPassword(os.Stdin, os.Stderr); err != nil {
					return err
				}
			}
			return authLoginLogic(ctx, a, email, password)
		})
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the current session and log out",
	Long:  `Ends the session on the server and removes the stored token. The local token is removed even when the server cannot be reached.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, authLogoutLogic)
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the current authentication status",
	Long:  `Checks whether the stored token is still accepted by the server and shows the account it belongs to.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, authStatusLogic)
	},
}

var authProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the profile of the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, authProfileLogic)
	},
}

func authLoginLogic(ctx context.Context, a *app.App, email, password string) error {
	if a.SDK.Authenticated() {
		fmt.Println("You are already logged in. To switch accounts, please run 'sponsorctl auth logout' first.")
		return nil
	}
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}

	resp, err := a.SDK.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	cacheUser(a, resp.User)

	ui.Success(fmt.Sprintf("Login successful! Welcome, %s.", resp.User.Name))
	return nil
}

func authLogoutLogic(ctx context.Context, a *app.App) error {
	if err := a.Logout(ctx); err != nil {
		a.Logger.Warn("server logout failed; local session cleared", "error", err)
	}
	ui.Success("You have been logged out.")
	return nil
}

func authStatusLogic(ctx context.Context, a *app.App) error {
	if !a.SDK.Authenticated() {
		fmt.Println("You are not logged in. Run 'sponsorctl auth login' to sign in.")
		return nil
	}

	status, err := a.SDK.CheckAuth(ctx)
	if err != nil {
		if errors.Is(err, sponsorapi.ErrUnauthorized) {
			fmt.Println("Your session is no longer valid. Run 'sponsorctl auth login' to sign in again.")
			return nil
		}
		if apiErr, ok := sponsorapi.AsAPIError(err); ok && apiErr.IsTransport() {
			if cached := loadCachedUser(a); cached != nil {
				fmt.Printf("Could not reach the server (%s). Last known login: %s <%s>\n", apiErr.Message, cached.Name, cached.Email)
				return nil
			}
		}
		return fmt.Errorf("checking authentication status: %w", err)
	}

	if !status.Authenticated {
		fmt.Println("Your session is no longer valid. Run 'sponsorctl auth login' to sign in again.")
		return nil
	}
	cacheUser(a, status.User)
	ui.DisplayUser(status.User)
	return nil
}

func authProfileLogic(ctx context.Context, a *app.App) error {
	user, err := a.SDK.Profile(ctx)
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}
	cacheUser(a, *user)
	ui.DisplayUser(*user)
	return nil
}

func cacheUser(a *app.App, user sponsorapi.User) {
	if a.Storage == nil {
		return
	}
	err := a.Storage.SaveUser(session.CachedUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role})
	if err != nil {
		a.Logger.Warn("could not cache user", "error", err)
	}
}

func loadCachedUser(a *app.App) *session.CachedUser {
	if a.Storage == nil {
		return nil
	}
	user, err := a.Storage.LoadUser()
	if err != nil {
		a.Logger.Debug("could not load cached user", "error", err)
		return nil
	}
	return user
}

// promptPassword reads a password without echo when in is a terminal and a
// single line otherwise.
func promptPassword(in *os.File, out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	if term.IsTerminal(int(in.Fd())) {
		b, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	authLoginCmd.Flags().String("email", "", "Account email address")
	authLoginCmd.Flags().String("password", "", "Account password (prompted for when omitted)")

	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authStatusCmd, authProfileCmd)
}
