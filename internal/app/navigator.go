package app

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

// SessionExpiredMessage is printed when a request is rejected with 401 while
// running a command outside the auth group.
const SessionExpiredMessage = "Your session has expired. Run 'sponsorctl auth login' to sign in again."

// CommandNavigator maps the running command onto the navigation model the API
// client expects. Commands in the auth group sit at the landing location;
// every other command is its own location.
type CommandNavigator struct {
	mu       sync.Mutex
	location string
	out      io.Writer
	onLeave  func()
}

// NewCommandNavigator creates a navigator for cmd. onLeave runs once the
// session is invalidated and the CLI moves back to the landing location.
func NewCommandNavigator(cmd *cobra.Command, out io.Writer, onLeave func()) *CommandNavigator {
	return &CommandNavigator{
		location: LocationOf(cmd),
		out:      out,
		onLeave:  onLeave,
	}
}

// LocationOf derives a location from the command path, for example
// "sponsorctl sponsors list" becomes "/sponsors/list".
func LocationOf(cmd *cobra.Command) string {
	if cmd == nil {
		return sponsorapi.LandingLocation
	}
	parts := strings.Fields(cmd.CommandPath())
	if len(parts) > 0 {
		parts = parts[1:]
	}
	if len(parts) == 0 || parts[0] == "auth" {
		return sponsorapi.LandingLocation
	}
	return "/" + strings.Join(parts, "/")
}

func (n *CommandNavigator) CurrentLocation() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *CommandNavigator) NavigateTo(location string) {
	n.mu.Lock()
	n.location = location
	n.mu.Unlock()

	if n.out != nil {
		fmt.Fprintln(n.out, SessionExpiredMessage)
	}
	if n.onLeave != nil {
		n.onLeave()
	}
}
