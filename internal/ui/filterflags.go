package ui

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

// AddSponsorshipFilterFlags adds the listing filters to a command.
func AddSponsorshipFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("status", "", "Only show sponsorships with this status (negotiating, confirmed, paid, cancelled)")
	cmd.Flags().Int("sponsor", 0, "Only show sponsorships for this sponsor ID")
	cmd.Flags().Int("event", 0, "Only show sponsorships for this event ID")
}

// ParseSponsorshipFilterFlags extracts and validates the listing filters.
func ParseSponsorshipFilterFlags(cmd *cobra.Command) (sponsorapi.SponsorshipFilter, error) {
	status, err := cmd.Flags().GetString("status")
	if err != nil {
		return sponsorapi.SponsorshipFilter{}, fmt.Errorf("error parsing status flag: %w", err)
	}
	if status != "" && !sponsorapi.ValidStatus(status) {
		return sponsorapi.SponsorshipFilter{}, fmt.Errorf("%w: %q", sponsorapi.ErrInvalidStatus, status)
	}

	sponsorID, err := cmd.Flags().GetInt("sponsor")
	if err != nil {
		return sponsorapi.SponsorshipFilter{}, fmt.Errorf("error parsing sponsor flag: %w", err)
	}

	eventID, err := cmd.Flags().GetInt("event")
	if err != nil {
		return sponsorapi.SponsorshipFilter{}, fmt.Errorf("error parsing event flag: %w", err)
	}

	return sponsorapi.SponsorshipFilter{
		SponsorID: sponsorID,
		EventID:   eventID,
		Status:    status,
	}, nil
}
