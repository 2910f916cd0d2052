package cmd

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

func TestSponsorshipsListLogicPassesFilter(t *testing.T) {
	var got sponsorapi.SponsorshipFilter
	mockSDK := &MockSDK{
		ListSponsorshipsFunc: func(filter sponsorapi.SponsorshipFilter) ([]sponsorapi.Sponsorship, error) {
			got = filter
			return []sponsorapi.Sponsorship{
				{ID: 1, SponsorName: "Acme", EventName: "Expo", Amount: 10000, Status: sponsorapi.StatusPaid, ROI: 2.5},
			}, nil
		},
	}
	a := newTestApp(t, mockSDK)

	filter := sponsorapi.SponsorshipFilter{Status: sponsorapi.StatusPaid, SponsorID: 1}
	output := captureOutput(t, func() {
		assert.NoError(t, sponsorshipsListLogic(context.Background(), a, filter))
	})

	assert.Equal(t, filter, got)
	assert.Contains(t, output, "Acme")
	assert.Contains(t, output, "paid")
	assert.Contains(t, output, "2.50")
}

func TestSponsorshipsCreateLogic(t *testing.T) {
	a := newTestApp(t, &MockSDK{
		CreateSponsorshipFunc: func(in sponsorapi.SponsorshipInput) (*sponsorapi.Sponsorship, error) {
			return &sponsorapi.Sponsorship{ID: 31, Status: sponsorapi.StatusNegotiating}, nil
		},
	})
	amount := 5000.0

	err := sponsorshipsCreateLogic(context.Background(), a, sponsorapi.SponsorshipInput{SponsorID: 1, EventID: 2})
	assert.EqualError(t, err, "--sponsor, --event and --amount are required")

	output := captureOutput(t, func() {
		err := sponsorshipsCreateLogic(context.Background(), a, sponsorapi.SponsorshipInput{SponsorID: 1, EventID: 2, Amount: &amount})
		assert.NoError(t, err)
	})
	assert.Contains(t, output, "Sponsorship created with ID 31 (status: negotiating).")
}

func TestSponsorshipsUpdateDeleteAndStatsLogic(t *testing.T) {
	a := newTestApp(t, &MockSDK{
		SponsorshipStatsFunc: func() (*sponsorapi.SponsorshipStats, error) {
			return &sponsorapi.SponsorshipStats{
				TotalSponsorships: 2,
				TotalAmount:       15000,
				AverageAmount:     7500,
				StatusBreakdown: map[string]sponsorapi.StatusTotals{
					sponsorapi.StatusConfirmed: {Count: 2, TotalAmount: 15000},
				},
			}, nil
		},
	})

	output := captureOutput(t, func() {
		assert.NoError(t, sponsorshipsUpdateLogic(context.Background(), a, 8, sponsorapi.SponsorshipInput{Status: sponsorapi.StatusPaid}))
		assert.NoError(t, sponsorshipsDeleteLogic(context.Background(), a, 8))
		assert.NoError(t, sponsorshipsStatsLogic(context.Background(), a))
	})

	assert.Contains(t, output, "Sponsorship 8 updated (status: paid).")
	assert.Contains(t, output, "Sponsorship 8 deleted.")
	assert.Contains(t, output, "Total Sponsorships: 2")
	assert.Contains(t, output, "$7,500.00")
}

func TestSponsorshipInputFromFlags(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "create"}
		addSponsorshipFlags(cmd)
		return cmd
	}

	cmd := newCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--sponsor", "3", "--event", "4", "--amount", "2500", "--status", "confirmed"}))
	in, err := sponsorshipInputFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, 3, in.SponsorID)
	assert.Equal(t, 4, in.EventID)
	require.NotNil(t, in.Amount)
	assert.Equal(t, 2500.0, *in.Amount)
	assert.Nil(t, in.ROI)
	assert.Equal(t, sponsorapi.StatusConfirmed, in.Status)

	cmd = newCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--status", "pending"}))
	_, err = sponsorshipInputFromFlags(cmd)
	assert.ErrorIs(t, err, sponsorapi.ErrInvalidStatus)
}
