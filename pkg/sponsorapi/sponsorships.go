package sponsorapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ValidStatus reports whether status is one the service accepts.
func ValidStatus(status string) bool {
	switch status {
	case StatusNegotiating, StatusConfirmed, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

func sponsorshipPath(id int) string {
	return fmt.Sprintf("/sponsorships/%d", id)
}

// ListSponsorships returns sponsorships matching filter, newest first.
func (c *Client) ListSponsorships(ctx context.Context, filter SponsorshipFilter) ([]Sponsorship, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, filter.Status)
	}

	query := url.Values{}
	if filter.SponsorID > 0 {
		query.Set("sponsor_id", strconv.Itoa(filter.SponsorID))
	}
	if filter.EventID > 0 {
		query.Set("event_id", strconv.Itoa(filter.EventID))
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	path := "/sponsorships/"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var sponsorships []Sponsorship
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: path}, &sponsorships, "list sponsorships"); err != nil {
		return nil, err
	}
	return sponsorships, nil
}

func (c *Client) GetSponsorship(ctx context.Context, id int) (*Sponsorship, error) {
	var sp Sponsorship
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: sponsorshipPath(id)}, &sp, "get sponsorship"); err != nil {
		return nil, err
	}
	return &sp, nil
}

func (c *Client) CreateSponsorship(ctx context.Context, in SponsorshipInput) (*Sponsorship, error) {
	if in.Status != "" && !ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	var env sponsorshipEnvelope
	if err := c.doAndDecode(ctx, Request{Method: http.MethodPost, Path: "/sponsorships/", Body: in}, &env, "create sponsorship"); err != nil {
		return nil, err
	}
	return &env.Sponsorship, nil
}

func (c *Client) UpdateSponsorship(ctx context.Context, id int, in SponsorshipInput) (*Sponsorship, error) {
	if in.Status != "" && !ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	var env sponsorshipEnvelope
	if err := c.doAndDecode(ctx, Request{Method: http.MethodPut, Path: sponsorshipPath(id), Body: in}, &env, "update sponsorship"); err != nil {
		return nil, err
	}
	return &env.Sponsorship, nil
}

func (c *Client) DeleteSponsorship(ctx context.Context, id int) error {
	return c.doAndDecode(ctx, Request{Method: http.MethodDelete, Path: sponsorshipPath(id)}, nil, "delete sponsorship")
}

// SponsorshipStats returns totals across all sponsorships.
func (c *Client) SponsorshipStats(ctx context.Context) (*SponsorshipStats, error) {
	var stats SponsorshipStats
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/sponsorships/stats"}, &stats, "sponsorship stats"); err != nil {
		return nil, err
	}
	return &stats, nil
}
