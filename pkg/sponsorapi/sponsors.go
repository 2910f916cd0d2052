package sponsorapi

import (
	"context"
	"fmt"
	"net/http"
)

func sponsorPath(id int) string {
	return fmt.Sprintf("/sponsors/%d", id)
}

// ListSponsors returns every sponsor.
func (c *Client) ListSponsors(ctx context.Context) ([]Sponsor, error) {
	var sponsors []Sponsor
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/sponsors/"}, &sponsors, "list sponsors"); err != nil {
		return nil, err
	}
	return sponsors, nil
}

func (c *Client) GetSponsor(ctx context.Context, id int) (*Sponsor, error) {
	var sponsor Sponsor
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: sponsorPath(id)}, &sponsor, "get sponsor"); err != nil {
		return nil, err
	}
	return &sponsor, nil
}

func (c *Client) CreateSponsor(ctx context.Context, in SponsorInput) (*Sponsor, error) {
	var env sponsorEnvelope
	if err := c.doAndDecode(ctx, Request{Method: http.MethodPost, Path: "/sponsors/", Body: in}, &env, "create sponsor"); err != nil {
		return nil, err
	}
	return &env.Sponsor, nil
}

func (c *Client) UpdateSponsor(ctx context.Context, id int, in SponsorInput) (*Sponsor, error) {
	var env sponsorEnvelope
	if err := c.doAndDecode(ctx, Request{Method: http.MethodPut, Path: sponsorPath(id), Body: in}, &env, "update sponsor"); err != nil {
		return nil, err
	}
	return &env.Sponsor, nil
}

func (c *Client) DeleteSponsor(ctx context.Context, id int) error {
	return c.doAndDecode(ctx, Request{Method: http.MethodDelete, Path: sponsorPath(id)}, nil, "delete sponsor")
}
