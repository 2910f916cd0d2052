package sponsorapi

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	req := Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"email": email, "password": password},
	}
	if err := c.doAndDecode(ctx, req, &resp, "login"); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.SetAuthToken(resp.Token); err != nil {
			return &resp, err
		}
	}
	return &resp, nil
}

// Logout ends the server session. The local credential is cleared even when
// the server call fails; the server error is still returned.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Post(ctx, "/auth/logout", nil)
	if clearErr := c.ClearAuthToken(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// Profile returns the authenticated user.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/auth/profile"}, &resp, "profile"); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// CheckAuth asks the server whether the stored credential is still valid.
func (c *Client) CheckAuth(ctx context.Context) (*AuthStatus, error) {
	var status AuthStatus
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/auth/check-auth"}, &status, "check auth"); err != nil {
		return nil, err
	}
	return &status, nil
}
