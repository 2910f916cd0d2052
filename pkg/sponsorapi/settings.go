package sponsorapi

import (
	"context"
	"encoding/json"
	"net/http"
)

// GetSettings returns the current system settings.
func (c *Client) GetSettings(ctx context.Context) (*SettingsResponse, error) {
	var resp SettingsResponse
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/settings/"}, &resp, "get settings"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateSettings sends only the keys present in changes.
func (c *Client) UpdateSettings(ctx context.Context, changes Settings) (*SettingsUpdate, error) {
	var resp SettingsUpdate
	if err := c.doAndDecode(ctx, Request{Method: http.MethodPut, Path: "/settings/", Body: changes}, &resp, "update settings"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// BackupSettings returns the backup document exactly as the server sent it.
func (c *Client) BackupSettings(ctx context.Context) ([]byte, error) {
	res, err := c.Get(ctx, "/settings/backup")
	if err != nil {
		return nil, err
	}
	return res.Raw, nil
}

// RestoreSettings sends a backup document, as produced by BackupSettings, back
// to the server. Keys the server does not know are ignored by it.
func (c *Client) RestoreSettings(ctx context.Context, backup []byte) (*SettingsRestore, error) {
	var resp SettingsRestore
	req := Request{Method: http.MethodPost, Path: "/settings/restore", Body: json.RawMessage(backup)}
	if err := c.doAndDecode(ctx, req, &resp, "restore settings"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetSettings restores the server defaults.
func (c *Client) ResetSettings(ctx context.Context) (*SettingsReset, error) {
	var resp SettingsReset
	if err := c.doAndDecode(ctx, Request{Method: http.MethodPost, Path: "/settings/reset"}, &resp, "reset settings"); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SystemInfo returns record counts, application details and security limits.
func (c *Client) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	var resp SystemInfo
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/settings/system-info"}, &resp, "get system info"); err != nil {
		return nil, err
	}
	return &resp, nil
}
