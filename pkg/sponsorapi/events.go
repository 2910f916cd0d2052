package sponsorapi

import (
	"context"
	"fmt"
	"net/http"
)

func eventPath(id int) string {
	return fmt.Sprintf("/events/%d", id)
}

// ListEvents returns every event.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: "/events/"}, &events, "list events"); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) GetEvent(ctx context.Context, id int) (*Event, error) {
	var event Event
	if err := c.doAndDecode(ctx, Request{Method: http.MethodGet, Path: eventPath(id)}, &event, "get event"); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*Event, error) {
	var env eventEnvelope
	if err := c.doAndDecode(ctx, Request{Method: http.MethodPost, Path: "/events/", Body: in}, &env, "create event"); err != nil {
		return nil, err
	}
	return &env.Event, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int, in EventInput) (*Event, error) {
	var env eventEnvelope
	if err := c.doAndDecode(ctx, Request{Method: http.MethodPut, Path: eventPath(id), Body: in}, &env, "update event"); err != nil {
		return nil, err
	}
	return &env.Event, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int) error {
	return c.doAndDecode(ctx, Request{Method: http.MethodDelete, Path: eventPath(id)}, nil, "delete event")
}
