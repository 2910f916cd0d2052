package sponsorapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// closeBodySafely closes an HTTP response body and logs any error.
func closeBodySafely(body io.Closer, logger Logger, operation string) {
	if err := body.Close(); err != nil {
		logger.Warnf("Failed to close %s body: %v", operation, err)
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// statusText prefers the reason phrase the server sent.
func statusText(res *http.Response) string {
	if _, text, ok := strings.Cut(res.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(res.StatusCode)
}

// isJSONMediaType reports whether a Content-Type header names a JSON document.
func isJSONMediaType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return mediaType == contentTypeJSON || strings.HasSuffix(mediaType, "+json")
}

// parseBody interprets raw according to the response Content-Type. JSON bodies
// are decoded, anything else is returned as text byte for byte.
func parseBody(res *http.Response, raw []byte) (*Result, error) {
	contentType := res.Header.Get(headerContentType)
	result := &Result{
		StatusCode:  res.StatusCode,
		ContentType: contentType,
		Raw:         raw,
	}

	if !isJSONMediaType(contentType) {
		result.Value = string(raw)
		return result, nil
	}

	result.JSON = true
	if len(bytes.TrimSpace(raw)) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(raw, &result.Value); err != nil {
		return nil, fmt.Errorf("decoding %s body: %w", contentType, err)
	}
	return result, nil
}

// parseLenient decodes raw as JSON when it parses and falls back to text.
func parseLenient(res *http.Response, raw []byte) *Result {
	result := &Result{
		StatusCode:  res.StatusCode,
		ContentType: res.Header.Get(headerContentType),
		Raw:         raw,
	}
	var v any
	if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &v) == nil {
		result.JSON = true
		result.Value = v
		return result
	}
	result.Value = string(raw)
	return result
}

// doAndDecode performs req and decodes the JSON response into dest.
func (c *Client) doAndDecode(ctx context.Context, req Request, dest any, operation string) error {
	res, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := res.Decode(dest); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}
