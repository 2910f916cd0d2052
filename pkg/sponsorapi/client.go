// Package sponsorapi is a client for the sponsorship management HTTP API. It
// attaches credentials, bounds each attempt with a timeout, retries transient
// failures with exponential backoff and normalizes every failure into *APIError.
package sponsorapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const tracerName = "github.com/tonimelisma/sponsorctl/pkg/sponsorapi"

// Logger is the interface that the SDK uses for logging.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// DefaultLogger discards everything.
type DefaultLogger struct{}

func (DefaultLogger) Debugf(format string, args ...any) {}
func (DefaultLogger) Warnf(format string, args ...any)  {}

// ResolveBaseURL derives the API base URL from the origin the application is
// served from. Local or unknown origins use the development server.
func ResolveBaseURL(origin string) string {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		return DevelopmentBaseURL
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return DevelopmentBaseURL
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1":
		return DevelopmentBaseURL
	}
	return origin + deployedAPIPath
}

// Options configures a Client. Zero values fall back to package defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retry      RetryPolicy
	HTTPClient *http.Client

	Credentials *CredentialStore
	Navigator   Navigator
	Logger      Logger

	// RateLimiter, when set, is waited on before every attempt.
	RateLimiter *rate.Limiter
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Client performs requests against the API. It is safe for concurrent use.
type Client struct {
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	credentials *CredentialStore
	classifier  *Classifier
	retry       *retryController
	limiter     *rate.Limiter
	tracer      trace.Tracer
	logger      Logger

	newRequestID func() string
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	if opts.Logger == nil {
		opts.Logger = DefaultLogger{}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DevelopmentBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retry == (RetryPolicy{}) {
		opts.Retry = DefaultRetryPolicy()
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Credentials == nil {
		// A memory-backed store cannot fail to restore.
		opts.Credentials, _ = NewCredentialStore(NewMemoryStorage(), opts.Logger)
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}

	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		timeout:      opts.Timeout,
		httpClient:   opts.HTTPClient,
		credentials:  opts.Credentials,
		classifier:   NewClassifier(opts.Credentials, opts.Navigator, opts.Logger),
		retry:        newRetryController(opts.Retry, nil, opts.Logger),
		limiter:      opts.RateLimiter,
		tracer:       opts.TracerProvider.Tracer(tracerName),
		logger:       opts.Logger,
		newRequestID: uuid.NewString,
	}
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Credentials returns the store whose token is attached to requests.
func (c *Client) Credentials() *CredentialStore { return c.credentials }

// Authenticated reports whether a credential is held locally. It does not
// check the credential with the server.
func (c *Client) Authenticated() bool { return c.credentials.HasToken() }

// SetAuthToken stores token for all subsequent requests.
func (c *Client) SetAuthToken(token string) error {
	return c.credentials.Set(token)
}

// ClearAuthToken forgets the current token.
func (c *Client) ClearAuthToken() error {
	return c.credentials.Clear()
}

// Request describes a single API call. Body is sent as-is when it is a []byte
// or string and JSON-encoded otherwise. ContentType defaults to JSON.
type Request struct {
	Method      string
	Path        string
	Body        any
	ContentType string
}

// Result is a successful response. Value holds the decoded JSON document for
// JSON responses, the body text otherwise, and nil for an empty body.
type Result struct {
	StatusCode  int
	ContentType string
	JSON        bool
	Raw         []byte
	Value       any
}

// Text returns the raw body as a string.
func (r *Result) Text() string {
	return string(r.Raw)
}

// Decode unmarshals a JSON body into dst. An empty body leaves dst untouched.
func (r *Result) Decode(dst any) error {
	if !r.JSON {
		return fmt.Errorf("%w: response is %q, not JSON", ErrDecodingFailed, r.ContentType)
	}
	if len(bytes.TrimSpace(r.Raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Raw, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingFailed, err)
	}
	return nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Result, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Result, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}

// Do executes req with retries. Every returned error is an *APIError.
func (c *Client) Do(ctx context.Context, req Request) (*Result, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	payload, err := encodeBody(req.Body)
	if err != nil {
		return nil, c.classifier.ClassifyTransport(FailureInvalidRequest, err)
	}

	return c.retry.run(ctx, func(ctx context.Context, attempt int) (*Result, error) {
		return c.execute(ctx, req, payload, attempt)
	})
}

// execute wraps one attempt in a client span.
func (c *Client) execute(ctx context.Context, req Request, payload []byte, attempt int) (*Result, error) {
	ctx, span := c.tracer.Start(ctx, req.Method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
			attribute.Int("sponsorapi.attempt", attempt),
		))
	defer span.End()

	res, err := c.exchange(ctx, req, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if apiErr, ok := AsAPIError(err); ok && apiErr.Status != 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", apiErr.Status))
		}
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))
	return res, nil
}

// exchange performs a single HTTP round trip under the per-attempt timeout.
func (c *Client) exchange(ctx context.Context, r Request, payload []byte) (*Result, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, c.classifier.ClassifyTransport(transportFailureOf(ctx, err), err)
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(attemptCtx, r.Method, c.url(r.Path), body)
	if err != nil {
		return nil, c.classifier.ClassifyTransport(FailureInvalidRequest, err)
	}
	c.applyHeaders(attemptCtx, req, r.ContentType)

	c.logger.Debugf("%s %s (request %s)", r.Method, req.URL, req.Header.Get(HeaderRequestID))
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifier.ClassifyTransport(transportFailureOf(ctx, err), err)
	}
	defer closeBodySafely(res.Body, c.logger, "response")

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, c.classifier.ClassifyTransport(transportFailureOf(ctx, err), err)
	}

	result, err := parseBody(res, raw)
	if err != nil {
		return nil, c.classifier.ClassifyTransport(FailureInvalidResponse, err)
	}
	if !isSuccess(res.StatusCode) {
		return nil, c.classifier.ClassifyResponse(res.StatusCode, statusText(res), result.Value)
	}
	return result, nil
}

func (c *Client) applyHeaders(ctx context.Context, req *http.Request, contentType string) {
	if contentType == "" {
		contentType = contentTypeJSON
	}
	req.Header.Set(headerContentType, contentType)
	req.Header.Set(headerAccept, contentTypeJSON)
	req.Header.Set(HeaderRequestID, c.newRequestID())
	c.credentials.authorize(req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// encodeBody renders a request body once so that it can be replayed on retry.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case json.RawMessage:
		return b, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return payload, nil
}
