package sponsorapi

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// UploadFile is a file sent as the "file" field of a multipart form.
// Size is the number of bytes Reader will yield, or -1 when unknown.
type UploadFile struct {
	Name   string
	Reader io.Reader
	Size   int64
}

// ProgressFunc receives the fraction of the request body sent so far.
type ProgressFunc func(fraction float64)

// Upload sends file to path as multipart/form-data. onProgress receives
// non-decreasing fractions while the body is sent and exactly 1.0 once the
// server accepts the upload. Uploads are not retried.
func (c *Client) Upload(ctx context.Context, path string, file UploadFile, onProgress ProgressFunc) (*Result, error) {
	body, contentType, total, err := multipartBody(file)
	if err != nil {
		return nil, c.classifier.ClassifyTransport(FailureInvalidRequest, err)
	}

	var progress *progressReader
	if onProgress != nil {
		progress = &progressReader{r: body, total: total, onProgress: onProgress}
		body = progress
		// The transport may keep reading the body after a response or error
		// arrives; nothing is reported once Upload has returned.
		defer progress.stop()
	}

	spanCtx, span := c.tracer.Start(ctx, "UPLOAD "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	uploadCtx, cancel := context.WithTimeout(spanCtx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(uploadCtx, http.MethodPost, c.url(path), body)
	if err != nil {
		return nil, c.classifier.ClassifyTransport(FailureInvalidRequest, err)
	}
	if total > 0 {
		req.ContentLength = total
	}
	c.applyHeaders(uploadCtx, req, contentType)

	c.logger.Debugf("Uploading %q to %s (%d bytes)", file.Name, req.URL, total)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.uploadTransportError(ctx, err)
	}
	defer closeBodySafely(res.Body, c.logger, "upload response")

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, c.uploadTransportError(ctx, err)
	}

	result := parseLenient(res, raw)
	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))
	if !isSuccess(res.StatusCode) {
		apiErr := c.classifier.ClassifyResponse(res.StatusCode, statusText(res), result.Value)
		span.SetStatus(codes.Error, apiErr.Message)
		return nil, apiErr
	}

	if progress != nil {
		progress.finish()
	}
	return result, nil
}

func (c *Client) uploadTransportError(parent context.Context, err error) *APIError {
	failure := transportFailureOf(parent, err)
	apiErr := c.classifier.ClassifyTransport(failure, err)
	switch failure {
	case FailureTimeout:
		apiErr.Message = MsgUploadTimeout
	case FailureNetwork:
		apiErr.Message = MsgUploadNetwork
	}
	return apiErr
}

// multipartBody streams file between a precomputed multipart header and
// trailer. total is -1 when the file size is unknown.
func multipartBody(file UploadFile) (io.Reader, string, int64, error) {
	name := file.Name
	if name == "" {
		name = defaultUploadName
	}
	reader := file.Reader
	if reader == nil {
		reader = bytes.NewReader(nil)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if _, err := mw.CreateFormFile(uploadFormField, name); err != nil {
		return nil, "", 0, err
	}
	prefix := append([]byte(nil), buf.Bytes()...)
	buf.Reset()
	if err := mw.Close(); err != nil {
		return nil, "", 0, err
	}
	suffix := append([]byte(nil), buf.Bytes()...)

	total := int64(-1)
	if file.Size >= 0 {
		total = int64(len(prefix)) + file.Size + int64(len(suffix))
	}

	body := io.MultiReader(bytes.NewReader(prefix), reader, bytes.NewReader(suffix))
	return body, mw.FormDataContentType(), total, nil
}

// progressReader reports read progress as a fraction of total. Fractions are
// only reported while the total is known and the body is incomplete. finish
// reports the final 1.0; both finish and stop silence any later reads.
type progressReader struct {
	r          io.Reader
	total      int64
	onProgress ProgressFunc

	mu   sync.Mutex
	read int64
	last float64
	done bool
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.advance(int64(n))
	}
	return n, err
}

func (p *progressReader) advance(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.read += n
	if p.done || p.total <= 0 || p.read >= p.total {
		return
	}
	fraction := float64(p.read) / float64(p.total)
	if fraction > p.last {
		p.last = fraction
		p.onProgress(fraction)
	}
}

func (p *progressReader) finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = true
	p.last = 1
	p.onProgress(1)
}

func (p *progressReader) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = true
}
