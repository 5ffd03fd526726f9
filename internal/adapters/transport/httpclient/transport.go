package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomdyson/go-amee/internal/ports"
)

const (
	DefaultTimeout       = 10 * time.Second
	maxResponseBodyBytes = 8 << 20
)

var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// Transport performs single HTTP exchanges. Redirects are returned to the
// caller untouched: a 201 with a Location header means "created" to AMEE.
type Transport struct {
	client *http.Client
}

var _ ports.Transport = (*Transport)(nil)

// New wraps client, or a fresh client when nil. The client is copied so the
// redirect policy does not leak into callers sharing it.
func New(client *http.Client) *Transport {
	var c http.Client
	if client != nil {
		c = *client
	}
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Transport{client: &c}
}

func (t *Transport) Fetch(ctx context.Context, req ports.TransportRequest) (ports.TransportResponse, error) {
	requestCtx, cancel := requestContext(ctx, req.Timeout)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(requestCtx, req.Method, req.URI, body)
	if err != nil {
		return ports.TransportResponse{}, fmt.Errorf("create request: %w", err)
	}
	for name, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return ports.TransportResponse{}, fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes+1))
	if err != nil {
		return ports.TransportResponse{}, fmt.Errorf("read response: %w", err)
	}
	if len(data) > maxResponseBodyBytes {
		return ports.TransportResponse{}, ErrResponseTooLarge
	}

	return ports.TransportResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// requestContext bounds the request by timeout unless the caller already set
// an earlier deadline.
func requestContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= timeout {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}
