package ports

import (
	"context"
	"net/http"
	"time"
)

type TransportRequest struct {
	Method  string
	URI     string
	Header  http.Header
	Body    []byte
	Timeout time.Duration
}

type TransportResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs exactly one HTTP exchange and never follows redirects.
type Transport interface {
	Fetch(ctx context.Context, req TransportRequest) (TransportResponse, error)
}
