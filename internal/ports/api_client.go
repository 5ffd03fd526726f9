package ports

import (
	"context"
	"net/http"

	"github.com/tomdyson/go-amee/internal/domain"
)

// APIClient issues authenticated requests against one AMEE server.
type APIClient interface {
	Request(ctx context.Context, method, path string, payload domain.Payload, header http.Header) (domain.Response, error)
	Server() string
}
