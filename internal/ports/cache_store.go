package ports

import "context"

type CacheStore interface {
	// Get reports whether key exists in namespace.
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
}
