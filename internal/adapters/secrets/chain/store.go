package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	filestore "github.com/tomdyson/go-amee/internal/adapters/secrets/file"
	passstore "github.com/tomdyson/go-amee/internal/adapters/secrets/pass"
	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports"
)

// Store reads from primary and consults fallback when primary is unusable or
// has no entry. Deletes reach both backends so no stale copy survives.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	logger   hclog.Logger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary, fallback ports.SecretStore, logger hclog.Logger) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Store{primary: primary, fallback: fallback, logger: logger.Named("secrets")}, nil
}

// NewPassFirstWithFileFallback chains the pass manager over a TOML secrets file.
func NewPassFirstWithFileFallback(filePath string, logger hclog.Logger) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(filePath), logger)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if isContextError(err) {
		return err
	}
	s.logger.Debug("primary secret store put failed, using fallback", "key", key, "error", err)

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if isContextError(err) {
		return "", err
	}

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}
	if errors.Is(err, passstore.ErrUnavailable) {
		return "", fallbackErr
	}
	if errors.Is(err, domain.ErrSecretNotFound) && errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	if isContextError(primaryErr) {
		return primaryErr
	}
	if errors.Is(primaryErr, passstore.ErrUnavailable) {
		primaryErr = nil
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if err := errors.Join(primaryErr, fallbackErr); err != nil {
		return fmt.Errorf("delete secret %q: %w", key, err)
	}

	return nil
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
