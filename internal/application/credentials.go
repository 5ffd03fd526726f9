package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports"
)

var ErrUsernameRequired = errors.New("username is required")

// CredentialService keeps AMEE account passwords in a secret store.
type CredentialService struct {
	store ports.SecretStore
}

func NewCredentialService(store ports.SecretStore) *CredentialService {
	return &CredentialService{store: store}
}

// PasswordKey is the secret-store key holding username's password.
func PasswordKey(username string) string {
	return "amee/" + strings.TrimSpace(username) + "/password"
}

func (s *CredentialService) SetPassword(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}
	if password == "" {
		return errors.New("password is required")
	}

	if err := s.store.Put(ctx, PasswordKey(username), password); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	return nil
}

// ReplacePassword stores a new password and restores the previous one when
// the caller's verification fails.
func (s *CredentialService) ReplacePassword(ctx context.Context, username, password string, verify func(context.Context) error) error {
	previous, err := s.Password(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
		return err
	}

	if err := s.SetPassword(ctx, username, password); err != nil {
		return err
	}
	if verify == nil {
		return nil
	}

	verifyErr := verify(ctx)
	if verifyErr == nil {
		return nil
	}

	var rollbackErr error
	if previous == "" {
		rollbackErr = s.store.Delete(ctx, PasswordKey(username))
	} else {
		rollbackErr = s.store.Put(ctx, PasswordKey(username), previous)
	}
	if rollbackErr != nil {
		return fmt.Errorf("verify password and rollback stored password: %w", errors.Join(verifyErr, rollbackErr))
	}

	return fmt.Errorf("verify password: %w", verifyErr)
}

func (s *CredentialService) RemovePassword(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}

	if err := s.store.Delete(ctx, PasswordKey(username)); err != nil {
		return fmt.Errorf("delete password: %w", err)
	}

	return nil
}

func (s *CredentialService) Password(ctx context.Context, username string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", ErrUsernameRequired
	}

	password, err := s.store.Get(ctx, PasswordKey(username))
	if err != nil {
		return "", fmt.Errorf("load password for %s: %w", username, err)
	}
	if password == "" {
		return "", fmt.Errorf("load password for %s: %w", username, domain.ErrSecretNotFound)
	}

	return password, nil
}
