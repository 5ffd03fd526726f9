package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomdyson/go-amee/internal/domain"
)

const key = "amee/alice/password"

func TestStoreCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		call      func(*Store) error
		wantArgs  []string
		wantInput string
	}{
		{
			name:      "put inserts multiline",
			call:      func(s *Store) error { return s.Put(context.Background(), key, "s3cret") },
			wantArgs:  []string{"insert", "--multiline", "--force", key},
			wantInput: "s3cret\n",
		},
		{
			name:     "delete removes",
			call:     func(s *Store) error { return s.Delete(context.Background(), key) },
			wantArgs: []string{"rm", "--force", key},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotArgs []string
			var gotInput string
			store := &Store{run: func(_ context.Context, input string, args ...string) (string, string, error) {
				gotArgs, gotInput = args, input
				return "", "", nil
			}}

			require.NoError(t, tc.call(store))
			assert.Equal(t, tc.wantArgs, gotArgs)
			assert.Equal(t, tc.wantInput, gotInput)
		})
	}
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	store := &Store{run: func(_ context.Context, input string, args ...string) (string, string, error) {
		assert.Equal(t, []string{"show", key}, args)
		assert.Empty(t, input)
		return "s3cret\r\nurl: https://amee.example\n", "", nil
	}}

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
}

func TestStoreMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{run: func(context.Context, string, ...string) (string, string, error) {
		return "", "Error: amee/alice/password is not in the password store.", errors.New("exit status 1")
	}}

	_, err := store.Get(context.Background(), key)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.NoError(t, store.Delete(context.Background(), key))
}

func TestStoreReportsStderr(t *testing.T) {
	t.Parallel()

	store := &Store{run: func(context.Context, string, ...string) (string, string, error) {
		return "", "gpg: decryption failed", errors.New("exit status 2")
	}}

	_, err := store.Get(context.Background(), key)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, `pass show "amee/alice/password"`)
	assert.ErrorContains(t, err, "gpg: decryption failed")
}
