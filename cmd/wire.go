package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/viper"
	"github.com/tomdyson/go-amee/internal/adapters/api"
	"github.com/tomdyson/go-amee/internal/adapters/cache/memory"
	sqlitecache "github.com/tomdyson/go-amee/internal/adapters/cache/sqlite"
	tomlcache "github.com/tomdyson/go-amee/internal/adapters/cache/toml"
	drillrender "github.com/tomdyson/go-amee/internal/adapters/render/drill"
	chainstore "github.com/tomdyson/go-amee/internal/adapters/secrets/chain"
	"github.com/tomdyson/go-amee/internal/adapters/transport/httpclient"
	"github.com/tomdyson/go-amee/internal/application"
	"github.com/tomdyson/go-amee/internal/config"
	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports"
)

var errUsernameNotConfigured = errors.New("username is not configured: set username in ~/.amee/config.toml or AMEE_USERNAME")

type app struct {
	viper      *viper.Viper
	stderr     io.Writer
	httpClient *http.Client

	cfg         config.Config
	logger      hclog.Logger
	credentials *application.CredentialService

	drillRenderer    func(string, domain.Choices, domain.DrillResult) (string, error)
	profilesRenderer func([]string) (string, error)
	amountRenderer   func(string, domain.Amount) (string, error)

	mu      sync.Mutex
	account *application.Account
	closers []func() error
}

func newApp(v *viper.Viper) *app {
	return &app{
		viper:            v,
		httpClient:       http.DefaultClient,
		drillRenderer:    drillrender.Drill,
		profilesRenderer: drillrender.Profiles,
		amountRenderer:   drillrender.Amount,
	}
}

// load reads configuration once flags are parsed.
func (a *app) load(stderr io.Writer) error {
	cfg, err := config.Load(a.viper, "")
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(stderr)
	secretStore, err := chainstore.NewPassFirstWithFileFallback(cfg.SecretsPath(), logger)
	if err != nil {
		return fmt.Errorf("wire secret store chain: %w", err)
	}

	a.cfg = cfg
	a.stderr = stderr
	a.logger = logger
	a.credentials = application.NewCredentialService(secretStore)

	return nil
}

func (a *app) credentialsFor(ctx context.Context, username string) (api.Credentials, error) {
	if username == "" {
		return api.Credentials{}, errUsernameNotConfigured
	}

	password := a.cfg.Password
	if password == "" {
		stored, err := a.credentials.Password(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrSecretNotFound) {
				return api.Credentials{}, fmt.Errorf("no password for %s: run `amee auth set` or set AMEE_PASSWORD: %w", username, err)
			}
			return api.Credentials{}, err
		}
		password = stored
	}

	return api.Credentials{Username: username, Password: password}, nil
}

func (a *app) newClient(credentials api.Credentials) (*api.Client, error) {
	client, err := api.NewClient(api.Options{
		Server:      a.cfg.Server,
		Credentials: credentials,
		Transport:   httpclient.New(a.httpClient),
		Timeout:     a.cfg.Timeout,
		Logger:      a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire api client: %w", err)
	}

	return client, nil
}

// amee returns the account for the configured user, building the client and
// drill cache on first use.
func (a *app) amee(ctx context.Context) (*application.Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.account != nil {
		return a.account, nil
	}

	credentials, err := a.credentialsFor(ctx, a.cfg.Username)
	if err != nil {
		return nil, err
	}
	client, err := a.newClient(credentials)
	if err != nil {
		return nil, err
	}

	store, closer, err := openCacheStore(ctx, a.cfg.Cache)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	cache := application.NewDrillCache(application.NewResolver(client), store, client.Server(), a.logger)
	a.account = application.NewAccount(client, cache)

	return a.account, nil
}

func (a *app) close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for _, closer := range a.closers {
		errs = append(errs, closer())
	}
	a.closers = nil

	return errors.Join(errs...)
}

func openCacheStore(ctx context.Context, cfg config.CacheConfig) (ports.CacheStore, func() error, error) {
	switch cfg.Backend {
	case config.CacheMemory:
		return memory.NewStore(), nil, nil
	case config.CacheFile:
		store, err := tomlcache.NewStore(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("wire drill cache: %w", err)
		}
		return store, nil, nil
	case config.CacheSQLite:
		store, err := sqlitecache.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("wire drill cache: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
	}
}
