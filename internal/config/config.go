package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".amee"
	envPrefix  = "AMEE"

	DefaultServer   = "https://stage.co2.dgen.net"
	DefaultTimeout  = 10 * time.Second
	DefaultLogLevel = "warn"

	CacheMemory = "memory"
	CacheFile   = "file"
	CacheSQLite = "sqlite"
)

var logLevels = []any{"trace", "debug", "info", "warn", "error", "off"}

type Config struct {
	Server   string        `mapstructure:"server"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
	LogLevel string        `mapstructure:"log_level"`
	Cache    CacheConfig   `mapstructure:"cache"`

	// Dir holds the config file, the drill cache and the secrets file.
	Dir string `mapstructure:"-"`
}

type CacheConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// Load reads config.toml from dir (default ~/.amee), then applies AMEE_*
// environment overrides. A missing config file is not an error.
func Load(v *viper.Viper, dir string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(homeDir, configDir)
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)

	v.SetDefault("server", DefaultServer)
	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("cache.backend", CacheFile)
	v.SetDefault("cache.path", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Dir = dir
	cfg.Server = strings.TrimRight(strings.TrimSpace(cfg.Server), "/")
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = defaultCachePath(dir, cfg.Cache.Backend)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}

	return nil
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Server, validation.Required, validation.By(validServerURL)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.LogLevel, validation.Required, validation.In(logLevels...)),
		validation.Field(&c.Cache),
	)
}

func (c CacheConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required, validation.In(CacheMemory, CacheFile, CacheSQLite)),
		validation.Field(&c.Path, validation.When(c.Backend != CacheMemory, validation.Required)),
	)
}

// SecretsPath is the TOML file backing the password fallback store.
func (c Config) SecretsPath() string {
	return filepath.Join(c.Dir, "secrets.toml")
}

// NewLogger builds the CLI logger at the configured level.
func (c Config) NewLogger(out io.Writer) hclog.Logger {
	level := hclog.LevelFromString(c.LogLevel)
	if level == hclog.NoLevel {
		level = hclog.Warn
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "amee",
		Level:  level,
		Output: out,
	})
}

func defaultCachePath(dir, backend string) string {
	switch backend {
	case CacheFile:
		return filepath.Join(dir, "drill-cache.toml")
	case CacheSQLite:
		return filepath.Join(dir, "drill-cache.db")
	default:
		return ""
	}
}

func validServerURL(value any) error {
	server, _ := value.(string)
	parsed, err := url.Parse(server)
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("must use http or https")
	}
	if parsed.Host == "" {
		return errors.New("must include a host")
	}

	return nil
}
