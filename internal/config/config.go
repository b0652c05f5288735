// Package config loads the pantry configuration.
//
// Values come from three layers, later ones winning: built-in defaults, an
// optional YAML file, and environment variables prefixed with PANTRY_
// (for example PANTRY_ENDPOINT, PANTRY_HTTP_TIMEOUT).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "PANTRY"

// Backends selectable with Config.Backend.
const (
	BackendRemote = "remote"
	BackendFake   = "fake"
)

// Config holds the settings of the CLI and the dev server.
type Config struct {
	// Backend selects the remote.API implementation: the GraphQL endpoint or
	// the in-memory fake.
	Backend  string `yaml:"backend" envconfig:"BACKEND" validate:"required,oneof=remote fake"`
	Endpoint string `yaml:"endpoint" envconfig:"ENDPOINT" validate:"required_if=Backend remote,omitempty,url"`

	// DBPath is the SQLite file of the local key-value store.
	DBPath string `yaml:"db_path" envconfig:"DB_PATH" validate:"required"`

	HTTPTimeout   time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT" validate:"gt=0"`
	ReadAttempts  int           `yaml:"read_attempts" envconfig:"READ_ATTEMPTS" validate:"gte=1,lte=10"`
	RetryInterval time.Duration `yaml:"retry_interval" envconfig:"RETRY_INTERVAL" validate:"gt=0"`
	DebugHTTP     bool          `yaml:"debug_http" envconfig:"DEBUG_HTTP"`

	// AIClassification enables the categorizeProduct fallback of the classifier.
	AIClassification bool `yaml:"ai_classification" envconfig:"AI_CLASSIFICATION"`

	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`

	DevServer DevServer `yaml:"dev_server" envconfig:"DEV"`
}

// DevServer configures `pantry devserver`.
type DevServer struct {
	Addr      string        `yaml:"addr" envconfig:"ADDR" validate:"required"`
	JWTSecret string        `yaml:"jwt_secret" envconfig:"JWT_SECRET" validate:"required,min=8"`
	TokenTTL  time.Duration `yaml:"token_ttl" envconfig:"TOKEN_TTL" validate:"gt=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend:          BackendRemote,
		Endpoint:         "http://localhost:8080/graphql",
		DBPath:           "./data/pantry.db",
		HTTPTimeout:      30 * time.Second,
		ReadAttempts:     3,
		RetryInterval:    200 * time.Millisecond,
		AIClassification: true,
		LogLevel:         "info",
		DevServer: DevServer{
			Addr:      ":8080",
			JWTSecret: "pantry-dev-secret",
			TokenTTL:  24 * time.Hour,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	msgs := make([]error, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fmt.Errorf("invalid %s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.Join(msgs...)
}
