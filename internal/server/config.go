package server

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goto/salt/config"
	"github.com/joho/godotenv"
	defaults "github.com/mcuadros/go-defaults"

	"github.com/goto/intake/domain"
	"github.com/goto/intake/internal/store"
	"github.com/goto/intake/internal/store/strapi"
	"github.com/goto/intake/jobs"
	"github.com/goto/intake/pkg/opentelemetry"
)

const envPrefix = "INTAKE"

type WorkflowConfig struct {
	domain.WorkingHours `mapstructure:",squash" yaml:",inline"`

	TransitionTimeout time.Duration `mapstructure:"transition_timeout" yaml:"transition_timeout" default:"15s"`
}

type DashboardConfig struct {
	ListingLimit   int           `mapstructure:"listing_limit" yaml:"listing_limit" default:"5" validate:"min=0"`
	SchemaCacheTTL time.Duration `mapstructure:"schema_cache_ttl" yaml:"schema_cache_ttl" default:"5m"`
}

type Config struct {
	LogLevel  string `mapstructure:"log_level" yaml:"log_level" default:"info"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" default:"text" validate:"oneof=text json"`
	Locale    string `mapstructure:"locale" yaml:"locale" default:"en" validate:"oneof=en es"`
	// Actor is recorded in the audit trail for operations run from this installation.
	Actor string `mapstructure:"actor" yaml:"actor"`

	CMS       strapi.Config          `mapstructure:"cms" yaml:"cms"`
	Workflow  WorkflowConfig         `mapstructure:"workflow" yaml:"workflow"`
	Dashboard DashboardConfig        `mapstructure:"dashboard" yaml:"dashboard"`
	DB        store.Config           `mapstructure:"db" yaml:"db"`
	Telemetry opentelemetry.Config   `mapstructure:"telemetry" yaml:"telemetry"`
	Jobs      map[jobs.Type]jobs.Job `mapstructure:"jobs" yaml:"jobs"`
}

// LoadConfig reads an optional .env file, then the config file and INTAKE_* env vars.
// A missing config file is not an error; defaults apply.
func LoadConfig(configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	defaults.SetDefaults(&cfg)
	loader := config.NewLoader(
		config.WithFile(configFile),
		config.WithEnvPrefix(envPrefix),
		config.WithEnvKeyReplacer(".", "_"),
	)

	if err := loader.Load(&cfg); err != nil {
		if !errors.As(err, &config.ConfigFileNotFoundError{}) {
			return Config{}, err
		}
		fmt.Fprintln(os.Stderr, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
