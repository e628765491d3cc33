package strapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	defaults "github.com/mcuadros/go-defaults"

	pkghttp "github.com/goto/intake/pkg/http"
)

type Paths struct {
	Requests     string `mapstructure:"requests" yaml:"requests" default:"/requests"`
	RequestBody  string `mapstructure:"request_body" yaml:"request_body" default:"/request-body"`
	RequestForms string `mapstructure:"request_forms" yaml:"request_forms" default:"/request-forms"`
}

// Config locates the CMS and the collections this application reads and writes.
type Config struct {
	BaseURL   string            `mapstructure:"base_url" yaml:"base_url" default:"http://localhost:1337" validate:"required,url"`
	APIPrefix string            `mapstructure:"api_prefix" yaml:"api_prefix" default:"/api"`
	Paths     Paths             `mapstructure:"paths" yaml:"paths"`
	Headers   map[string]string `mapstructure:"headers" yaml:"headers"`

	Auth *pkghttp.AuthConfig `mapstructure:"auth" yaml:"auth" validate:"omitempty"`

	// StatusAttribute is the attribute status labels are written to. Reads accept
	// both "statuss" and "status".
	StatusAttribute string `mapstructure:"status_attribute" yaml:"status_attribute" default:"statuss" validate:"oneof=statuss status"`

	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout" default:"15s"`
	RetryCount int           `mapstructure:"retry_count" yaml:"retry_count" default:"0" validate:"min=0"`
	RateLimit  float64       `mapstructure:"rate_limit" yaml:"rate_limit" default:"10" validate:"min=0"`
	Burst      int           `mapstructure:"burst" yaml:"burst" default:"5" validate:"min=1"`
	PageSize   int           `mapstructure:"page_size" yaml:"page_size" default:"100" validate:"min=1,max=100"`
}

func (c *Config) Validate() error {
	defaults.SetDefaults(c)
	return validator.New().Struct(c)
}
