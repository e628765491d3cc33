package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	defaults "github.com/mcuadros/go-defaults"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/goto/intake/pkg/log"
	"github.com/goto/intake/pkg/opentelemetry/otelhttpclient"
)

const HeaderRequestID = "X-Request-Id"

type AuthConfig struct {
	Type string `mapstructure:"type" json:"type" yaml:"type" validate:"required,oneof=basic api_key bearer"`

	// basic auth
	Username string `mapstructure:"username,omitempty" json:"username,omitempty" yaml:"username,omitempty" validate:"required_if=Type basic"`
	Password string `mapstructure:"password,omitempty" json:"password,omitempty" yaml:"password,omitempty" validate:"required_if=Type basic"`

	// api key
	In    string `mapstructure:"in,omitempty" json:"in,omitempty" yaml:"in,omitempty" validate:"required_if=Type api_key,omitempty,oneof=query header"`
	Key   string `mapstructure:"key,omitempty" json:"key,omitempty" yaml:"key,omitempty" validate:"required_if=Type api_key"`
	Value string `mapstructure:"value,omitempty" json:"value,omitempty" yaml:"value,omitempty" validate:"required_if=Type api_key"`

	// bearer
	Token string `mapstructure:"token,omitempty" json:"token,omitempty" yaml:"token,omitempty" validate:"required_if=Type bearer"`
}

// ClientConfig configures a JSON client bound to one base URL.
type ClientConfig struct {
	// Name labels the client in outgoing call metrics.
	Name    string            `mapstructure:"name" json:"name" yaml:"name" default:"http"`
	URL     string            `mapstructure:"url" json:"url" yaml:"url" validate:"required,url"`
	Headers map[string]string `mapstructure:"headers,omitempty" json:"headers,omitempty" yaml:"headers,omitempty"`
	Auth    *AuthConfig       `mapstructure:"auth,omitempty" json:"auth,omitempty" yaml:"auth,omitempty" validate:"omitempty"`

	// RetryCount applies to GET and HEAD only.
	RetryCount int `mapstructure:"retry_count" json:"retry_count" yaml:"retry_count" default:"0" validate:"min=0"`
	// RateLimit is in requests per second, 0 disables pacing.
	RateLimit float64 `mapstructure:"rate_limit" json:"rate_limit" yaml:"rate_limit" default:"10" validate:"min=0"`
	Burst     int     `mapstructure:"burst" json:"burst" yaml:"burst" default:"5" validate:"min=1"`

	HTTPClient *http.Client `mapstructure:"-" json:"-" yaml:"-"`
}

// Client sends requests relative to the configured URL with auth, tracing, pacing and
// request ids applied.
type Client struct {
	httpClient *http.Client
	config     *ClientConfig
	baseURL    *url.URL
}

func NewClient(config *ClientConfig) (*Client, error) {
	defaults.SetDefaults(config)
	if err := validator.New().Struct(config); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(strings.TrimRight(config.URL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parsing url %q: %w", config.URL, err)
	}

	var timeout time.Duration
	transport := http.DefaultTransport
	if config.HTTPClient != nil {
		timeout = config.HTTPClient.Timeout
		if config.HTTPClient.Transport != nil {
			transport = config.HTTPClient.Transport
		}
	}

	transport = &RetryableTransport{Transport: transport, RetryCount: config.RetryCount}
	if config.RateLimit > 0 {
		transport = &RateLimitedTransport{
			Transport: transport,
			Limiter:   rate.NewLimiter(rate.Limit(config.RateLimit), config.Burst),
		}
	}
	transport = otelhttpclient.NewHTTPTransport(transport, config.Name)
	transport = otelhttp.NewTransport(transport)
	if config.Auth != nil && config.Auth.Type == "bearer" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.Auth.Token}),
			Base:   transport,
		}
	}

	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		config:     config,
		baseURL:    baseURL,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// NewRequest builds a request for path, which is resolved against the base URL.
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u, err := c.baseURL.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing path %q: %w", path, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}

	requestID, _ := ctx.Value(log.KeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(HeaderRequestID, requestID)

	c.setAuth(req)
	return req, nil
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) setAuth(req *http.Request) {
	if c.config.Auth != nil {
		switch c.config.Auth.Type {
		case "basic":
			req.SetBasicAuth(c.config.Auth.Username, c.config.Auth.Password)
		case "api_key":
			switch c.config.Auth.In {
			case "query":
				q := req.URL.Query()
				q.Add(c.config.Auth.Key, c.config.Auth.Value)
				req.URL.RawQuery = q.Encode()
			case "header":
				req.Header.Add(c.config.Auth.Key, c.config.Auth.Value)
			default:
			}
		default:
		}
	}
}

// RateLimitedTransport waits for the limiter before each round trip.
type RateLimitedTransport struct {
	Transport http.RoundTripper
	Limiter   *rate.Limiter
}

func (t *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.Transport.RoundTrip(req)
}
