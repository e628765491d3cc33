package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	pkghttp "github.com/goto/intake/pkg/http"
	"github.com/goto/intake/pkg/log"
)

type pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type envelope struct {
	Data interface{} `json:"data"`
	Meta struct {
		Pagination *pagination `json:"pagination,omitempty"`
	} `json:"meta"`
}

// Client talks to the CMS REST API. Every payload is wrapped in {"data": ...} and every
// reply unwrapped from it.
type Client struct {
	config *Config
	http   *pkghttp.Client
	logger log.Logger
}

func NewClient(config *Config, logger log.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cms config: %w", err)
	}

	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing cms base url: %w", err)
	}
	base.Path = path.Join(base.Path, config.APIPrefix)

	httpClient, err := pkghttp.NewClient(&pkghttp.ClientConfig{
		Name:       "strapi",
		URL:        base.String(),
		Headers:    config.Headers,
		Auth:       config.Auth,
		RetryCount: config.RetryCount,
		RateLimit:  config.RateLimit,
		Burst:      config.Burst,
	})
	if err != nil {
		return nil, err
	}

	return &Client{config: config, http: httpClient, logger: logger}, nil
}

func (c *Client) do(ctx context.Context, method, p string, query url.Values, payload interface{}) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(map[string]interface{}{"data": payload})
		if err != nil {
			return nil, fmt.Errorf("encoding payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.http.NewRequest(ctx, method, p, query, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, p, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	c.logger.Debug(ctx, "cms call", "method", method, "path", p, "status", resp.StatusCode, "duration", time.Since(started).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newResponseError(method, p, resp.StatusCode, respBody)
	}

	env := &envelope{}
	if len(bytes.TrimSpace(respBody)) == 0 || resp.StatusCode == http.StatusNoContent {
		return env, nil
	}
	if err := json.Unmarshal(respBody, env); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	return env, nil
}

// list follows the pagination metadata until every page of a collection is read.
func (c *Client) list(ctx context.Context, p string, query url.Values) ([]map[string]interface{}, error) {
	var records []map[string]interface{}
	for page := 1; ; page++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("pagination[page]", strconv.Itoa(page))
		q.Set("pagination[pageSize]", strconv.Itoa(c.config.PageSize))

		env, err := c.do(ctx, http.MethodGet, p, q, nil)
		if err != nil {
			return nil, err
		}

		items, ok := env.Data.([]interface{})
		if !ok && env.Data != nil {
			return nil, fmt.Errorf("%w: expected a list from %s", ErrMalformedResponse, p)
		}
		for _, item := range items {
			record, ok := item.(map[string]interface{})
			if !ok {
				c.logger.Warn(ctx, "skipping malformed cms record", "path", p)
				continue
			}
			records = append(records, record)
		}

		pg := env.Meta.Pagination
		if pg == nil || page >= pg.PageCount {
			return records, nil
		}
	}
}

// one expects a single record in data.
func (c *Client) one(ctx context.Context, method, p string, query url.Values, payload interface{}) (map[string]interface{}, error) {
	env, err := c.do(ctx, method, p, query, payload)
	if err != nil {
		return nil, err
	}
	record, ok := env.Data.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected a record from %s %s", ErrMalformedResponse, method, p)
	}
	return record, nil
}

func (c *Client) resourcePath(collection string, id ...string) string {
	if len(id) == 0 {
		return collection
	}
	return path.Join(collection, url.PathEscape(id[0]))
}

func populateAll() url.Values {
	return url.Values{"populate": []string{"*"}}
}
