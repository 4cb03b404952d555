package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/altinukshini/batch-tui/internal/logging"
)

const apiPrefix = "api/v1"

// Client talks to the batch server REST API. Reads go through a retrying
// transport; mutations never retry so an action is not applied twice.
type Client struct {
	read    *ghAPI.RESTClient
	write   *ghAPI.RESTClient
	baseURL string
	log     zerolog.Logger
}

type Options struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	RetryMax int
	Log      zerolog.Logger
}

func NewClient(opts Options) (*Client, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q", opts.BaseURL)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = logging.RetryLogger{Log: opts.Log}
	// Hand the final response back so go-gh can surface the server's message.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	read, err := newREST(opts, u.Hostname(), &retryablehttp.RoundTripper{Client: rc})
	if err != nil {
		return nil, fmt.Errorf("create read client: %w", err)
	}
	write, err := newREST(opts, u.Hostname(), http.DefaultTransport)
	if err != nil {
		return nil, fmt.Errorf("create write client: %w", err)
	}

	return &Client{
		read:    read,
		write:   write,
		baseURL: strings.TrimSuffix(u.String(), "/"),
		log:     opts.Log,
	}, nil
}

func newREST(opts Options, host string, rt http.RoundTripper) (*ghAPI.RESTClient, error) {
	return ghAPI.NewRESTClient(ghAPI.ClientOptions{
		Host:               host,
		AuthToken:          opts.Token,
		Timeout:            opts.Timeout,
		SkipDefaultHeaders: true,
		LogIgnoreEnv:       true,
		Headers: map[string]string{
			"Accept":        "application/json",
			"Content-Type":  "application/json; charset=utf-8",
			"Authorization": "Bearer " + opts.Token,
			"User-Agent":    "batch-tui",
		},
		Transport: requestIDTransport{next: rt, log: opts.Log},
	})
}

// endpoint turns an API-relative path into the absolute URL go-gh passes
// through unchanged.
func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, apiPrefix, strings.TrimPrefix(path, "/"))
}

func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.read.DoWithContext(ctx, http.MethodGet, c.endpoint(path), nil, result)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return c.write.DoWithContext(ctx, http.MethodPost, c.endpoint(path), reader, result)
}
