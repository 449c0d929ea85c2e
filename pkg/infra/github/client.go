package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

const (
	DefaultAttempts   = 3
	DefaultRetryDelay = 5 * time.Second
	DefaultTimeout    = 10 * time.Second
)

// Client wraps go-github with a fixed-delay retrying transport
type Client struct {
	gh *github.Client

	attempts   int
	retryDelay time.Duration
	timeout    time.Duration
	baseURL    string
	token      string

	appID          int64
	installationID int64
	privateKey     []byte
}

// Option configures Client
type Option func(*Client)

// WithAttempts sets the total number of tries per request (minimum 1)
func WithAttempts(n int) Option {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		c.attempts = n
	}
}

// WithRetryDelay sets the fixed wait between attempts
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithTimeout sets the per-attempt timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBaseURL points the client at another API root, e.g. GitHub Enterprise or a test server
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithToken authenticates with a personal access token
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithAppAuth authenticates as a GitHub App installation
func WithAppAuth(appID, installationID int64, privateKey []byte) Option {
	return func(c *Client) {
		c.appID = appID
		c.installationID = installationID
		c.privateKey = privateKey
	}
}

// NewClient creates a GitHub client. Without credentials it uses anonymous access.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		attempts:   DefaultAttempts,
		retryDelay: DefaultRetryDelay,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	var transport http.RoundTripper = cleanhttp.DefaultPooledTransport()
	if c.appID != 0 {
		itr, err := ghinstallation.New(transport, c.appID, c.installationID, c.privateKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App transport",
				goerr.V("app_id", c.appID),
				goerr.V("installation_id", c.installationID),
				goerr.T(types.ErrTagConfig))
		}
		if c.baseURL != "" {
			itr.BaseURL = strings.TrimSuffix(c.baseURL, "/")
		}
		transport = itr
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}
	retryClient.Logger = nil
	retryClient.RetryMax = c.attempts - 1
	retryClient.RetryWaitMin = c.retryDelay
	retryClient.RetryWaitMax = c.retryDelay
	retryClient.Backoff = fixedBackoff
	retryClient.CheckRetry = retryOnAnyFailure
	retryClient.RequestLogHook = c.logAttempt

	gh := github.NewClient(retryClient.StandardClient())
	if c.token != "" {
		gh = gh.WithAuthToken(c.token)
	}
	if c.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub base URL",
				goerr.V("base_url", c.baseURL),
				goerr.T(types.ErrTagConfig))
		}
		gh.BaseURL = u
	}
	c.gh = gh

	return c, nil
}

func fixedBackoff(min, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return min
}

// retryOnAnyFailure treats transport errors, timeouts and every non-2xx
// status alike. Only cancellation of the caller's context stops retrying.
func retryOnAnyFailure(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	logger := logging.From(ctx)
	if err != nil {
		logger.Warn("GitHub request failed", "error", err)
		return true, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("GitHub request returned unexpected status",
			"status", resp.StatusCode,
			"url", resp.Request.URL.String(),
		)
		return true, nil
	}
	return false, nil
}

func (c *Client) logAttempt(_ retryablehttp.Logger, req *http.Request, attempt int) {
	logging.From(req.Context()).Debug("Requesting GitHub API",
		"method", req.Method,
		"url", req.URL.String(),
		"attempt", attempt+1,
		"max_attempts", c.attempts,
	)
}
