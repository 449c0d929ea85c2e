package bark

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// DefaultTimeout bounds a single push request
const DefaultTimeout = 10 * time.Second

type payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Group string `json:"group"`
	Icon  string `json:"icon,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Notifier posts to Bark push endpoints. The endpoint is taken from each
// notification, so one Notifier serves every watch target.
type Notifier struct {
	httpClient *http.Client
	withURL    bool
}

// Option configures Notifier
type Option func(*Notifier)

// WithHTTPClient replaces the default client (timeout DefaultTimeout)
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) {
		n.httpClient = c
	}
}

// WithReleaseURL adds the release page as Bark's tap-through url
func WithReleaseURL(enabled bool) Option {
	return func(n *Notifier) {
		n.withURL = enabled
	}
}

// New creates a Bark notifier
func New(opts ...Option) *Notifier {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = DefaultTimeout

	n := &Notifier{httpClient: client}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify sends one POST and does not retry. Any 2xx is success.
func (x *Notifier) Notify(ctx context.Context, n *model.Notification) error {
	logger := logging.From(ctx)

	body := payload{
		Title: n.Title,
		Body:  n.Body,
		Group: n.Group,
		Icon:  n.Icon,
	}
	if x.withURL {
		body.URL = n.URL
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal bark payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint, bytes.NewReader(raw))
	if err != nil {
		return goerr.Wrap(err, "failed to create bark request", goerr.T(types.ErrTagNetwork))
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send bark notification",
			goerr.V("title", n.Title),
			goerr.T(types.ErrTagNetwork))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.New("bark endpoint returned unexpected status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)),
			goerr.V("title", n.Title),
			goerr.T(types.ErrTagNetwork))
	}

	logger.Info("Notification sent", "title", n.Title, "body", n.Body)
	return nil
}
