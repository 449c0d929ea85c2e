package ipify

import (
	"bufio"
	"context"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

const (
	DefaultIPv4URL = "https://api.ipify.org"
	DefaultIPv6URL = "https://api64.ipify.org"

	lookupTimeout = 15 * time.Second
)

// Resolver asks two plain-text "what is my IP" services for the public
// IPv4 and IPv6 address. It implements interfaces.AddressResolver.
type Resolver struct {
	httpClient *http.Client
	ipv4URL    string
	ipv6URL    string
}

// Option configures Resolver
type Option func(*Resolver)

func WithIPv4URL(u string) Option {
	return func(r *Resolver) {
		r.ipv4URL = u
	}
}

func WithIPv6URL(u string) Option {
	return func(r *Resolver) {
		r.ipv6URL = u
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		r.httpClient = c
	}
}

// New creates a Resolver using ipify endpoints unless overridden
func New(opts ...Option) *Resolver {
	r := &Resolver{
		httpClient: cleanhttp.DefaultClient(),
		ipv4URL:    DefaultIPv4URL,
		ipv6URL:    DefaultIPv6URL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve performs both lookups once. There is no retry.
func (r *Resolver) Resolve(ctx context.Context) (*model.AddressPair, error) {
	v4, err := r.lookup(ctx, r.ipv4URL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up IPv4 address", goerr.V("url", r.ipv4URL))
	}
	v6, err := r.lookup(ctx, r.ipv6URL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to look up IPv6 address", goerr.V("url", r.ipv6URL))
	}

	pair := &model.AddressPair{IPv4: v4.String(), IPv6: v6.String()}
	logging.From(ctx).Info("Resolved public addresses", "ipv4", pair.IPv4, "ipv6", pair.IPv6)
	return pair, nil
}

func (r *Resolver) lookup(ctx context.Context, url string) (netip.Addr, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return netip.Addr{}, goerr.Wrap(err, "failed to create lookup request", goerr.T(types.ErrTagNetwork))
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return netip.Addr{}, goerr.Wrap(err, "lookup request failed", goerr.T(types.ErrTagNetwork))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return netip.Addr{}, goerr.New("lookup returned unexpected status",
			goerr.V("status", resp.StatusCode),
			goerr.T(types.ErrTagNetwork))
	}

	line, _ := bufio.NewReader(resp.Body).ReadString('\n')
	addr, err := netip.ParseAddr(strings.TrimSpace(line))
	if err != nil {
		return netip.Addr{}, goerr.Wrap(err, "lookup returned an invalid address",
			goerr.V("body", line),
			goerr.T(types.ErrTagNetwork))
	}
	return addr, nil
}
