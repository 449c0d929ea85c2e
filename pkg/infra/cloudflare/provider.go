package cloudflare

import (
	"context"
	"net/netip"
	"strings"

	"github.com/cloudflare/cloudflare-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/model"
	"github.com/m-mizutani/relmon/pkg/domain/types"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

const recordComment = "managed by relmon"

// Provider syncs A/AAAA records of a Cloudflare zone. It implements interfaces.DNSProvider.
type Provider struct {
	api *cloudflare.API
	ttl int
}

// Option configures Provider
type Option func(*Provider)

// WithTTL sets the TTL of created records (default 60)
func WithTTL(ttl int) Option {
	return func(p *Provider) {
		p.ttl = ttl
	}
}

// New creates a provider authenticated with an API token
func New(token string, opts ...Option) (*Provider, error) {
	api, err := cloudflare.NewWithAPIToken(token)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create cloudflare api client", goerr.T(types.ErrTagConfig))
	}

	p := &Provider{api: api, ttl: 60}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SetRecords makes the A/AAAA set of domain equal to the addresses in pair:
// stale records are deleted and missing ones created.
func (p *Provider) SetRecords(ctx context.Context, domain string, pair *model.AddressPair) error {
	logger := logging.From(ctx).With("domain", domain)
	vars := []goerr.Option{goerr.V("domain", domain), goerr.T(types.ErrTagRemoteWrite)}

	addrs, err := desiredAddrs(pair)
	if err != nil {
		return goerr.Wrap(err, "invalid address pair", vars...)
	}

	zid, err := p.zoneID(ctx, domain)
	if err != nil {
		return goerr.Wrap(err, "failed to find zone", vars...)
	}

	records, _, err := p.api.ListDNSRecords(ctx, cloudflare.ZoneIdentifier(zid), cloudflare.ListDNSRecordsParams{
		Type: "A,AAAA",
		Name: domain,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to list DNS records", vars...)
	}

	wanted := map[netip.Addr]bool{}
	for _, a := range addrs {
		wanted[a] = true
	}
	existing := map[netip.Addr]bool{}

	for _, r := range records {
		a, err := netip.ParseAddr(r.Content)
		if err != nil {
			return goerr.Wrap(err, "failed to parse IP from record content", append(vars, goerr.V("record_id", r.ID))...)
		}
		existing[a] = true
		if wanted[a] {
			continue
		}

		if err := p.api.DeleteDNSRecord(ctx, cloudflare.ZoneIdentifier(zid), r.ID); err != nil {
			return goerr.Wrap(err, "failed to delete DNS record", append(vars, goerr.V("record_id", r.ID))...)
		}
		logger.Info("Deleted stale DNS record", "addr", a.String())
	}

	for _, a := range addrs {
		if existing[a] {
			logger.Debug("DNS record already up to date", "addr", a.String())
			continue
		}

		_, err := p.api.CreateDNSRecord(ctx, cloudflare.ZoneIdentifier(zid), cloudflare.CreateDNSRecordParams{
			Type:    recordType(a),
			Name:    domain,
			Content: a.String(),
			ZoneID:  zid,
			TTL:     p.ttl,
			Comment: recordComment,
		})
		if err != nil {
			return goerr.Wrap(err, "failed to create DNS record", append(vars, goerr.V("addr", a.String()))...)
		}
		logger.Info("Created DNS record", "addr", a.String(), "type", recordType(a))
	}

	return nil
}

// zoneID picks the zone with the longest name that is a suffix of domain
func (p *Provider) zoneID(ctx context.Context, domain string) (string, error) {
	zones, err := p.api.ListZones(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list zones")
	}

	var zid string
	longest := 0
	for _, z := range zones {
		if (domain == z.Name || strings.HasSuffix(domain, "."+z.Name)) && len(z.Name) > longest {
			longest, zid = len(z.Name), z.ID
		}
	}
	if zid == "" {
		return "", goerr.New("no zone matches domain", goerr.V("domain", domain))
	}
	return zid, nil
}

// desiredAddrs parses both addresses and drops duplicates. The IPv6 lookup
// service answers with IPv4 on hosts without IPv6 connectivity.
func desiredAddrs(pair *model.AddressPair) ([]netip.Addr, error) {
	var addrs []netip.Addr
	seen := map[netip.Addr]bool{}

	for _, s := range []string{pair.IPv4, pair.IPv6} {
		if s == "" {
			continue
		}
		a, err := netip.ParseAddr(s)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse address", goerr.V("addr", s))
		}
		a = a.Unmap()
		if seen[a] {
			continue
		}
		seen[a] = true
		addrs = append(addrs, a)
	}

	if len(addrs) == 0 {
		return nil, goerr.New("no address to publish")
	}
	return addrs, nil
}

func recordType(a netip.Addr) string {
	if a.Is4() {
		return "A"
	}
	return "AAAA"
}
