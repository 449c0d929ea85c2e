package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relmon/pkg/domain/interfaces"
	"github.com/m-mizutani/relmon/pkg/utils/logging"
)

// Publish looks up the public addresses once and writes them to the remote
// record file. DNS sync runs after the file write when configured.
type Publish struct {
	resolver interfaces.AddressResolver
	writer   interfaces.RecordWriter
	dns      interfaces.DNSProvider
	domain   string
	dryRun   bool
}

type PublishOption func(*Publish)

// WithDNS also points A/AAAA records of domain to the resolved addresses
func WithDNS(provider interfaces.DNSProvider, domain string) PublishOption {
	return func(uc *Publish) {
		uc.dns = provider
		uc.domain = domain
	}
}

// WithDryRun resolves the addresses but writes nothing
func WithDryRun(dryRun bool) PublishOption {
	return func(uc *Publish) {
		uc.dryRun = dryRun
	}
}

func NewPublish(resolver interfaces.AddressResolver, writer interfaces.RecordWriter, opts ...PublishOption) *Publish {
	uc := &Publish{
		resolver: resolver,
		writer:   writer,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run returns the published content
func (uc *Publish) Run(ctx context.Context) (string, error) {
	logger := logging.From(ctx)

	pair, err := uc.resolver.Resolve(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve public addresses")
	}

	content := pair.Content()

	if uc.dryRun {
		logger.Info("Dry run, skip publishing", "content", content)
		return content, nil
	}

	if err := uc.writer.Publish(ctx, content); err != nil {
		return "", goerr.Wrap(err, "failed to publish address record", goerr.V("content", content))
	}

	if uc.dns != nil {
		if err := uc.dns.SetRecords(ctx, uc.domain, pair); err != nil {
			return "", goerr.Wrap(err, "failed to update DNS records", goerr.V("domain", uc.domain))
		}
		logger.Info("DNS records updated", "domain", uc.domain)
	}

	return content, nil
}
