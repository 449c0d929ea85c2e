package interfaces

import (
	"context"

	"github.com/m-mizutani/relmon/pkg/domain/model"
)

// AddressResolver looks up the caller's public addresses
type AddressResolver interface {
	Resolve(ctx context.Context) (*model.AddressPair, error)
}

// DNSProvider points A/AAAA records of a domain to the given addresses
type DNSProvider interface {
	SetRecords(ctx context.Context, domain string, pair *model.AddressPair) error
}
