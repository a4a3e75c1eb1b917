// Package currency resolves trade API currency identifiers to currency
// descriptors.
package currency

import (
	"context"

	domain "github.com/exile-tools/poemarket/pkg/types"
)

// Resolver maps a currency identifier to its descriptor. A nil descriptor
// with a nil error means the identifier is unknown.
type Resolver interface {
	ResolveByID(ctx context.Context, id string) (*domain.Currency, error)
}

// catalog holds the trade currencies the price APIs reference, keyed by the
// identifier the trade API uses in listing prices.
var catalog = []domain.Currency{
	{ID: "alt", NameType: "Orb of Alteration"},
	{ID: "fusing", NameType: "Orb of Fusing"},
	{ID: "alch", NameType: "Orb of Alchemy"},
	{ID: "chaos", NameType: "Chaos Orb"},
	{ID: "gcp", NameType: "Gemcutter's Prism"},
	{ID: "exalted", NameType: "Exalted Orb"},
	{ID: "chrome", NameType: "Chromatic Orb"},
	{ID: "jewellers", NameType: "Jeweller's Orb"},
	{ID: "chance", NameType: "Orb of Chance"},
	{ID: "chisel", NameType: "Cartographer's Chisel"},
	{ID: "scour", NameType: "Orb of Scouring"},
	{ID: "blessed", NameType: "Blessed Orb"},
	{ID: "regret", NameType: "Orb of Regret"},
	{ID: "regal", NameType: "Regal Orb"},
	{ID: "divine", NameType: "Divine Orb"},
	{ID: "vaal", NameType: "Vaal Orb"},
	{ID: "annul", NameType: "Orb of Annulment"},
	{ID: "ancient-orb", NameType: "Ancient Orb"},
	{ID: "mirror", NameType: "Mirror of Kalandra"},
	{ID: "silver", NameType: "Silver Coin"},
	{ID: "wisdom", NameType: "Scroll of Wisdom"},
	{ID: "portal", NameType: "Portal Scroll"},
}

// StaticResolver resolves against the fixed in-memory catalog.
type StaticResolver struct {
	byID map[string]domain.Currency
}

// NewStaticResolver creates a resolver over the built-in currency catalog.
func NewStaticResolver() *StaticResolver {
	byID := make(map[string]domain.Currency, len(catalog))
	for _, c := range catalog {
		byID[c.ID] = c
	}
	return &StaticResolver{byID: byID}
}

// ResolveByID implements Resolver.
func (r *StaticResolver) ResolveByID(
	_ context.Context,
	id string,
) (*domain.Currency, error) {
	if c, ok := r.byID[id]; ok {
		return &c, nil
	}
	return nil, nil
}
