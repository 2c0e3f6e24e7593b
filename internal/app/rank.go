package app

import (
	"sort"

	"github.com/mandatedisrael/basefly/internal/domain"
)

// SortOrder is the single, configurable price-ordering policy. Cheapest
// first is the default.
type SortOrder string

const (
	PriceAscending  SortOrder = "price_asc"
	PriceDescending SortOrder = "price_desc"
)

// SelectOffers sorts the provider's offers by total price and keeps the
// single best one; the summary stays short on purpose. The input slice is
// not reordered. Empty input is a no-offers condition, not a crash.
func SelectOffers(offers []domain.Offer, order SortOrder) (domain.RankedSelection, error) {
	if len(offers) == 0 {
		return domain.RankedSelection{}, domain.ErrNoOffers
	}
	sorted := make([]domain.Offer, len(offers))
	copy(sorted, offers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == PriceDescending {
			return sorted[i].Price.Value() > sorted[j].Price.Value()
		}
		return sorted[i].Price.Value() < sorted[j].Price.Value()
	})
	return domain.RankedSelection{Offers: sorted[:1]}, nil
}
