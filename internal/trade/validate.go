package trade

import (
	"context"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/exile-tools/poemarket/internal/metrics"
	domain "github.com/exile-tools/poemarket/pkg/types"
)

// rejectReason tags why a raw listing was dropped.
type rejectReason string

const (
	rejectNone            rejectReason = ""
	rejectMissingFields   rejectReason = "missing_fields"
	rejectBadTimestamp    rejectReason = "bad_timestamp"
	rejectEmptySeller     rejectReason = "empty_seller"
	rejectBadAmount       rejectReason = "non_positive_amount"
	rejectUnknownCurrency rejectReason = "unknown_currency"
)

// normalize runs the ordered validation pipeline over one raw listing and
// resolves its currency. Rejected listings are counted and logged, never
// surfaced to the caller.
func (s *Service) normalize(ctx context.Context, r *FetchResult) *domain.Listing {
	listing, reason := s.validate(ctx, r)
	if reason != rejectNone {
		metrics.ListingsDroppedTotal.WithLabelValues(string(reason)).Inc()
		s.logger.Warn("dropping listing", "id", r.ID, "reason", reason)
		return nil
	}
	return listing
}

func (s *Service) validate(
	ctx context.Context,
	r *FetchResult,
) (*domain.Listing, rejectReason) {
	l := r.Listing
	if l == nil || l.Price == nil || l.Account == nil || l.Indexed == "" {
		return nil, rejectMissingFields
	}

	indexed, err := time.Parse(time.RFC3339, l.Indexed)
	if err != nil {
		return nil, rejectBadTimestamp
	}

	seller := strings.TrimSpace(l.Account.Name)
	if seller == "" {
		return nil, rejectEmptySeller
	}

	if l.Price.Amount <= 0 {
		return nil, rejectBadAmount
	}

	cur, err := s.currency.ResolveByID(ctx, l.Price.Currency)
	if err != nil {
		s.logger.Warn("currency resolution failed",
			"currency", l.Price.Currency, "err", err)
		return nil, rejectUnknownCurrency
	}
	if cur == nil {
		return nil, rejectUnknownCurrency
	}

	return &domain.Listing{
		Seller:   seller,
		Indexed:  indexed,
		Age:      humanize.Time(indexed),
		Currency: *cur,
		Amount:   l.Price.Amount,
	}, rejectNone
}
