package trade

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/exile-tools/poemarket/pkg/logger"
	domain "github.com/exile-tools/poemarket/pkg/types"
)

const (
	// maxFetchPerRequest is the trade API's page-size ceiling for one
	// listing fetch.
	maxFetchPerRequest = 10
	// maxFetchConcurrent bounds simultaneous in-flight batch fetches.
	maxFetchConcurrent = 5
)

// TradeClient is the transport the aggregator drives.
type TradeClient interface {
	Search(ctx context.Context, language domain.Language, leagueID string, req *SearchRequest) (*SearchResponse, error)
	Fetch(ctx context.Context, ids []string, queryID string, language domain.Language) ([]FetchResult, error)
	SearchURL(language domain.Language, leagueID, id string) string
}

// QueryMapper translates a requested item into trade API filter terms,
// merging them into the query.
type QueryMapper interface {
	Map(item *domain.Item, language domain.Language, query *Query)
}

// CurrencyResolver maps a listing's currency identifier to a descriptor.
// A nil descriptor with a nil error means the identifier is unknown.
type CurrencyResolver interface {
	ResolveByID(ctx context.Context, id string) (*domain.Currency, error)
}

// SearchOptions adjust one search submission. Zero-valued league or language
// fall back to the service defaults.
type SearchOptions struct {
	LeagueID string
	Language domain.Language
	Online   bool
	Indexed  domain.IndexedRange
}

// Service owns search submission and listing aggregation.
type Service struct {
	client   TradeClient
	mapper   QueryMapper
	currency CurrencyResolver
	logger   *slog.Logger

	defaultLeague   string
	defaultLanguage domain.Language
	batchSize       int
	concurrency     int
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithDefaults sets the league and language used when options leave them unset.
func WithDefaults(leagueID string, language domain.Language) ServiceOption {
	return func(s *Service) {
		s.defaultLeague = leagueID
		s.defaultLanguage = language
	}
}

// WithBatchSize overrides the listing fetch batch size.
func WithBatchSize(n int) ServiceOption {
	return func(s *Service) {
		s.batchSize = n
	}
}

// WithConcurrency overrides the batch fetch concurrency ceiling.
func WithConcurrency(n int) ServiceOption {
	return func(s *Service) {
		s.concurrency = n
	}
}

// WithServiceLogger sets the logger.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// NewService creates the search aggregation service.
func NewService(
	client TradeClient,
	mapper QueryMapper,
	currency CurrencyResolver,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		client:          client,
		mapper:          mapper,
		currency:        currency,
		logger:          logger.NewNop(),
		defaultLanguage: domain.LanguageEnglish,
		batchSize:       maxFetchPerRequest,
		concurrency:     maxFetchConcurrent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search submits a query for the requested item and returns the matching
// result ids. Transport failures propagate; there is no retry at this layer.
func (s *Service) Search(
	ctx context.Context,
	item *domain.Item,
	opts SearchOptions,
) (*domain.SearchResult, error) {
	leagueID := opts.LeagueID
	if leagueID == "" {
		leagueID = s.defaultLeague
	}
	language := opts.Language
	if language == "" {
		language = s.defaultLanguage
	}

	req := &SearchRequest{
		Sort: Sort{Price: "asc"},
		Query: Query{
			Status: StatusFilter{Option: statusOption(opts.Online)},
			Filters: Filters{
				Trade: TradeFilters{
					Filters: TradeFilterValues{
						SaleType: OptionFilter{Option: ptr("priced")},
					},
				},
			},
			Stats: []StatGroup{},
		},
	}

	if opts.Indexed != domain.IndexedAnyTime {
		indexed := string(opts.Indexed)
		req.Query.Filters.Trade.Filters.Indexed = &OptionFilter{Option: &indexed}
	}

	s.mapper.Map(item, language, &req.Query)

	resp, err := s.client.Search(ctx, language, leagueID, req)
	if err != nil {
		return nil, fmt.Errorf("submitting search: %w", err)
	}

	hits := resp.Result
	if hits == nil {
		hits = []string{}
	}

	return &domain.SearchResult{
		ID:       resp.ID,
		Language: language,
		URL:      s.client.SearchURL(language, leagueID, resp.ID),
		Total:    resp.Total,
		Hits:     hits,
	}, nil
}

// List fetches up to count listings of a search result, validating each one.
// Batch fetches run under the concurrency ceiling; malformed listings are
// dropped individually. Output order is unspecified: results fan in from
// concurrent fetches in completion order.
func (s *Service) List(
	ctx context.Context,
	search *domain.SearchResult,
	count int,
) ([]domain.Listing, error) {
	batches := chunk(search.Hits, count, s.batchSize)
	if len(batches) == 0 {
		return []domain.Listing{}, nil
	}

	raw, err := s.fetchAll(ctx, batches, search.ID, search.Language)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []domain.Listing{}, nil
	}

	return s.normalizeAll(ctx, raw), nil
}

// chunk partitions the first min(count, len(hits)) ids into contiguous
// batches of at most size ids, preserving order.
func chunk(hits []string, count, size int) [][]string {
	n := min(count, len(hits))
	if n <= 0 {
		return nil
	}

	batches := make([][]string, 0, (n+size-1)/size)
	for i := 0; i < n; i += size {
		batches = append(batches, hits[i:min(i+size, n)])
	}
	return batches
}

// fetchAll runs every batch through a fixed-size worker pool and flattens the
// non-empty responses. It waits for all admitted batches before returning;
// a transport failure on any batch fails the whole call.
func (s *Service) fetchAll(
	ctx context.Context,
	batches [][]string,
	queryID string,
	language domain.Language,
) ([]FetchResult, error) {
	type batchOut struct {
		results []FetchResult
		err     error
	}

	jobs := make(chan []string)
	out := make(chan batchOut, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < min(s.concurrency, len(batches)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ids := range jobs {
				results, err := s.client.Fetch(ctx, ids, queryID, language)
				out <- batchOut{results: results, err: err}
			}
		}()
	}

	for _, b := range batches {
		jobs <- b
	}
	close(jobs)
	wg.Wait()
	close(out)

	var raw []FetchResult
	var firstErr error
	for o := range out {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		if len(o.results) == 0 {
			continue
		}
		raw = append(raw, o.results...)
	}

	if firstErr != nil {
		return nil, fmt.Errorf("fetching listings: %w", firstErr)
	}
	return raw, nil
}

// normalizeAll validates and resolves every raw listing concurrently. Each
// goroutine writes only its own output slot, so no locking is needed; the
// slice is compacted after all resolutions complete.
func (s *Service) normalizeAll(
	ctx context.Context,
	raw []FetchResult,
) []domain.Listing {
	slots := make([]*domain.Listing, len(raw))

	var wg sync.WaitGroup
	for i := range raw {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slots[i] = s.normalize(ctx, &raw[i])
		}(i)
	}
	wg.Wait()

	listings := make([]domain.Listing, 0, len(raw))
	for _, l := range slots {
		if l != nil {
			listings = append(listings, *l)
		}
	}
	return listings
}

func statusOption(online bool) string {
	if online {
		return "online"
	}
	return "any"
}

func ptr(s string) *string {
	return &s
}
