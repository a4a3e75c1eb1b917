package trade

// SearchRequest is the query envelope submitted to the trade search endpoint.
type SearchRequest struct {
	Sort  Sort  `json:"sort"`
	Query Query `json:"query"`
}

// Sort orders search results.
type Sort struct {
	Price string `json:"price,omitempty"`
}

// Query is the search body. The query mapper fills in name, type and stats
// from the requested item; the envelope owner fills in status and filters.
type Query struct {
	Status  StatusFilter `json:"status"`
	Name    string       `json:"name,omitempty"`
	Type    string       `json:"type,omitempty"`
	Filters Filters      `json:"filters"`
	Stats   []StatGroup  `json:"stats"`
}

// StatusFilter restricts results by seller status.
type StatusFilter struct {
	Option string `json:"option"`
}

// Filters wraps the filter groups of the query.
type Filters struct {
	Trade TradeFilters `json:"trade_filters"`
}

// TradeFilters holds the trade-specific filter group.
type TradeFilters struct {
	Filters TradeFilterValues `json:"filters"`
}

// TradeFilterValues carries the individual trade filters.
type TradeFilterValues struct {
	SaleType OptionFilter  `json:"sale_type"`
	Indexed  *OptionFilter `json:"indexed,omitempty"`
}

// OptionFilter selects one option. A nil Option serializes as null, which the
// API reads as "no constraint".
type OptionFilter struct {
	Option *string `json:"option"`
}

// StatGroup is one group of stat filters.
type StatGroup struct {
	Type    string       `json:"type"`
	Filters []StatFilter `json:"filters"`
}

// StatFilter matches one item stat.
type StatFilter struct {
	ID       string     `json:"id"`
	Value    *StatValue `json:"value,omitempty"`
	Disabled bool       `json:"disabled,omitempty"`
}

// StatValue bounds a stat filter.
type StatValue struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// SearchResponse is the trade API's answer to a search submission.
type SearchResponse struct {
	ID     string   `json:"id"`
	Total  int      `json:"total"`
	Result []string `json:"result"`
}

type fetchResponse struct {
	Result []FetchResult `json:"result"`
}

// FetchResult is one raw entry of a listing batch fetch.
type FetchResult struct {
	ID      string        `json:"id"`
	Listing *FetchListing `json:"listing"`
}

// FetchListing carries the seller-facing fields of a fetched listing. Any of
// them may be absent or malformed; validation decides what survives.
type FetchListing struct {
	Indexed string        `json:"indexed"`
	Account *FetchAccount `json:"account"`
	Price   *FetchPrice   `json:"price"`
}

// FetchAccount identifies the seller.
type FetchAccount struct {
	Name string `json:"name"`
}

// FetchPrice is the asking price of a listing.
type FetchPrice struct {
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
