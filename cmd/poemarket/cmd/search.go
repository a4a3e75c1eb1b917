package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exile-tools/poemarket/internal/currency"
	"github.com/exile-tools/poemarket/internal/trade"
	domain "github.com/exile-tools/poemarket/pkg/types"
)

func searchCmd() *cobra.Command {
	var (
		itemType string
		count    int
		online   bool
		indexed  string
	)

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search the trade site for an item",
		Long: "Submits a trade search for the named item, fetches the cheapest\n" +
			"listings and prints the validated offers.",
		Example: `  poemarket search "The Doctor"
  poemarket search "Tabula Rasa" --type "Simple Robe" --count 40 --online`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], itemType, count, online, indexed)
		},
	}
	cmd.Flags().StringVar(&itemType, "type", "", "item base type")
	cmd.Flags().IntVar(&count, "count", 20, "maximum number of listings to fetch")
	cmd.Flags().BoolVar(&online, "online", false, "only listings from online sellers")
	cmd.Flags().StringVar(&indexed, "indexed", "", "recency filter (1day, 3days, 1week, 2weeks, 1month, 2months)")

	return cmd
}

func runSearch(
	cmd *cobra.Command,
	name, itemType string,
	count int,
	online bool,
	indexed string,
) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	client := trade.NewClient(
		trade.WithBaseURL(cfg.Trade.BaseURL),
		trade.WithRateLimiter(trade.NewRateLimiter(
			cfg.Trade.RateLimit.PerSecond,
			cfg.Trade.RateLimit.Burst,
			cfg.Trade.RateLimit.DailyLimit,
		)),
	)

	svc := trade.NewService(
		client,
		trade.BasicQueryMapper{},
		currency.NewStaticResolver(),
		trade.WithDefaults(cfg.Context.LeagueID, cfg.Context.Language),
		trade.WithBatchSize(cfg.Trade.Fetch.BatchSize),
		trade.WithConcurrency(cfg.Trade.Fetch.Concurrency),
		trade.WithServiceLogger(log),
	)

	item := &domain.Item{Name: name, Type: itemType}
	result, err := svc.Search(cmd.Context(), item, trade.SearchOptions{
		Online:  online,
		Indexed: domain.IndexedRange(indexed),
	})
	if err != nil {
		return err
	}

	listings, err := svc.List(cmd.Context(), result, count)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return outputJSON(struct {
			Search   *domain.SearchResult `json:"search"`
			Listings []domain.Listing     `json:"listings"`
		}{result, listings})
	}

	fmt.Printf("%s — %d total, showing %d\n\n", result.URL, result.Total, len(listings))
	return printListingsTable(listings)
}
