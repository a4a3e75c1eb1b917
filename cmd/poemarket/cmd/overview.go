package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/exile-tools/poemarket/internal/ninja"
)

func overviewCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "overview <category>",
		Short: "Fetch a poe.ninja item overview",
		Long: "Fetches the bulk price overview for one item category in the\n" +
			"configured league. Categories: " + categoryList() + ".",
		Example: `  poemarket overview UniqueWeapon
  poemarket overview Fossil --league Ritual --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverview(cmd, args[0], limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 25, "maximum number of price lines to print")

	return cmd
}

func runOverview(cmd *cobra.Command, category string, limit int) error {
	typ, err := ninja.ParseType(category)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	session, err := newWebSession()
	if err != nil {
		return err
	}

	client := ninja.NewClient(
		session,
		session,
		ninja.WithBaseURL(cfg.Ninja.BaseURL),
		ninja.WithHTTPClient(session.client),
		ninja.WithRetryPolicy(cfg.Ninja.Retry.Attempts, cfg.Ninja.Retry.Delay),
		ninja.WithLogger(log),
	)

	overview, err := client.Get(cmd.Context(), cfg.Context.LeagueID, typ)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return outputJSON(overview)
	}

	fmt.Printf("%s — %d lines\n\n", overview.URL, len(overview.Lines))

	lines := overview.Lines
	if limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	return printOverviewTable(lines)
}

func categoryList() string {
	types := ninja.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
