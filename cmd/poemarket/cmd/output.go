package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/exile-tools/poemarket/internal/ninja"
	domain "github.com/exile-tools/poemarket/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printOverviewTable(lines []ninja.OverviewLine) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("NAME\tBASE\tCHAOS\tEXALTED\tLISTINGS\n")
	for i := range lines {
		tw.writef("%s\t%s\t%.1f\t%.2f\t%d\n",
			truncate(lines[i].Name, 40),
			truncate(lines[i].BaseType, 30),
			lines[i].ChaosValue,
			lines[i].ExaltedValue,
			lines[i].ListingCount,
		)
	}
	return tw.finish()
}

func printListingsTable(listings []domain.Listing) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("SELLER\tPRICE\tCURRENCY\tAGE\n")
	for i := range listings {
		tw.writef("%s\t%.1f\t%s\t%s\n",
			listings[i].Seller,
			listings[i].Amount,
			listings[i].Currency.NameType,
			listings[i].Age,
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
