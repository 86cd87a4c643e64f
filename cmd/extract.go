package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aqlanhadi/pokertrack/analysis"
	"github.com/aqlanhadi/pokertrack/extractor"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const dateLayout = "2006-01-02"

// extractOptions mirrors the extract flags
type extractOptions struct {
	Format     string
	Output     string
	Summary    bool
	Since      string
	Until      string
	MinBuyIn   string
	MaxBuyIn   string
	MinPlayers int
	MaxPlayers int
	Tags       []string
	GameType   string
}

var extractOpts extractOptions

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts tournament summaries",
	Long: `Extracts a given summary file or every .txt summary in a folder
into a time-ordered results table with derived columns.

Examples:
  pokertrack extract -f ./summaries
  pokertrack extract -f ./summaries --format csv -o results.csv
  pokertrack extract -f ./summaries --summary --since 2023-09-01 --tag WSOP`,
	Run: handler,
}

func handler(cmd *cobra.Command, args []string) {
	target := viper.GetString("target")
	fmt.Fprintln(os.Stderr, "scanning ", target)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	processor, err := newProcessor(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := runExtract(os.Stdout, processor, target, extractOpts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// runExtract parses target and writes the filtered table in the requested
// format. Table output goes to opts.Output when set; json defaults to w.
func runExtract(w io.Writer, processor *extractor.Processor, target string, opts extractOptions) error {
	filter, err := buildFilter(opts)
	if err != nil {
		return err
	}

	all, errs := processor.ExecuteAgainstPath(target)
	for _, err := range errs {
		log.Printf("FAIL %v", err)
	}
	if len(all) == 0 && len(errs) > 0 {
		return fmt.Errorf("no summaries parsed: %w", errs[0])
	}

	rows := filter.Apply(all)

	if opts.Summary {
		tags := opts.Tags
		if len(tags) == 0 {
			tags = viper.GetStringSlice("filters.tags")
		}
		return writeSummary(w, all, rows, tags)
	}

	return writeTable(w, rows, opts)
}

func writeTable(w io.Writer, rows []analysis.Row, opts extractOptions) error {
	output := opts.Output
	switch opts.Format {
	case "csv":
		if output == "" {
			output = "out.csv"
		}
	case "xlsx":
		if output == "" {
			output = "out.xlsx"
		}
	case "", "json":
	default:
		return fmt.Errorf("unsupported format %q (expected json, csv or xlsx)", opts.Format)
	}

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
		log.Printf("Writing %d rows to %s", len(rows), output)
	}

	switch opts.Format {
	case "csv":
		return analysis.WriteCSV(w, rows)
	case "xlsx":
		return analysis.WriteXLSX(w, rows)
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	}
}

func writeSummary(w io.Writer, all, rows []analysis.Row, tags []string) error {
	s := analysis.Summarize(rows)

	fmt.Fprintf(w, "Tournaments:     %d (%d entries)\n", s.TotalTournaments, s.TotalEntries)
	fmt.Fprintf(w, "Total buy-in:    %s\n", s.TotalBuyIn.StringFixed(2))
	fmt.Fprintf(w, "Total prize:     %s\n", s.TotalPrize.StringFixed(2))
	fmt.Fprintf(w, "Total profit:    %s\n", s.TotalProfit.StringFixed(2))
	fmt.Fprintf(w, "Average profit:  %s\n", s.AverageProfit.StringFixed(2))
	fmt.Fprintf(w, "Average buy-in:  %s\n", s.AverageBuyIn.StringFixed(2))
	fmt.Fprintf(w, "In the money:    %.2f%%\n", s.InTheMoney)
	fmt.Fprintf(w, "Average ROI:     %.2f%%\n", s.AverageROI)

	sections := []struct {
		title  string
		groups []analysis.Group
	}{
		{"Day of week", analysis.ByDayOfWeek(rows)},
		{"Time of day", analysis.ByTimeBucket(rows)},
		{"Buy-in category", analysis.ByBuyInCategory(rows)},
		{"Finish category", analysis.ByRankPercentCategory(rows)},
		{"Tag", analysis.ByTag(rows, tags)},
	}
	for _, section := range sections {
		fmt.Fprintf(w, "\n%s\n", section.title)
		for _, g := range section.groups {
			key := g.Key
			if key == "" {
				key = "-"
			}
			fmt.Fprintf(w, "  %-16s %4d  sum %10s  mean %8s\n", key, g.Count, g.Sum.StringFixed(2), g.Mean.StringFixed(2))
		}
	}

	fmt.Fprintf(w, "\nGame types: %s\n", strings.Join(analysis.GameTypes(all), ", "))
	return nil
}

// buildFilter converts flag values into a row filter
func buildFilter(opts extractOptions) (analysis.Filter, error) {
	var f analysis.Filter
	var err error

	if opts.Since != "" {
		if f.Since, err = time.Parse(dateLayout, opts.Since); err != nil {
			return f, fmt.Errorf("--since: %w", err)
		}
	}
	if opts.Until != "" {
		if f.Until, err = time.Parse(dateLayout, opts.Until); err != nil {
			return f, fmt.Errorf("--until: %w", err)
		}
	}
	if opts.MinBuyIn != "" {
		d, err := decimal.NewFromString(opts.MinBuyIn)
		if err != nil {
			return f, fmt.Errorf("--min-buy-in: %w", err)
		}
		f.MinBuyIn = &d
	}
	if opts.MaxBuyIn != "" {
		d, err := decimal.NewFromString(opts.MaxBuyIn)
		if err != nil {
			return f, fmt.Errorf("--max-buy-in: %w", err)
		}
		f.MaxBuyIn = &d
	}
	if opts.MinPlayers >= 0 {
		n := opts.MinPlayers
		f.MinPlayers = &n
	}
	if opts.MaxPlayers >= 0 {
		n := opts.MaxPlayers
		f.MaxPlayers = &n
	}
	f.Tags = opts.Tags
	f.GameType = opts.GameType

	return f, nil
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("folder", "f", ".", "File or folder in which pokertrack will scan for summaries")
	viper.BindPFlag("target", extractCmd.Flags().Lookup("folder"))

	extractCmd.Flags().StringVar(&extractOpts.Format, "format", "json", "Output format: json, csv or xlsx")
	extractCmd.Flags().StringVarP(&extractOpts.Output, "output", "o", "", "Output file (csv defaults to out.csv, xlsx to out.xlsx)")
	extractCmd.Flags().BoolVar(&extractOpts.Summary, "summary", false, "Print statistics and aggregations instead of the table")
	extractCmd.Flags().StringVar(&extractOpts.Since, "since", "", "Only tournaments started on or after this date (YYYY-MM-DD)")
	extractCmd.Flags().StringVar(&extractOpts.Until, "until", "", "Only tournaments started on or before this date (YYYY-MM-DD)")
	extractCmd.Flags().StringVar(&extractOpts.MinBuyIn, "min-buy-in", "", "Minimum buy-in in the reference currency")
	extractCmd.Flags().StringVar(&extractOpts.MaxBuyIn, "max-buy-in", "", "Maximum buy-in in the reference currency")
	extractCmd.Flags().IntVar(&extractOpts.MinPlayers, "min-players", -1, "Minimum number of players")
	extractCmd.Flags().IntVar(&extractOpts.MaxPlayers, "max-players", -1, "Maximum number of players")
	extractCmd.Flags().StringSliceVar(&extractOpts.Tags, "tag", nil, "Keep tournaments whose name contains any of these tags")
	extractCmd.Flags().StringVar(&extractOpts.GameType, "game-type", "", "Keep tournaments of this game type")
}
