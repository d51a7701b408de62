package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seenimoa/earningstracker/internal/tracker"
	"github.com/seenimoa/earningstracker/pkg/models"
	"github.com/seenimoa/earningstracker/pkg/utils"
)

// --- Earnings Command ---

var earningsCmd = &cobra.Command{
	Use:   "earnings",
	Short: "List recent S&P 500 earnings surprises",
	Long: `Scan every S&P 500 constituent for quarters reported in the lookback
window and list them by absolute EPS surprise, largest first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days := cfg.Earnings.WindowDays
		if cmd.Flags().Changed("days") {
			days, _ = cmd.Flags().GetInt("days")
		}
		filter, _ := cmd.Flags().GetString("filter")
		minSurprise, _ := cmd.Flags().GetFloat64("min-surprise")
		if math.IsNaN(minSurprise) || math.IsInf(minSurprise, 0) {
			return fmt.Errorf("--min-surprise must be a finite number")
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		records := a.tracker.RecentEarnings(cmd.Context(), days)
		records = tracker.FilterEarnings(records, filter, minSurprise)

		if asJSON {
			return printJSON(records)
		}
		printEarnings(records, days)
		return nil
	},
}

func init() {
	earningsCmd.Flags().Int("days", 7, "lookback window in days (default from earnings.window_days)")
	earningsCmd.Flags().String("filter", "", "only this surprise type (Positive, Negative, Neutral)")
	earningsCmd.Flags().Float64("min-surprise", 0, "minimum absolute surprise %")
	earningsCmd.Flags().Bool("json", false, "print JSON instead of a table")
}

// --- Sentiment Command ---

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [ticker]",
	Short: "Score recent headlines for a ticker",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := cfg.News.Limit
		if cmd.Flags().Changed("limit") {
			limit, _ = cmd.Flags().GetInt("limit")
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		report := a.tracker.Sentiment(cmd.Context(), args[0], limit)

		if asJSON {
			return printJSON(report)
		}
		printSentiment(report)
		return nil
	},
}

func init() {
	sentimentCmd.Flags().Int("limit", 10, "number of headlines to score (default from news.limit)")
	sentimentCmd.Flags().Bool("json", false, "print JSON instead of text")
}

// --- Output helpers ---

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEarnings(records []models.EarningsRecord, days int) {
	fmt.Printf("Earnings reported in the last %d days: %d\n\n", days, len(records))
	if len(records) == 0 {
		return
	}
	fmt.Printf("  %-7s %-11s %10s %10s %10s  %s\n", "TICKER", "DATE", "ESTIMATE", "ACTUAL", "SURPRISE", "TYPE")
	fmt.Println("  " + strings.Repeat("─", 62))
	for _, r := range records {
		fmt.Printf("  %-7s %-11s %10s %10s %10s  %s\n",
			r.Ticker,
			r.ReportDate,
			utils.FormatEPS(r.EstimatedEPS),
			utils.FormatEPS(r.ActualEPS),
			utils.FormatPct(r.EarningsSurprisePct),
			r.SurpriseType,
		)
	}
}

func printSentiment(report models.SentimentReport) {
	fmt.Printf("%s: %s (%d headlines)\n\n", report.Ticker, report.OverallSentiment, len(report.Headlines))
	for _, h := range report.Headlines {
		fmt.Printf("  %-8v %s\n", h["sentiment"], h.Title())
	}
}
