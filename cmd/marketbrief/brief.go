package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/newthinker/marketbrief/internal/logger"
)

var (
	briefTicker string
	briefQuery  string
	briefDays   int
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Generate a one-shot market brief",
	Long:  "Fetch headlines and recent closes for a ticker, then print the assembled brief",
	RunE:  runBrief,
}

func init() {
	briefCmd.Flags().StringVar(&briefTicker, "ticker", "", "stock ticker (default from config)")
	briefCmd.Flags().StringVar(&briefQuery, "query", "", "news search query (default from config)")
	briefCmd.Flags().IntVar(&briefDays, "days", 0, "price history window in days (default from config)")

	rootCmd.AddCommand(briefCmd)
}

func runBrief(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if briefDays > 0 {
		cfg.Market.Days = briefDays
	}

	p, err := buildPipeline(cfg, nil, log)
	if err != nil {
		return err
	}

	ticker := strings.ToUpper(strings.TrimSpace(briefTicker))
	if ticker == "" {
		ticker = cfg.Pipeline.DefaultTicker
	}
	query := strings.TrimSpace(briefQuery)
	if query == "" {
		query = cfg.Pipeline.DefaultQuery
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	fmt.Printf("Fetching news for query: %s\n", query)
	brief := p.Run(ctx, ticker, query)

	fmt.Printf("Found %d headlines.\n\n", len(brief.Headlines))
	for _, h := range brief.Headlines {
		if h.Source != "" {
			fmt.Printf("- %s (%s)\n", h.Title, h.Source)
		} else {
			fmt.Printf("- %s\n", h.Title)
		}
	}

	fmt.Println("\nStock report:")
	fmt.Println(brief.Report.Text())

	fmt.Printf("\nPrompt length: %d chars\n", brief.PromptChars)

	fmt.Println("\n=== MARKET SUMMARY ===")
	fmt.Println(brief.Summary)

	for _, note := range brief.Notes {
		fmt.Printf("\nnote: %s\n", note)
	}

	return nil
}
