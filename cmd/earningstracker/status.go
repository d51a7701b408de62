package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/earningstracker/internal/provider"
	"github.com/seenimoa/earningstracker/internal/providers"
	"github.com/seenimoa/earningstracker/pkg/utils"
)

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and upstream provider health",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  Earnings Tracker: System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Printf("  Market Status: %s\n", utils.MarketStatus(time.Now()))
		fmt.Printf("  Time (ET):     %s\n", utils.FormatDateTimeET(utils.NowET()))
		fmt.Println()

		// Config summary
		fmt.Println("  Configuration:")
		fmt.Printf("    API Server:    %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Printf("    Window:        %d days\n", cfg.Earnings.WindowDays)
		fmt.Printf("    Concurrency:   %d\n", cfg.Earnings.Concurrency)
		fmt.Printf("    News Source:   %s (limit %d)\n", cfg.News.Source, cfg.News.Limit)
		fmt.Printf("    Timeout:       %s\n", cfg.Upstream.Timeout())
		fmt.Printf("    Tracing:       %t\n", cfg.Tracing.Enabled)
		fmt.Println()

		// Sources per capability, selected one marked with *
		fmt.Println("  Sources:")
		selected := map[provider.Capability]string{
			provider.CapabilityUniverse: cfg.Earnings.UniverseSource,
			provider.CapabilityEarnings: cfg.Earnings.Source,
			provider.CapabilityNews:     providers.NewsProviderName(cfg.News.Source),
		}
		for _, c := range []provider.Capability{provider.CapabilityUniverse, provider.CapabilityEarnings, provider.CapabilityNews} {
			names := a.registry.ProvidersFor(c)
			for i, n := range names {
				if n == selected[c] {
					names[i] = n + "*"
				}
			}
			fmt.Printf("    %-10s %s\n", c, strings.Join(names, ", "))
		}
		fmt.Println()

		// Provider health
		fmt.Println("  Providers:")
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Upstream.Timeout())
		defer cancel()
		results := a.registry.PingAll(ctx)
		for _, info := range a.registry.List() {
			status := "✅ reachable"
			if err := results[info.Name]; err != nil {
				status = "❌ " + err.Error()
			}
			caps := make([]string, len(info.Capabilities))
			for i, c := range info.Capabilities {
				caps[i] = string(c)
			}
			fmt.Printf("    %-12s %-18s %s\n", info.Name, "["+strings.Join(caps, ",")+"]", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
