package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seenimoa/earningstracker/api"
)

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := api.NewServer(cfg, a.tracker,
			api.WithLogger(a.log.Named("api")),
			api.WithMetrics(a.metrics),
			api.WithVersion(version),
		)
		fmt.Printf("Starting Earnings Tracker API server on %s\n", srv.Addr())
		return srv.ListenAndServe()
	},
}
