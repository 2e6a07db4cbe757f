package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"modes1090/internal/app"
)

func main() {
	var config app.Config

	rootCmd := &cobra.Command{
		Use:   "modesdecode",
		Short: "Mode S/ADS-B 1090 MHz downlink message decoder",
		Long: `A Mode S/ADS-B decoder that consumes Beast-framed 1090 MHz downlink
messages, tracks per-aircraft decode state, and resolves CPR-encoded
positions.

Frames are read from a Beast TCP feed or a recorded capture file, never
demodulated from raw I/Q samples: bring your own receiver (dump1090,
readsb, an SDR frontend) speaking the Beast protocol.

Example usage:
  modesdecode --beast-addr localhost:30005 --postgres-dsn "$DATABASE_URL" --tui`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}

			application := app.NewApplication(config)
			return application.Start()
		},
	}

	rootCmd.Flags().StringVar(&config.BeastAddr, "beast-addr", "", "Beast protocol TCP feed address (host:port)")
	rootCmd.Flags().StringVar(&config.InputFile, "input-file", "", "read a recorded Beast capture file instead of a live feed")
	rootCmd.Flags().StringVarP(&config.LogDir, "log-dir", "l", "./logs", "Log directory")
	rootCmd.Flags().BoolVarP(&config.LogRotateUTC, "utc", "u", true, "Use UTC for log rotation")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().StringVar(&config.PostgresDSN, "postgres-dsn", "", "PostgreSQL DSN for position persistence (disabled if empty)")
	rootCmd.Flags().StringVar(&config.NATSURL, "nats-url", "", "NATS server URL for message fan-out (disabled if empty)")
	rootCmd.Flags().BoolVar(&config.TUI, "tui", false, "show a live terminal table of tracked aircraft")
	rootCmd.Flags().Float64Var(&config.RateLimit, "rate-limit", 0, "cap ingest to N reads/sec from the frame source (0 disables pacing)")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
