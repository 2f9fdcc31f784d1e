// Package cli wires aquarius's cobra command surface to the load-test
// driver.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thetangentline/aquarius/internal/addr"
	"github.com/thetangentline/aquarius/internal/chart"
	"github.com/thetangentline/aquarius/internal/driver"
	"github.com/thetangentline/aquarius/pkg/netutil"
)

var rootCmd = &cobra.Command{
	Use:   "aquarius hostname:port",
	Short: "aquarius is a lightweight HTTP/2 load generator",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

var (
	flagTotal      uint32
	flagRate       uint32
	flagShowCharts bool
	flagTrace      bool
)

func init() {
	rootCmd.Flags().Uint32Var(&flagTotal, "total", 0, "total number of requests to issue (0 means unbounded)")
	rootCmd.Flags().Uint32Var(&flagRate, "rate", 0, "target requests per second (0 means unpaced)")
	rootCmd.Flags().BoolVar(&flagShowCharts, "show-charts", false, "render progress/in-flight charts and a summary table")
	rootCmd.Flags().BoolVar(&flagTrace, "trace", false, "enable structured trace logging to stderr")
}

// Execute runs the root cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// cobra has already printed the error to stderr.
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagTrace {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.Nop()
	}

	server, err := addr.Parse(args[0])
	if err != nil {
		return err
	}

	if err := netutil.PreflightDNS(server.Host); err != nil {
		return err
	}
	if flagTotal > 0 {
		if err := netutil.CheckUlimitWarning(int(flagTotal)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	cfg := driver.Config{
		Host:  server.Host,
		Port:  server.Port,
		Trace: flagTrace,
	}
	if flagTotal > 0 {
		cfg.Total = &flagTotal
	}
	if flagRate > 0 {
		cfg.RPS = &flagRate
	}

	fmt.Fprintf(os.Stdout, "aquarius: load testing %s\n", server.String())

	sum, err := driver.Run(context.Background(), cfg)
	if err != nil {
		return err
	}

	if sum.Total() == 0 {
		fmt.Fprintln(os.Stdout, "completed 0 requests")
		return nil
	}

	fmt.Fprintf(os.Stdout, "completed %d requests, %.1f%% success\n", sum.Total(), sum.SuccessRate())

	if flagShowCharts {
		if err := chart.RenderProgress(sum); err != nil {
			return err
		}
		if err := chart.RenderInFlight(sum); err != nil {
			return err
		}
		if err := chart.RenderTable(sum); err != nil {
			return err
		}
	}

	return nil
}
