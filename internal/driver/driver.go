// Package driver wires a syndicate and a summary together to run one
// complete load test.
package driver

import (
	"context"
	"time"

	"github.com/paulbellamy/ratecounter"
	"github.com/rs/zerolog/log"

	"github.com/thetangentline/aquarius/internal/summary"
	"github.com/thetangentline/aquarius/internal/syndicate"
)

// Config describes one load-test run.
type Config struct {
	Host string
	Port uint16

	Total *uint32
	RPS   *uint32

	// Trace enables a debug log line with the running total and
	// requests-per-second rate after each completed request. Silent when
	// false.
	Trace bool
}

// Run starts a syndicate for cfg, drains it into a Summary, and returns
// the Summary once every request has completed. The first error observed
// aborts the run and cancels any requests still in flight.
func Run(ctx context.Context, cfg Config) (*summary.Summary, error) {
	b := syndicate.Builder{Host: cfg.Host, Port: cfg.Port, Total: cfg.Total, RPS: cfg.RPS}
	syn := b.Start(ctx)
	defer syn.Close()

	sum := summary.New()
	counter := ratecounter.NewRateCounter(1 * time.Second)

	for {
		res, ok := syn.Next(ctx)
		if !ok {
			break
		}
		if res.Err != nil {
			return nil, res.Err
		}

		sum.Extend(res.Report)
		counter.Incr(1)

		if cfg.Trace {
			log.Debug().
				Int("total", sum.Total()).
				Int64("requests_per_second", counter.Rate()).
				Msg("aquarius: progress")
		}
	}

	return sum, nil
}
