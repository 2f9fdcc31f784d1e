// Package generator implements a rate-paced producer that emits up to a
// bounded total number of values onto a bounded channel.
package generator

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// channelCapacity bounds how far the generator can run ahead of its
// consumer before the full-channel condition (see Generator.Start) fires.
const channelCapacity = 256

// Generator is a paced producer over T, parameterized by an optional total
// cap and an optional minimum pause between successive emissions.
type Generator[T any] struct {
	// Total bounds the number of items emitted; nil means unbounded.
	Total *uint32
	// Pause is the minimum delay between successive yields; zero means
	// no delay.
	Pause time.Duration
	// Make produces one item per invocation.
	Make func() T
}

// Start spawns the generator's loop on its own goroutine and returns the
// channel it writes to. The channel is closed when the generator
// terminates, whether by exhausting Total, by ctx cancellation, or by
// hitting the full-channel condition.
func (g Generator[T]) Start(ctx context.Context) <-chan T {
	ch := make(chan T, channelCapacity)

	var remaining *uint32
	if g.Total != nil {
		n := *g.Total
		remaining = &n
	}

	go func() {
		defer close(ch)

		for {
			if ctx.Err() != nil {
				return
			}
			if remaining != nil && *remaining == 0 {
				return
			}

			item := g.Make()

			select {
			case ch <- item:
				if remaining != nil {
					*remaining--
				}
			case <-ctx.Done():
				return
			default:
				// The consumer has fallen more than channelCapacity items
				// behind. The syndicate drains continuously, so this
				// should be unreachable in practice; treat it as fatal
				// for this generator rather than blocking or dropping.
				log.Error().Msg("generator: output channel full, terminating")
				return
			}

			if remaining != nil && *remaining == 0 {
				return
			}

			if g.Pause > 0 {
				timer := time.NewTimer(g.Pause)
				select {
				case <-timer.C:
				case <-ctx.Done():
					timer.Stop()
					return
				}
			}
		}
	}()

	return ch
}
