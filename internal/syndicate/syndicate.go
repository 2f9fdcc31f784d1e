// Package syndicate owns a paced generator of workers and yields their
// results as an ordered, pull-based sequence.
package syndicate

import (
	"context"
	"iter"
	"time"

	"github.com/thetangentline/aquarius/internal/generator"
	"github.com/thetangentline/aquarius/internal/worker"
)

// Builder configures a Syndicate before it starts generating load.
type Builder struct {
	Host string
	Port uint16

	// Total bounds the number of requests issued; nil means unbounded.
	Total *uint32
	// RPS paces request issuance; nil means unpaced (as fast as possible).
	RPS *uint32
}

// Start builds the underlying generator and returns a running Syndicate.
func (b Builder) Start(ctx context.Context) *Syndicate {
	sctx, cancel := context.WithCancel(ctx)

	w := worker.Worker{}
	host, port := b.Host, b.Port

	var pause time.Duration
	if b.RPS != nil && *b.RPS > 0 {
		pause = time.Second / time.Duration(*b.RPS)
	}

	gen := generator.Generator[worker.Handle]{
		Total: b.Total,
		Pause: pause,
		Make: func() worker.Handle {
			return w.Spawn(sctx, host, port)
		},
	}

	return &Syndicate{
		cancel: cancel,
		rx:     gen.Start(sctx),
	}
}

// Syndicate owns a generator goroutine and an ordered queue of in-flight
// worker handles, exposing their results as a FIFO sequence.
type Syndicate struct {
	cancel context.CancelFunc
	rx     <-chan worker.Handle
	queue  []worker.Handle
}

// Next blocks until the next result is available, in enqueue order, or
// until ctx is done, or until the sequence has ended. The boolean result
// is false when the sequence has ended or ctx is done.
func (s *Syndicate) Next(ctx context.Context) (worker.Result, bool) {
	for {
		s.drainNonBlocking()

		if len(s.queue) > 0 {
			head := s.queue[0]
			select {
			case res := <-head.Done():
				s.queue = s.queue[1:]
				return res, true
			case <-ctx.Done():
				return worker.Result{}, false
			}
		}

		if s.rx == nil {
			return worker.Result{}, false
		}

		select {
		case h, ok := <-s.rx:
			if !ok {
				s.rx = nil
				continue
			}
			s.queue = append(s.queue, h)
		case <-ctx.Done():
			return worker.Result{}, false
		}
	}
}

// drainNonBlocking appends whatever handles are immediately available on
// rx to the back of the queue, without blocking.
func (s *Syndicate) drainNonBlocking() {
	if s.rx == nil {
		return
	}
	for {
		select {
		case h, ok := <-s.rx:
			if !ok {
				s.rx = nil
				return
			}
			s.queue = append(s.queue, h)
		default:
			return
		}
	}
}

// All adapts Next into a range-over-func iterator for ergonomic draining:
//
//	for result := range syn.All(ctx) { ... }
func (s *Syndicate) All(ctx context.Context) iter.Seq[worker.Result] {
	return func(yield func(worker.Result) bool) {
		for {
			res, ok := s.Next(ctx)
			if !ok {
				return
			}
			if !yield(res) {
				return
			}
		}
	}
}

// Close cancels the generator and every queued worker's context,
// terminating their connections. Close is idempotent.
func (s *Syndicate) Close() {
	s.cancel()
	for _, h := range s.queue {
		h.Cancel()
	}
}
