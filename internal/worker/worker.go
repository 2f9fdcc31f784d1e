// Package worker issues a single HTTP/2 (cleartext, prior-knowledge)
// request/response exchange against a target host:port.
package worker

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/net/http2"

	"github.com/thetangentline/aquarius/internal/xerrors"
)

// requestBody is the fixed payload sent with every request: the literal
// text "request body" plus a trailing newline, for 13 bytes total.
var requestBody = []byte("request body\n")

// Report is the outcome of a single completed request/response exchange.
type Report struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
	Success  bool
}

// Result pairs a Report with an error; exactly one of Report or Err is
// meaningful, distinguished by Err == nil.
type Result struct {
	Report Report
	Err    error
}

// Worker performs one-shot HTTP/2 requests. It holds no state and is
// reused across calls only as a method receiver; every call dials a fresh
// connection.
type Worker struct {
	// DialTimeout bounds the TCP connect step. Zero means no timeout
	// beyond ctx.
	DialTimeout time.Duration
}

// Run dials host:port, performs the HTTP/2 connection preface, sends one
// GET request, fully drains the response, and reports the outcome.
func (w Worker) Run(ctx context.Context, host string, port uint16) Result {
	start := time.Now()

	dialer := &net.Dialer{Timeout: w.DialTimeout}
	addr := net.JoinHostPort(host, strconv.FormatUint(uint64(port), 10))

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Result{Err: xerrors.Wrap(xerrors.Connect, "dial "+addr, err)}
	}
	defer conn.Close()

	t2 := &http2.Transport{AllowHTTP: true}
	cc, err := t2.NewClientConn(conn)
	if err != nil {
		return Result{Err: xerrors.Wrap(xerrors.Handshake, "http/2 preface to "+addr, err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/", bytes.NewReader(requestBody))
	if err != nil {
		return Result{Err: xerrors.Wrap(xerrors.Send, "build request", err)}
	}
	req.Host = host
	req.ContentLength = int64(len(requestBody))

	resp, err := cc.RoundTrip(req)
	if err != nil {
		return Result{Err: xerrors.Wrap(xerrors.Send, "round trip to "+addr, err)}
	}

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		resp.Body.Close()
		return Result{Err: xerrors.Wrap(xerrors.Receive, "read response body from "+addr, err)}
	}
	resp.Body.Close()

	end := time.Now()

	return Result{Report: Report{
		Start:    start,
		End:      end,
		Duration: end.Sub(start),
		Success:  resp.StatusCode >= 200 && resp.StatusCode < 300,
	}}
}

// Handle is an ownership token for a worker running on its own goroutine:
// Done carries exactly one Result, and Cancel aborts the in-flight request.
type Handle struct {
	done   chan Result
	cancel context.CancelFunc
}

// Done returns the channel the worker's Result arrives on.
func (h Handle) Done() <-chan Result {
	return h.done
}

// Cancel aborts the worker's in-flight request, if it hasn't completed yet.
func (h Handle) Cancel() {
	h.cancel()
}

// Spawn starts Run on a new goroutine derived from ctx and returns a Handle
// for observing its result and cancelling it independently of its siblings.
func (w Worker) Spawn(ctx context.Context, host string, port uint16) Handle {
	childCtx, cancel := context.WithCancel(ctx)
	done := make(chan Result, 1)

	go func() {
		done <- w.Run(childCtx, host, port)
	}()

	return Handle{done: done, cancel: cancel}
}
