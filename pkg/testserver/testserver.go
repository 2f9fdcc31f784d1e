// Package testserver is an in-process HTTP/2 (h2c) echo server used by
// aquarius's integration tests.
package testserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// TestServer is a cleartext HTTP/2 server that echoes the request body back
// with a 200 status and a fixed "hello: world" header, and counts how many
// requests it has received.
type TestServer struct {
	Port int

	listener net.Listener
	srv      *http.Server

	reqsReceived atomic.Uint32

	mu sync.Mutex
	wg sync.WaitGroup
}

// Start binds to [::1]:port (port 0 picks an OS-assigned ephemeral port)
// and begins serving in the background.
func Start(port int) (*TestServer, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort("::1", strconv.Itoa(port)))
	if err != nil {
		return nil, err
	}

	ts := &TestServer{
		Port:     ln.Addr().(*net.TCPAddr).Port,
		listener: ln,
	}

	h2s := &http2.Server{}
	handler := h2c.NewHandler(http.HandlerFunc(ts.handle), h2s)
	ts.srv = &http.Server{Handler: handler}

	go ts.srv.Serve(ln)

	return ts, nil
}

func (ts *TestServer) handle(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	ts.wg.Add(1)
	ts.mu.Unlock()
	defer ts.wg.Done()

	ts.reqsReceived.Add(1)

	body, _ := io.ReadAll(r.Body)
	w.Header().Set("hello", "world")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// RequestsReceived reports how many requests the server has handled so far.
func (ts *TestServer) RequestsReceived() uint32 {
	return ts.reqsReceived.Load()
}

// Finish stops accepting new connections, waits for every handler
// goroutine ever started to return, and reports the final request count.
func (ts *TestServer) Finish() uint32 {
	ts.srv.Shutdown(context.Background())
	ts.wg.Wait()
	return ts.reqsReceived.Load()
}
