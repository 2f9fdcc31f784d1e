// Package addr parses and renders the "host:port" server address accepted
// as aquarius's positional CLI argument.
package addr

import (
	"net"
	"strconv"

	"github.com/thetangentline/aquarius/internal/xerrors"
)

// Server is a parsed target address; its host is not resolved or dialed.
type Server struct {
	Host string
	Port uint16
}

// Parse splits "hostname:port" into a Server, using net.SplitHostPort so
// IPv4 literals, bracketed IPv6 literals, and DNS names all round-trip.
func Parse(raw string) (Server, error) {
	host, portStr, err := net.SplitHostPort(raw)
	if err != nil {
		return Server{}, xerrors.Wrap(xerrors.Parse, "malformed address "+raw, err)
	}
	if host == "" {
		return Server{}, xerrors.New(xerrors.Parse, "missing host in "+raw)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Server{}, xerrors.Wrap(xerrors.Parse, "invalid port "+portStr, err)
	}

	return Server{Host: host, Port: uint16(port)}, nil
}

// String renders the canonical "host:port" form, restoring IPv6 brackets
// via net.JoinHostPort.
func (s Server) String() string {
	return net.JoinHostPort(s.Host, strconv.FormatUint(uint64(s.Port), 10))
}
