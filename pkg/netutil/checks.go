package netutil

import (
	"fmt"
	"net"
	"syscall"
)

// PreflightDNS validates that host resolves before a load test dials it.
// IP literals always resolve trivially; DNS names are looked up.
func PreflightDNS(host string) error {
	if host == "" {
		return fmt.Errorf("missing host")
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if _, err := net.LookupHost(host); err != nil {
		return fmt.Errorf("dns resolution failed for host %q: %w", host, err)
	}
	return nil
}

// CheckUlimitWarning inspects the soft RLIMIT_NOFILE and returns a warning
// if the requested number of connections appears to exceed it.
// It calls syscall.Getrlimit, which exists only on Unix platforms; the
// package does not build elsewhere.
func CheckUlimitWarning(requestedConns int) error {
	if requestedConns <= 0 {
		return nil
	}

	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		// Best effort only; if this fails we stay silent.
		return nil
	}

	if uint64(requestedConns) > rLimit.Cur {
		return fmt.Errorf("requested connections (%d) exceed soft open-files limit (%d)", requestedConns, rLimit.Cur)
	}

	return nil
}


