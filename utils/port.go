package utils

import (
	"fmt"
	"net"
	"strconv"
)

// ParseHostPort splits "host:port" and checks the port is a valid TCP port.
// The host may be empty.
func ParseHostPort(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid address '%s': %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port '%s' in address '%s'", portStr, addr)
	}

	return host, port, nil
}

// IsPortAvailable reports whether a TCP listener can be opened on host:port.
func IsPortAvailable(host string, port int) bool {
	if port < 0 || port > 65535 {
		return false
	}

	Verbose("Checking if port %d is available on %s", port, host)
	listener, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		Verbose("error: %v", err)
		return false
	}

	defer listener.Close()
	return true
}
