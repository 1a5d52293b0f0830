package utils

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPortAvailable(t *testing.T) {
	// Port 0 lets the OS pick a free port
	assert.True(t, IsPortAvailable("127.0.0.1", 0))
	assert.True(t, IsPortAvailable("localhost", 0))
}

func TestIsPortAvailable_PortInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "Failed to create test listener")
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)
	assert.False(t, IsPortAvailable("127.0.0.1", addr.Port), "Port %d should be unavailable (in use)", addr.Port)
}

func TestIsPortAvailable_InvalidPortNumbers(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"Negative port", -1},
		{"Port too high", 65536},
		{"Very high invalid port", 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsPortAvailable("127.0.0.1", tt.port), "Invalid port %d should return false", tt.port)
		})
	}
}

func TestParseHostPort(t *testing.T) {
	tests := []struct {
		addr     string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"localhost:12000", "localhost", 12000, false},
		{":13000", "", 13000, false},
		{"[::1]:8080", "::1", 8080, false},
		{"localhost", "", 0, true},
		{"localhost:http", "", 0, true},
		{"localhost:70000", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			host, port, err := ParseHostPort(tt.addr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPort, port)
		})
	}
}
