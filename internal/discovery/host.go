package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Host is a display host found on the local network.
type Host struct {
	// Instance is the advertised service instance name.
	Instance string

	// Hostname is the mDNS hostname (e.g., "simpc.local.")
	Hostname string

	// IP is the address the display listens on, IPv4 when available.
	IP string

	// Port is the WebSocket port (typically 8320)
	Port int

	// Path is the display endpoint path (e.g., "/winwing/cdu-captain")
	Path string

	// Metadata contains the mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the host was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable description of the host.
func (h *Host) String() string {
	return fmt.Sprintf("%s (%s) at %s", h.Instance, strings.TrimSuffix(h.Hostname, "."), h.URL())
}

// URL returns the WebSocket URL of the display endpoint.
func (h *Host) URL() string {
	path := h.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "ws://" + net.JoinHostPort(h.IP, strconv.Itoa(h.Port)) + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (h *Host) GetMetadata(key string) string {
	if h.Metadata == nil {
		return ""
	}
	return h.Metadata[key]
}
