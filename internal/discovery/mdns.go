package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/cdubridge/internal/logging"
)

const (
	// DefaultService is the mDNS service type display hosts advertise.
	DefaultService = "_winwing._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for host discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is used when an advertisement carries no port.
	DefaultPort = 8320

	// DefaultPath is used when an advertisement carries no "path" TXT record.
	DefaultPath = "/winwing/cdu-captain"
)

// ErrNoHost is returned by First when nothing answered before the timeout.
var ErrNoHost = errors.New("no display host found")

// Scanner handles mDNS host discovery
type Scanner struct {
	// Service is the mDNS service type to browse for.
	Service string

	// Device, when set, only accepts hosts whose "device" TXT record matches
	// (e.g., "cdu-captain").
	Device string

	// Timeout is the maximum time to wait for discovery
	Timeout time.Duration
}

// NewScanner creates a scanner for service. An empty service means
// DefaultService.
func NewScanner(service string) *Scanner {
	if service == "" {
		service = DefaultService
	}
	return &Scanner{
		Service: service,
		Timeout: DefaultScanTimeout,
	}
}

// Scan collects every matching host that answers before the timeout.
func (s *Scanner) Scan(ctx context.Context) ([]*Host, error) {
	var (
		mu    sync.Mutex
		hosts []*Host
	)
	err := s.browse(ctx, func(h *Host) bool {
		mu.Lock()
		defer mu.Unlock()
		hosts = append(hosts, h)
		return true
	})
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	return hosts, nil
}

// First returns the first matching host to answer.
func (s *Scanner) First(ctx context.Context) (*Host, error) {
	found := make(chan *Host, 1)
	err := s.browse(ctx, func(h *Host) bool {
		select {
		case found <- h:
		default:
		}
		return false
	})
	if err != nil {
		return nil, err
	}

	select {
	case h := <-found:
		return h, nil
	default:
		return nil, fmt.Errorf("%w for %s within %v", ErrNoHost, s.Service, s.Timeout)
	}
}

// browse runs the resolver until the timeout, ctx is done, or accept returns
// false.
func (s *Scanner) browse(ctx context.Context, accept func(*Host) bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-entries:
				if !ok {
					return
				}
				host := s.parseServiceEntry(entry)
				if host == nil {
					continue
				}
				logging.Debug("Display host discovered",
					zap.String("instance", host.Instance),
					zap.String("url", host.URL()),
				)
				if !accept(host) {
					cancel()
					return
				}
			}
		}
	}()

	if err := resolver.Browse(ctx, s.Service, ServiceDomain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	return nil
}

// parseServiceEntry converts a zeroconf service entry to a Host.
// Returns nil if the entry has no address or is for another device.
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Host {
	if entry == nil {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	if s.Device != "" && metadata["device"] != s.Device {
		return nil
	}

	// Prefer IPv4
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	path := metadata["path"]
	if path == "" {
		path = DefaultPath
	}

	return &Host{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Path:         path,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}
