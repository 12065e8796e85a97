package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner("")

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
		wantURL  string
	}{
		{
			name: "IPv4 host with path record",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "SimAppPro"},
				HostName:      "simpc.local.",
				Port:          8320,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.4.16")},
				Text:          []string{"path=/winwing/cdu-first-officer"},
			},
			wantIP:   "192.168.4.16",
			wantPort: 8320,
			wantURL:  "ws://192.168.4.16:8320/winwing/cdu-first-officer",
		},
		{
			name: "defaults for port and path",
			entry: &zeroconf.ServiceEntry{
				HostName: "simpc.local",
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantIP:   "10.0.0.5",
			wantPort: DefaultPort,
			wantURL:  "ws://10.0.0.5:8320/winwing/cdu-captain",
		},
		{
			name: "path without leading slash",
			entry: &zeroconf.ServiceEntry{
				HostName: "simpc.local",
				Port:     9000,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.6")},
				Text:     []string{"path=cdu"},
			},
			wantIP:   "10.0.0.6",
			wantPort: 9000,
			wantURL:  "ws://10.0.0.6:9000/cdu",
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				HostName: "simpc.local",
				Port:     8320,
			},
			wantNil: true,
		},
		{
			name: "IPv6 only host",
			entry: &zeroconf.ServiceEntry{
				HostName: "simpc.local",
				Port:     8320,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantIP:   "fe80::1",
			wantPort: 8320,
			wantURL:  "ws://[fe80::1]:8320/winwing/cdu-captain",
		},
		{
			name: "both families prefer IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "simpc.local",
				Port:     8320,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::2")},
			},
			wantIP:   "192.168.1.50",
			wantPort: 8320,
			wantURL:  "ws://192.168.1.50:8320/winwing/cdu-captain",
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if host != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", host)
				}
				return
			}
			if host == nil {
				t.Fatal("parseServiceEntry() = nil, want host")
			}
			if host.IP != tt.wantIP {
				t.Errorf("host.IP = %v, want %v", host.IP, tt.wantIP)
			}
			if host.Port != tt.wantPort {
				t.Errorf("host.Port = %v, want %v", host.Port, tt.wantPort)
			}
			if got := host.URL(); got != tt.wantURL {
				t.Errorf("host.URL() = %v, want %v", got, tt.wantURL)
			}
			if time.Since(host.DiscoveredAt) > time.Second {
				t.Errorf("host.DiscoveredAt is not recent: %v", host.DiscoveredAt)
			}
		})
	}
}

func TestScanner_parseServiceEntry_DeviceFilter(t *testing.T) {
	scanner := NewScanner("")
	scanner.Device = "cdu-captain"

	captain := &zeroconf.ServiceEntry{
		HostName: "simpc.local",
		AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
		Text:     []string{"device=cdu-captain", "flag"},
	}
	other := &zeroconf.ServiceEntry{
		HostName: "simpc.local",
		AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
		Text:     []string{"device=pap3"},
	}

	host := scanner.parseServiceEntry(captain)
	if host == nil {
		t.Fatal("captain entry rejected")
	}
	if host.GetMetadata("device") != "cdu-captain" {
		t.Errorf("device metadata = %q", host.GetMetadata("device"))
	}
	if _, ok := host.Metadata["flag"]; !ok {
		t.Error("key without value missing from metadata")
	}
	if scanner.parseServiceEntry(other) != nil {
		t.Error("entry for another device accepted")
	}
}

func TestNewScanner(t *testing.T) {
	tests := []struct {
		service string
		want    string
	}{
		{"", DefaultService},
		{"_cdu._tcp", "_cdu._tcp"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := NewScanner(tt.service)
			if s.Service != tt.want {
				t.Errorf("Service = %q, want %q", s.Service, tt.want)
			}
			if s.Timeout != DefaultScanTimeout {
				t.Errorf("Timeout = %v, want %v", s.Timeout, DefaultScanTimeout)
			}
		})
	}
}

func TestHost_String(t *testing.T) {
	h := &Host{Instance: "SimAppPro", Hostname: "simpc.local.", IP: "192.168.4.16", Port: 8320, Path: "/winwing/cdu-captain"}
	want := "SimAppPro (simpc.local) at ws://192.168.4.16:8320/winwing/cdu-captain"
	if got := h.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
