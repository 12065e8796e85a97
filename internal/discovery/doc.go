// Package discovery locates the display host on the local network with
// multicast DNS.
//
// The bridge normally talks to a fixed WebSocket URL. When discovery is
// enabled the URL is instead built from the first advertisement of the
// configured service type:
//
//	scanner := discovery.NewScanner("_winwing._tcp")
//	host, err := scanner.First(ctx)
//	if err != nil {
//	    return err
//	}
//	conn, err := transport.Dial(ctx, host.URL(), opts)
//
// Advertisements may carry "path" and "device" TXT records. The path
// defaults to /winwing/cdu-captain and the port to 8320.
//
// Discovery requires multicast on the network interface and UDP port 5353
// open in the firewall.
package discovery
