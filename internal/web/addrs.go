package web

import (
	"fmt"
	"net"
)

// ListenURLs returns the URLs a server bound to host:port is reachable on.
// An empty or unspecified host expands to loopback plus every IPv4 address
// of the interfaces that are up.
func ListenURLs(host string, port int) []string {
	if ip := net.ParseIP(host); host != "" && (ip == nil || !ip.IsUnspecified()) {
		return []string{fmt.Sprintf("http://%s/", net.JoinHostPort(host, fmt.Sprint(port)))}
	}

	urls := []string{fmt.Sprintf("http://127.0.0.1:%d/", port)}
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			ip, _, err := net.ParseCIDR(a.String())
			if err != nil || ip == nil || ip.IsLoopback() || ip.To4() == nil {
				continue
			}
			urls = append(urls, fmt.Sprintf("http://%s:%d/", ip.String(), port))
		}
	}
	return urls
}
