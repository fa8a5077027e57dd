package adapter

import (
	"fmt"
	"net"
	"net/netip"
)

// InterfaceResolver resolves the local address by scanning the host's
// network interfaces for the first up, non-loopback interface with an IPv4
// address.
type InterfaceResolver struct {
	interfaces func() ([]net.Interface, error)
	addrs      func(net.Interface) ([]net.Addr, error)
}

// NewInterfaceResolver returns a resolver over the real host interfaces.
func NewInterfaceResolver() *InterfaceResolver {
	return &InterfaceResolver{
		interfaces: net.Interfaces,
		addrs: func(iface net.Interface) ([]net.Addr, error) {
			return iface.Addrs()
		},
	}
}

// LocalAddr implements AddrResolver.
func (r *InterfaceResolver) LocalAddr() (netip.Addr, error) {
	ifaces, err := r.interfaces()
	if err != nil {
		return netip.Addr{}, fmt.Errorf("list network interfaces: %w", err)
	}

	var candidates []net.Addr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := r.addrs(iface)
		if err != nil {
			continue
		}
		candidates = append(candidates, addrs...)
	}

	return pickLocalAddr(candidates)
}

// pickLocalAddr returns the first routable IPv4 address. Link-local IPv4 is
// skipped; it cannot be the target of a gateway port mapping.
func pickLocalAddr(addrs []net.Addr) (netip.Addr, error) {
	sawV6 := false

	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}

		a, ok := netip.AddrFromSlice(ip)
		if !ok {
			continue
		}
		a = a.Unmap()

		if a.IsLoopback() || a.IsLinkLocalUnicast() || a.IsUnspecified() {
			continue
		}
		if a.Is4() {
			return a, nil
		}
		sawV6 = true
	}

	if sawV6 {
		return netip.Addr{}, ErrIPv6Only
	}
	return netip.Addr{}, ErrNoLocalAddr
}
