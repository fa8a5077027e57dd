package adapter

import "errors"

var (
	// ErrIPv6Only is returned when the host has no IPv4 address but does
	// have IPv6 ones.
	ErrIPv6Only = errors.New("only IPv6 addresses available")
	// ErrNoLocalAddr is returned when no usable local address exists.
	ErrNoLocalAddr = errors.New("no suitable network interface found")
	// ErrGatewayNotFound is returned when discovery ends without a usable
	// gateway.
	ErrGatewayNotFound = errors.New("no port-mapping gateway found")
	// ErrInvalidExternalIP is returned when the gateway reports an address
	// that is not IPv4.
	ErrInvalidExternalIP = errors.New("gateway returned an invalid external IP")
)
