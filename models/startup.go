// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"net/netip"
)

// StartupErrorKind identifies which step of the reachability setup failed.
type StartupErrorKind int

const (
	// UnsupportedAddressFamily means the host only has an IPv6 address.
	UnsupportedAddressFamily StartupErrorKind = iota + 1
	// LocalIPLookup means no local address could be resolved at all.
	LocalIPLookup
	// GatewaySearch means no port-mapping gateway answered the discovery
	// request within the timeout.
	GatewaySearch
	// AddPortMapping means the gateway rejected or failed the mapping request.
	AddPortMapping
	// ExternalIP means the gateway could not report its public address.
	ExternalIP
)

// String returns the operator-facing description of the failed step.
func (k StartupErrorKind) String() string {
	switch k {
	case UnsupportedAddressFamily:
		return "IPv6 is not supported"
	case LocalIPLookup:
		return "local IP address not found"
	case GatewaySearch:
		return "gateway search failed"
	case AddPortMapping:
		return "port mapping failed"
	case ExternalIP:
		return "external IP lookup failed"
	default:
		return "unknown startup error"
	}
}

// StartupError is the terminal failure of the startup workflow. Kind tells
// which step failed, Err carries the underlying cause (may be nil).
type StartupError struct {
	Kind StartupErrorKind
	Err  error
}

// NewStartupError wraps err with the given kind.
func NewStartupError(kind StartupErrorKind, err error) *StartupError {
	return &StartupError{Kind: kind, Err: err}
}

func (e *StartupError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// Endpoints are the addresses peers use to reach the rendezvous server once
// the gateway has opened the port.
type Endpoints struct {
	LocalIP  netip.Addr
	PublicIP netip.Addr
	Port     uint16
}

// Local returns the LAN address:port the gateway forwards to.
func (e Endpoints) Local() netip.AddrPort {
	return netip.AddrPortFrom(e.LocalIP, e.Port)
}

// Public returns the address:port external peers connect to.
func (e Endpoints) Public() netip.AddrPort {
	return netip.AddrPortFrom(e.PublicIP, e.Port)
}
