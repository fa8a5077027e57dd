// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the network collaborators used to make the
// rendezvous server reachable from outside the local network.
//
// [AddrResolver] finds the host's local IPv4 address, [GatewayFinder]
// discovers a UPnP Internet Gateway Device on the LAN, and [Gateway] asks
// that device for a port mapping and its public address. The production
// implementations are [InterfaceResolver] and [UPnPFinder].
//
// Error values defined in errors.go let callers use [errors.Is] without
// depending on the UPnP library.
package adapter

import (
	"context"
	"net/netip"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/gateway_mock.go -package=mock

// AddrResolver resolves the address other hosts on the LAN reach us on.
type AddrResolver interface {
	// LocalAddr returns the host's local IPv4 address. It returns
	// [ErrIPv6Only] when only IPv6 addresses are configured and
	// [ErrNoLocalAddr] when nothing usable was found.
	LocalAddr() (netip.Addr, error)
}

// GatewayFinder discovers a gateway that supports automatic port mapping.
type GatewayFinder interface {
	// FindGateway multicasts a discovery request from local and returns the
	// first usable gateway. The search gives up after timeout with an error
	// wrapping [ErrGatewayNotFound].
	FindGateway(ctx context.Context, local netip.Addr, timeout time.Duration) (Gateway, error)
}

// Gateway is a discovered port-mapping device.
type Gateway interface {
	// AddPortMapping asks the gateway to forward m.ExternalPort to m.Internal.
	AddPortMapping(ctx context.Context, m PortMapping) error

	// ExternalIP returns the gateway's public IPv4 address.
	ExternalIP(ctx context.Context) (netip.Addr, error)
}

// Protocol is the transport protocol of a port mapping.
type Protocol string

const (
	UDP Protocol = "UDP"
	TCP Protocol = "TCP"
)

// PortMapping describes a forwarding rule requested from a gateway.
type PortMapping struct {
	Protocol     Protocol
	ExternalPort uint16
	Internal     netip.AddrPort
	Lease        time.Duration
	Description  string
}
