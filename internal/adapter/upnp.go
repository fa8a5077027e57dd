// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"time"

	"github.com/MKhiriev/p2p-rendezvous-server/internal/logger"
	"github.com/huin/goupnp"
	"github.com/huin/goupnp/dcps/internetgateway2"
	"github.com/huin/goupnp/httpu"
	"github.com/huin/goupnp/ssdp"
)

const (
	// igdSearchTarget is the SSDP search target of UPnP gateways. It is sent
	// to the well-known SSDP multicast group 239.255.255.250:1900.
	igdSearchTarget = "urn:schemas-upnp-org:device:InternetGatewayDevice:1"
	searchSends     = 2
	// minSearchWindow keeps the advertised MX wait at one second or more.
	minSearchWindow = 1100 * time.Millisecond
)

// igdClient is the part of the generated WAN connection clients we use.
// Both WANIPConnection1 and WANPPPConnection1 implement it.
type igdClient interface {
	AddPortMappingCtx(
		ctx context.Context,
		NewRemoteHost string,
		NewExternalPort uint16,
		NewProtocol string,
		NewInternalPort uint16,
		NewInternalClient string,
		NewEnabled bool,
		NewPortMappingDescription string,
		NewLeaseDuration uint32,
	) error
	GetExternalIPAddressCtx(ctx context.Context) (NewExternalIPAddress string, err error)
}

// UPnPFinder discovers Internet Gateway Devices with SSDP.
type UPnPFinder struct {
	log *logger.Logger

	search  func(ctx context.Context, local netip.Addr) ([]*http.Response, error)
	device  func(ctx context.Context, loc *url.URL) (*goupnp.RootDevice, error)
	clients func(root *goupnp.RootDevice, loc *url.URL) []igdClient
}

// NewUPnPFinder returns a finder backed by goupnp.
func NewUPnPFinder(log *logger.Logger) *UPnPFinder {
	return &UPnPFinder{
		log:     log,
		search:  ssdpSearch,
		device:  goupnp.DeviceByURLCtx,
		clients: wanClients,
	}
}

// FindGateway implements GatewayFinder. The multicast search is sent from
// local so the gateway answers on the interface we resolved. Replies are
// collected until the search window closes; the description of each
// replying device is then fetched within its own window of timeout.
func (f *UPnPFinder) FindGateway(ctx context.Context, local netip.Addr, timeout time.Duration) (Gateway, error) {
	searchCtx, cancelSearch := context.WithTimeout(ctx, max(timeout, minSearchWindow))
	responses, err := f.search(searchCtx, local)
	cancelSearch()
	if err != nil {
		return nil, fmt.Errorf("%w: ssdp search: %w", ErrGatewayNotFound, err)
	}
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGatewayNotFound, err)
	}

	descCtx, cancelDesc := context.WithTimeout(ctx, timeout)
	defer cancelDesc()

	var errs []error
	for _, resp := range responses {
		gw, err := f.gatewayFromResponse(descCtx, resp)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return gw, nil
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no reply within %s", ErrGatewayNotFound, timeout)
	}
	return nil, fmt.Errorf("%w: %w", ErrGatewayNotFound, errors.Join(errs...))
}

func (f *UPnPFinder) gatewayFromResponse(ctx context.Context, resp *http.Response) (Gateway, error) {
	location := resp.Header.Get("Location")
	if location == "" {
		return nil, errors.New("ssdp response without location")
	}

	loc, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse location %q: %w", location, err)
	}

	root, err := f.device(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("fetch device description %s: %w", loc, err)
	}

	clients := f.clients(root, loc)
	if len(clients) == 0 {
		return nil, fmt.Errorf("device %s has no WAN connection service", loc)
	}

	f.log.Info().Str("location", loc.String()).Msg("gateway discovered")
	return &upnpGateway{client: clients[0]}, nil
}

// ssdpSearch blocks until ctx is done and returns the replies received so
// far. The MX header is derived from the ctx deadline.
func ssdpSearch(ctx context.Context, local netip.Addr) ([]*http.Response, error) {
	client, err := httpu.NewHTTPUClientAddr(local.String())
	if err != nil {
		return nil, fmt.Errorf("bind discovery socket: %w", err)
	}
	defer client.Close()

	return ssdp.RawSearch(ctx, client, igdSearchTarget, searchSends)
}

func wanClients(root *goupnp.RootDevice, loc *url.URL) []igdClient {
	var out []igdClient

	if ip, err := internetgateway2.NewWANIPConnection1ClientsFromRootDevice(root, loc); err == nil {
		for _, c := range ip {
			out = append(out, c)
		}
	}
	if ppp, err := internetgateway2.NewWANPPPConnection1ClientsFromRootDevice(root, loc); err == nil {
		for _, c := range ppp {
			out = append(out, c)
		}
	}

	return out
}

type upnpGateway struct {
	client igdClient
}

// AddPortMapping implements Gateway.
func (g *upnpGateway) AddPortMapping(ctx context.Context, m PortMapping) error {
	return g.client.AddPortMappingCtx(
		ctx,
		"",
		m.ExternalPort,
		string(m.Protocol),
		m.Internal.Port(),
		m.Internal.Addr().String(),
		true,
		m.Description,
		uint32(m.Lease/time.Second),
	)
}

// ExternalIP implements Gateway.
func (g *upnpGateway) ExternalIP(ctx context.Context) (netip.Addr, error) {
	raw, err := g.client.GetExternalIPAddressCtx(ctx)
	if err != nil {
		return netip.Addr{}, err
	}

	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrInvalidExternalIP, raw)
	}
	addr = addr.Unmap()
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrInvalidExternalIP, raw)
	}

	return addr, nil
}
