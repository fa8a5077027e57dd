// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package startup implements the one-shot reachability setup of the
// rendezvous server: resolve the local address, discover a UPnP gateway,
// map the UDP port, query the public address and report both addresses.
//
// Every step publishes a progress hint before it runs. The first failure
// publishes a single StartupError and ends the workflow; already mapped
// ports are not rolled back and nothing is retried.
package startup

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/MKhiriev/p2p-rendezvous-server/internal/adapter"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/event"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/logger"
	"github.com/MKhiriev/p2p-rendezvous-server/models"
)

const (
	// DefaultPort is mapped when the operator did not choose one.
	DefaultPort uint16 = 42069
	// DefaultDiscoveryTimeout bounds the multicast gateway search.
	DefaultDiscoveryTimeout = 5 * time.Second
	// DefaultLease is the lifetime requested for the port mapping.
	DefaultLease = 24 * time.Hour
	// DefaultDescription identifies our mapping in the gateway's table.
	DefaultDescription = "p2p-rendezvous-server-apt-1003"
)

// Publisher delivers workflow events to the session. Send may block while
// the bus is full and fails once the session is gone.
type Publisher interface {
	Send(ctx context.Context, ev event.Event) error
}

// Options tune the workflow. Zero values select the defaults.
type Options struct {
	Port             uint16
	DiscoveryTimeout time.Duration
	Lease            time.Duration
	Description      string
}

func (o Options) withDefaults() Options {
	if o.Port == 0 {
		o.Port = DefaultPort
	}
	if o.DiscoveryTimeout <= 0 {
		o.DiscoveryTimeout = DefaultDiscoveryTimeout
	}
	if o.Lease <= 0 {
		o.Lease = DefaultLease
	}
	if o.Description == "" {
		o.Description = DefaultDescription
	}
	return o
}

// Workflow runs the setup sequence once.
type Workflow struct {
	opts     Options
	resolver adapter.AddrResolver
	finder   adapter.GatewayFinder
	pub      Publisher
	log      *logger.Logger
}

// New creates a workflow. It does nothing until Run is called.
func New(
	opts Options,
	resolver adapter.AddrResolver,
	finder adapter.GatewayFinder,
	pub Publisher,
	log *logger.Logger,
) *Workflow {
	return &Workflow{
		opts:     opts.withDefaults(),
		resolver: resolver,
		finder:   finder,
		pub:      pub,
		log:      log.WithComponent("startup"),
	}
}

// errSessionGone stops the workflow when nobody listens anymore.
var errSessionGone = errors.New("session is gone")

// Run executes the five steps and returns when the workflow completed,
// failed, or the session stopped listening.
func (w *Workflow) Run(ctx context.Context) {
	endpoints, err := w.run(ctx)
	if err == nil {
		w.log.Info().
			Str("local", endpoints.Local().String()).
			Str("public", endpoints.Public().String()).
			Msg("rendezvous server reachable")
		_ = w.pub.Send(ctx, event.StartupComplete{Endpoints: endpoints})
		return
	}

	var startupErr *models.StartupError
	if !errors.As(err, &startupErr) {
		return
	}

	w.log.Error().Err(startupErr.Err).Str("step", startupErr.Kind.String()).Msg("startup failed")
	_ = w.pub.Send(ctx, event.StartupError{Err: startupErr})
}

func (w *Workflow) run(ctx context.Context) (models.Endpoints, error) {
	port := w.opts.Port

	if err := w.progress(ctx, "Resolving local IP address..."); err != nil {
		return models.Endpoints{}, err
	}
	local, err := w.resolver.LocalAddr()
	if err != nil {
		if errors.Is(err, adapter.ErrIPv6Only) {
			return models.Endpoints{}, models.NewStartupError(models.UnsupportedAddressFamily, err)
		}
		return models.Endpoints{}, models.NewStartupError(models.LocalIPLookup, err)
	}
	if !local.Is4() {
		return models.Endpoints{}, models.NewStartupError(models.UnsupportedAddressFamily, nil)
	}

	if err = w.progress(ctx, fmt.Sprintf("Found local IP %s, searching for gateway...", local)); err != nil {
		return models.Endpoints{}, err
	}
	gateway, err := w.finder.FindGateway(ctx, local, w.opts.DiscoveryTimeout)
	if err != nil {
		return models.Endpoints{}, models.NewStartupError(models.GatewaySearch, err)
	}

	if err = w.progress(ctx, fmt.Sprintf("Gateway found, opening UDP port %d...", port)); err != nil {
		return models.Endpoints{}, err
	}
	mapping := adapter.PortMapping{
		Protocol:     adapter.UDP,
		ExternalPort: port,
		Internal:     netip.AddrPortFrom(local, port),
		Lease:        w.opts.Lease,
		Description:  w.opts.Description,
	}
	if err = gateway.AddPortMapping(ctx, mapping); err != nil {
		return models.Endpoints{}, models.NewStartupError(models.AddPortMapping, err)
	}

	if err = w.progress(ctx, "Port opened, querying external IP..."); err != nil {
		return models.Endpoints{}, err
	}
	public, err := gateway.ExternalIP(ctx)
	if err != nil {
		return models.Endpoints{}, models.NewStartupError(models.ExternalIP, err)
	}

	endpoints := models.Endpoints{LocalIP: local, PublicIP: public, Port: port}
	if err = w.progress(ctx, fmt.Sprintf("External IP %s found.", public)); err != nil {
		return models.Endpoints{}, err
	}

	return endpoints, nil
}

func (w *Workflow) progress(ctx context.Context, hint string) error {
	w.log.Info().Msg(hint)
	if err := w.pub.Send(ctx, event.StartupProgress{Hint: hint}); err != nil {
		return fmt.Errorf("%w: %w", errSessionGone, err)
	}
	return nil
}
