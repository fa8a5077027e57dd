package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/netip"
	"net/url"
	"testing"
	"time"

	"github.com/MKhiriev/p2p-rendezvous-server/internal/logger"
	"github.com/huin/goupnp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIGD records the last mapping request.
type fakeIGD struct {
	remoteHost   string
	externalPort uint16
	protocol     string
	internalPort uint16
	internalIP   string
	enabled      bool
	description  string
	lease        uint32

	addErr     error
	externalIP string
	ipErr      error
}

func (f *fakeIGD) AddPortMappingCtx(
	_ context.Context,
	remoteHost string,
	externalPort uint16,
	protocol string,
	internalPort uint16,
	internalClient string,
	enabled bool,
	description string,
	lease uint32,
) error {
	f.remoteHost = remoteHost
	f.externalPort = externalPort
	f.protocol = protocol
	f.internalPort = internalPort
	f.internalIP = internalClient
	f.enabled = enabled
	f.description = description
	f.lease = lease
	return f.addErr
}

func (f *fakeIGD) GetExternalIPAddressCtx(_ context.Context) (string, error) {
	return f.externalIP, f.ipErr
}

func response(location string) *http.Response {
	h := http.Header{}
	if location != "" {
		h.Set("Location", location)
	}
	return &http.Response{Header: h}
}

func newTestFinder(
	search func(context.Context, netip.Addr) ([]*http.Response, error),
	clients []igdClient,
) *UPnPFinder {
	return &UPnPFinder{
		log:    logger.Nop(),
		search: search,
		device: func(_ context.Context, _ *url.URL) (*goupnp.RootDevice, error) {
			return &goupnp.RootDevice{}, nil
		},
		clients: func(*goupnp.RootDevice, *url.URL) []igdClient { return clients },
	}
}

var lan = netip.MustParseAddr("192.168.1.20")

// ── FindGateway ──────────────────────────────────────────────────────────────

func TestUPnPFinder_FindGateway_Success(t *testing.T) {
	var gotLocal netip.Addr
	var gotWindow time.Duration
	igd := &fakeIGD{}
	f := newTestFinder(func(ctx context.Context, local netip.Addr) ([]*http.Response, error) {
		gotLocal = local
		deadline, ok := ctx.Deadline()
		require.True(t, ok, "search runs under a deadline")
		gotWindow = time.Until(deadline)
		return []*http.Response{response("http://192.168.1.1:5000/rootDesc.xml")}, nil
	}, []igdClient{igd})

	gw, err := f.FindGateway(context.Background(), lan, 5*time.Second)

	require.NoError(t, err)
	require.NotNil(t, gw)
	assert.Equal(t, lan, gotLocal, "search is bound to the resolved local address")
	assert.InDelta(t, float64(5*time.Second), float64(gotWindow), float64(100*time.Millisecond))
}

// The real search only returns once its deadline passes; replies gathered
// until then must still be used.
func TestUPnPFinder_FindGateway_SearchReturnsAtDeadline(t *testing.T) {
	igd := &fakeIGD{}
	f := newTestFinder(func(ctx context.Context, _ netip.Addr) ([]*http.Response, error) {
		<-ctx.Done()
		return []*http.Response{response("http://192.168.1.1:5000/rootDesc.xml")}, nil
	}, []igdClient{igd})
	var descCtxErr error
	f.device = func(ctx context.Context, _ *url.URL) (*goupnp.RootDevice, error) {
		descCtxErr = ctx.Err()
		return &goupnp.RootDevice{}, nil
	}

	gw, err := f.FindGateway(context.Background(), lan, 1200*time.Millisecond)

	require.NoError(t, err)
	assert.NotNil(t, gw)
	assert.NoError(t, descCtxErr, "description fetch gets a fresh window")
}

func TestUPnPFinder_FindGateway_NoResponses(t *testing.T) {
	f := newTestFinder(func(context.Context, netip.Addr) ([]*http.Response, error) {
		return nil, nil
	}, nil)

	_, err := f.FindGateway(context.Background(), lan, time.Second)

	assert.ErrorIs(t, err, ErrGatewayNotFound)
}

func TestUPnPFinder_FindGateway_SearchError(t *testing.T) {
	boom := errors.New("bind: address in use")
	f := newTestFinder(func(context.Context, netip.Addr) ([]*http.Response, error) {
		return nil, boom
	}, nil)

	_, err := f.FindGateway(context.Background(), lan, time.Second)

	assert.ErrorIs(t, err, ErrGatewayNotFound)
	assert.ErrorIs(t, err, boom)
}

func TestUPnPFinder_FindGateway_NoReplyBeforeDeadline(t *testing.T) {
	f := newTestFinder(func(ctx context.Context, _ netip.Addr) ([]*http.Response, error) {
		<-ctx.Done()
		return nil, nil
	}, nil)

	start := time.Now()
	_, err := f.FindGateway(context.Background(), lan, 1200*time.Millisecond)

	assert.ErrorIs(t, err, ErrGatewayNotFound)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestUPnPFinder_FindGateway_ParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := newTestFinder(func(context.Context, netip.Addr) ([]*http.Response, error) {
		cancel()
		return []*http.Response{response("http://192.168.1.1/desc.xml")}, nil
	}, []igdClient{&fakeIGD{}})

	_, err := f.FindGateway(ctx, lan, time.Second)

	assert.ErrorIs(t, err, ErrGatewayNotFound)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUPnPFinder_FindGateway_SkipsBadResponses(t *testing.T) {
	igd := &fakeIGD{}
	calls := 0
	f := newTestFinder(func(context.Context, netip.Addr) ([]*http.Response, error) {
		return []*http.Response{
			response(""),
			response("http://192.168.1.1/bad.xml"),
			response("http://192.168.1.1/good.xml"),
		}, nil
	}, []igdClient{igd})
	f.device = func(_ context.Context, loc *url.URL) (*goupnp.RootDevice, error) {
		calls++
		if loc.Path == "/bad.xml" {
			return nil, errors.New("404")
		}
		return &goupnp.RootDevice{}, nil
	}

	gw, err := f.FindGateway(context.Background(), lan, time.Second)

	require.NoError(t, err)
	assert.NotNil(t, gw)
	assert.Equal(t, 2, calls)
}

func TestUPnPFinder_FindGateway_NoWANService(t *testing.T) {
	f := newTestFinder(func(context.Context, netip.Addr) ([]*http.Response, error) {
		return []*http.Response{response("http://192.168.1.1/desc.xml")}, nil
	}, nil)

	_, err := f.FindGateway(context.Background(), lan, time.Second)

	assert.ErrorIs(t, err, ErrGatewayNotFound)
	assert.Contains(t, err.Error(), "no WAN connection service")
}

func TestUPnPFinder_SubSecondTimeoutSearchesAtLeastOneSecond(t *testing.T) {
	var gotWindow time.Duration
	f := newTestFinder(func(ctx context.Context, _ netip.Addr) ([]*http.Response, error) {
		deadline, _ := ctx.Deadline()
		gotWindow = time.Until(deadline)
		return nil, nil
	}, nil)

	_, _ = f.FindGateway(context.Background(), lan, 500*time.Millisecond)

	assert.Greater(t, gotWindow, time.Second)
}

// ── upnpGateway ──────────────────────────────────────────────────────────────

func TestUPnPGateway_AddPortMapping(t *testing.T) {
	igd := &fakeIGD{}
	gw := &upnpGateway{client: igd}

	err := gw.AddPortMapping(context.Background(), PortMapping{
		Protocol:     UDP,
		ExternalPort: 42069,
		Internal:     netip.AddrPortFrom(lan, 42069),
		Lease:        24 * time.Hour,
		Description:  "p2p-rendezvous-server-apt-1003",
	})

	require.NoError(t, err)
	assert.Equal(t, "", igd.remoteHost)
	assert.Equal(t, uint16(42069), igd.externalPort)
	assert.Equal(t, "UDP", igd.protocol)
	assert.Equal(t, uint16(42069), igd.internalPort)
	assert.Equal(t, "192.168.1.20", igd.internalIP)
	assert.True(t, igd.enabled)
	assert.Equal(t, "p2p-rendezvous-server-apt-1003", igd.description)
	assert.Equal(t, uint32(86400), igd.lease)
}

func TestUPnPGateway_AddPortMappingError(t *testing.T) {
	boom := errors.New("ConflictInMappingEntry")
	gw := &upnpGateway{client: &fakeIGD{addErr: boom}}

	err := gw.AddPortMapping(context.Background(), PortMapping{Internal: netip.AddrPortFrom(lan, 1)})

	assert.ErrorIs(t, err, boom)
}

func TestUPnPGateway_ExternalIP(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		ipErr   error
		want    netip.Addr
		wantErr error
	}{
		{name: "ipv4", raw: "203.0.113.9", want: netip.MustParseAddr("203.0.113.9")},
		{name: "ipv6 rejected", raw: "2001:db8::1", wantErr: ErrInvalidExternalIP},
		{name: "garbage rejected", raw: "not-an-ip", wantErr: ErrInvalidExternalIP},
		{name: "soap error", ipErr: errors.New("soap fault")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &upnpGateway{client: &fakeIGD{externalIP: tt.raw, ipErr: tt.ipErr}}

			got, err := gw.ExternalIP(context.Background())

			switch {
			case tt.ipErr != nil:
				assert.ErrorIs(t, err, tt.ipErr)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
