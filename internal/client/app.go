package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/p2p-rendezvous-server/internal/adapter"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/config"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/event"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/input"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/logger"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/logstore"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/session"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/startup"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/tui"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/workers"
	"github.com/MKhiriev/p2p-rendezvous-server/models"
	tea "github.com/charmbracelet/bubbletea"
)

const logRole = "rendezvous"

// App is the dashboard process: one event bus, three producers (terminal,
// startup workflow, log tee) and the session controller draining it.
type App struct {
	build models.AppBuildInfo

	logs       *logstore.Store
	log        *logger.Logger
	term       *tui.Terminal
	controller *session.Controller
	workers    *workers.Workers
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	programOpts []tea.ProgramOption
	resolver    adapter.AddrResolver
	finder      adapter.GatewayFinder
}

// WithProgramOptions passes extra options to the bubbletea program.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(o *options) {
		o.programOpts = append(o.programOpts, opts...)
	}
}

// WithNetwork replaces the local address resolver and the gateway finder.
func WithNetwork(resolver adapter.AddrResolver, finder adapter.GatewayFinder) Option {
	return func(o *options) {
		o.resolver, o.finder = resolver, finder
	}
}

// NewApp wires every component. The log store is opened first so that all
// later logging goes through it; when it cannot be opened the session runs
// without logging and shows the error instead of the log pane.
func NewApp(cfg *config.StructuredConfig, build models.AppBuildInfo, opts ...Option) *App {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	bus := event.NewBus(event.DefaultCapacity)
	logSender := bus.Sender()
	termSender := logSender.Clone()
	startupSender := logSender.Clone()

	logs := logstore.Open(logstore.Options{
		AppName: cfg.App.Name,
		DataDir: cfg.App.DataDir,
	}, logSender)

	log := logger.Nop()
	if w := logs.Writer(); w != nil {
		log = logger.NewSessionLogger(w, logRole)
	} else {
		logSender.Release()
	}

	if o.resolver == nil {
		o.resolver = adapter.NewInterfaceResolver()
	}
	if o.finder == nil {
		o.finder = adapter.NewUPnPFinder(log.WithComponent("upnp"))
	}

	workflow := startup.New(startup.Options{
		Port:             cfg.Network.Port,
		DiscoveryTimeout: cfg.Network.DiscoveryTimeout,
		Lease:            cfg.Network.LeaseDuration,
		Description:      cfg.Network.MappingDescription,
	}, o.resolver, o.finder, startupSender, log)

	term := tui.New(termSender, log, o.programOpts...)
	controller := session.NewController(bus, logs, input.NewEditor(), term, tui.LogCapacity, log)

	return &App{
		build:      build,
		logs:       logs,
		log:        log,
		term:       term,
		controller: controller,
		workers: workers.New(workers.Func(func(ctx context.Context) {
			defer startupSender.Release()
			workflow.Run(ctx)
		})),
	}
}

// Run starts the startup workflow, the session controller and the terminal
// program, and blocks until the operator exits or the terminal fails.
// The workflow is not awaited.
func (a *App) Run() error {
	defer a.logs.Close()

	a.log.Info().
		Str("version", a.build.BuildVersion()).
		Str("date", a.build.BuildDate()).
		Str("commit", a.build.BuildCommit()).
		Msgf("session started, build %s", a.build)
	if path := a.logs.Path(); path != "" {
		a.log.Info().Str("path", path).Msg("logging to file")
	}

	a.workers.Start(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.controller.Run(ctx)
		a.term.Close()
	}()

	err := a.term.Run()
	cancel()
	<-done

	if err != nil {
		a.log.Error().Err(err).Msg("terminal program failed")
		return fmt.Errorf("terminal program: %w", err)
	}

	ended := a.log.Info()
	if w := a.logs.Writer(); w != nil {
		ended = ended.Uint64("dropped_lines", w.Dropped())
	}
	ended.Msg("session ended")
	return nil
}
