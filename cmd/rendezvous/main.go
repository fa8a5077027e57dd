package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/MKhiriev/p2p-rendezvous-server/internal/client"
	"github.com/MKhiriev/p2p-rendezvous-server/internal/config"
	"github.com/MKhiriev/p2p-rendezvous-server/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const (
	exitOK    = 0
	exitError = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(os.Stdout, config.Usage)
			return exitOK
		}
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n\n%s", err, config.Usage)
		return exitError
	}

	app := client.NewApp(cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	if err = app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "rendezvous: %v\n", err)
		return exitError
	}

	return exitOK
}
