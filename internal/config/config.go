// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the
// rendezvous dashboard. It aggregates all sub-configurations and is
// populated by merging values from command-line flags, environment
// variables, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the name used for the data
	// directory and an optional data directory override.
	App App `envPrefix:"APP_"`

	// Network holds the reachability setup parameters.
	Network Network `envPrefix:"NETWORK_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Name names the per-user directory the log file lives in.
	// Env: APP_NAME
	Name string `env:"NAME"`

	// DataDir replaces the per-user data directory (XDG data home) when set.
	// Env: APP_DATA_DIR
	DataDir string `env:"DATA_DIR"`
}

// Network holds the settings of the startup workflow.
type Network struct {
	// Port is the UDP port mapped on the gateway and served locally.
	// Env: NETWORK_PORT
	Port uint16 `env:"PORT"`

	// DiscoveryTimeout bounds the multicast gateway search (e.g. "5s").
	// Env: NETWORK_DISCOVERY_TIMEOUT
	DiscoveryTimeout time.Duration `env:"DISCOVERY_TIMEOUT"`

	// LeaseDuration is the lifetime of the port mapping (e.g. "24h").
	// Env: NETWORK_LEASE_DURATION
	LeaseDuration time.Duration `env:"LEASE_DURATION"`

	// MappingDescription labels the mapping in the gateway's table.
	// Env: NETWORK_MAPPING_DESCRIPTION
	MappingDescription string `env:"MAPPING_DESCRIPTION"`
}

// Defaults applied to every field no other source set.
const (
	DefaultAppName            = "p2p-rendezvous-server"
	DefaultPort        uint16 = 42069
	DefaultDiscovery          = 5 * time.Second
	DefaultLease              = 24 * time.Hour
	DefaultDescription        = "p2p-rendezvous-server-apt-1003"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Name: DefaultAppName,
		},
		Network: Network{
			Port:               DefaultPort,
			DiscoveryTimeout:   DefaultDiscovery,
			LeaseDuration:      DefaultLease,
			MappingDescription: DefaultDescription,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from
// the process arguments and environment. See [Load].
func GetStructuredConfig() (*StructuredConfig, error) {
	return Load(os.Args[1:])
}

// Load builds the configuration from args and the environment in the
// following priority order (earlier sources win for non-zero fields):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON file (path taken from CONFIG)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func Load(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(args).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
