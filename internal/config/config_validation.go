// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// maxLease is the largest lease a gateway accepts: its lease field counts
// seconds in an unsigned 32-bit integer.
const maxLease = time.Duration(math.MaxUint32) * time.Second

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Name == "" || strings.ContainsAny(cfg.App.Name, `/\`) || cfg.App.Name == "." || cfg.App.Name == ".." {
		return fmt.Errorf("%w: app name %q", ErrInvalidAppConfigs, cfg.App.Name)
	}

	n := cfg.Network
	switch {
	case n.Port == 0:
		return fmt.Errorf("%w: port is not set", ErrInvalidNetworkConfigs)
	case n.DiscoveryTimeout <= 0:
		return fmt.Errorf("%w: discovery timeout %s", ErrInvalidNetworkConfigs, n.DiscoveryTimeout)
	case n.LeaseDuration < time.Second || n.LeaseDuration > maxLease:
		return fmt.Errorf("%w: lease duration %s", ErrInvalidNetworkConfigs, n.LeaseDuration)
	}

	return nil
}
