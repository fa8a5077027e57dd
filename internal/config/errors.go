package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidNetworkConfigs indicates invalid reachability settings
	// (for example, a negative discovery timeout or a lease that does not
	// fit the gateway's 32-bit seconds field).
	ErrInvalidNetworkConfigs = errors.New("invalid network configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, an application name that is not a plain directory name).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
)
