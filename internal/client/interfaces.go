// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the dashboard and blocks until the operator exits.
	Run() error
}

var _ Client = (*App)(nil)
