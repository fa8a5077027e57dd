// Package config provides configuration loading, merging, and validation
// facilities for the rendezvous dashboard.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for non-zero fields):
//  1. Command-line flags (only -p/-port)
//  2. Environment variables
//  3. JSON config file (path from CONFIG)
//  4. Built-in defaults
//
// The main entry point is [GetStructuredConfig].
package config
