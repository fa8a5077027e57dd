// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the rendezvous dashboard runtime.
//
// It wires the log store, the event bus, the startup workflow, the session
// controller and the terminal program into a single process lifecycle.
package client
