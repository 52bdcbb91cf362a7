// Package server runs the HTTP ops listener of the table mirror.
//
// It owns the listener lifecycle: startup, shutdown when the run context is
// cancelled, and graceful draining of in-flight requests.
package server
