// Package http implements the HTTP ops surface of the table mirror.
//
// It exposes prometheus metrics, a health probe, build information and a
// small JSON API over the mirror service: table status, cached snapshots,
// on-demand refreshes and pushes of desired rows. Request tracing and access
// logging are handled here before requests reach the service layer.
package http
