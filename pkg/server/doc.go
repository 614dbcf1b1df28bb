// Package server exposes a Vellum application over HTTP. The root page is
// served as fully rendered HTML, live updates stream over the /patches
// WebSocket as rendered patch batches, and /metrics exposes the Prometheus
// registry.
package server
