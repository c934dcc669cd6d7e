// Package http serves listing pages as JSON.
//
// Routes:
//   - GET /healthz
//   - GET /metrics (Prometheus exposition)
//   - GET /{path...} render-ready page for a listing path
//
// Host applications can mount Register on their own mux instead of using
// Handler.
package http
