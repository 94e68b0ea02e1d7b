// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - Auth: API key validation protecting the operator endpoints.
//   - RayID: a unique Request ID (RayID) for every incoming request,
//     injected into the context and response headers for tracing.
//   - Metrics: Prometheus counters for requests, intake and calibration outcomes.
//
// These middleware components are registered globally in cmd/start.go.
package middleware
