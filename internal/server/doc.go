// Package server holds the shared runtime state of the clinicdesk MCP server:
// the per-account calendar clients, the OAuth token store, health check
// endpoints for Kubernetes probes, and the dedicated Prometheus metrics
// server.
package server
