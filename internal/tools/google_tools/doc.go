// Package google_tools exposes the OAuth consent bootstrap as MCP tools so
// an operator can authorize calendar access through the agent itself.
package google_tools
