// Package api defines transport-friendly representations of queue and
// daemon state shared by the IPC layer, the HTTP API, and the CLI.
package api
