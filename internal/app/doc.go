// Package app wires configuration, storage, the API client and the two
// screens into the root Bubble Tea program.
package app
