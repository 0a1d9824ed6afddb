// Package core holds the constants shared across the installer packages.
package core

import "time"

// Subprocess deadlines. Version probes answer in well under a second on a
// healthy machine; npm installs pull packages over the network.
const (
	TimeoutProbe   = 30 * time.Second
	TimeoutInstall = 5 * time.Minute
)

// File modes for created artifacts. The persisted configuration can carry
// API keys, so it is owner-only.
const (
	PermOwnerRW = 0o600
	PermFile    = 0o644
	PermDir     = 0o755
)
