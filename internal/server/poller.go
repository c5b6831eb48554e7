package server

import (
	"context"

	"baseball-games-service/internal/poller"
)

// Poller defines the poller behavior the server wires: the sweep loop
// lifecycle, readiness status for /ready, and the forced sweep the admin
// endpoint triggers.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	SweepNow(ctx context.Context) poller.Status
}
