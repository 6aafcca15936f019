// Package delivery defines the contract every transport implements.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server, worker) started by the
// application container.
type Delivery interface {
	// Serve blocks until the transport stops or fails.
	Serve(ctx context.Context) error
}
