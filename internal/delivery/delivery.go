// Package delivery defines the contract every inbound adapter fulfils.
package delivery

import "context"

// Delivery is a long-running inbound adapter (an HTTP server here). Serve
// blocks until the adapter stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
