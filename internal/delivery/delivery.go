// Package delivery defines the contract every transport entrypoint
// implements.
package delivery

import "context"

// Delivery is a long-running request entrypoint, started by main after the
// dependency graph is built.
type Delivery interface {
	Serve(ctx context.Context) error
}
