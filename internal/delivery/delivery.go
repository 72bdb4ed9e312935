// Package delivery defines the contract shared by every transport
// surface the process can expose.
package delivery

import "context"

// Delivery is a long-running transport (HTTP API, worker endpoint)
// started by the fx application.
type Delivery interface {
	// Serve blocks serving requests until the server is shut down.
	Serve(ctx context.Context) error
}
