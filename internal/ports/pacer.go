package ports

import "context"

// Pacer blocks until the next external call may be issued.
type Pacer interface {
	Wait(ctx context.Context) error
}
