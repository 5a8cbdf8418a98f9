package leave

import "context"

// LeaveService is the leave request workflow surface.
type LeaveService interface {
	// Apply files a new request at the start of the approval chain.
	Apply(ctx context.Context, userID string, req ApplyRequest) (RequestResponse, error)

	// History returns the user's requests, newest first.
	History(ctx context.Context, userID string) ([]RequestResponse, error)

	// ListAll returns every request for the approval board.
	ListAll(ctx context.Context) ([]RequestResponse, error)

	// Balances returns per-type usage against the entitlement.
	Balances(ctx context.Context, userID string) ([]BalanceResponse, error)

	// Stats returns the aggregate usage ring.
	Stats(ctx context.Context, userID string) (StatsResponse, error)

	// Approve records approval at the current stage and advances the chain.
	Approve(ctx context.Context, id string) (RequestResponse, error)

	// Reject ends the chain at the current stage.
	Reject(ctx context.Context, id string) (RequestResponse, error)
}
