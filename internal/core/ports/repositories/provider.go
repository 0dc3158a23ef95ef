package repositories

import "context"

// Capabilities describes what the active persistence provider can do. Callers
// must branch on these flags instead of probing for failures.
type Capabilities struct {
	// AtomicSubmit is true when multi-entity writes (application + expense items
	// + audit entry) are committed in a single storage transaction. Providers
	// without it fall back to compensating cleanup of partial writes.
	AtomicSubmit bool
	// RawQuery is true when the Raw escape hatch can execute ad-hoc statements.
	RawQuery bool
}

// PersistenceProvider is the storage-engine-agnostic gateway. Exactly one
// provider instance is active per process; it is constructed by the adapter
// factory at startup and injected into services.
//
// Connect and Disconnect are idempotent. Every repository operation on a
// disconnected provider fails with apperrors.ErrNotConnected rather than
// returning empty results.
type PersistenceProvider interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	IsConnected() bool
	Capabilities() Capabilities

	// Raw executes an ad-hoc statement against the underlying engine and returns
	// the number of affected rows. Providers without ad-hoc query support fail
	// with apperrors.ErrUnsupported; core behavior must never depend on Raw.
	Raw(ctx context.Context, query string, args ...any) (int64, error)

	// Repos returns the repository set backed by this provider.
	Repos() RepositoryProvider
}
