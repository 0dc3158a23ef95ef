package pgsql

import (
	"context"
	"sync"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Provider is the PostgreSQL persistence provider. One instance is live per
// process; Connect/Disconnect are idempotent and guarded by a mutex.
type Provider struct {
	databaseURL string

	mu        sync.Mutex
	pool      *pgxpool.Pool
	connected bool
	repos     portsrepo.RepositoryProvider
}

// NewProvider builds an unconnected PostgreSQL provider.
func NewProvider(databaseURL string) *Provider {
	return &Provider{databaseURL: databaseURL}
}

var _ portsrepo.PersistenceProvider = (*Provider)(nil)

// Connect establishes the connection pool. Calling it on a connected provider
// is a no-op.
func (p *Provider) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connected {
		return nil
	}

	pool, err := database.NewPgxPool(ctx, p.databaseURL)
	if err != nil {
		return apperrors.NewAppError(500, "failed to establish database pool", err)
	}

	p.pool = pool
	p.connected = true
	p.repos = newRepositoryProvider(p)
	return nil
}

// Disconnect closes the pool. Calling it on a disconnected provider is a no-op.
func (p *Provider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return nil
	}
	p.pool.Close()
	p.pool = nil
	p.connected = false
	return nil
}

// IsConnected reports whether the provider is inside its connect lifecycle.
func (p *Provider) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// Capabilities reports full transaction and raw query support.
func (p *Provider) Capabilities() portsrepo.Capabilities {
	return portsrepo.Capabilities{AtomicSubmit: true, RawQuery: true}
}

// Raw executes an ad-hoc statement and returns the affected row count.
func (p *Provider) Raw(ctx context.Context, query string, args ...any) (int64, error) {
	pool, err := p.getPool()
	if err != nil {
		return 0, err
	}
	tag, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewAppError(500, "raw query failed", err)
	}
	return tag.RowsAffected(), nil
}

// Repos returns the repository set backed by this provider.
func (p *Provider) Repos() portsrepo.RepositoryProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.repos
}

// getPool hands out the live pool, failing when the provider is disconnected
// so callers get an explicit error instead of empty results.
func (p *Provider) getPool() (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected || p.pool == nil {
		return nil, apperrors.ErrNotConnected
	}
	return p.pool, nil
}
