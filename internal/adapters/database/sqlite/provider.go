// Package sqlite implements the persistence provider on an embedded SQLite
// database. It targets single-node deployments where running a Postgres server
// is not worth the operational cost.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	_ "github.com/mattn/go-sqlite3"
)

// Provider implements repositories.PersistenceProvider on SQLite.
type Provider struct {
	path string

	mu        sync.Mutex
	db        *sql.DB
	connected bool
	repos     portsrepo.RepositoryProvider
}

// NewProvider creates a disconnected SQLite provider for the given file path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

var _ portsrepo.PersistenceProvider = (*Provider)(nil)

// Connect opens the database file, enables foreign keys and applies the schema.
// Calling Connect on a connected provider is a no-op.
func (p *Provider) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connected {
		return nil
	}

	db, err := sql.Open("sqlite3", p.path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open sqlite database at %s: %w", p.path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database at %s: %w", p.path, err)
	}
	// The sqlite driver serializes writes per connection; a single connection
	// avoids SQLITE_BUSY churn under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	p.db = db
	p.connected = true
	p.repos = newRepositoryProvider(p)
	return nil
}

// Disconnect closes the database. Calling it on a disconnected provider is a
// no-op.
func (p *Provider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	p.connected = false
	if err != nil {
		return fmt.Errorf("failed to close sqlite database: %w", err)
	}
	return nil
}

func (p *Provider) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *Provider) Capabilities() portsrepo.Capabilities {
	return portsrepo.Capabilities{AtomicSubmit: true, RawQuery: true}
}

// Raw executes an ad-hoc statement and returns the affected row count.
func (p *Provider) Raw(ctx context.Context, query string, args ...any) (int64, error) {
	db, err := p.database()
	if err != nil {
		return 0, err
	}
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewAppError(500, "raw query failed", err)
	}
	return result.RowsAffected()
}

func (p *Provider) Repos() portsrepo.RepositoryProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.repos
}

func (p *Provider) database() (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return nil, apperrors.ErrNotConnected
	}
	return p.db, nil
}
