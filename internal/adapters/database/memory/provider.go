package memory

import (
	"context"
	"sync"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
)

// Provider implements repositories.PersistenceProvider on the in-process store.
type Provider struct {
	mu        sync.Mutex
	store     *store
	connected bool
	repos     portsrepo.RepositoryProvider
}

func NewProvider() *Provider {
	return &Provider{}
}

var _ portsrepo.PersistenceProvider = (*Provider)(nil)

// Connect initializes a fresh store. Reconnecting a connected provider is a
// no-op and keeps existing data.
func (p *Provider) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.connected {
		return nil
	}
	p.store = newStore()
	p.connected = true
	p.repos = newRepositoryProvider(p)
	return nil
}

// Disconnect drops the store and all data with it.
func (p *Provider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.store = nil
	p.connected = false
	return nil
}

func (p *Provider) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *Provider) Capabilities() portsrepo.Capabilities {
	return portsrepo.Capabilities{AtomicSubmit: false, RawQuery: false}
}

// Raw is not supported: there is no query engine behind the maps.
func (p *Provider) Raw(ctx context.Context, query string, args ...any) (int64, error) {
	return 0, apperrors.ErrUnsupported
}

func (p *Provider) Repos() portsrepo.RepositoryProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.repos
}

func (p *Provider) getStore() (*store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return nil, apperrors.ErrNotConnected
	}
	return p.store, nil
}
