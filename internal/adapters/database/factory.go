// Package database selects and constructs the active persistence provider.
package database

import (
	"fmt"
	"log/slog"

	"github.com/claimpilot/claims_management_app/internal/adapters/database/memory"
	"github.com/claimpilot/claims_management_app/internal/adapters/database/pgsql"
	"github.com/claimpilot/claims_management_app/internal/adapters/database/sqlite"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/platform/config"
)

// Provider discriminator values accepted in configuration.
const (
	ProviderPostgres = "postgres"
	ProviderSQLite   = "sqlite"
	ProviderMemory   = "memory"
)

// NewProvider constructs the persistence provider named by the configuration
// discriminator. Unknown discriminators fail here, at startup, not at first
// use. The in-memory provider is never an implicit fallback: it must be named
// explicitly, and selecting it is logged loudly.
func NewProvider(cfg *config.Config, logger *slog.Logger) (portsrepo.PersistenceProvider, error) {
	switch cfg.PersistenceProvider {
	case ProviderPostgres:
		return pgsql.NewProvider(cfg.DatabaseURL), nil
	case ProviderSQLite:
		return sqlite.NewProvider(cfg.SQLitePath), nil
	case ProviderMemory:
		logger.Warn("Using the in-memory persistence provider; all data is lost on shutdown",
			slog.String("provider", ProviderMemory))
		return memory.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported persistence provider %q", cfg.PersistenceProvider)
	}
}
