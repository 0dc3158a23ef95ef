package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
	"github.com/claimpilot/claims_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// PgxAuditRepository persists the append-only audit trail. The seq column is a
// BIGSERIAL assigned on insert and breaks timestamp ties in every read.
type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(provider *Provider) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const insertAuditQuery = `
	INSERT INTO audit_log (entry_id, entity_type, entity_id, action, actor_id, changes, client_ip, user_agent, recorded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`

// insertAuditEntryTx writes one audit row inside an existing transaction. The
// other repositories use this to make the audit write part of the mutation.
func insertAuditEntryTx(ctx context.Context, tx pgx.Tx, entry domain.AuditLogEntry) error {
	m, err := mapping.ToModelAuditLogEntry(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to serialize audit changes for entry "+entry.EntryID, err)
	}
	_, err = tx.Exec(ctx, insertAuditQuery,
		m.EntryID,
		m.EntityType,
		m.EntityID,
		m.Action,
		m.ActorID,
		m.ChangesJSON,
		m.ClientIP,
		m.UserAgent,
		m.RecordedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry "+entry.EntryID, err)
	}
	return nil
}

// Record appends one entry outside any caller transaction.
func (r *PgxAuditRepository) Record(ctx context.Context, entry domain.AuditLogEntry) error {
	pool, err := r.Pool()
	if err != nil {
		return err
	}
	m, err := mapping.ToModelAuditLogEntry(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to serialize audit changes for entry "+entry.EntryID, err)
	}
	_, err = pool.Exec(ctx, insertAuditQuery,
		m.EntryID,
		m.EntityType,
		m.EntityID,
		m.Action,
		m.ActorID,
		m.ChangesJSON,
		m.ClientIP,
		m.UserAgent,
		m.RecordedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit entry "+entry.EntryID, err)
	}
	return nil
}

// Update always fails: audit entries are immutable by contract.
func (r *PgxAuditRepository) Update(ctx context.Context, entry domain.AuditLogEntry) error {
	return apperrors.ErrImmutableRecord
}

// Delete always fails: audit entries are immutable by contract.
func (r *PgxAuditRepository) Delete(ctx context.Context, entryID string) error {
	return apperrors.ErrImmutableRecord
}

const selectAuditColumns = `
	SELECT entry_id, entity_type, entity_id, action, actor_id, changes, client_ip, user_agent, seq, recorded_at
	FROM audit_log
`

func scanAuditRows(rows pgx.Rows) ([]models.AuditLogEntry, error) {
	defer rows.Close()
	entries := []models.AuditLogEntry{}
	for rows.Next() {
		var m models.AuditLogEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.EntityType,
			&m.EntityID,
			&m.Action,
			&m.ActorID,
			&m.ChangesJSON,
			&m.ClientIP,
			&m.UserAgent,
			&m.Sequence,
			&m.RecordedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit entry rows", err)
	}
	return entries, nil
}

// FindByEntity returns all entries for one entity, newest first.
func (r *PgxAuditRepository) FindByEntity(ctx context.Context, entityType, entityID string) ([]domain.AuditLogEntry, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectAuditColumns + `
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY recorded_at DESC, seq DESC;
	`
	rows, err := pool.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit entries for "+entityType+" "+entityID, err)
	}
	entries, err := scanAuditRows(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAuditLogEntrySlice(entries), nil
}

// FindByDateRange returns one page of entries within [start, end], newest
// first, using cursor pagination on (recorded_at, seq).
func (r *PgxAuditRepository) FindByDateRange(ctx context.Context, start, end time.Time, limit int, nextToken *string) ([]domain.AuditLogEntry, *string, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	filterClause := `WHERE recorded_at >= $1 AND recorded_at <= $2`
	orderByClause := `ORDER BY recorded_at DESC, seq DESC`
	args := []interface{}{start, end}

	if nextToken != nil && *nextToken != "" {
		lastRecordedAt, lastSeq, decodeErr := pagination.DecodeAuditCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		filterClause += ` AND (recorded_at, seq) < ($3, $4)`
		args = append(args, lastRecordedAt, lastSeq)
	}

	query := selectAuditColumns + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit entries by date range", err)
	}
	entries, err := scanAuditRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeAuditCursor(last.RecordedAt, last.Sequence)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainAuditLogEntrySlice(entries), nextTokenVal, nil
}
