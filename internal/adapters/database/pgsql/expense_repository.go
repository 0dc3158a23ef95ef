package pgsql

import (
	"context"
	"errors"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(provider *Provider) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const selectExpenseColumns = `
	SELECT expense_id, application_id, bill_number, bill_date, description,
	       amount_claimed, amount_approved,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM expense_items
`

func scanExpenseItem(row pgx.Row) (*models.ExpenseItem, error) {
	var m models.ExpenseItem
	err := row.Scan(
		&m.ExpenseID,
		&m.ApplicationID,
		&m.BillNumber,
		&m.BillDate,
		&m.Description,
		&m.AmountClaimed,
		&m.AmountApproved,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxExpenseRepository) FindExpenseItemByID(ctx context.Context, expenseID string) (*domain.ExpenseItem, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectExpenseColumns + ` WHERE expense_id = $1;`
	m, err := scanExpenseItem(pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense item "+expenseID, err)
	}
	item := mapping.ToDomainExpenseItem(*m)
	return &item, nil
}

func (r *PgxExpenseRepository) FindExpenseItemsByApplicationID(ctx context.Context, applicationID string) ([]domain.ExpenseItem, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectExpenseColumns + ` WHERE application_id = $1 ORDER BY bill_date ASC, created_at ASC;`
	rows, err := pool.Query(ctx, query, applicationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expense items of application "+applicationID, err)
	}
	defer rows.Close()

	items := []models.ExpenseItem{}
	for rows.Next() {
		m, err := scanExpenseItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense item row", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense item rows", err)
	}
	return mapping.ToDomainExpenseItemSlice(items), nil
}

func (r *PgxExpenseRepository) SaveExpenseItem(ctx context.Context, item domain.ExpenseItem, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelExpenseItem(item)
	query := `
		INSERT INTO expense_items (expense_id, application_id, bill_number, bill_date, description,
			amount_claimed, amount_approved, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		m.ExpenseID,
		m.ApplicationID,
		m.BillNumber,
		m.BillDate,
		m.Description,
		m.AmountClaimed,
		m.AmountApproved,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert expense item "+m.ExpenseID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) UpdateExpenseItem(ctx context.Context, item domain.ExpenseItem, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelExpenseItem(item)
	query := `
		UPDATE expense_items
		SET bill_number = $2, bill_date = $3, description = $4,
		    amount_claimed = $5, amount_approved = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE expense_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.ExpenseID,
		m.BillNumber,
		m.BillDate,
		m.Description,
		m.AmountClaimed,
		m.AmountApproved,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense item "+m.ExpenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("expense item " + m.ExpenseID + " not found")
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
