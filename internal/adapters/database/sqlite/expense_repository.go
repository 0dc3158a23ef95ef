package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
)

type ExpenseRepository struct {
	BaseRepository
}

func newExpenseRepository(provider *Provider) portsrepo.ExpenseRepositoryFacade {
	return &ExpenseRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.ExpenseRepositoryFacade = (*ExpenseRepository)(nil)

const selectExpenseColumns = `
	SELECT expense_id, application_id, bill_number, bill_date, description,
	       amount_claimed, amount_approved,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM expense_items
`

func scanExpenseItem(row rowScanner) (*models.ExpenseItem, error) {
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

func (r *ExpenseRepository) FindExpenseItemByID(ctx context.Context, expenseID string) (*domain.ExpenseItem, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectExpenseColumns + ` WHERE expense_id = ?;`
	m, err := scanExpenseItem(db.QueryRowContext(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense item "+expenseID, err)
	}
	item := mapping.ToDomainExpenseItem(*m)
	return &item, nil
}

func (r *ExpenseRepository) FindExpenseItemsByApplicationID(ctx context.Context, applicationID string) ([]domain.ExpenseItem, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectExpenseColumns + ` WHERE application_id = ? ORDER BY bill_date ASC, created_at ASC;`
	rows, err := db.QueryContext(ctx, query, applicationID)
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

func (r *ExpenseRepository) SaveExpenseItem(ctx context.Context, item domain.ExpenseItem, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	if err := execInsertExpenseItem(ctx, tx, mapping.ToModelExpenseItem(item)); err != nil {
		return err
	}
	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(tx)
}

func (r *ExpenseRepository) UpdateExpenseItem(ctx context.Context, item domain.ExpenseItem, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelExpenseItem(item)
	query := `
		UPDATE expense_items
		SET bill_number = ?, bill_date = ?, description = ?,
		    amount_claimed = ?, amount_approved = ?,
		    last_updated_at = ?, last_updated_by = ?
		WHERE expense_id = ?;
	`
	result, err := tx.ExecContext(ctx, query,
		m.BillNumber,
		m.BillDate,
		m.Description,
		m.AmountClaimed,
		m.AmountApproved,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ExpenseID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense item "+m.ExpenseID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("expense item " + m.ExpenseID + " not found")
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(tx)
}
