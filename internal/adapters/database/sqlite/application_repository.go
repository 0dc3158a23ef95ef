package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
)

type ApplicationRepository struct {
	BaseRepository
}

func newApplicationRepository(provider *Provider) portsrepo.ApplicationRepositoryFacade {
	return &ApplicationRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.ApplicationRepositoryFacade = (*ApplicationRepository)(nil)

var sortColumns = map[portsrepo.ApplicationSortKey]string{
	portsrepo.SortBySubmittedAt:     "submitted_at",
	portsrepo.SortByReferenceNumber: "reference_number",
	portsrepo.SortByAmountClaimed:   "total_amount_claimed",
	portsrepo.SortByStatus:          "status",
}

const selectApplicationColumns = `
	SELECT application_id, reference_number, employee_id, employee_name, patient_name, patient_relation,
	       treatment_type, hospital_name, treatment_from, treatment_to, status,
	       total_amount_claimed, total_amount_approved, submitted_at,
	       reviewed_by, reviewed_at, reviewer_comments,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM applications
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (*models.Application, error) {
	var m models.Application
	err := row.Scan(
		&m.ApplicationID,
		&m.ReferenceNumber,
		&m.EmployeeID,
		&m.EmployeeName,
		&m.PatientName,
		&m.PatientRelation,
		&m.TreatmentType,
		&m.HospitalName,
		&m.TreatmentFrom,
		&m.TreatmentTo,
		&m.Status,
		&m.TotalAmountClaimed,
		&m.TotalAmountApproved,
		&m.SubmittedAt,
		&m.ReviewedBy,
		&m.ReviewedAt,
		&m.ReviewerComments,
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

const insertExpenseItemQuery = `
	INSERT INTO expense_items (expense_id, application_id, bill_number, bill_date, description,
		amount_claimed, amount_approved, created_at, created_by, last_updated_at, last_updated_by)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

func execInsertExpenseItem(ctx context.Context, tx *sql.Tx, m models.ExpenseItem) error {
	_, err := tx.ExecContext(ctx, insertExpenseItemQuery,
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
	return nil
}

func (r *ApplicationRepository) SaveApplication(ctx context.Context, app domain.Application, items []domain.ExpenseItem, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	m := mapping.ToModelApplication(app)
	query := `
		INSERT INTO applications (
			application_id, reference_number, employee_id, employee_name, patient_name, patient_relation,
			treatment_type, hospital_name, treatment_from, treatment_to, status,
			total_amount_claimed, total_amount_approved, submitted_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = tx.ExecContext(ctx, query,
		m.ApplicationID,
		m.ReferenceNumber,
		m.EmployeeID,
		m.EmployeeName,
		m.PatientName,
		m.PatientRelation,
		m.TreatmentType,
		m.HospitalName,
		m.TreatmentFrom,
		m.TreatmentTo,
		m.Status,
		m.TotalAmountClaimed,
		m.TotalAmountApproved,
		m.SubmittedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert application "+m.ApplicationID, err)
	}

	for _, item := range items {
		if err := execInsertExpenseItem(ctx, tx, mapping.ToModelExpenseItem(item)); err != nil {
			return err
		}
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(tx)
}

func (r *ApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectApplicationColumns + ` WHERE application_id = ?;`
	m, err := scanApplication(db.QueryRowContext(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find application "+applicationID, err)
	}
	app := mapping.ToDomainApplication(*m)
	return &app, nil
}

func (r *ApplicationRepository) ListApplications(ctx context.Context, filter portsrepo.ApplicationListFilter) ([]domain.Application, int64, error) {
	db, err := r.DB()
	if err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[filter.SortKey]
	if !ok {
		return nil, 0, apperrors.NewValidationError("unknown sort key " + string(filter.SortKey))
	}
	direction := "DESC"
	if filter.SortOrder == portsrepo.SortAsc {
		direction = "ASC"
	}

	where := " WHERE 1=1"
	args := []interface{}{}
	if filter.Status != nil {
		where += " AND status = ?"
		args = append(args, string(*filter.Status))
	}
	if filter.EmployeeID != nil {
		where += " AND employee_id = ?"
		args = append(args, *filter.EmployeeID)
	}
	if filter.SubmittedFrom != nil {
		where += " AND submitted_at >= ?"
		args = append(args, *filter.SubmittedFrom)
	}
	if filter.SubmittedTo != nil {
		where += " AND submitted_at <= ?"
		args = append(args, *filter.SubmittedTo)
	}

	var total int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`+where+`;`, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count applications", err)
	}

	query := selectApplicationColumns + where +
		" ORDER BY " + column + " " + direction + ", submitted_at DESC LIMIT " +
		strconv.Itoa(filter.Limit) + " OFFSET " + strconv.Itoa(filter.Offset) + ";"
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query applications", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		m, err := scanApplication(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan application row", err)
		}
		apps = append(apps, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating application rows", err)
	}
	return mapping.ToDomainApplicationSlice(apps), total, nil
}

func (r *ApplicationRepository) UpdateApplicationStatus(ctx context.Context, upd portsrepo.StatusUpdate, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	query := `
		UPDATE applications
		SET status = ?,
		    reviewed_by = ?,
		    reviewed_at = ?,
		    reviewer_comments = COALESCE(?, reviewer_comments),
		    total_amount_approved = COALESCE(?, total_amount_approved),
		    last_updated_at = ?,
		    last_updated_by = ?
		WHERE application_id = ? AND status = ?;
	`
	result, err := tx.ExecContext(ctx, query,
		string(upd.TargetStatus),
		upd.ReviewedBy,
		upd.ReviewedAt,
		upd.Comments,
		upd.ApprovedAmount,
		upd.ReviewedAt,
		upd.ReviewedBy,
		upd.ApplicationID,
		string(upd.ExpectedStatus),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of application "+upd.ApplicationID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read affected rows", err)
	}
	if affected == 0 {
		var exists bool
		checkErr := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE application_id = ?);`, upd.ApplicationID).Scan(&exists)
		if checkErr != nil {
			return apperrors.NewAppError(500, "failed to verify application "+upd.ApplicationID, checkErr)
		}
		if !exists {
			return apperrors.NewNotFoundError("application " + upd.ApplicationID + " not found")
		}
		return apperrors.NewConflictError("application " + upd.ApplicationID + " status changed since read")
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(tx)
}

func (r *ApplicationRepository) DeleteApplication(ctx context.Context, applicationID string, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_items WHERE application_id = ?;`, applicationID); err != nil {
		return apperrors.NewAppError(500, "failed to delete expense items of application "+applicationID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM application_documents WHERE application_id = ?;`, applicationID); err != nil {
		return apperrors.NewAppError(500, "failed to delete documents of application "+applicationID, err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE application_id = ?;`, applicationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete application "+applicationID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("application " + applicationID + " not found")
	}
	return r.Commit(tx)
}

// NextReferenceSequence bumps the named counter row and returns the new value.
func (r *ApplicationRepository) NextReferenceSequence(ctx context.Context) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(tx)

	query := `
		INSERT INTO ref_counters (name, value) VALUES ('application_reference', 1)
		ON CONFLICT(name) DO UPDATE SET value = value + 1;
	`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return 0, apperrors.NewAppError(500, "failed to bump reference counter", err)
	}
	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT value FROM ref_counters WHERE name = 'application_reference';`).Scan(&seq); err != nil {
		return 0, apperrors.NewAppError(500, "failed to read reference counter", err)
	}
	if err := r.Commit(tx); err != nil {
		return 0, err
	}
	return seq, nil
}
