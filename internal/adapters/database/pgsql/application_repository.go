package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	"github.com/claimpilot/claims_management_app/internal/models"
	"github.com/claimpilot/claims_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxApplicationRepository struct {
	BaseRepository
}

// newPgxApplicationRepository creates the repository for claim applications.
func newPgxApplicationRepository(provider *Provider) portsrepo.ApplicationRepositoryFacade {
	return &PgxApplicationRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.ApplicationRepositoryFacade = (*PgxApplicationRepository)(nil)

// sortColumns whitelists the sortable columns. The service validates the sort
// key before it gets here; the map keeps SQL assembly away from user input.
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

func scanApplication(row pgx.Row) (*models.Application, error) {
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

// SaveApplication persists the application, its expense items and the audit
// entry inside one database transaction.
func (r *PgxApplicationRepository) SaveApplication(ctx context.Context, app domain.Application, items []domain.ExpenseItem, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction commits.

	m := mapping.ToModelApplication(app)
	appQuery := `
		INSERT INTO applications (
			application_id, reference_number, employee_id, employee_name, patient_name, patient_relation,
			treatment_type, hospital_name, treatment_from, treatment_to, status,
			total_amount_claimed, total_amount_approved, submitted_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, appQuery,
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

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO expense_items (expense_id, application_id, bill_number, bill_date, description,
			amount_claimed, amount_approved, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, item := range items {
		mi := mapping.ToModelExpenseItem(item)
		batch.Queue(itemQuery,
			mi.ExpenseID,
			mi.ApplicationID,
			mi.BillNumber,
			mi.BillDate,
			mi.Description,
			mi.AmountClaimed,
			mi.AmountApproved,
			mi.CreatedAt,
			mi.CreatedBy,
			mi.LastUpdatedAt,
			mi.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert expense items for application "+m.ApplicationID, err)
	}

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindApplicationByID retrieves one application by its identifier.
func (r *PgxApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.Application, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectApplicationColumns + ` WHERE application_id = $1;`
	m, err := scanApplication(pool.QueryRow(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find application "+applicationID, err)
	}
	app := mapping.ToDomainApplication(*m)
	return &app, nil
}

// ListApplications retrieves a filtered, sorted page plus the total match count.
func (r *PgxApplicationRepository) ListApplications(ctx context.Context, filter portsrepo.ApplicationListFilter) ([]domain.Application, int64, error) {
	pool, err := r.Pool()
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
		args = append(args, string(*filter.Status))
		where += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		where += " AND employee_id = $" + strconv.Itoa(len(args))
	}
	if filter.SubmittedFrom != nil {
		args = append(args, *filter.SubmittedFrom)
		where += " AND submitted_at >= $" + strconv.Itoa(len(args))
	}
	if filter.SubmittedTo != nil {
		args = append(args, *filter.SubmittedTo)
		where += " AND submitted_at <= $" + strconv.Itoa(len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM applications` + where + `;`
	if err := pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count applications", err)
	}

	// submitted_at keeps pages stable when the primary sort column has ties.
	orderBy := " ORDER BY " + column + " " + direction + ", submitted_at DESC"
	args = append(args, filter.Limit)
	limitClause := " LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	offsetClause := " OFFSET $" + strconv.Itoa(len(args))

	query := selectApplicationColumns + where + orderBy + limitClause + offsetClause + ";"
	rows, err := pool.Query(ctx, query, args...)
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

// UpdateApplicationStatus performs the optimistic status write. The WHERE
// clause re-checks the expected status so a concurrent writer loses with a
// conflict instead of silently overwriting.
func (r *PgxApplicationRepository) UpdateApplicationStatus(ctx context.Context, upd portsrepo.StatusUpdate, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE applications
		SET status = $3,
		    reviewed_by = $4,
		    reviewed_at = $5,
		    reviewer_comments = COALESCE($6, reviewer_comments),
		    total_amount_approved = COALESCE($7, total_amount_approved),
		    last_updated_at = $5,
		    last_updated_by = $4
		WHERE application_id = $1 AND status = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		upd.ApplicationID,
		string(upd.ExpectedStatus),
		string(upd.TargetStatus),
		upd.ReviewedBy,
		upd.ReviewedAt,
		upd.Comments,
		upd.ApprovedAmount,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of application "+upd.ApplicationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a missing application from a stale read.
		var exists bool
		checkErr := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE application_id = $1);`, upd.ApplicationID).Scan(&exists)
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

	return r.Commit(ctx, tx)
}

// DeleteApplication records the audit entry, then removes the application and
// its owned children in one transaction. Historical review records stay.
func (r *PgxApplicationRepository) DeleteApplication(ctx context.Context, applicationID string, entry domain.AuditLogEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertAuditEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM expense_items WHERE application_id = $1;`, applicationID); err != nil {
		return apperrors.NewAppError(500, "failed to delete expense items of application "+applicationID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM application_documents WHERE application_id = $1;`, applicationID); err != nil {
		return apperrors.NewAppError(500, "failed to delete documents of application "+applicationID, err)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM applications WHERE application_id = $1;`, applicationID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete application "+applicationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("application " + applicationID + " not found")
	}

	return r.Commit(ctx, tx)
}

// NextReferenceSequence reserves the next reference number from the database
// sequence.
func (r *PgxApplicationRepository) NextReferenceSequence(ctx context.Context) (int64, error) {
	pool, err := r.Pool()
	if err != nil {
		return 0, err
	}
	var seq int64
	if err := pool.QueryRow(ctx, `SELECT nextval('application_reference_seq');`).Scan(&seq); err != nil {
		return 0, apperrors.NewAppError(500, "failed to reserve reference sequence", err)
	}
	return seq, nil
}
