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
	sqlite3 "github.com/mattn/go-sqlite3"
)

type UserRepository struct {
	BaseRepository
}

func newUserRepository(provider *Provider) portsrepo.UserRepositoryFacade {
	return &UserRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

const selectUserColumns = `
	SELECT user_id, name, email, role, password_hash,
	       created_at, created_by, last_updated_at, last_updated_by, deleted_at
	FROM users
`

func scanUser(row rowScanner) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.Role,
		&m.PasswordHash,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectUserColumns + ` WHERE user_id = ? AND deleted_at IS NULL;`
	m, err := scanUser(db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID, err)
	}
	user := mapping.ToDomainUser(*m)
	return &user, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectUserColumns + ` WHERE email = ? AND deleted_at IS NULL;`
	m, err := scanUser(db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by email", err)
	}
	user := mapping.ToDomainUser(*m)
	return &user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	db, err := r.DB()
	if err != nil {
		return nil, err
	}
	query := selectUserColumns + ` WHERE deleted_at IS NULL ORDER BY created_at ASC LIMIT ? OFFSET ?;`
	rows, err := db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row", err)
		}
		users = append(users, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows", err)
	}
	return mapping.ToDomainUserSlice(users), nil
}

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	db, err := r.DB()
	if err != nil {
		return err
	}
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, name, email, role, password_hash,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = db.ExecContext(ctx, query,
		m.UserID,
		m.Name,
		m.Email,
		m.Role,
		m.PasswordHash,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert user "+m.UserID, err)
	}
	return nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	db, err := r.DB()
	if err != nil {
		return err
	}
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET name = ?, email = ?, role = ?, password_hash = ?,
		    last_updated_at = ?, last_updated_by = ?, deleted_at = ?
		WHERE user_id = ?;
	`
	result, err := db.ExecContext(ctx, query,
		m.Name,
		m.Email,
		m.Role,
		m.PasswordHash,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DeletedAt,
		m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update user "+m.UserID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read affected rows", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError("user " + m.UserID + " not found")
	}
	return nil
}
