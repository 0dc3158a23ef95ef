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
	"github.com/jackc/pgx/v5/pgconn"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(provider *Provider) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{provider: provider}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const pgUniqueViolation = "23505"

const selectUserColumns = `
	SELECT user_id, name, email, role, password_hash,
	       created_at, created_by, last_updated_at, last_updated_by, deleted_at
	FROM users
`

func scanUser(row pgx.Row) (*models.User, error) {
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

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectUserColumns + ` WHERE user_id = $1 AND deleted_at IS NULL;`
	m, err := scanUser(pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID, err)
	}
	user := mapping.ToDomainUser(*m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectUserColumns + ` WHERE email = $1 AND deleted_at IS NULL;`
	m, err := scanUser(pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by email", err)
	}
	user := mapping.ToDomainUser(*m)
	return &user, nil
}

func (r *PgxUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	pool, err := r.Pool()
	if err != nil {
		return nil, err
	}
	query := selectUserColumns + ` WHERE deleted_at IS NULL ORDER BY created_at ASC LIMIT $1 OFFSET $2;`
	rows, err := pool.Query(ctx, query, limit, offset)
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

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	pool, err := r.Pool()
	if err != nil {
		return err
	}
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, name, email, role, password_hash,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = pool.Exec(ctx, query,
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
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert user "+m.UserID, err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	pool, err := r.Pool()
	if err != nil {
		return err
	}
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET name = $2, email = $3, role = $4, password_hash = $5,
		    last_updated_at = $6, last_updated_by = $7, deleted_at = $8
		WHERE user_id = $1;
	`
	cmdTag, err := pool.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.Email,
		m.Role,
		m.PasswordHash,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to update user "+m.UserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user " + m.UserID + " not found")
	}
	return nil
}
