package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	portsrepo "github.com/alqattan-optics/optical_pos_app/internal/core/ports/repositories"
	"github.com/alqattan-optics/optical_pos_app/internal/models"
	"github.com/alqattan-optics/optical_pos_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStaffRepository struct {
	BaseRepository
}

// newPgxStaffRepository creates a new repository for staff user data.
func newPgxStaffRepository(pool *pgxpool.Pool) portsrepo.StaffRepositoryFacade {
	return &PgxStaffRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StaffRepositoryFacade = (*PgxStaffRepository)(nil)

const staffColumns = `user_id, username, password_hash, name, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanStaffRow(row pgx.Row) (models.StaffUser, error) {
	var staff models.StaffUser
	err := row.Scan(
		&staff.UserID,
		&staff.Username,
		&staff.PasswordHash,
		&staff.Name,
		&staff.CreatedAt,
		&staff.CreatedBy,
		&staff.LastUpdatedAt,
		&staff.LastUpdatedBy,
		&staff.DeletedAt,
	)
	return staff, err
}

// SaveStaff persists a new staff user.
func (r *PgxStaffRepository) SaveStaff(ctx context.Context, user domain.StaffUser) error {
	modelStaff := mapping.ToModelStaffUser(user)

	query := `
		INSERT INTO staff_users (user_id, username, password_hash, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelStaff.UserID,
		modelStaff.Username,
		modelStaff.PasswordHash,
		modelStaff.Name,
		modelStaff.CreatedAt,
		modelStaff.CreatedBy,
		modelStaff.LastUpdatedAt,
		modelStaff.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("username %s: %w", modelStaff.Username, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save staff user %s: %w", modelStaff.UserID, err)
	}
	return nil
}

// FindStaffByUsername retrieves a staff user by login name.
func (r *PgxStaffRepository) FindStaffByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff_users WHERE username = $1;`, staffColumns)

	modelStaff, err := scanStaffRow(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff user by username: %w", err)
	}

	domainStaff := mapping.ToDomainStaffUser(modelStaff)
	return &domainStaff, nil
}

// FindStaffByID retrieves a staff user by id.
func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, userID string) (*domain.StaffUser, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff_users WHERE user_id = $1;`, staffColumns)

	modelStaff, err := scanStaffRow(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff user %s: %w", userID, err)
	}

	domainStaff := mapping.ToDomainStaffUser(modelStaff)
	return &domainStaff, nil
}
