package repositories

import (
	"context"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
)

// StaffReader defines read operations for staff users
type StaffReader interface {
	// FindStaffByUsername retrieves a staff user by login name.
	FindStaffByUsername(ctx context.Context, username string) (*domain.StaffUser, error)

	// FindStaffByID retrieves a staff user by id.
	FindStaffByID(ctx context.Context, userID string) (*domain.StaffUser, error)
}

// StaffWriter defines write operations for staff users
type StaffWriter interface {
	// SaveStaff persists a new staff user.
	SaveStaff(ctx context.Context, user domain.StaffUser) error
}

// StaffRepositoryFacade combines all staff repository interfaces
type StaffRepositoryFacade interface {
	StaffReader
	StaffWriter
}
