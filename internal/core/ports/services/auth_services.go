package services

import (
	"context"

	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
)

// AuthSvcFacade authenticates POS staff users.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed JWT for the session.
	Login(ctx context.Context, username, password string) (string, *domain.StaffUser, error)

	// RegisterStaff creates a new staff account with a hashed password.
	RegisterStaff(ctx context.Context, username, password, name, creatorUserID string) (*domain.StaffUser, error)
}
