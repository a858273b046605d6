package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	portsrepo "github.com/alqattan-optics/optical_pos_app/internal/core/ports/repositories"
	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
	"github.com/alqattan-optics/optical_pos_app/internal/middleware"
	"github.com/alqattan-optics/optical_pos_app/internal/utils"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for both unknown users and wrong
// passwords, so login responses don't leak which one it was.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService authenticates POS staff and issues session tokens.
type AuthService struct {
	staffRepo portsrepo.StaffRepositoryFacade

	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

func NewAuthService(staffRepo portsrepo.StaffRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) *AuthService {
	return &AuthService{
		staffRepo: staffRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.StaffUser, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	staff, err := s.staffRepo.FindStaffByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Info("Login attempt for unknown user", slog.String("username", username))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up staff user: %w", err)
	}
	if staff.DeletedAt != nil {
		logger.Info("Login attempt for deactivated user", slog.String("username", username))
		return "", nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, staff.PasswordHash) {
		logger.Info("Login attempt with wrong password", slog.String("username", username))
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(staff.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	logger.Info("Staff user logged in", slog.String("user_id", staff.UserID))
	return token, staff, nil
}

func (s *AuthService) RegisterStaff(ctx context.Context, username, password, name, creatorUserID string) (*domain.StaffUser, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if username == "" || name == "" {
		return nil, fmt.Errorf("%w: username and name are required", apperrors.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	staff := domain.StaffUser{
		UserID:       uuid.NewString(),
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.staffRepo.SaveStaff(ctx, staff); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save staff user: %w", err)
	}

	logger.Info("Staff user registered",
		slog.String("user_id", staff.UserID),
		slog.String("created_by", creatorUserID))
	return &staff, nil
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)
