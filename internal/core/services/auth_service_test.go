package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	"github.com/alqattan-optics/optical_pos_app/internal/core/services"
	"github.com/alqattan-optics/optical_pos_app/internal/utils"
)

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) FindStaffByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	args := m.Called(ctx, username)
	staff, _ := args.Get(0).(*domain.StaffUser)
	return staff, args.Error(1)
}

func (m *MockStaffRepository) FindStaffByID(ctx context.Context, userID string) (*domain.StaffUser, error) {
	args := m.Called(ctx, userID)
	staff, _ := args.Get(0).(*domain.StaffUser)
	return staff, args.Error(1)
}

func (m *MockStaffRepository) SaveStaff(ctx context.Context, user domain.StaffUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type AuthServiceTestSuite struct {
	suite.Suite
	mockRepo *MockStaffRepository
	service  *services.AuthService
	ctx      context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockStaffRepository)
	s.service = services.NewAuthService(s.mockRepo, "test-secret", time.Hour, "test-issuer")
	s.ctx = context.Background()
}

func (s *AuthServiceTestSuite) storedStaff(password string) *domain.StaffUser {
	hash, err := utils.HashPassword(password)
	require.NoError(s.T(), err)
	return &domain.StaffUser{
		UserID:       "user-1",
		Username:     "reception",
		Name:         "Front Desk",
		PasswordHash: hash,
	}
}

func (s *AuthServiceTestSuite) TestLoginSuccess() {
	staff := s.storedStaff("correct-horse")
	s.mockRepo.On("FindStaffByUsername", s.ctx, "reception").Return(staff, nil).Once()

	token, got, err := s.service.Login(s.ctx, "reception", "correct-horse")

	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal("user-1", got.UserID)

	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	s.Require().NoError(err)
	s.Equal("user-1", claims.Subject)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestLoginUnknownUser() {
	s.mockRepo.On("FindStaffByUsername", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := s.service.Login(s.ctx, "ghost", "whatever")

	s.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	staff := s.storedStaff("correct-horse")
	s.mockRepo.On("FindStaffByUsername", s.ctx, "reception").Return(staff, nil).Once()

	_, _, err := s.service.Login(s.ctx, "reception", "wrong-horse")

	s.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginDeactivatedUser() {
	staff := s.storedStaff("correct-horse")
	deleted := time.Now()
	staff.DeletedAt = &deleted
	s.mockRepo.On("FindStaffByUsername", s.ctx, "reception").Return(staff, nil).Once()

	_, _, err := s.service.Login(s.ctx, "reception", "correct-horse")

	s.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestRegisterStaffHashesPassword() {
	var saved domain.StaffUser
	s.mockRepo.On("SaveStaff", s.ctx, mock.AnythingOfType("domain.StaffUser")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.StaffUser)
		}).
		Return(nil).Once()

	staff, err := s.service.RegisterStaff(s.ctx, "newhire", "long-enough-pw", "New Hire", "admin-1")

	s.Require().NoError(err)
	s.NotEmpty(staff.UserID)
	s.Equal("admin-1", saved.CreatedBy)
	s.NotEqual("long-enough-pw", saved.PasswordHash)
	s.True(utils.CheckPasswordHash("long-enough-pw", saved.PasswordHash))
}

func (s *AuthServiceTestSuite) TestRegisterStaffDuplicateUsername() {
	s.mockRepo.On("SaveStaff", s.ctx, mock.AnythingOfType("domain.StaffUser")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := s.service.RegisterStaff(s.ctx, "reception", "long-enough-pw", "Front Desk", "admin-1")

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AuthServiceTestSuite) TestRegisterStaffShortPassword() {
	_, err := s.service.RegisterStaff(s.ctx, "newhire", "short", "New Hire", "admin-1")

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveStaff", mock.Anything, mock.Anything)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
