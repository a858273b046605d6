package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
	"github.com/alqattan-optics/optical_pos_app/internal/dto"
	"github.com/alqattan-optics/optical_pos_app/internal/handlers"
	"github.com/alqattan-optics/optical_pos_app/internal/middleware"
)

// --- Mock LifecycleSvcFacade ---
type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) MarkPickedUp(ctx context.Context, id string, isInvoice bool) (<-chan portssvc.PickupResult, error) {
	args := m.Called(ctx, id, isInvoice)
	var ch <-chan portssvc.PickupResult
	if args.Get(0) != nil {
		ch = args.Get(0).(<-chan portssvc.PickupResult)
	}
	return ch, args.Error(1)
}

func (m *MockLifecycleService) ArchiveOrder(ctx context.Context, ref domain.OrderRef, reason string) (<-chan portssvc.ArchiveResult, error) {
	args := m.Called(ctx, ref, reason)
	var ch <-chan portssvc.ArchiveResult
	if args.Get(0) != nil {
		ch = args.Get(0).(<-chan portssvc.ArchiveResult)
	}
	return ch, args.Error(1)
}

func (m *MockLifecycleService) PendingPickups() map[string]struct{} {
	args := m.Called()
	var pending map[string]struct{}
	if args.Get(0) != nil {
		pending = args.Get(0).(map[string]struct{})
	}
	return pending
}

var _ portssvc.LifecycleSvcFacade = (*MockLifecycleService)(nil)

// --- Mock TransactionViewSvcFacade ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetPatientTransactions(ctx context.Context, patientID string) (domain.PartitionResult, error) {
	args := m.Called(ctx, patientID)
	var result domain.PartitionResult
	if args.Get(0) != nil {
		result = args.Get(0).(domain.PartitionResult)
	}
	return result, args.Error(1)
}

func (m *MockTransactionService) ArchiveInvoiceOrder(ctx context.Context, patientID, invoiceID, reason string) (<-chan portssvc.ArchiveResult, error) {
	args := m.Called(ctx, patientID, invoiceID, reason)
	var ch <-chan portssvc.ArchiveResult
	if args.Get(0) != nil {
		ch = args.Get(0).(<-chan portssvc.ArchiveResult)
	}
	return ch, args.Error(1)
}

var _ portssvc.TransactionViewSvcFacade = (*MockTransactionService)(nil)

// --- Mock ReconcilerSvcFacade ---
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Subscribe() (<-chan portssvc.RefreshSignal, func()) {
	args := m.Called()
	var ch <-chan portssvc.RefreshSignal
	if args.Get(0) != nil {
		ch = args.Get(0).(<-chan portssvc.RefreshSignal)
	}
	return ch, func() {}
}

func (m *MockReconciler) Version() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockReconciler) NoteLastEdited(t time.Time) {
	m.Called(t)
}

func (m *MockReconciler) Close() {
	m.Called()
}

var _ portssvc.ReconcilerSvcFacade = (*MockReconciler)(nil)

type TransactionHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	jwtSecret        string
	mockLifecycle    *MockLifecycleService
	mockTransactions *MockTransactionService
	mockReconciler   *MockReconciler
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockLifecycle = new(MockLifecycleService)
	suite.mockTransactions = new(MockTransactionService)
	suite.mockReconciler = new(MockReconciler)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockLifecycle, suite.mockTransactions, suite.mockReconciler)
}

// generateTestToken creates a dummy JWT for testing.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pos-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) doJSON(method, url, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("staff-1"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func pickupResultChan(res portssvc.PickupResult) <-chan portssvc.PickupResult {
	ch := make(chan portssvc.PickupResult, 1)
	ch <- res
	close(ch)
	return ch
}

func archiveResultChan(res portssvc.ArchiveResult) <-chan portssvc.ArchiveResult {
	ch := make(chan portssvc.ArchiveResult, 1)
	ch <- res
	close(ch)
	return ch
}

func (suite *TransactionHandlerTestSuite) TestMarkPickedUp_Success() {
	suite.mockLifecycle.On("MarkPickedUp", mock.Anything, "INV-1", true).
		Return(pickupResultChan(portssvc.PickupResult{ID: "INV-1", IsInvoice: true, PairedID: "WO-1"}), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/pickup", `{"id":"INV-1","isInvoice":true}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LifecycleResultResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal("INV-1", resp.ID)
	suite.Empty(resp.Warnings)
	suite.mockLifecycle.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestMarkPickedUp_SecondaryFailureIsWarning() {
	res := portssvc.PickupResult{ID: "INV-1", IsInvoice: true, PairedID: "WO-1", Secondary: errors.New("conn reset")}
	suite.mockLifecycle.On("MarkPickedUp", mock.Anything, "INV-1", true).
		Return(pickupResultChan(res), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/pickup", `{"id":"INV-1","isInvoice":true}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LifecycleResultResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Len(resp.Warnings, 1)
}

func (suite *TransactionHandlerTestSuite) TestMarkPickedUp_PrimaryFailure() {
	res := portssvc.PickupResult{ID: "INV-1", IsInvoice: true, Primary: errors.New("row locked")}
	suite.mockLifecycle.On("MarkPickedUp", mock.Anything, "INV-1", true).
		Return(pickupResultChan(res), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/pickup", `{"id":"INV-1","isInvoice":true}`)

	suite.Equal(http.StatusInternalServerError, w.Code)
	var resp dto.LifecycleResultResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Success)
	suite.NotEmpty(resp.Error)
}

func (suite *TransactionHandlerTestSuite) TestMarkPickedUp_MissingIsInvoice() {
	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/pickup", `{"id":"INV-1"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLifecycle.AssertNotCalled(suite.T(), "MarkPickedUp", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionHandlerTestSuite) TestMarkPickedUp_Unauthorized() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions/pickup", strings.NewReader(`{"id":"INV-1","isInvoice":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestArchiveOrder_LegacyReferenceSpelling() {
	suite.mockLifecycle.On("ArchiveOrder", mock.Anything, domain.OrderRef{InvoiceID: "INV-1", WorkOrderID: "WO-1"}, "").
		Return(archiveResultChan(portssvc.ArchiveResult{
			InvoiceID: "INV-1", WorkOrderID: "WO-1",
			InvoiceAttempted: true, WorkOrderAttempted: true,
		}), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/archive", `{"id":"WO-1","invoice_id":"INV-1"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLifecycle.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestArchiveOrder_Unresolvable() {
	suite.mockLifecycle.On("ArchiveOrder", mock.Anything, domain.OrderRef{}, "").
		Return(nil, &apperrors.ArchiveError{}).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/transactions/archive", `{}`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TransactionHandlerTestSuite) TestArchiveInvoiceOrder_Route() {
	suite.mockTransactions.On("ArchiveInvoiceOrder", mock.Anything, "PAT-1", "INV-1", "Duplicate").
		Return(archiveResultChan(portssvc.ArchiveResult{
			InvoiceID: "INV-1", InvoiceAttempted: true,
		}), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/patients/PAT-1/transactions/INV-1/archive?reason=Duplicate", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTransactions.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetPatientTransactions() {
	result := domain.PartitionResult{
		Active:    []domain.Invoice{{InvoiceID: "INV-1"}},
		Completed: []domain.Invoice{{InvoiceID: "INV-2", IsPickedUp: true}},
	}
	suite.mockTransactions.On("GetPatientTransactions", mock.Anything, "PAT-1").Return(result, nil).Once()
	suite.mockReconciler.On("Version").Return(int64(7)).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/patients/PAT-1/transactions", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PartitionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Active, 1)
	suite.Len(resp.Completed, 1)
	suite.Equal(int64(7), resp.Version)
}

func (suite *TransactionHandlerTestSuite) TestGetPatientTransactions_NotFoundPassthrough() {
	suite.mockTransactions.On("GetPatientTransactions", mock.Anything, "PAT-1").
		Return(nil, errors.New("db down")).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/patients/PAT-1/transactions", "")

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
