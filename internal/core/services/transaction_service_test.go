package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
	"github.com/alqattan-optics/optical_pos_app/internal/core/services"
)

// --- Mock InvoiceReader ---
type MockInvoiceReader struct {
	mock.Mock
}

func (m *MockInvoiceReader) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	var inv *domain.Invoice
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.Invoice)
	}
	return inv, args.Error(1)
}

func (m *MockInvoiceReader) ListInvoicesByPatient(ctx context.Context, patientID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, patientID)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	return invoices, args.Error(1)
}

func (m *MockInvoiceReader) ListRefundedInvoicesByPatient(ctx context.Context, patientID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, patientID)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	return invoices, args.Error(1)
}

func (m *MockInvoiceReader) ListArchivedInvoicesByPatient(ctx context.Context, patientID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, patientID)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	return invoices, args.Error(1)
}

// --- Mock WorkOrderReader ---
type MockWorkOrderReader struct {
	mock.Mock
}

func (m *MockWorkOrderReader) FindWorkOrderByID(ctx context.Context, workOrderID string) (*domain.WorkOrder, error) {
	args := m.Called(ctx, workOrderID)
	var wo *domain.WorkOrder
	if args.Get(0) != nil {
		wo = args.Get(0).(*domain.WorkOrder)
	}
	return wo, args.Error(1)
}

func (m *MockWorkOrderReader) ListWorkOrdersByPatient(ctx context.Context, patientID string) ([]domain.WorkOrder, error) {
	args := m.Called(ctx, patientID)
	var workOrders []domain.WorkOrder
	if args.Get(0) != nil {
		workOrders = args.Get(0).([]domain.WorkOrder)
	}
	return workOrders, args.Error(1)
}

func (m *MockWorkOrderReader) ListArchivedWorkOrdersByPatient(ctx context.Context, patientID string) ([]domain.WorkOrder, error) {
	args := m.Called(ctx, patientID)
	var workOrders []domain.WorkOrder
	if args.Get(0) != nil {
		workOrders = args.Get(0).([]domain.WorkOrder)
	}
	return workOrders, args.Error(1)
}

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

type TransactionServiceTestSuite struct {
	suite.Suite
	mockInvoices   *MockInvoiceReader
	mockWorkOrders *MockWorkOrderReader
	mockLifecycle  *MockLifecycleService
	service        *services.TransactionService
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockInvoices = new(MockInvoiceReader)
	suite.mockWorkOrders = new(MockWorkOrderReader)
	suite.mockLifecycle = new(MockLifecycleService)
	suite.service = services.NewTransactionService(suite.mockInvoices, suite.mockWorkOrders, suite.mockLifecycle, nil)
}

func (suite *TransactionServiceTestSuite) expectPatientSets(patientID string, invoices []domain.Invoice, workOrders []domain.WorkOrder) {
	suite.mockInvoices.On("ListInvoicesByPatient", mock.Anything, patientID).Return(invoices, nil).Once()
	suite.mockWorkOrders.On("ListWorkOrdersByPatient", mock.Anything, patientID).Return(workOrders, nil).Once()
	suite.mockInvoices.On("ListRefundedInvoicesByPatient", mock.Anything, patientID).Return(nil, nil).Once()
	suite.mockInvoices.On("ListArchivedInvoicesByPatient", mock.Anything, patientID).Return(nil, nil).Once()
	suite.mockWorkOrders.On("ListArchivedWorkOrdersByPatient", mock.Anything, patientID).Return(nil, nil).Once()
}

func (suite *TransactionServiceTestSuite) TestGetPatientTransactionsPartitions() {
	now := time.Now()
	invoices := []domain.Invoice{
		{InvoiceID: "INV-1", PatientID: "PAT-1", CreatedAt: now},
		{InvoiceID: "INV-2", PatientID: "PAT-1", IsPickedUp: true, CreatedAt: now.Add(-time.Hour)},
	}
	suite.expectPatientSets("PAT-1", invoices, nil)
	suite.mockLifecycle.On("PendingPickups").Return(map[string]struct{}{}).Once()

	result, err := suite.service.GetPatientTransactions(context.Background(), "PAT-1")

	suite.Require().NoError(err)
	suite.Len(result.Active, 1)
	suite.Equal("INV-1", result.Active[0].InvoiceID)
	suite.Len(result.Completed, 1)
	suite.Equal("INV-2", result.Completed[0].InvoiceID)
	suite.mockInvoices.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetPatientTransactionsMergesPendingBuffer() {
	invoices := []domain.Invoice{
		{InvoiceID: "INV-1", PatientID: "PAT-1", CreatedAt: time.Now()},
	}
	suite.expectPatientSets("PAT-1", invoices, nil)
	// Buffered pickup not yet visible in the store.
	suite.mockLifecycle.On("PendingPickups").Return(map[string]struct{}{"INV-1": {}}).Once()

	result, err := suite.service.GetPatientTransactions(context.Background(), "PAT-1")

	suite.Require().NoError(err)
	suite.Empty(result.Active)
	suite.Len(result.Completed, 1)
	suite.Equal("INV-1", result.Completed[0].InvoiceID)
}

func (suite *TransactionServiceTestSuite) TestGetPatientTransactionsEmptyPatientID() {
	_, err := suite.service.GetPatientTransactions(context.Background(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestGetPatientTransactionsListFailure() {
	expectedErr := errors.New("db down")
	suite.mockInvoices.On("ListInvoicesByPatient", mock.Anything, "PAT-1").Return(nil, expectedErr).Once()

	_, err := suite.service.GetPatientTransactions(context.Background(), "PAT-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.mockWorkOrders.AssertNotCalled(suite.T(), "ListWorkOrdersByPatient", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestArchiveInvoiceOrderResolvesKnownWorkOrder() {
	invoice := &domain.Invoice{InvoiceID: "INV-1", WorkOrderID: "WO-1", PatientID: "PAT-1"}
	workOrders := []domain.WorkOrder{{ID: "WO-1", InvoiceID: "INV-1", PatientID: "PAT-1"}}
	resultCh := make(chan portssvc.ArchiveResult, 1)

	suite.mockInvoices.On("FindInvoiceByID", mock.Anything, "INV-1").Return(invoice, nil).Once()
	suite.mockWorkOrders.On("ListWorkOrdersByPatient", mock.Anything, "PAT-1").Return(workOrders, nil).Once()
	suite.mockLifecycle.On("ArchiveOrder", mock.Anything, domain.OrderRef{InvoiceID: "INV-1", WorkOrderID: "WO-1"}, "Duplicate").
		Return((<-chan portssvc.ArchiveResult)(resultCh), nil).Once()

	ch, err := suite.service.ArchiveInvoiceOrder(context.Background(), "PAT-1", "INV-1", "Duplicate")

	suite.Require().NoError(err)
	suite.NotNil(ch)
	suite.mockLifecycle.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestArchiveInvoiceOrderFallsBackWhenPairMissing() {
	invoice := &domain.Invoice{InvoiceID: "INV-1", WorkOrderID: "WO-GONE", PatientID: "PAT-1"}
	resultCh := make(chan portssvc.ArchiveResult, 1)

	suite.mockInvoices.On("FindInvoiceByID", mock.Anything, "INV-1").Return(invoice, nil).Once()
	suite.mockWorkOrders.On("ListWorkOrdersByPatient", mock.Anything, "PAT-1").Return(nil, nil).Once()
	suite.mockLifecycle.On("ArchiveOrder", mock.Anything, domain.OrderRef{InvoiceID: "INV-1", WorkOrderID: "WO-GONE"}, "").
		Return((<-chan portssvc.ArchiveResult)(resultCh), nil).Once()

	_, err := suite.service.ArchiveInvoiceOrder(context.Background(), "PAT-1", "INV-1", "")

	suite.Require().NoError(err)
	suite.mockLifecycle.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestArchiveInvoiceOrderInvoiceNotFound() {
	suite.mockInvoices.On("FindInvoiceByID", mock.Anything, "INV-404").Return(nil, apperrors.ErrNotFound).Once()

	ch, err := suite.service.ArchiveInvoiceOrder(context.Background(), "PAT-1", "INV-404", "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(ch)
	suite.mockLifecycle.AssertNotCalled(suite.T(), "ArchiveOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
