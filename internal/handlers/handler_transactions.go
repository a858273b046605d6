package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
	"github.com/alqattan-optics/optical_pos_app/internal/dto"
	"github.com/alqattan-optics/optical_pos_app/internal/middleware"
)

// resultWait bounds how long a lifecycle handler waits for the async
// result before acknowledging with 202. The optimistic buffer makes the
// transition visible either way; a settled read gives the caller the
// real outcome when the store is fast enough.
const resultWait = 2 * time.Second

// transactionsHandler handles HTTP requests for the order lifecycle.
type transactionsHandler struct {
	lifecycleService   portssvc.LifecycleSvcFacade
	transactionService portssvc.TransactionViewSvcFacade
	reconciler         portssvc.ReconcilerSvcFacade
}

func newTransactionsHandler(ls portssvc.LifecycleSvcFacade, ts portssvc.TransactionViewSvcFacade, rs portssvc.ReconcilerSvcFacade) *transactionsHandler {
	return &transactionsHandler{
		lifecycleService:   ls,
		transactionService: ts,
		reconciler:         rs,
	}
}

// RegisterTransactionRoutes registers the lifecycle and partition view routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ls portssvc.LifecycleSvcFacade, ts portssvc.TransactionViewSvcFacade, rs portssvc.ReconcilerSvcFacade) {
	h := newTransactionsHandler(ls, ts, rs)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/pickup", h.markPickedUp)
		transactions.POST("/archive", h.archiveOrder)
	}
	rg.GET("/patients/:id/transactions", h.getPatientTransactions)
	rg.POST("/patients/:id/transactions/:invoiceID/archive", h.archiveInvoiceOrder)
}

// markPickedUp godoc
// @Summary Mark an order as picked up
// @Description Flags the invoice or work order as picked up and mirrors the flag onto its paired record.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   pickup body dto.MarkPickedUpRequest true "Entity to mark"
// @Success 200 {object} dto.LifecycleResultResponse
// @Success 202 {object} dto.LifecycleResultResponse "Write still in flight"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} dto.LifecycleResultResponse "Primary write failed"
// @Security BearerAuth
// @Router /transactions/pickup [post]
func (h *transactionsHandler) markPickedUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MarkPickedUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkPickedUp", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	results, err := h.lifecycleService.MarkPickedUp(c.Request.Context(), req.ID, *req.IsInvoice)
	if err != nil {
		logger.Warn("MarkPickedUp rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	select {
	case res := <-results:
		resp := dto.LifecycleResultResponse{ID: res.ID, Success: res.Succeeded()}
		if res.Secondary != nil {
			resp.Warnings = append(resp.Warnings, "paired record was not updated: "+res.Secondary.Error())
		}
		if !res.Succeeded() {
			resp.Error = res.Primary.Error()
			c.JSON(http.StatusInternalServerError, resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	case <-time.After(resultWait):
		// Optimistically acknowledged; the caller re-queries for the
		// settled state.
		c.JSON(http.StatusAccepted, dto.LifecycleResultResponse{ID: req.ID, Success: true})
	}
}

// archiveOrder godoc
// @Summary Archive an order pair
// @Description Soft-deletes both sides of an invoice/work-order pair. One landed write is enough to succeed.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   archive body dto.ArchiveOrderRequest true "Order reference (id/workOrderId plus invoiceId)"
// @Success 200 {object} dto.LifecycleResultResponse
// @Success 202 {object} dto.LifecycleResultResponse "Writes still in flight"
// @Failure 400 {object} map[string]string "Unresolvable reference"
// @Failure 500 {object} dto.LifecycleResultResponse "No side could be archived"
// @Security BearerAuth
// @Router /transactions/archive [post]
func (h *transactionsHandler) archiveOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ArchiveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ArchiveOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	results, err := h.lifecycleService.ArchiveOrder(c.Request.Context(), req.OrderRef(), req.Reason)
	if err != nil {
		logger.Warn("ArchiveOrder rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot archive: no identifiable invoice or work order in request"})
		return
	}

	h.respondArchive(c, results, req.WorkOrderID)
}

// archiveInvoiceOrder godoc
// @Summary Archive an order pair starting from an invoice
// @Description Resolves the paired work order for the invoice and archives both sides.
// @Tags transactions
// @Produce  json
// @Param   id path string true "Patient ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   reason query string false "Archive reason"
// @Success 200 {object} dto.LifecycleResultResponse
// @Success 202 {object} dto.LifecycleResultResponse "Writes still in flight"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} dto.LifecycleResultResponse "No side could be archived"
// @Security BearerAuth
// @Router /patients/{id}/transactions/{invoiceID}/archive [post]
func (h *transactionsHandler) archiveInvoiceOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	patientID := c.Param("id")
	invoiceID := c.Param("invoiceID")

	results, err := h.transactionService.ArchiveInvoiceOrder(c.Request.Context(), patientID, invoiceID, c.Query("reason"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to start invoice archive", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive order"})
		return
	}

	h.respondArchive(c, results, invoiceID)
}

func (h *transactionsHandler) respondArchive(c *gin.Context, results <-chan portssvc.ArchiveResult, id string) {
	select {
	case res := <-results:
		resp := dto.LifecycleResultResponse{ID: id, Success: res.Succeeded()}
		if res.Succeeded() {
			if res.InvoiceAttempted && res.InvoiceErr != nil {
				resp.Warnings = append(resp.Warnings, "invoice was not archived: "+res.InvoiceErr.Error())
			}
			if res.WorkOrderAttempted && res.WorkOrderErr != nil {
				resp.Warnings = append(resp.Warnings, "work order was not archived: "+res.WorkOrderErr.Error())
			}
			c.JSON(http.StatusOK, resp)
			return
		}
		resp.Error = res.Err.Error()
		c.JSON(http.StatusInternalServerError, resp)
	case <-time.After(resultWait):
		c.JSON(http.StatusAccepted, dto.LifecycleResultResponse{ID: id, Success: true})
	}
}

// getPatientTransactions godoc
// @Summary Get a patient's partitioned transactions
// @Description Returns the active, completed, refunded and archived partitions for a patient, with the optimistic pending buffer merged in.
// @Tags transactions
// @Produce  json
// @Param   id path string true "Patient ID"
// @Success 200 {object} dto.PartitionResponse
// @Failure 400 {object} map[string]string "Invalid patient id"
// @Failure 500 {object} map[string]string "Failed to load transactions"
// @Security BearerAuth
// @Router /patients/{id}/transactions [get]
func (h *transactionsHandler) getPatientTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	patientID := c.Param("id")

	result, err := h.transactionService.GetPatientTransactions(c.Request.Context(), patientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to load patient transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPartitionResponse(result, h.reconciler.Version()))
}
