package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alqattan-optics/optical_pos_app/internal/apperrors"
	portssvc "github.com/alqattan-optics/optical_pos_app/internal/core/ports/services"
	"github.com/alqattan-optics/optical_pos_app/internal/dto"
	"github.com/alqattan-optics/optical_pos_app/internal/middleware"
)

// servicesHandler handles HTTP requests for the billable service catalog.
type servicesHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newServicesHandler(cs portssvc.CatalogSvcFacade) *servicesHandler {
	return &servicesHandler{catalogService: cs}
}

// registerServiceRoutes registers the catalog CRUD routes.
func registerServiceRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newServicesHandler(catalogService)

	services := rg.Group("/services")
	{
		services.POST("", h.createService)
		services.GET("", h.listServices)
		services.GET("/:id", h.getServiceByID)
		services.PUT("/:id", h.updateService)
		services.DELETE("/:id", h.deleteService)
	}
}

// createService godoc
// @Summary Create a catalog service
// @Description Adds a billable service (exam, repair, ...) to the catalog.
// @Tags services
// @Accept  json
// @Produce  json
// @Param   service body dto.CreateServiceRequest true "Service details"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /services [post]
func (h *servicesHandler) createService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateService", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.catalogService.CreateService(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create catalog service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToServiceResponse(created))
}

// listServices godoc
// @Summary List catalog services
// @Tags services
// @Produce  json
// @Success 200 {array} dto.ServiceResponse
// @Security BearerAuth
// @Router /services [get]
func (h *servicesHandler) listServices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.catalogService.ListServices(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list catalog services", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list services"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListServiceResponse(items))
}

// getServiceByID godoc
// @Summary Get a catalog service
// @Tags services
// @Produce  json
// @Param   id path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} map[string]string "Service not found"
// @Security BearerAuth
// @Router /services/{id} [get]
func (h *servicesHandler) getServiceByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("id")

	item, err := h.catalogService.GetServiceByID(c.Request.Context(), serviceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		logger.Error("Failed to get catalog service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve service"})
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponse(item))
}

// updateService godoc
// @Summary Update a catalog service
// @Tags services
// @Accept  json
// @Produce  json
// @Param   id path string true "Service ID"
// @Param   service body dto.UpdateServiceRequest true "Service details"
// @Success 200 {object} dto.ServiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Service not found"
// @Security BearerAuth
// @Router /services/{id} [put]
func (h *servicesHandler) updateService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("id")

	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateService", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.catalogService.UpdateService(c.Request.Context(), serviceID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update catalog service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponse(updated))
}

// deleteService godoc
// @Summary Delete a catalog service
// @Tags services
// @Produce  json
// @Param   id path string true "Service ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Service not found"
// @Security BearerAuth
// @Router /services/{id} [delete]
func (h *servicesHandler) deleteService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("id")

	if err := h.catalogService.DeleteService(c.Request.Context(), serviceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		logger.Error("Failed to delete catalog service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	c.Status(http.StatusNoContent)
}
