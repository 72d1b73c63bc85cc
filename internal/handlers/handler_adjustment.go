package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
	"github.com/hostelworks/housing_ops_app/internal/middleware"
)

// adjustmentHandler handles HTTP requests for negotiated discounts.
type adjustmentHandler struct {
	adjustmentSvc portssvc.AdjustmentSvcFacade
}

func newAdjustmentHandler(adjustmentSvc portssvc.AdjustmentSvcFacade) *adjustmentHandler {
	return &adjustmentHandler{adjustmentSvc: adjustmentSvc}
}

// applyDiscount books a negotiated reduction of a student's charge.
func (h *adjustmentHandler) applyDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.ApplyDiscountRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for applyDiscount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor not identified"})
		return
	}

	entry, err := h.adjustmentSvc.ApplyDiscount(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to apply discount")
		return
	}

	logger.Info("Discount applied",
		slog.String("student_id", req.StudentID),
		slog.String("entry_id", entry.EntryID),
	)
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
