package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelworks/housing_ops_app/internal/apperrors"
	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/core/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
	"github.com/hostelworks/housing_ops_app/internal/middleware"
)

// ledgerHandler handles HTTP requests for journal entries, reversals and
// cascade deletions.
type ledgerHandler struct {
	entrySvc    portssvc.EntrySvcFacade
	reversalSvc portssvc.ReversalSvcFacade
	cascadeSvc  portssvc.CascadeSvcFacade
}

func newLedgerHandler(entrySvc portssvc.EntrySvcFacade, reversalSvc portssvc.ReversalSvcFacade, cascadeSvc portssvc.CascadeSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		entrySvc:    entrySvc,
		reversalSvc: reversalSvc,
		cascadeSvc:  cascadeSvc,
	}
}

// postEntry records a new balanced journal entry.
func (h *ledgerHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	req := dto.PostEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for postEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor not identified"})
		return
	}

	entry, err := h.entrySvc.PostEntry(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to post entry")
		return
	}

	logger.Info("Entry posted", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry retrieves a journal entry with its lines.
func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.entrySvc.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// removeLine deletes a single line from a live entry.
func (h *ledgerHandler) removeLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")
	lineID := c.Param("lineID")

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor not identified"})
		return
	}

	entry, err := h.entrySvc.RemoveLine(c.Request.Context(), entryID, lineID, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to remove line")
		return
	}

	logger.Info("Line removed", slog.String("entry_id", entryID), slog.String("line_id", lineID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// voidEntry transitions an entry to VOIDED.
func (h *ledgerHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor not identified"})
		return
	}

	if err := h.entrySvc.VoidEntry(c.Request.Context(), entryID, actorID); err != nil {
		respondServiceError(c, logger, err, "Failed to void entry")
		return
	}

	logger.Info("Entry voided", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, gin.H{"entryID": entryID, "status": "VOIDED"})
}

// reverseEntry posts the mirror entry negating a prior entry.
func (h *ledgerHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	req := dto.ReverseEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor not identified"})
		return
	}

	reversal, err := h.reversalSvc.ReverseEntry(c.Request.Context(), entryID, req.Reason, req.EffectiveDate, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reverse entry")
		return
	}

	logger.Info("Entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_id", reversal.EntryID),
	)
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

// deleteWithCascade deletes an entry together with its explicitly linked
// records.
func (h *ledgerHandler) deleteWithCascade(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	req := dto.DeleteWithCascadeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for deleteWithCascade", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor not identified"})
		return
	}

	result, err := h.cascadeSvc.DeleteWithCascade(c.Request.Context(), entryID, actorID, req.Reason, req.Options)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to delete entry")
		return
	}

	logger.Info("Entry deleted with cascade",
		slog.String("entry_id", entryID),
		slog.Int("entries_deleted", result.EntriesDeleted),
		slog.Int("lines_deleted", result.LinesDeleted),
	)
	c.JSON(http.StatusOK, result)
}

// respondServiceError maps service errors onto HTTP status codes: validation
// failures are 400, missing records 404, duplicate or stateful refusals 409,
// ledger integrity refusals 422, everything else 500.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrEntryUnbalanced),
		errors.Is(err, services.ErrEntryMinLines),
		errors.Is(err, services.ErrUnknownAccount),
		errors.Is(err, services.ErrInvalidAmounts),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccrualNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Record not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyReversed),
		errors.Is(err, services.ErrReversalOfReversal),
		errors.Is(err, services.ErrEntryNotPosted),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflicting operation", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrLineRemovalRefused),
		errors.Is(err, services.ErrWouldUnbalanceRemainder),
		errors.Is(err, apperrors.ErrIntegrity):
		logger.Warn("Integrity refusal", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
