package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/dto"
	"github.com/hostelworks/housing_ops_app/internal/middleware"
)

// studentHandler handles HTTP requests for per-student operations: forfeiture
// and the balance summary.
type studentHandler struct {
	forfeitureSvc portssvc.ForfeitureSvcFacade
	debtorSvc     portssvc.DebtorSvcFacade
}

func newStudentHandler(forfeitureSvc portssvc.ForfeitureSvcFacade, debtorSvc portssvc.DebtorSvcFacade) *studentHandler {
	return &studentHandler{
		forfeitureSvc: forfeitureSvc,
		debtorSvc:     debtorSvc,
	}
}

// forfeitStudent runs the forfeiture workflow for a defaulting student. The
// ledger steps are atomic; the follow-up steps report partial failures in the
// result instead of failing the request.
func (h *studentHandler) forfeitStudent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	req := dto.ForfeitStudentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for forfeitStudent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor not identified"})
		return
	}

	result, err := h.forfeitureSvc.ForfeitStudent(c.Request.Context(), studentID, req.Reason, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to forfeit student")
		return
	}

	logger.Info("Student forfeited",
		slog.String("student_id", studentID),
		slog.Int("entries_reversed", len(result.ReversedEntryIDs)),
		slog.Int("step_errors", len(result.StepErrors)),
	)
	c.JSON(http.StatusOK, result)
}

// getStatus returns the student's balance summary.
func (h *studentHandler) getStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	status, err := h.debtorSvc.GetStatus(c.Request.Context(), studentID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve student status")
		return
	}

	c.JSON(http.StatusOK, status)
}
