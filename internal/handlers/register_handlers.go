package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/hostelworks/housing_ops_app/internal/core/ports/services"
	"github.com/hostelworks/housing_ops_app/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies using
// interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.ActorRequired())

	registerEntryRoutes(v1, services)
	registerAdjustmentRoutes(v1, services)
	registerStudentRoutes(v1, services)
}

func registerEntryRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newLedgerHandler(services.Entry, services.Reversal, services.Cascade)

	entries := v1.Group("/entries")
	{
		entries.POST("/", handler.postEntry)
		entries.GET("/:entryID", handler.getEntry)
		entries.POST("/:entryID/void", handler.voidEntry)
		entries.POST("/:entryID/reverse", handler.reverseEntry)
		entries.DELETE("/:entryID/lines/:lineID", handler.removeLine)
		entries.DELETE("/:entryID", handler.deleteWithCascade)
	}
}

func registerAdjustmentRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newAdjustmentHandler(services.Adjustment)

	adjustments := v1.Group("/adjustments")
	adjustments.POST("/discounts", handler.applyDiscount)
}

func registerStudentRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	handler := newStudentHandler(services.Forfeiture, services.Debtor)

	students := v1.Group("/students")
	{
		students.POST("/:studentID/forfeit", handler.forfeitStudent)
		students.GET("/:studentID/status", handler.getStatus)
	}
}
