package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler exposes the dashboard over the claim workflow.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)
	rg.GET("/dashboard", h.dashboard)
}

func (h *reportingHandler) dashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	snapshot, err := h.reportingService.DashboardSnapshot(c.Request.Context(), actor)
	if err != nil {
		logger.Error("Failed to build dashboard snapshot", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
