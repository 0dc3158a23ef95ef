package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// auditHandler exposes the read-only audit trail queries.
type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newAuditHandler(as portssvc.AuditSvcFacade) *auditHandler {
	return &auditHandler{auditService: as}
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newAuditHandler(auditService)

	audit := rg.Group("/audit")
	{
		audit.GET("", h.queryByDateRange)
		audit.GET("/:entity_type/:entity_id", h.queryByEntity)
	}
}

func (h *auditHandler) queryByEntity(c *gin.Context) {
	entityType := c.Param("entity_type")
	entityID := c.Param("entity_id")

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	entries, err := h.auditService.QueryByEntity(c.Request.Context(), entityType, entityID, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuditQueryResponse{
		Entries: dto.ToAuditLogEntryResponses(entries),
	})
}

func (h *auditHandler) queryByDateRange(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AuditQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for audit range", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	if req.From == "" || req.To == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from and to are required"})
		return
	}

	start, err := parseDateParam(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from date " + req.From})
		return
	}
	end, err := parseDateParam(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to date " + req.To})
		return
	}
	// A date-only upper bound means the whole day.
	if len(req.To) == len("2006-01-02") {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	var nextToken *string
	if req.NextToken != "" {
		nextToken = &req.NextToken
	}

	entries, next, err := h.auditService.QueryByDateRange(c.Request.Context(), start, end, req.Limit, nextToken, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuditQueryResponse{
		Entries:   dto.ToAuditLogEntryResponses(entries),
		NextToken: next,
	})
}
