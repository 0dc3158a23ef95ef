package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claimpilot/claims_management_app/internal/apperrors"
	"github.com/claimpilot/claims_management_app/internal/core/domain"
	portsrepo "github.com/claimpilot/claims_management_app/internal/core/ports/repositories"
	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const defaultPageSize = 20

// applicationHandler handles HTTP requests for the claim lifecycle.
type applicationHandler struct {
	applicationService portssvc.ApplicationSvcFacade
}

func newApplicationHandler(as portssvc.ApplicationSvcFacade) *applicationHandler {
	return &applicationHandler{applicationService: as}
}

// registerApplicationRoutes registers the application lifecycle routes and
// nests the expense, document and review routes under a specific application.
func registerApplicationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newApplicationHandler(services.Application)

	applications := rg.Group("/applications")
	{
		applications.POST("", h.submitApplication)
		applications.GET("", h.listApplications)
	}

	applicationSpecific := rg.Group("/applications/:application_id")
	{
		applicationSpecific.GET("", h.getApplication)
		applicationSpecific.PATCH("/status", h.updateStatus)
		applicationSpecific.DELETE("", h.deleteApplication)

		registerExpenseRoutes(applicationSpecific, services.Expense)
		registerDocumentRoutes(applicationSpecific, services.Document)
		registerReviewRoutes(applicationSpecific, services.Review)
	}
}

func (h *applicationHandler) submitApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitApplication", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	app, err := h.applicationService.SubmitApplication(c.Request.Context(), req, actor)
	if err != nil {
		logger.Error("Failed to submit application", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}

	logger.Info("Application submitted",
		slog.String("application_id", app.ApplicationID),
		slog.String("reference_number", app.ReferenceNumber))
	c.JSON(http.StatusCreated, dto.SubmitApplicationResponse{
		ApplicationID:   app.ApplicationID,
		ReferenceNumber: app.ReferenceNumber,
		Status:          string(app.Status),
		SubmittedAt:     app.SubmittedAt,
	})
}

func (h *applicationHandler) getApplication(c *gin.Context) {
	applicationID := c.Param("application_id")

	app, err := h.applicationService.GetApplication(c.Request.Context(), applicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

func (h *applicationHandler) listApplications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for ListApplications", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter, err := buildListFilter(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	apps, total, err := h.applicationService.ListApplications(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list applications", slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	c.JSON(http.StatusOK, dto.ListApplicationsResponse{
		Applications: dto.ToApplicationResponses(apps),
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
	})
}

func (h *applicationHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	app, err := h.applicationService.UpdateStatus(c.Request.Context(), applicationID, req, actor)
	if err != nil {
		logger.Warn("Status update rejected",
			slog.String("application_id", applicationID),
			slog.String("target_status", req.TargetStatus),
			slog.String("error", err.Error()))
		respondServiceError(c, err)
		return
	}

	logger.Info("Application status updated",
		slog.String("application_id", applicationID),
		slog.String("status", string(app.Status)))
	c.JSON(http.StatusOK, dto.ToApplicationResponse(app))
}

func (h *applicationHandler) deleteApplication(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	if err := h.applicationService.DeleteApplication(c.Request.Context(), applicationID, actor); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Application deleted", slog.String("application_id", applicationID))
	c.Status(http.StatusNoContent)
}

// buildListFilter translates query parameters into the repository filter,
// validating dates and enum values up front.
func buildListFilter(req dto.ListApplicationsRequest) (portsrepo.ApplicationListFilter, error) {
	var filter portsrepo.ApplicationListFilter

	if req.Status != "" {
		status := domain.ApplicationStatus(req.Status)
		if !domain.IsValidStatus(status) {
			return filter, apperrors.NewValidationError("unknown status " + req.Status)
		}
		filter.Status = &status
	}
	if req.EmployeeID != "" {
		employeeID := req.EmployeeID
		filter.EmployeeID = &employeeID
	}
	if req.From != "" {
		from, err := parseDateParam(req.From)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid from date " + req.From)
		}
		filter.SubmittedFrom = &from
	}
	if req.To != "" {
		to, err := parseDateParam(req.To)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid to date " + req.To)
		}
		filter.SubmittedTo = &to
	}

	filter.SortKey = portsrepo.ApplicationSortKey(req.SortBy)
	filter.SortOrder = portsrepo.SortOrder(req.SortOrder)

	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize
	return filter, nil
}

// parseDateParam accepts RFC3339 timestamps and plain dates.
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
