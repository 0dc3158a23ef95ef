package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reviewHandler handles HTTP requests for the review engine: eligibility
// checks, document reviews, comments, stage decisions and the summary.
type reviewHandler struct {
	reviewService portssvc.ReviewSvcFacade
}

func newReviewHandler(rs portssvc.ReviewSvcFacade) *reviewHandler {
	return &reviewHandler{reviewService: rs}
}

// registerReviewRoutes nests the review routes under a specific application.
func registerReviewRoutes(rg *gin.RouterGroup, reviewService portssvc.ReviewSvcFacade) {
	h := newReviewHandler(reviewService)

	rg.POST("/eligibility-checks", h.performEligibilityCheck)
	rg.POST("/documents/:document_id/review", h.reviewDocument)

	comments := rg.Group("/comments")
	{
		comments.POST("", h.addComment)
		comments.GET("", h.listComments)
		comments.POST("/:comment_id/resolve", h.resolveComment)
	}

	rg.POST("/reviews", h.createReview)
	rg.GET("/review-summary", h.summarize)
}

func (h *reviewHandler) performEligibilityCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.PerformEligibilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PerformEligibilityCheck", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	check, err := h.reviewService.PerformEligibilityCheck(c.Request.Context(), applicationID, req, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Eligibility check recorded",
		slog.String("application_id", applicationID),
		slog.String("eligibility_status", string(check.EligibilityStatus)))
	c.JSON(http.StatusCreated, check)
}

func (h *reviewHandler) reviewDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")
	documentID := c.Param("document_id")

	var req dto.ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReviewDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	review, err := h.reviewService.ReviewDocument(c.Request.Context(), applicationID, documentID, req, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *reviewHandler) addComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddComment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	comment, err := h.reviewService.AddComment(c.Request.Context(), applicationID, req, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *reviewHandler) listComments(c *gin.Context) {
	applicationID := c.Param("application_id")

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	comments, err := h.reviewService.ListComments(c.Request.Context(), applicationID, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *reviewHandler) resolveComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commentID := c.Param("comment_id")

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	comment, err := h.reviewService.ResolveComment(c.Request.Context(), commentID, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Comment resolved", slog.String("comment_id", commentID))
	c.JSON(http.StatusOK, comment)
}

func (h *reviewHandler) createReview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReview", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), applicationID, req, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Review recorded",
		slog.String("application_id", applicationID),
		slog.String("stage", string(review.Stage)),
		slog.String("decision", string(review.Decision)))
	c.JSON(http.StatusCreated, review)
}

func (h *reviewHandler) summarize(c *gin.Context) {
	applicationID := c.Param("application_id")

	summary, err := h.reviewService.Summarize(c.Request.Context(), applicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
