package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/claimpilot/claims_management_app/internal/core/ports/services"
	"github.com/claimpilot/claims_management_app/internal/dto"
	"github.com/claimpilot/claims_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for application documents.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// registerDocumentRoutes nests the document routes under a specific application.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.attachDocument)
		documents.GET("", h.listDocuments)
		documents.DELETE("/:document_id", h.deleteDocument)
	}
}

func (h *documentHandler) attachDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	applicationID := c.Param("application_id")

	var req dto.AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AttachDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	doc, err := h.documentService.AttachDocument(c.Request.Context(), applicationID, req, actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Document attached",
		slog.String("application_id", applicationID),
		slog.String("document_id", doc.DocumentID))
	c.JSON(http.StatusCreated, doc)
}

func (h *documentHandler) listDocuments(c *gin.Context) {
	applicationID := c.Param("application_id")

	docs, err := h.documentService.ListDocuments(c.Request.Context(), applicationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("document_id")

	actor, ok := mustGetActor(c)
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), documentID, actor); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Document deleted", slog.String("document_id", documentID))
	c.Status(http.StatusNoContent)
}
