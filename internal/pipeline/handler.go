package pipeline

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"folio-backend/internal/shared/server/middleware"
	"folio-backend/internal/shared/server/respond"
)

// Handler wires the pipeline to HTTP.
type Handler struct {
	Processor *Processor
}

// NewHandler constructs a Handler.
func NewHandler(p *Processor) *Handler {
	return &Handler{Processor: p}
}

// RegisterRoutes attaches pipeline routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/process-resume", h.process)
}

func (h *Handler) process(c *gin.Context) {
	id := Identity{
		UserID: middleware.UserIDFromContext(c),
		Name:   middleware.UserNameFromContext(c),
		Email:  middleware.UserEmailFromContext(c),
	}

	err := h.Processor.Process(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingUpload):
			respond.Error(c, http.StatusBadRequest, "missing_upload", "No resume file found. Please upload a PDF first.", nil)
		case errors.Is(err, ErrInsufficientContent):
			respond.Error(c, http.StatusBadRequest, "insufficient_content", "The PDF content appears to be insufficient or unreadable. Please upload a different PDF.", nil)
		case errors.Is(err, ErrExtraction):
			respond.Error(c, http.StatusBadRequest, "extraction_failed", "Failed to extract content from PDF. Please try uploading again.", nil)
		case errors.Is(err, ErrUsernameCreation):
			respond.Error(c, http.StatusInternalServerError, "username_creation_failed", "Failed to create username. Please try again.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to process resume. Please try again.", nil)
		}
		return
	}

	c.Set("pipelineStage", "structured")
	respond.JSON(c, http.StatusOK, gin.H{
		"success": true,
		"message": "Resume processed successfully",
	})
}
