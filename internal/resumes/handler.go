package resumes

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"folio-backend/internal/shared/server/middleware"
	"folio-backend/internal/shared/server/respond"
)

const maxUploadSize = 5 << 20 // 5MB

const maxPictureSize = 2 << 20 // 2MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume", h.get)
	rg.POST("/resume", h.update)
	rg.POST("/resume/file", h.uploadFile)
	rg.GET("/resume/file", h.downloadFile)
	rg.POST("/resume/profile-picture", h.uploadProfilePicture)
}

// RegisterPublicRoutes attaches unauthenticated routes. Profile pictures
// are served from unguessable storage keys, like public blob URLs.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*key", h.servePicture)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rec, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.JSON(c, http.StatusOK, gin.H{"resume": nil})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"resume": rec})
}

func (h *Handler) uploadFile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadSize {
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrFileTooLarge.Error(), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	rec, err := h.Svc.AttachUpload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotPDF), errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store file", nil)
		}
		return
	}

	respond.Created(c, gin.H{"file": rec.File, "stage": rec.Stage})
}

func (h *Handler) uploadProfilePicture(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPictureSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > maxPictureSize {
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrFileTooLarge.Error(), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	rec, err := h.Svc.AttachProfilePicture(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrNotImage), errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store picture", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"profilePicture": rec.ResumeData.ProfilePicture})
}

func (h *Handler) servePicture(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	rd, contentType, err := h.Svc.OpenPicture(c.Request.Context(), key)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		return
	}
	defer rd.Close()

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rd)
}

type updateRequest struct {
	ResumeData *ResumeData `json:"resumeData"`
	Status     string      `json:"status"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ResumeData == nil && req.Status == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "nothing to update", nil)
		return
	}

	rec, err := h.Svc.Update(c.Request.Context(), userID, req.ResumeData, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidTheme), errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrSubscriptionRequired):
			respond.Error(c, http.StatusForbidden, "subscription_required", "an active subscription is required to publish", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update resume", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"resume": rec})
}

func (h *Handler) downloadFile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rd, ref, err := h.Svc.OpenFile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no resume file uploaded", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open file", nil)
		return
	}
	defer rd.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+ref.Name+`"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rd)
}
