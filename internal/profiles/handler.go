package profiles

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"folio-backend/internal/resumes"
	"folio-backend/internal/shared/server/respond"
	"folio-backend/internal/usernames"
)

// UsernameResolver maps a public username to its owning user.
type UsernameResolver interface {
	Lookup(ctx context.Context, username string) (string, error)
}

// Handler serves public portfolio pages. No authentication is involved;
// visibility is controlled entirely by the record's status.
type Handler struct {
	Usernames UsernameResolver
	Records   resumes.Repo
}

// NewHandler constructs a Handler.
func NewHandler(resolver UsernameResolver, records resumes.Repo) *Handler {
	return &Handler{Usernames: resolver, Records: records}
}

// RegisterRoutes attaches public profile routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profiles/:username", h.get)
}

func (h *Handler) get(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		return
	}

	userID, err := h.Usernames.Lookup(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, usernames.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}

	rec, err := h.Records.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}

	// Draft pages are indistinguishable from missing ones.
	if rec.Status != resumes.StatusLive || rec.ResumeData == nil {
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"username":   username,
		"resumeData": rec.ResumeData,
		"theme":      rec.ResumeData.Theme,
	})
}
