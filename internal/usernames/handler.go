package usernames

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"folio-backend/internal/shared/server/middleware"
	"folio-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc           *Service
	PublicBaseURL string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, publicBaseURL string) *Handler {
	return &Handler{Svc: svc, PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// RegisterRoutes attaches authenticated username routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/username", h.get)
	rg.POST("/username", h.rename)
}

// RegisterPublicRoutes attaches routes that need no authentication.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/check-username", h.check)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	username, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.JSON(c, http.StatusOK, gin.H{"username": nil})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch username", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"username": username, "profileUrl": h.profileURL(username)})
}

func (h *Handler) profileURL(username string) string {
	if h.PublicBaseURL == "" {
		return "/" + username
	}
	return h.PublicBaseURL + "/" + username
}

type renameRequest struct {
	Username string `json:"username"`
}

func (h *Handler) rename(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := h.Svc.Rename(c.Request.Context(), userID, req.Username); err != nil {
		switch {
		case errors.Is(err, ErrInvalidUsername):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrTaken):
			respond.Error(c, http.StatusConflict, "username_taken", "that username is already taken", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update username", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"username": req.Username, "profileUrl": h.profileURL(req.Username)})
}

type checkRequest struct {
	Username string `json:"username"`
}

func (h *Handler) check(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	available, err := h.Svc.CheckAvailability(c.Request.Context(), req.Username)
	if err != nil && !errors.Is(err, ErrInvalidUsername) {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to check username", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"available": available})
}
