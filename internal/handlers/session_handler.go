package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

// SessionResponse is what the frontend needs to render its shell
type SessionResponse struct {
	User           *models.User     `json:"user"`
	Role           models.UserRole  `json:"role"`
	Sidebar        []models.Section `json:"sidebar"`
	Visible        []models.Section `json:"visible"`
	DefaultSection models.Section   `json:"default_section"`
}

type SessionHandler struct {
	BaseHandler
	auth *SessionAuthMiddleware
}

func NewSessionHandler(auth *SessionAuthMiddleware, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		auth:        auth,
	}
}

// GetSession returns the caller's role and navigation
// @Summary Current session
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Role not authorized"
// @Router /session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Getting session")

	c.JSON(http.StatusOK, SessionResponse{
		User:           s.User,
		Role:           s.Role,
		Sidebar:        s.Access.Sidebar,
		Visible:        s.Access.Visible,
		DefaultSection: s.Access.Landing(),
	})
}

// Logout forgets the cached profile of the token. The token itself lives in the
// browser and is discarded there.
// @Summary Logout
// @Tags session
// @Success 204
// @Router /session [delete]
func (h *SessionHandler) Logout(c *gin.Context) {
	h.LogRequest(c, "Logging out")
	h.auth.Invalidate(c)
	c.SetCookie(tokenCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}
