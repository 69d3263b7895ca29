package handlers

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/services"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

// NoticeResponse is the notification slot of one section
type NoticeResponse struct {
	Section models.Section `json:"section"`
	Notice  *models.Flash  `json:"notice"`
}

type NotificationHandler struct {
	BaseHandler
	workspaces *services.Workspaces
}

func NewNotificationHandler(workspaces *services.Workspaces, logger utils.Logger) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler: NewBaseHandler(logger),
		workspaces:  workspaces,
	}
}

// sectionParam validates :section against the caller's visible sections
func (h *NotificationHandler) sectionParam(c *gin.Context) (models.Section, bool) {
	section := models.Section(c.Param("section"))
	s, ok := h.currentOrAbort(c)
	if !ok {
		return section, false
	}
	if !slices.Contains(models.Sections, section) {
		h.handleServiceError(c, fmt.Errorf("section %q: %w", section, services.ErrNotFound))
		return section, false
	}
	if !s.Access.Can(section) {
		h.handleServiceError(c, services.ErrSectionDenied)
		return section, false
	}
	return section, true
}

// ListNotifications returns every visible notification of the caller
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Success 200 {array} NoticeResponse
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	s, ok := h.currentOrAbort(c)
	if !ok {
		return
	}

	notices := h.workspaces.For(s).Notices()
	out := make([]NoticeResponse, 0, len(notices))
	for _, section := range models.Sections {
		if flash, ok := notices[section]; ok && s.Access.Can(section) {
			out = append(out, NoticeResponse{Section: section, Notice: flash})
		}
	}
	c.JSON(http.StatusOK, out)
}

// GetNotification returns the notification of one section, null when none is shown
// @Summary Get section notification
// @Tags notifications
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} NoticeResponse
// @Failure 403 {object} ErrorResponse "Section not available for this role"
// @Failure 404 {object} ErrorResponse "Unknown section"
// @Router /notifications/{section} [get]
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	section, ok := h.sectionParam(c)
	if !ok {
		return
	}
	s, _ := currentSession(c)

	c.JSON(http.StatusOK, NoticeResponse{
		Section: section,
		Notice:  h.workspaces.For(s).Notice(section),
	})
}

// DismissNotification closes the notification of one section
// @Summary Dismiss section notification
// @Tags notifications
// @Param section path string true "Section name"
// @Success 204
// @Failure 404 {object} ErrorResponse "Section has no notification slot"
// @Router /notifications/{section} [delete]
func (h *NotificationHandler) DismissNotification(c *gin.Context) {
	section, ok := h.sectionParam(c)
	if !ok {
		return
	}
	s, _ := currentSession(c)
	h.LogRequest(c, "Dismissing notification", "section", section)

	if !h.workspaces.For(s).Dismiss(section) {
		h.handleServiceError(c, fmt.Errorf("notification of %s: %w", section, services.ErrNotFound))
		return
	}
	c.Status(http.StatusNoContent)
}
