package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trainee-dashboard/internal/dates"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
	"github.com/SAP-F-2025/trainee-dashboard/internal/services"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
	"github.com/SAP-F-2025/trainee-dashboard/internal/validator"
)

// ActivityQuery are the filters of the activity listing
type ActivityQuery struct {
	Limit    int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset   int    `form:"offset" validate:"omitempty,min=0"`
	Resource string `form:"resource" validate:"omitempty,max=64"`
	UserID   string `form:"user_id" validate:"omitempty,numeric"`
	Since    string `form:"since"`
}

// UserHandler serves the admin-only side of the Users section
type UserHandler struct {
	BaseHandler
	references services.ReferenceService
	activity   services.ActivityService
	validator  *validator.Validator
}

func NewUserHandler(
	references services.ReferenceService,
	activity services.ActivityService,
	validator *validator.Validator,
	logger utils.Logger,
) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		references:  references,
		activity:    activity,
		validator:   validator,
	}
}

// ListRoles lists the roles a user can be given
// @Summary List roles
// @Tags users
// @Produce json
// @Success 200 {array} models.Role
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "Backend error"
// @Router /roles [get]
func (h *UserHandler) ListRoles(c *gin.Context) {
	s, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Listing roles")

	roles, err := h.references.Roles(s.Context(c.Request.Context()))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// ListActivity lists recorded mutations, newest first
// @Summary List dashboard activity
// @Tags users
// @Produce json
// @Param limit query int false "Page size (default: 50, max: 200)"
// @Param offset query int false "Offset"
// @Param resource query string false "Filter by collection name"
// @Param user_id query string false "Filter by CMS user id"
// @Param since query string false "Only entries at or after this date or timestamp"
// @Success 200 {object} services.ActivityListResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /activity [get]
func (h *UserHandler) ListActivity(c *gin.Context) {
	h.LogRequest(c, "Listing activity")

	var q ActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "Invalid query parameters", err)
		return
	}
	if errs := h.validator.Struct(&q); len(errs) > 0 {
		h.handleServiceError(c, errs)
		return
	}

	filters := repositories.ActivityFilters{
		Resource: q.Resource,
		UserID:   q.UserID,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if q.Since != "" {
		since, ok := dates.Parse(q.Since)
		if !ok {
			h.badRequest(c, "Invalid since parameter", nil)
			return
		}
		filters.Since = &since
	}

	list, err := h.activity.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
