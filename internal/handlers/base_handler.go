package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trainee-dashboard/internal/form"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories/strapi"
	"github.com/SAP-F-2025/trainee-dashboard/internal/services"
	"github.com/SAP-F-2025/trainee-dashboard/internal/session"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

type ErrorResponse = models.ErrorResponse
type SuccessResponse = models.SuccessResponse

// BaseHandler carries what every handler shares
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// requestLogger prefers the request-scoped logger set by ContextLogger
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(utils.Logger); ok {
			return logger
		}
	}
	return h.logger
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	args = append(args, "method", c.Request.Method, "path", c.FullPath())
	if s, ok := currentSession(c); ok {
		args = append(args, "user_id", s.UserID(), "role", s.Role)
	}
	h.requestLogger(c).Debug(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err, "path", c.FullPath())
	h.requestLogger(c).Error(msg, args...)
}

// currentOrAbort returns the session set by AuthMiddleware, answering 401 when it is missing.
func (h *BaseHandler) currentOrAbort(c *gin.Context) (session.Session, bool) {
	s, ok := currentSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
			Error:     "unauthorized",
			Message:   "User not authenticated",
			Redirect:  "/",
			Timestamp: time.Now().UTC(),
		})
	}
	return s, ok
}

func (h *BaseHandler) badRequest(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Error: "bad_request", Message: message, Timestamp: time.Now().UTC(), Path: c.Request.URL.Path}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// handleServiceError maps a failed operation onto a status code. The message is the
// one the page notification shows.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	resp := ErrorResponse{
		Message:   services.UserMessage(err),
		Timestamp: time.Now().UTC(),
		Path:      c.Request.URL.Path,
	}

	var validationErrors utils.ValidationErrors
	if errors.As(err, &validationErrors) {
		resp.Error = "validation_failed"
		for _, ve := range validationErrors {
			resp.ValidationErrors = append(resp.ValidationErrors, models.ValidationIssue{Field: ve.Field, Message: ve.Message})
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	var apiErr *strapi.APIError
	switch {
	case errors.Is(err, form.ErrIncomplete):
		resp.Error = "incomplete"
		c.JSON(http.StatusBadRequest, resp)
	case errors.Is(err, form.ErrUploadFailed):
		resp.Error = "upload_failed"
		c.JSON(http.StatusBadGateway, resp)
	case errors.Is(err, services.ErrNotFound):
		resp.Error = "not_found"
		c.JSON(http.StatusNotFound, resp)
	case errors.Is(err, services.ErrNoPendingDelete):
		resp.Error = "no_pending_delete"
		c.JSON(http.StatusConflict, resp)
	case errors.Is(err, services.ErrSectionDenied):
		resp.Error = "forbidden"
		c.JSON(http.StatusForbidden, resp)
	case errors.Is(err, strapi.ErrEmptyResponse):
		h.LogError(c, err, "Backend answered without content")
		resp.Error = "backend_error"
		c.JSON(http.StatusBadGateway, resp)
	case errors.Is(err, strapi.ErrDeleteNotConfirmed):
		resp.Error = "delete_not_confirmed"
		c.JSON(http.StatusBadGateway, resp)
	case errors.Is(err, strapi.ErrMissingToken):
		resp.Error = "unauthenticated"
		resp.Redirect = "/"
		c.JSON(http.StatusUnauthorized, resp)
	case errors.As(err, &apiErr):
		h.LogError(c, err, "Backend rejected request", "status", apiErr.Status)
		switch {
		case apiErr.Status == http.StatusUnauthorized:
			resp.Error = "unauthenticated"
			resp.Redirect = "/"
			c.JSON(http.StatusUnauthorized, resp)
		case apiErr.Status >= 400 && apiErr.Status < 500:
			resp.Error = "rejected"
			c.JSON(apiErr.Status, resp)
		default:
			resp.Error = "backend_error"
			c.JSON(http.StatusBadGateway, resp)
		}
	default:
		h.LogError(c, err, "Unhandled service error")
		resp.Error = "internal_error"
		c.JSON(http.StatusInternalServerError, resp)
	}
}

// mustReauthenticate reports whether err means the token is gone or was rejected.
func mustReauthenticate(err error) bool {
	var apiErr *strapi.APIError
	return errors.Is(err, strapi.ErrMissingToken) || (errors.As(err, &apiErr) && apiErr.Unauthorized())
}
