package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trainee-dashboard/internal/form"
	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/services"
	"github.com/SAP-F-2025/trainee-dashboard/internal/session"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

// PageOf picks one table out of a user's workspace
type PageOf[T models.Entity] func(*services.Workspace) *services.Page[T]

// ResourceHandler serves one CMS collection through the caller's page
type ResourceHandler[T models.Entity] struct {
	BaseHandler
	workspaces *services.Workspaces
	references services.ReferenceService
	pageOf     PageOf[T]
}

func NewResourceHandler[T models.Entity](
	workspaces *services.Workspaces,
	references services.ReferenceService,
	pageOf func(*services.Workspace) *services.Page[T],
	logger utils.Logger,
) *ResourceHandler[T] {
	return &ResourceHandler[T]{
		BaseHandler: NewBaseHandler(logger),
		workspaces:  workspaces,
		references:  references,
		pageOf:      pageOf,
	}
}

// Register mounts the table routes on rg
func (h *ResourceHandler[T]) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/references", h.References)
	rg.GET("/delete-request", h.PendingDelete)
	rg.POST("/delete-confirm", h.ConfirmDelete)
	rg.POST("/delete-cancel", h.CancelDelete)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.POST("/:id/delete-request", h.RequestDelete)
}

// page resolves the caller's page and the context carrying their token
func (h *ResourceHandler[T]) page(c *gin.Context) (*services.Page[T], session.Session, bool) {
	s, ok := h.currentOrAbort(c)
	if !ok {
		return nil, s, false
	}
	return h.pageOf(h.workspaces.For(s)), s, true
}

// ensureLoaded fetches the collection once so that ids from a previous listing resolve.
func (h *ResourceHandler[T]) ensureLoaded(c *gin.Context, p *services.Page[T], s session.Session) bool {
	if p.Loaded() {
		return true
	}
	if err := p.Refresh(s.Context(c.Request.Context())); err != nil {
		h.handleServiceError(c, err)
		return false
	}
	return true
}

// ===== TABLE ENDPOINTS =====

// List refetches the collection and returns the filtered rows
// @Summary List records
// @Description Re-fetch the whole collection from the CMS and filter it in memory. When the fetch fails the previously loaded rows are returned with an error notice.
// @Tags resources
// @Produce json
// @Param q query string false "Case-insensitive text search"
// @Success 200 {object} models.ListResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "Backend error"
// @Router /{resource} [get]
func (h *ResourceHandler[T]) List(c *gin.Context) {
	p, s, ok := h.page(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Listing records", "section", p.Section())

	if err := p.Refresh(s.Context(c.Request.Context())); err != nil && (!p.Loaded() || mustReauthenticate(err)) {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, p.Items(p.ParseQuery(c.Request.URL.Query())))
}

// Get returns one record of the last fetched collection
// @Summary Get record
// @Tags resources
// @Produce json
// @Param id path string true "documentId, or numeric id for users"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Record not found"
// @Router /{resource}/{id} [get]
func (h *ResourceHandler[T]) Get(c *gin.Context) {
	p, s, ok := h.page(c)
	if !ok || !h.ensureLoaded(c, p, s) {
		return
	}
	h.LogRequest(c, "Getting record", "id", c.Param("id"))

	entity, found := p.Find(c.Param("id"))
	if !found {
		h.handleServiceError(c, fmt.Errorf("%s %s: %w", p.Schema().Resource, c.Param("id"), services.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: entity, Timestamp: time.Now().UTC()})
}

// References returns the options of every relation select of the form
// @Summary Form reference lists
// @Description Fetch the option lists of the form's relation fields concurrently
// @Tags resources
// @Produce json
// @Success 200 {object} map[string][]models.Option
// @Failure 502 {object} ErrorResponse "Backend error"
// @Router /{resource}/references [get]
func (h *ResourceHandler[T]) References(c *gin.Context) {
	p, s, ok := h.page(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Loading form references", "section", p.Section())

	options, err := h.references.For(s.Context(c.Request.Context()), p.Schema())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// Create persists a new record
// @Summary Create record
// @Description Accepts a JSON body, or multipart with a "data" JSON part and an optional "file" part
// @Tags resources
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Incomplete or invalid form"
// @Failure 502 {object} ErrorResponse "Upload or backend failure"
// @Router /{resource} [post]
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	p, s, ok := h.page(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Creating record", "section", p.Section())

	draft, err := p.NewForm("", nil)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.submit(c, p, s, draft, http.StatusCreated)
}

// Update persists changes to an existing record
// @Summary Update record
// @Tags resources
// @Accept json,mpfd
// @Produce json
// @Param id path string true "documentId, or numeric id for users"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Incomplete or invalid form"
// @Failure 404 {object} ErrorResponse "Record not found"
// @Router /{resource}/{id} [put]
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	p, s, ok := h.page(c)
	if !ok || !h.ensureLoaded(c, p, s) {
		return
	}
	h.LogRequest(c, "Updating record", "id", c.Param("id"))

	draft, err := p.NewForm(c.Param("id"), nil)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.submit(c, p, s, draft, http.StatusOK)
}

func (h *ResourceHandler[T]) submit(c *gin.Context, p *services.Page[T], s session.Session, draft *form.Controller, status int) {
	file, err := bindSubmission(c, draft)
	if err != nil {
		h.badRequest(c, "Invalid request body", err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	saved, err := p.Submit(s.Context(c.Request.Context()), draft)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(status, SuccessResponse{
		Message:   noticeMessage(p.Notice()),
		Data:      saved,
		Timestamp: time.Now().UTC(),
	})
}

// bindSubmission copies the request body onto the draft. Multipart bodies carry the
// fields as JSON in "data" and the attachment in "file"; the attached file is
// returned for the caller to close.
func bindSubmission(c *gin.Context, draft *form.Controller) (io.Closer, error) {
	fields := map[string]any{}

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := json.NewDecoder(c.Request.Body).Decode(&fields); err != nil {
			return nil, err
		}
		draft.Apply(fields)
		return nil, nil
	}

	if data := c.PostForm("data"); data != "" {
		if err := json.Unmarshal([]byte(data), &fields); err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
	}
	draft.Apply(fields)

	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file: %w", err)
	}
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("file: %w", err)
	}
	draft.AttachFile(header.Filename, file)
	return file, nil
}

// ===== DELETE CONFIRMATION =====

// RequestDelete opens the confirmation for one record
// @Summary Request deletion
// @Tags resources
// @Produce json
// @Param id path string true "documentId, or numeric id for users"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "Record not found"
// @Router /{resource}/{id}/delete-request [post]
func (h *ResourceHandler[T]) RequestDelete(c *gin.Context) {
	p, s, ok := h.page(c)
	if !ok || !h.ensureLoaded(c, p, s) {
		return
	}
	h.LogRequest(c, "Requesting delete", "id", c.Param("id"))

	entity, err := p.RequestDelete(c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message:   "Are you sure you want to delete this record?",
		Data:      entity,
		Timestamp: time.Now().UTC(),
	})
}

// PendingDelete returns the record awaiting confirmation
// @Summary Pending deletion
// @Tags resources
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse "Nothing awaiting confirmation"
// @Router /{resource}/delete-request [get]
func (h *ResourceHandler[T]) PendingDelete(c *gin.Context) {
	p, _, ok := h.page(c)
	if !ok {
		return
	}

	entity, pending := p.PendingDelete()
	if !pending {
		h.handleServiceError(c, services.ErrNoPendingDelete)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: entity, Timestamp: time.Now().UTC()})
}

// ConfirmDelete removes the record awaiting confirmation
// @Summary Confirm deletion
// @Description The confirmation is closed whatever the outcome
// @Tags resources
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse "Nothing awaiting confirmation"
// @Failure 502 {object} ErrorResponse "Delete not confirmed by the backend"
// @Router /{resource}/delete-confirm [post]
func (h *ResourceHandler[T]) ConfirmDelete(c *gin.Context) {
	p, s, ok := h.page(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Confirming delete", "section", p.Section())

	if err := p.ConfirmDelete(s.Context(c.Request.Context())); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message:   noticeMessage(p.Notice()),
		Timestamp: time.Now().UTC(),
	})
}

// CancelDelete closes the confirmation without deleting
// @Summary Cancel deletion
// @Tags resources
// @Success 204
// @Router /{resource}/delete-cancel [post]
func (h *ResourceHandler[T]) CancelDelete(c *gin.Context) {
	p, _, ok := h.page(c)
	if !ok {
		return
	}
	p.CancelDelete()
	c.Status(http.StatusNoContent)
}

func noticeMessage(f *models.Flash) string {
	if f == nil {
		return ""
	}
	return f.Message
}
