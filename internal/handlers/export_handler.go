package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trainee-dashboard/internal/export"
	"github.com/SAP-F-2025/trainee-dashboard/internal/filter"
	"github.com/SAP-F-2025/trainee-dashboard/internal/services"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

type ExportHandler struct {
	BaseHandler
	service services.ExportService
}

func NewExportHandler(service services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

type renderFunc func(ctx context.Context, q filter.Query, selection []string) ([]byte, error)

// ExportStagiaires downloads the filtered trainee table
// @Summary Export trainees
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param ids query string false "Comma separated documentIds to keep"
// @Success 200 {file} file
// @Router /stagiaires/export [get]
func (h *ExportHandler) ExportStagiaires(c *gin.Context) {
	query := filter.ParseQuery(c.Request.URL.Query(), filter.Stagiaires)
	h.download(c, "stagiaires", query, h.service.Stagiaires)
}

// ExportBrigades downloads the filtered brigade table
// @Summary Export brigades
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "Brigade year"
// @Param ids query string false "Comma separated documentIds to keep"
// @Success 200 {file} file
// @Router /brigades/export [get]
func (h *ExportHandler) ExportBrigades(c *gin.Context) {
	query := filter.ParseQuery(c.Request.URL.Query(), filter.Brigades)
	h.download(c, "brigades", query, h.service.Brigades)
}

// ExportPermissions downloads the filtered permission table
// @Summary Export permissions
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param ids query string false "Comma separated documentIds to keep"
// @Success 200 {file} file
// @Router /permissions/export [get]
func (h *ExportHandler) ExportPermissions(c *gin.Context) {
	query := filter.ParseQuery(c.Request.URL.Query(), filter.Permissions)
	h.download(c, "permissions", query, h.service.Permissions)
}

func (h *ExportHandler) download(c *gin.Context, name string, query filter.Query, render renderFunc) {
	s, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	selection := selectedIDs(c.Request.URL.Query())
	h.LogRequest(c, "Exporting table", "table", name, "selected", len(selection))

	data, err := render(s.Context(c.Request.Context()), query, selection)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType, data)
}

// selectedIDs reads ids=a,b or repeated ids parameters
func selectedIDs(values url.Values) []string {
	var ids []string
	for _, raw := range values["ids"] {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
