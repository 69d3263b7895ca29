package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trainee-dashboard/internal/services"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

// DashboardHandler serves the read-only aggregates: remark statistics and the
// pedagogical views.
type DashboardHandler struct {
	BaseHandler
	stats       services.StatsService
	pedagogique services.PedagogiqueService
}

func NewDashboardHandler(stats services.StatsService, pedagogique services.PedagogiqueService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		stats:       stats,
		pedagogique: pedagogique,
	}
}

// ===== REMARK STATISTICS =====

// GetRemarkStats returns the remark split of the whole program
// @Summary Get remark statistics
// @Tags stats
// @Produce json
// @Success 200 {object} models.RemarkStats
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 502 {object} ErrorResponse "Backend error"
// @Router /remarks/stats [get]
func (h *DashboardHandler) GetRemarkStats(c *gin.Context) {
	s, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Getting remark stats")

	stats, err := h.stats.Remarks(s.Context(c.Request.Context()))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetTraineeRemarkStats returns the remark split of one trainee
// @Summary Get trainee remark statistics
// @Tags stats
// @Produce json
// @Param id path string true "Trainee documentId"
// @Success 200 {object} models.RemarkStats
// @Failure 502 {object} ErrorResponse "Backend error"
// @Router /stagiaires/{id}/remarks/stats [get]
func (h *DashboardHandler) GetTraineeRemarkStats(c *gin.Context) {
	s, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Getting trainee remark stats", "stagiaire_id", c.Param("id"))

	stats, err := h.stats.TraineeRemarks(s.Context(c.Request.Context()), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ===== PEDAGOGIQUE =====

// GetTraineeRecord returns a trainee with every record that involves them
// @Summary Get trainee drill-down
// @Tags pedagogique
// @Produce json
// @Param id path string true "Trainee documentId"
// @Success 200 {object} models.TraineeRecord
// @Failure 404 {object} ErrorResponse "Trainee not found"
// @Router /pedagogique/stagiaires/{id} [get]
func (h *DashboardHandler) GetTraineeRecord(c *gin.Context) {
	s, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Getting trainee record", "stagiaire_id", c.Param("id"))

	record, err := h.pedagogique.Trainee(s.Context(c.Request.Context()), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetOverview returns one stats row per trainee
// @Summary Get pedagogical overview
// @Tags pedagogique
// @Produce json
// @Success 200 {array} models.TraineeStats
// @Failure 502 {object} ErrorResponse "Backend error"
// @Router /pedagogique/stats [get]
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	s, ok := h.currentOrAbort(c)
	if !ok {
		return
	}
	h.LogRequest(c, "Getting pedagogical overview")

	rows, err := h.pedagogique.Overview(s.Context(c.Request.Context()))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
