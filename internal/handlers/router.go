package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
	"github.com/SAP-F-2025/trainee-dashboard/internal/services"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
	"github.com/SAP-F-2025/trainee-dashboard/internal/validator"
)

type HandlerManager struct {
	serviceManager services.ServiceManager

	stagiaireHandler    *ResourceHandler[models.Stagiaire]
	specialiteHandler   *ResourceHandler[models.Specialite]
	stageHandler        *ResourceHandler[models.Stage]
	brigadeNameHandler  *ResourceHandler[models.BrigadeName]
	brigadeHandler      *ResourceHandler[models.Brigade]
	permissionHandler   *ResourceHandler[models.Permission]
	penitionHandler     *ResourceHandler[models.Penition]
	remarkHandler       *ResourceHandler[models.Remark]
	consultationHandler *ResourceHandler[models.Consultation]
	userResourceHandler *ResourceHandler[models.User]

	sessionHandler      *SessionHandler
	notificationHandler *NotificationHandler
	userHandler         *UserHandler
	dashboardHandler    *DashboardHandler
	exportHandler       *ExportHandler
	authMiddleware      *SessionAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
) *HandlerManager {
	authMiddleware := NewSessionAuthMiddleware(serviceManager.Sessions())
	workspaces := serviceManager.Workspaces()
	references := serviceManager.References()

	return &HandlerManager{
		serviceManager: serviceManager,

		stagiaireHandler:    NewResourceHandler(workspaces, references, func(w *services.Workspace) *services.Page[models.Stagiaire] { return w.Stagiaires }, logger),
		specialiteHandler:   NewResourceHandler(workspaces, references, func(w *services.Workspace) *services.Page[models.Specialite] { return w.Specialites }, logger),
		stageHandler:        NewResourceHandler(workspaces, references, func(w *services.Workspace) *services.Page[models.Stage] { return w.Stages }, logger),
		brigadeNameHandler:  NewResourceHandler(workspaces, references, func(w *services.Workspace) *services.Page[models.BrigadeName] { return w.BrigadeNames }, logger),
		brigadeHandler:      NewResourceHandler(workspaces, references, func(w *services.Workspace) *services.Page[models.Brigade] { return w.Brigades }, logger),
		permissionHandler:   NewResourceHandler(workspaces, references, func(w *services.Workspace) *services.Page[models.Permission] { return w.Permissions }, logger),
		penitionHandler:     NewResourceHandler(workspaces, references, func(w *services.Workspace) *services.Page[models.Penition] { return w.Penitions }, logger),
		remarkHandler:       NewResourceHandler(workspaces, references, func(w *services.Workspace) *services.Page[models.Remark] { return w.Remarks }, logger),
		consultationHandler: NewResourceHandler(workspaces, references, func(w *services.Workspace) *services.Page[models.Consultation] { return w.Consultations }, logger),
		userResourceHandler: NewResourceHandler(workspaces, references, func(w *services.Workspace) *services.Page[models.User] { return w.Users }, logger),

		sessionHandler:      NewSessionHandler(authMiddleware, logger),
		notificationHandler: NewNotificationHandler(workspaces, logger),
		userHandler:         NewUserHandler(references, serviceManager.Activity(), validator, logger),
		dashboardHandler:    NewDashboardHandler(serviceManager.Stats(), serviceManager.Pedagogique(), logger),
		exportHandler:       NewExportHandler(serviceManager.Export(), logger),
		authMiddleware:      authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	require := hm.authMiddleware.RequireSectionMiddleware

	v1 := router.Group("/api/v1")

	// Logout must work for roles that are not authorized
	v1.DELETE("/session", hm.sessionHandler.Logout)

	api := v1.Group("")
	api.Use(hm.authMiddleware.AuthMiddleware())
	{
		api.GET("/session", hm.sessionHandler.GetSession)

		// Notification slots, one per section
		notifications := api.Group("/notifications")
		{
			notifications.GET("", hm.notificationHandler.ListNotifications)
			notifications.GET("/:section", hm.notificationHandler.GetNotification)
			notifications.DELETE("/:section", hm.notificationHandler.DismissNotification)
		}

		// Trainees
		stagiaires := api.Group("/stagiaires")
		stagiaires.Use(require(models.SectionStagiaire))
		{
			stagiaires.GET("/export", hm.exportHandler.ExportStagiaires)
			hm.stagiaireHandler.Register(stagiaires)
		}
		// Readable wherever a trainee can be looked at
		api.GET("/stagiaires/:id/remarks/stats",
			require(models.SectionStagiaire, models.SectionRemarque, models.SectionPedagogique),
			hm.dashboardHandler.GetTraineeRemarkStats)

		specialites := api.Group("/specialites")
		specialites.Use(require(models.SectionSpecialite))
		hm.specialiteHandler.Register(specialites)

		stages := api.Group("/stages")
		stages.Use(require(models.SectionStage))
		hm.stageHandler.Register(stages)

		brigadeNames := api.Group("/brigade-names")
		brigadeNames.Use(require(models.SectionNomBrigade))
		hm.brigadeNameHandler.Register(brigadeNames)

		brigades := api.Group("/brigades")
		brigades.Use(require(models.SectionBrigade))
		{
			brigades.GET("/export", hm.exportHandler.ExportBrigades)
			hm.brigadeHandler.Register(brigades)
		}

		permissions := api.Group("/permissions")
		permissions.Use(require(models.SectionPermission))
		{
			permissions.GET("/export", hm.exportHandler.ExportPermissions)
			hm.permissionHandler.Register(permissions)
		}

		penitions := api.Group("/penitions")
		penitions.Use(require(models.SectionPenition))
		hm.penitionHandler.Register(penitions)

		remarks := api.Group("/remarks")
		remarks.Use(require(models.SectionRemarque))
		{
			remarks.GET("/stats", hm.dashboardHandler.GetRemarkStats)
			hm.remarkHandler.Register(remarks)
		}

		consultations := api.Group("/consultations")
		consultations.Use(require(models.SectionConsultation))
		hm.consultationHandler.Register(consultations)

		// Users - admins only
		users := api.Group("/users")
		users.Use(require(models.SectionUsers))
		hm.userResourceHandler.Register(users)
		api.GET("/roles", require(models.SectionUsers), hm.userHandler.ListRoles)
		api.GET("/activity", require(models.SectionUsers), hm.userHandler.ListActivity)

		// Pedagogical views
		pedagogique := api.Group("/pedagogique")
		pedagogique.Use(require(models.SectionPedagogique))
		{
			pedagogique.GET("/stagiaires/:id", hm.dashboardHandler.GetTraineeRecord)
			pedagogique.GET("/stats", hm.dashboardHandler.GetOverview)
		}
	}

	// Health check endpoint
	router.GET("/health", hm.health)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:     "not_found",
			Message:   "not found",
			Path:      c.Request.URL.Path,
			Timestamp: time.Now().UTC(),
		})
	})
}

func (hm *HandlerManager) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := hm.serviceManager.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "trainee-dashboard",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "trainee-dashboard",
	})
}
