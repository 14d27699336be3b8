package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/server/handlers"
	"github.com/mamadbah2/livestockcare/internal/server/metrics"
	"github.com/mamadbah2/livestockcare/internal/server/middleware"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Records   *handlers.RecordsHandler
	Clinical  *handlers.ClinicalHandler
	Vet       *handlers.VetHandler
	Economics *handlers.EconomicsHandler
	Admin     *handlers.AdminHandler
}

var (
	everyone   = []models.Role{models.RoleFarmer, models.RoleVeterinarian, models.RoleParavet, models.RoleAdmin}
	vetAdmin   = []models.Role{models.RoleVeterinarian, models.RoleAdmin}
	staff      = []models.Role{models.RoleVeterinarian, models.RoleParavet, models.RoleAdmin}
	farmerOnly = []models.Role{models.RoleFarmer}
	adminOnly  = []models.Role{models.RoleAdmin}
)

// New wires the Gin engine with required routes and middlewares. m may be nil.
func New(apiPrefix string, h Handlers, verifier middleware.Verifier, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.AccessLog(logger))
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group(apiPrefix, middleware.ClientIP())

	// Public.
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/guest-session", h.Auth.GuestSession)
	api.GET("/safety-rules/:disease", h.Admin.SafetyRuleFor)

	authed := api.Group("", middleware.Authenticate(verifier, logger))
	as := func(roles []models.Role) *gin.RouterGroup {
		return authed.Group("", middleware.RequireRoles(roles...))
	}

	// Any authenticated caller, guests included.
	authed.GET("/auth/me", h.Auth.Me)
	authed.GET("/notifications", h.Admin.MyNotifications)
	authed.POST("/utilities/area-calculator", h.Economics.AreaCalculator)
	authed.POST("/utilities/interest-calculator", h.Economics.InterestCalculator)
	authed.GET("/knowledge-center", h.Clinical.ListKnowledge)
	authed.GET("/knowledge-center/:id", h.Clinical.GetKnowledge)

	records := as(everyone)
	records.POST("/animals", h.Records.CreateAnimal)
	records.GET("/animals", h.Records.ListAnimals)
	records.GET("/animals/:id", h.Records.GetAnimal)
	records.PUT("/animals/:id", h.Records.UpdateAnimal)
	records.DELETE("/animals/:id", h.Records.DeleteAnimal)
	records.POST("/vaccinations", h.Records.CreateVaccination)
	records.GET("/vaccinations", h.Records.ListVaccinations)
	records.POST("/deworming", h.Records.CreateDeworming)
	records.GET("/deworming", h.Records.ListDeworming)
	records.POST("/breeding", h.Records.CreateBreeding)
	records.GET("/breeding", h.Records.ListBreeding)
	records.GET("/diagnostics", h.Clinical.ListDiagnostics)
	records.GET("/diagnostics/:id", h.Clinical.GetDiagnostic)
	records.POST("/ration/calculate", h.Economics.CalculateRation)
	records.GET("/ration/calculations", h.Economics.RationCalculations)

	farmer := as(farmerOnly)
	farmer.GET("/dashboard/farmer-stats", h.Vet.FarmerStats)

	vet := as(vetAdmin)
	vet.POST("/diagnostics", h.Clinical.RecordDiagnostic)
	vet.GET("/reports/diagnostic/:id/pdf", h.Clinical.DiagnosticPDF)
	vet.POST("/knowledge-center", h.Clinical.CreateKnowledge)
	vet.PUT("/knowledge-center/:id", h.Clinical.UpdateKnowledge)
	vet.GET("/knowledge-center/:id/history", h.Clinical.KnowledgeHistory)
	vet.POST("/vet/profile", h.Vet.CreateProfile)
	vet.GET("/vet/profile", h.Vet.GetProfile)
	vet.PUT("/vet/profile", h.Vet.UpdateProfile)
	vet.POST("/vet/institution", h.Vet.CreateInstitution)
	vet.GET("/vet/institutions", h.Vet.ListInstitutions)
	vet.GET("/vet/institution/:id", h.Vet.GetInstitution)
	vet.GET("/vet/alerts", h.Vet.Alerts)
	h.Vet.RegisterCaseRoutes(vet.Group("/vet"))
	vet.GET("/dashboard/vet-stats", h.Vet.Stats)
	vet.GET("/dashboard/vet-stats-detailed", h.Vet.DetailedStats)
	vet.POST("/gva/calculate", h.Economics.CalculateGVA)
	vet.GET("/gva/reports/:id/pdf", h.Economics.GVAReportPDF)

	clinicStaff := as(staff)
	clinicStaff.GET("/gva/reports", h.Economics.GVAReports)
	clinicStaff.GET("/gva/reports/:id", h.Economics.GVAReport)
	clinicStaff.GET("/admin/feed-items", h.Economics.FeedItems)
	clinicStaff.GET("/admin/nutrition-rules", h.Economics.NutritionRules)

	admin := as(adminOnly)
	admin.GET("/gva/settings", h.Economics.GVASettings)
	admin.PUT("/gva/settings", h.Economics.UpdateGVASettings)
	admin.DELETE("/knowledge-center/:id", h.Clinical.ArchiveKnowledge)
	admin.POST("/admin/feed-items", h.Economics.CreateFeedItem)
	admin.PUT("/admin/feed-items/:id", h.Economics.UpdateFeedItem)
	admin.POST("/admin/nutrition-rules", h.Economics.CreateNutritionRule)
	admin.PUT("/admin/nutrition-rules/:id", h.Economics.UpdateNutritionRule)
	admin.POST("/admin/seed-nutrition-data", h.Economics.SeedNutrition)
	admin.POST("/admin/seed-knowledge-data", h.Clinical.SeedKnowledge)

	admin.GET("/admin/dashboard-stats", h.Admin.DashboardStats)
	admin.GET("/admin/alerts", h.Admin.Alerts)
	admin.GET("/admin/users", h.Admin.Users)
	admin.GET("/admin/users/:id", h.Admin.User)
	admin.PUT("/admin/users/:id/status", h.Admin.SetUserStatus)
	admin.PUT("/admin/users/:id/lock", h.Admin.LockUser)
	admin.GET("/admin/users/:id/activity", h.Admin.UserActivity)
	admin.PUT("/admin/vets/:id/verify-registration", h.Admin.VerifyVetRegistration)
	admin.PUT("/admin/vets/:id/certificate-privileges", h.Admin.SetCertificatePrivileges)
	admin.PUT("/admin/institutions/:id/verify", h.Admin.VerifyInstitution)
	admin.POST("/admin/knowledge", h.Clinical.CreateKnowledge)
	admin.GET("/admin/knowledge", h.Clinical.ListKnowledge)
	admin.PUT("/admin/knowledge/:id", h.Clinical.UpdateKnowledge)
	admin.PUT("/admin/knowledge/:id/publish", h.Clinical.PublishKnowledge)
	admin.PUT("/admin/knowledge/:id/archive", h.Clinical.ArchiveKnowledge)
	admin.POST("/admin/safety-rules", h.Admin.CreateSafetyRule)
	admin.GET("/admin/safety-rules", h.Admin.SafetyRules)
	admin.PUT("/admin/safety-rules/:id", h.Admin.UpdateSafetyRule)
	admin.GET("/admin/audit-logs", h.Admin.AuditLogs)
	admin.POST("/admin/notifications", h.Admin.CreateNotification)
	admin.GET("/admin/notifications", h.Admin.Notifications)
	admin.GET("/admin/settings", h.Admin.Settings)
	admin.PUT("/admin/settings/:key", h.Admin.UpdateSetting)
	admin.PUT("/admin/records/:type/:id/lock", h.Admin.LockRecord)
	admin.GET("/admin/reports/user-activity", h.Admin.UserActivityReport)
	admin.GET("/admin/reports/disease-surveillance", h.Admin.DiseaseSurveillanceReport)

	logger.Info("router initialized", zap.Int("routes", len(r.Routes())))

	return r
}
