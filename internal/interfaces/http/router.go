package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopfondos/coopfondos-api/internal/application/auth"
	"github.com/coopfondos/coopfondos-api/internal/application/reports"
	"github.com/coopfondos/coopfondos-api/internal/application/uploads"
	"github.com/coopfondos/coopfondos-api/internal/application/usecase"
	"github.com/coopfondos/coopfondos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CooperativeUC  *usecase.CooperativeUseCase
	UserUC         *usecase.UserUseCase
	NotificationUC *usecase.NotificationUseCase
	SettingsUC     *usecase.SettingsUseCase
	BalanceUC      *reports.BalanceUseCase
	CashFlowUC     *reports.CashFlowUseCase
	FeesUC         *reports.FeesUseCase
	RatiosUC       *reports.RatiosUseCase
	KPIUC          *reports.KPIUseCase
	ExportUC       *reports.ExportUseCase
	UploadUC       *uploads.UploadUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (protegido)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/me/password", authHandler.ChangePassword)
	protected.Get("/auth/me/activity", authHandler.Activity)

	// Cooperativas (selector y ficha)
	coopHandler := NewCooperativeHandler(deps.CooperativeUC)
	protected.Get("/cooperatives", coopHandler.List)
	protected.Get("/cooperatives/info", coopHandler.Info)
	protected.Put("/cooperatives/info", adminOnly, coopHandler.UpdateInfo)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.KPIUC)
	protected.Get("/dashboard/kpis", dashboardHandler.KPIs)

	// Reportes financieros
	reportHandler := NewReportHandler(deps.BalanceUC, deps.CashFlowUC, deps.FeesUC, deps.RatiosUC, deps.ExportUC)
	protected.Get("/balance-sheet", reportHandler.BalanceSheet)
	protected.Get("/cash-flow", reportHandler.CashFlow)
	protected.Get("/cash-flow/history", reportHandler.CashFlowHistory)
	protected.Get("/membership-fees", adminOnly, reportHandler.MembershipFees)
	protected.Get("/membership-fees/me", reportHandler.MyFees)
	protected.Get("/ratios", reportHandler.Ratios)
	protected.Get("/ratios/history", reportHandler.RatiosHistory)

	// Exportación (binaria)
	for _, module := range exportableModules {
		protected.Get("/"+module+"/export", reportHandler.Export(module))
	}

	// Carga de archivos (solo admin)
	uploadHandler := NewUploadHandler(deps.UploadUC, deps.AuthUC)
	uploadGroup := protected.Group("/upload", adminOnly)
	uploadGroup.Post("/:module", uploadHandler.Import)
	uploadGroup.Get("/history", uploadHandler.History)
	uploadGroup.Get("/latest", uploadHandler.Latest)

	// Usuarios (solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	usersGroup := protected.Group("/users", adminOnly)
	usersGroup.Get("/", userHandler.List)
	usersGroup.Post("/", userHandler.Create)
	usersGroup.Put("/:id/role", userHandler.ChangeRole)
	usersGroup.Put("/:id/status", userHandler.ChangeStatus)
	usersGroup.Post("/:id/reset-password", userHandler.ResetPassword)

	// Notificaciones
	notifHandler := NewNotificationHandler(deps.NotificationUC, deps.AuthUC)
	protected.Post("/notifications/send", adminOnly, notifHandler.Send)
	protected.Get("/notifications/history", adminOnly, notifHandler.History)
	protected.Get("/notifications", notifHandler.Inbox)
	protected.Get("/notifications/unread-count", notifHandler.UnreadCount)
	protected.Put("/notifications/:id/read", notifHandler.MarkRead)
	protected.Put("/notifications/read-all", notifHandler.MarkAllRead)

	// Configuración (solo admin)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup := protected.Group("/settings", adminOnly)
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/notifications", settingsHandler.UpdateNotifications)
	settingsGroup.Put("/security", settingsHandler.UpdateSecurity)
	settingsGroup.Put("/backups", settingsHandler.UpdateBackups)
	settingsGroup.Get("/odoo/status", settingsHandler.OdooStatus)
	settingsGroup.Post("/odoo/config", settingsHandler.SaveOdooConfig)
	settingsGroup.Post("/odoo/test", settingsHandler.TestOdoo)
	settingsGroup.Get("/data/export", reportHandler.ExportFullData)
}
