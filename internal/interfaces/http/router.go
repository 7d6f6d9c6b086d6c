package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Permuta-api/internal/application/analytics"
	"github.com/jhoicas/Permuta-api/internal/application/auth"
	"github.com/jhoicas/Permuta-api/internal/application/permuta"
	"github.com/jhoicas/Permuta-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	SectorUC    *usecase.SectorUseCase
	PermutaUC   *permuta.UseCase
	MessageUC   *usecase.MessageUseCase
	ActivityUC  *usecase.ActivityUseCase
	DashboardUC *appanalytics.DashboardUseCase
	// LoginLimiter se monta delante de /api/admin/login; nil = sin límite.
	LoginLimiter fiber.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", SessionMiddleware(deps.AuthUC))

	requireAuth := RequireAuth()
	requireProvider := RequireProviderSession()
	requireAdmin := RequireAdmin(deps.UserUC)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Get("/auth/user", requireAuth, authHandler.CurrentUser)
	api.Post("/auth/sync", requireProvider, authHandler.Sync)

	adminGroup := api.Group("/admin")
	if deps.LoginLimiter != nil {
		adminGroup.Post("/login", deps.LoginLimiter, authHandler.AdminLogin)
	} else {
		adminGroup.Post("/login", authHandler.AdminLogin)
	}
	adminGroup.Post("/change-password", RequireAdminSession(), authHandler.ChangePassword)

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", requireAuth, userHandler.List)
	users.Get("/:id", requireAuth, userHandler.GetByID)
	users.Post("/", requireAdmin, userHandler.Upsert)
	users.Put("/:id/role", requireAdmin, userHandler.UpdateRole)
	users.Put("/:id/promote", requireAdmin, userHandler.Promote)
	users.Delete("/:id", requireAdmin, userHandler.Delete)

	// Sectors (alias /institutions)
	sectorHandler := NewSectorHandler(deps.SectorUC)
	for _, prefix := range []string{"/sectors", "/institutions"} {
		sectors := api.Group(prefix)
		sectors.Get("/", sectorHandler.List)
		sectors.Get("/:id", sectorHandler.GetByID)
		sectors.Post("/", requireAuth, sectorHandler.Create)
		sectors.Put("/:id", requireAuth, sectorHandler.Update)
		sectors.Delete("/:id", requireAuth, sectorHandler.Delete)
	}

	// Permutas
	permutas := api.Group("/permutas")
	permutaHandler := NewPermutaHandler(deps.PermutaUC)
	permutas.Get("/", permutaHandler.List)
	permutas.Get("/:id", permutaHandler.GetByID)
	permutas.Get("/:id/receipt", requireAuth, permutaHandler.Receipt)
	permutas.Post("/", requireAuth, permutaHandler.Create)
	permutas.Put("/:id", requireAuth, permutaHandler.Update)
	permutas.Put("/:id/status", requireAuth, permutaHandler.UpdateStatus)
	permutas.Delete("/:id", requireAuth, permutaHandler.Delete)

	// Messages (solo sesión de usuario)
	messages := api.Group("/messages", requireProvider)
	messageHandler := NewMessageHandler(deps.MessageUC)
	messages.Get("/", messageHandler.List)
	messages.Get("/:id", messageHandler.GetByID)
	messages.Post("/", messageHandler.Send)
	messages.Put("/:id/read", messageHandler.MarkAsRead)
	messages.Delete("/:id", messageHandler.Delete)

	// Activities (público)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	api.Get("/activities", activityHandler.List)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/stats", requireAuth, dashboardHandler.GetStats)
}
