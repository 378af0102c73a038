package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rectificadora-api/internal/application/auth"
	"github.com/jhoicas/rectificadora-api/internal/application/taller"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	MotorUC     *taller.MotorUseCase
	WorkUC      *taller.WorkUseCase
	PartUC      *taller.PartUseCase
	ChecklistUC *taller.ChecklistUseCase
	SummaryUC   *taller.SummaryUseCase
	ExportUC    *taller.ExportUseCase
	HistoryUC   *taller.HistoryUseCase
	Mailer      featureChecker

	// Con AuthEnabled=false las rutas actúan como AnonUser con rol admin.
	AuthEnabled bool
	AnonUser    string
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (Bearer Token si la autenticación está activa)
	guard := AnonymousMiddleware(deps.AnonUser, auth.RoleAdmin)
	if deps.AuthEnabled {
		guard = AuthMiddleware(deps.JWTSecret)
	}
	protected := api.Group("/", guard)

	// Motores
	motores := protected.Group("/motores")
	motorHandler := NewMotorHandler(deps.MotorUC)
	motores.Get("/", motorHandler.List)
	motores.Post("/entrada", motorHandler.Intake)
	motores.Get("/siguiente-numero", motorHandler.NextNumber)
	motores.Get("/:id", motorHandler.Get)
	motores.Put("/:id", motorHandler.Update)
	motores.Post("/:id/finalizar", motorHandler.Finalize)
	motores.Post("/:id/salida", motorHandler.RegisterExit)
	motores.Delete("/:id", RequireRole(auth.RoleAdmin), motorHandler.Delete)

	// Trabajos
	workHandler := NewWorkHandler(deps.WorkUC)
	motores.Get("/:id/trabajos", workHandler.List)
	motores.Post("/:id/trabajos", workHandler.Create)
	trabajos := protected.Group("/trabajos")
	trabajos.Put("/:id", workHandler.Update)
	trabajos.Delete("/:id", workHandler.Delete)
	trabajos.Post("/:id/finalizar", workHandler.Finalize)

	// Ítems
	partHandler := NewPartHandler(deps.PartUC)
	motores.Get("/:id/items", partHandler.List)
	motores.Post("/:id/items", partHandler.Create)
	protected.Delete("/items/:id", partHandler.Delete)

	// Checklist
	checklistHandler := NewChecklistHandler(deps.ChecklistUC)
	protected.Get("/checklist/catalogo", checklistHandler.Catalog)
	motores.Get("/:id/checklist", checklistHandler.Get)
	motores.Put("/:id/checklist", checklistHandler.Replace)
	motores.Get("/:id/checklist/vista", checklistHandler.View)

	// Resumen
	summaryHandler := NewSummaryHandler(deps.SummaryUC)
	motores.Get("/:id/resumen", summaryHandler.Get)
	motores.Post("/:id/resumen/preview", summaryHandler.Preview)

	// Exportación
	exportHandler := NewExportHandler(deps.ExportUC)
	motores.Post("/:id/exportar", exportHandler.Export)
	motores.Post("/:id/exportar/email", RequireFeature("correo", deps.Mailer), exportHandler.Email)
	protected.Get("/exportaciones/:nombre", exportHandler.Download)

	// Historial
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	protected.Get("/historial", historyHandler.List)
	protected.Get("/historial/export.xlsx", RequireRole(auth.RoleAdmin), historyHandler.Export)
}
