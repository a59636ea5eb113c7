package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/netbill-api/internal/application/analytics"
	"github.com/jhoicas/netbill-api/internal/application/auth"
	"github.com/jhoicas/netbill-api/internal/application/billing"
	"github.com/jhoicas/netbill-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	UserUC       *auth.UserUseCase
	PackageUC    *billing.PackageUseCase
	CustomerUC   *billing.CustomerUseCase
	PaymentUC    *billing.PaymentUseCase
	ApplyPayment *billing.ApplyPaymentUseCase
	GenerateUC   *billing.GenerateBillsUseCase
	ToggleUC     *billing.StatusToggleUseCase
	ImportUC     *billing.ImportSubscribersUseCase
	ReceiptUC    *billing.ReceiptUseCase
	DashboardUC  *analytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Rutas protegidas (requieren Bearer Token de tipo access)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Roles operativos: staff cobra, managers y admins administran.
	staffUp := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleStaff)
	managerUp := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Put("/:id", adminOnly, userHandler.Update)

	// Packages (protegido)
	packages := protected.Group("/packages")
	packageHandler := NewPackageHandler(deps.PackageUC)
	packages.Get("/", staffUp, packageHandler.List)
	packages.Get("/:id", staffUp, packageHandler.GetByID)
	packages.Post("/", managerUp, packageHandler.Create)
	packages.Put("/:id", managerUp, packageHandler.Update)
	packages.Delete("/:id", adminOnly, packageHandler.Deactivate)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.PaymentUC, deps.ToggleUC, deps.ImportUC)
	customers.Get("/", staffUp, customerHandler.List)
	customers.Post("/", managerUp, customerHandler.Create)
	customers.Post("/toggle-status", managerUp, customerHandler.ToggleStatus)
	customers.Post("/sync", adminOnly, customerHandler.Sync)
	customers.Get("/:id", staffUp, customerHandler.GetByID)
	customers.Put("/:id", managerUp, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Deactivate)
	customers.Get("/:id/payments", staffUp, customerHandler.ListPayments)

	// Payments (protegido)
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.ApplyPayment, deps.PaymentUC, deps.ReceiptUC)
	payments.Get("/", staffUp, paymentHandler.List)
	payments.Post("/", staffUp, paymentHandler.Create)
	payments.Get("/:id", staffUp, paymentHandler.GetByID)
	payments.Put("/:id", managerUp, paymentHandler.Update)
	payments.Delete("/:id", adminOnly, paymentHandler.Delete)
	payments.Get("/:id/receipt", staffUp, paymentHandler.Receipt)

	// Billing (protegido, corridas de facturación)
	billingGroup := protected.Group("/billing")
	billingHandler := NewBillingHandler(deps.GenerateUC, deps.PaymentUC)
	billingGroup.Post("/generate", managerUp, billingHandler.GenerateBills)
	billingGroup.Post("/realign-bill-amounts", adminOnly, billingHandler.RealignBillAmounts)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", staffUp, dashboardHandler.Summary)
}
