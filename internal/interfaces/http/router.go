package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/treasury"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain/entity"
	"github.com/jhoicas/Contable-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Contable-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	PartyUC     *usecase.PartyUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *inventory.InventoryUseCase
	InvoiceUC   *billing.InvoiceUseCase
	ReturnUC    *billing.ReturnUseCase
	AccountUC   *treasury.AccountUseCase
	VoucherUC   *treasury.VoucherUseCase
	TransferUC  *treasury.TransferUseCase
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *analytics.ReportUseCase
	Metrics     *metrics.Metrics // nil desactiva /metrics
	JWT         jwt.Config
}

// Grupos de roles usados por las rutas protegidas.
var (
	rolesAll       = []string{entity.RoleAdmin, entity.RoleContador, entity.RoleVendedor, entity.RoleBodeguero}
	rolesFinance   = []string{entity.RoleAdmin, entity.RoleContador}
	rolesSales     = []string{entity.RoleAdmin, entity.RoleContador, entity.RoleVendedor}
	rolesWarehouse = []string{entity.RoleAdmin, entity.RoleContador, entity.RoleBodeguero}
	rolesAdminOnly = []string{entity.RoleAdmin}
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de empresa pública: es el primer paso antes de registrar usuarios.
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	api.Post("/companies", companyHandler.Create)

	protected := api.Group("/", AuthMiddleware(deps.JWT))
	all := RequireRole(rolesAll...)
	finance := RequireRole(rolesFinance...)
	sales := RequireRole(rolesSales...)
	warehouse := RequireRole(rolesWarehouse...)
	admin := RequireRole(rolesAdminOnly...)

	companies := protected.Group("/companies", admin)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", idParam, companyHandler.GetByID)

	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", admin)
	users.Post("/", authHandler.CreateUser)
	users.Get("/", userHandler.List)
	users.Get("/:id", idParam, userHandler.GetByID)

	// Terceros
	customerHandler := NewPartyHandler(deps.PartyUC, entity.PartyKindCustomer)
	customers := protected.Group("/customers")
	customers.Get("/", sales, customerHandler.List)
	customers.Get("/:id", sales, idParam, customerHandler.GetByID)
	customers.Post("/", sales, customerHandler.Create)
	customers.Put("/:id", sales, idParam, customerHandler.Update)
	customers.Delete("/:id", finance, idParam, customerHandler.Delete)

	supplierHandler := NewPartyHandler(deps.PartyUC, entity.PartyKindSupplier)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", warehouse, supplierHandler.List)
	suppliers.Get("/:id", warehouse, idParam, supplierHandler.GetByID)
	suppliers.Post("/", warehouse, supplierHandler.Create)
	suppliers.Put("/:id", warehouse, idParam, supplierHandler.Update)
	suppliers.Delete("/:id", finance, idParam, supplierHandler.Delete)

	// Productos e inventario
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", all, productHandler.List)
	products.Get("/:id", all, idParam, productHandler.GetByID)
	products.Post("/", warehouse, productHandler.Create)
	products.Put("/:id", warehouse, idParam, productHandler.Update)
	products.Delete("/:id", warehouse, idParam, productHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv := protected.Group("/inventory", warehouse)
	inv.Post("/adjustments", inventoryHandler.CreateAdjustment)
	inv.Delete("/adjustments/:id", idParam, inventoryHandler.DeleteAdjustment)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/movements/:id", idParam, inventoryHandler.GetMovement)

	// Ventas
	salesInvoices := NewInvoiceHandler(deps.InvoiceUC, entity.InvoiceKindSales)
	salesReturns := NewReturnHandler(deps.ReturnUC, entity.InvoiceKindSales)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/invoices", sales, salesInvoices.Create)
	salesGroup.Get("/invoices", sales, salesInvoices.List)
	salesGroup.Get("/invoices/:id", sales, idParam, salesInvoices.GetByID)
	salesGroup.Get("/invoices/:id/returnable", sales, idParam, salesReturns.Returnable)
	salesGroup.Delete("/invoices/:id", finance, idParam, salesInvoices.Delete)
	salesGroup.Post("/returns", sales, salesReturns.Create)
	salesGroup.Get("/returns", sales, salesReturns.List)
	salesGroup.Get("/returns/:id", sales, idParam, salesReturns.GetByID)
	salesGroup.Delete("/returns/:id", finance, idParam, salesReturns.Delete)

	// Compras
	purchaseInvoices := NewInvoiceHandler(deps.InvoiceUC, entity.InvoiceKindPurchase)
	purchaseReturns := NewReturnHandler(deps.ReturnUC, entity.InvoiceKindPurchase)
	purchases := protected.Group("/purchases")
	purchases.Post("/invoices", warehouse, purchaseInvoices.Create)
	purchases.Get("/invoices", warehouse, purchaseInvoices.List)
	purchases.Get("/invoices/:id", warehouse, idParam, purchaseInvoices.GetByID)
	purchases.Get("/invoices/:id/returnable", warehouse, idParam, purchaseReturns.Returnable)
	purchases.Delete("/invoices/:id", finance, idParam, purchaseInvoices.Delete)
	purchases.Post("/returns", warehouse, purchaseReturns.Create)
	purchases.Get("/returns", warehouse, purchaseReturns.List)
	purchases.Get("/returns/:id", warehouse, idParam, purchaseReturns.GetByID)
	purchases.Delete("/returns/:id", finance, idParam, purchaseReturns.Delete)

	// Tesorería
	treasuryGroup := protected.Group("/treasury")
	for path, kind := range map[string]string{"/safes": entity.AccountKindSafe, "/banks": entity.AccountKindBank} {
		h := NewAccountHandler(deps.AccountUC, kind)
		g := treasuryGroup.Group(path)
		g.Get("/", all, h.List)
		g.Get("/:id", all, idParam, h.GetByID)
		g.Post("/", finance, h.Create)
		g.Put("/:id", finance, idParam, h.Update)
		g.Delete("/:id", finance, idParam, h.Deactivate)
	}

	receipts := NewVoucherHandler(deps.VoucherUC, entity.VoucherKindReceipt)
	treasuryGroup.Post("/receipts", sales, receipts.Create)
	treasuryGroup.Get("/receipts", sales, receipts.List)
	treasuryGroup.Get("/receipts/:id", sales, idParam, receipts.GetByID)
	treasuryGroup.Delete("/receipts/:id", finance, idParam, receipts.Delete)

	payments := NewVoucherHandler(deps.VoucherUC, entity.VoucherKindPayment)
	treasuryGroup.Post("/payments", finance, payments.Create)
	treasuryGroup.Get("/payments", finance, payments.List)
	treasuryGroup.Get("/payments/:id", finance, idParam, payments.GetByID)
	treasuryGroup.Delete("/payments/:id", finance, idParam, payments.Delete)

	transferHandler := NewTransferHandler(deps.TransferUC)
	treasuryGroup.Post("/transfers", finance, transferHandler.Create)
	treasuryGroup.Get("/transfers", finance, transferHandler.List)
	treasuryGroup.Delete("/transfers/:id", finance, idParam, transferHandler.Delete)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", all, dashboardHandler.GetSummary)

	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports")
	reports.Get("/parties/:id/statement", all, idParam, reportHandler.PartyStatement)
	reports.Get("/parties/:id/statement.xlsx", all, idParam, reportHandler.ExportPartyStatement)
	reports.Get("/stock", all, reportHandler.StockReport)
	reports.Get("/stock.xlsx", all, reportHandler.ExportStockReport)
	reports.Get("/accounts/:id/ledger", finance, idParam, reportHandler.AccountLedger)
	reports.Get("/integrity", finance, reportHandler.IntegrityCheck)
}
