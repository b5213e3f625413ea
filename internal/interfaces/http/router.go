package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MohamedNAGYYS/erp-system/internal/application/catalog"
	"github.com/MohamedNAGYYS/erp-system/internal/application/party"
	"github.com/MohamedNAGYYS/erp-system/internal/application/purchasing"
	"github.com/MohamedNAGYYS/erp-system/internal/application/sales"
	"github.com/MohamedNAGYYS/erp-system/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	CatalogUC    *catalog.UseCase
	PartyUC      *party.UseCase
	SalesUC      *sales.UseCase
	PurchasingUC *purchasing.UseCase
	JWTSecret    string
}

// Router registers the API routes.
//
// Every role can read; writes are gated per area. Admin passes every gate.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Health (public)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Protected routes (require Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	catalogWrite := RequireRole(entity.RoleInventory, entity.RoleManager)
	salesWrite := RequireRole(entity.RoleSales, entity.RoleManager)
	purchaseWrite := RequireRole(entity.RolePurchase, entity.RoleManager)
	partyWrite := RequireRole(entity.RoleSales, entity.RolePurchase, entity.RoleManager)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CatalogUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/slug/:slug", categoryHandler.GetBySlug)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", catalogWrite, categoryHandler.Create)
	categories.Put("/:id", catalogWrite, categoryHandler.Update)
	categories.Delete("/:id", catalogWrite, categoryHandler.Delete)

	// Products, stock adjustments and the movement ledger
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", productHandler.ListMovements)
	products.Post("/", catalogWrite, productHandler.Create)
	products.Put("/:id", catalogWrite, productHandler.Update)
	products.Delete("/:id", catalogWrite, productHandler.Delete)
	products.Post("/:id/adjust-stock", catalogWrite, productHandler.AdjustStock)

	// Ledger by order number
	protected.Get("/stock-movements/:reference", productHandler.ListMovementsByReference)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.PartyUC, deps.SalesUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/orders", customerHandler.ListOrders)
	customers.Post("/", partyWrite, customerHandler.Create)
	customers.Put("/:id", partyWrite, customerHandler.Update)
	customers.Delete("/:id", partyWrite, customerHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.PartyUC, deps.PurchasingUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Get("/:id/orders", supplierHandler.ListOrders)
	suppliers.Post("/", partyWrite, supplierHandler.Create)
	suppliers.Put("/:id", partyWrite, supplierHandler.Update)
	suppliers.Delete("/:id", partyWrite, supplierHandler.Delete)

	// Sales orders
	salesOrders := protected.Group("/sales-orders")
	salesOrderHandler := NewSalesOrderHandler(deps.SalesUC)
	salesOrders.Get("/", salesOrderHandler.List)
	salesOrders.Get("/number/:number", salesOrderHandler.GetByNumber)
	salesOrders.Get("/:id", salesOrderHandler.GetByID)
	salesOrders.Post("/", salesWrite, salesOrderHandler.Create)
	salesOrders.Post("/:id/items", salesWrite, salesOrderHandler.AddItem)
	salesOrders.Put("/:id/status", salesWrite, salesOrderHandler.SetStatus)

	// Purchase orders
	purchaseOrders := protected.Group("/purchase-orders")
	purchaseOrderHandler := NewPurchaseOrderHandler(deps.PurchasingUC)
	purchaseOrders.Get("/", purchaseOrderHandler.List)
	purchaseOrders.Get("/number/:number", purchaseOrderHandler.GetByNumber)
	purchaseOrders.Get("/:id", purchaseOrderHandler.GetByID)
	purchaseOrders.Get("/:id/pdf", purchaseOrderHandler.DownloadPDF)
	purchaseOrders.Post("/", purchaseWrite, purchaseOrderHandler.Create)
	purchaseOrders.Post("/:id/items", purchaseWrite, purchaseOrderHandler.AddItem)
	purchaseOrders.Put("/:id/status", purchaseWrite, purchaseOrderHandler.SetStatus)
}
