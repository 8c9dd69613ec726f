package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-storefront/internal/application/admin"
	"github.com/jhoicas/autoparts-storefront/internal/application/cart"
	"github.com/jhoicas/autoparts-storefront/internal/application/catalog"
	"github.com/jhoicas/autoparts-storefront/internal/application/checkout"
	"github.com/jhoicas/autoparts-storefront/internal/application/orders"
	"github.com/jhoicas/autoparts-storefront/internal/application/payment"
	"github.com/jhoicas/autoparts-storefront/internal/application/session"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
	"github.com/jhoicas/autoparts-storefront/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions  *session.Manager
	State     repository.StateStore
	CartGW    cart.Gateway
	Catalog   *catalog.Service
	Checkout  *checkout.Service
	Confirmer payment.Confirmer
	Dashboard *payment.Dashboard
	Orders    *orders.Service
	Admin     *admin.Service
	Payment   PaymentOptions
	Tokens    TokenConfig
	Limiter   *LoginLimiter
	Locker    *session.Locker
	// Payments opcional; si es nil se construye con Confirmer, Dashboard y Payment.
	Payments *PaymentHandler
}

// roles con cuenta en el backend.
var registeredRoles = []string{
	entity.RoleCliente, entity.RoleEmpresa, entity.RoleDistribuidor, entity.RoleBodeguero, entity.RoleAdmin,
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	locker := deps.Locker
	if locker == nil {
		locker = session.NewLocker()
	}
	cartHandler := NewCartHandler(deps.State, deps.CartGW, locker)
	authHandler := NewAuthHandler(deps.Sessions, cartHandler, locker, deps.Tokens, deps.Limiter)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, cartHandler)
	paymentHandler := deps.Payments
	if paymentHandler == nil {
		paymentHandler = NewPaymentHandler(deps.Confirmer, deps.Dashboard, locker, deps.Payment)
	}
	orderHandler := NewOrderHandler(deps.Orders)
	adminHandler := NewAdminHandler(deps.Admin)
	inventoryHandler := NewInventoryHandler(deps.Admin)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/guest", authHandler.Guest)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", OptionalAuth(deps.Tokens.Secret), authHandler.Login)

	// Catálogo (público)
	api.Get("/catalogo", catalogHandler.Browse)
	api.Get("/catalogo/:id", catalogHandler.GetProduct)

	// Rutas con sesión (invitado o usuario)
	withSession := []fiber.Handler{AuthMiddleware(deps.Tokens.Secret), LoadSession(deps.Sessions)}
	protected := api.Group("/", withSession...)

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/me", RequireRole(registeredRoles...), authHandler.UpdateProfile)

	carrito := protected.Group("/carrito")
	carrito.Get("/", cartHandler.Get)
	carrito.Delete("/", cartHandler.Clear)
	carrito.Post("/items", cartHandler.AddItem)
	carrito.Put("/items/:productId", cartHandler.UpdateQuantity)
	carrito.Delete("/items/:productId", cartHandler.RemoveItem)
	carrito.Post("/refrescar", cartHandler.Refresh)

	protected.Post("/checkout", checkoutHandler.Submit)
	protected.Get("/checkout/estado", checkoutHandler.State)

	pagos := protected.Group("/pagos/simulador", RequireRole(registeredRoles...))
	pagos.Post("/", paymentHandler.Simulate)
	pagos.Post("/reintentar", paymentHandler.Retry)
	pagos.Post("/volver", paymentHandler.BackToCart)
	pagos.Post("/cancelar", paymentHandler.Cancel)

	pedidos := protected.Group("/pedidos", RequireRole(registeredRoles...))
	pedidos.Get("/", orderHandler.Mine)
	pedidos.Get("/:id", orderHandler.Get)
	pedidos.Get("/:id/comprobante", orderHandler.Receipt)
	pedidos.Get("/:id/qr", orderHandler.TrackingQR)

	// Back-office. Las rutas fijas van antes de las genéricas /:panel.
	adminGroup := protected.Group("/admin")

	inventario := adminGroup.Group("/inventario", RequireRole(entity.RoleAdmin, entity.RoleBodeguero))
	inventario.Get("/", inventoryHandler.List)
	inventario.Post("/ingresar", inventoryHandler.AddStock)
	inventario.Post("/rebajar", inventoryHandler.RemoveStock)
	inventario.Delete("/:productId/:branchId", inventoryHandler.DeleteRow)

	onlyAdmin := RequireRole(entity.RoleAdmin)
	adminGroup.Get("/transbank/estadisticas", onlyAdmin, paymentHandler.Stats)
	adminGroup.Put("/pedidos/:id/estado", onlyAdmin, orderHandler.UpdateStatus)
	adminGroup.Get("/:panel", onlyAdmin, adminHandler.List)
	adminGroup.Post("/:panel", onlyAdmin, adminHandler.Create)
	adminGroup.Put("/:panel/:id", onlyAdmin, adminHandler.Update)
	adminGroup.Delete("/:panel/:id", onlyAdmin, adminHandler.Delete)
}
