// Package router contains routing and server setup for the HTTP delivery.
// Every protected route declares its access policy here, next to its
// registration; no handler re-checks roles.
package router

import (
	"readreach/internal/delivery/http/middleware"
	"readreach/internal/delivery/http/router/handler"
	"readreach/internal/domain/authz"
	"readreach/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	BookHandler     *handler.BookHandler
	UserHandler     *handler.UserHandler
	OrderHandler    *handler.OrderHandler
	PaymentHandler  *handler.PaymentHandler
	CheckoutHandler *handler.CheckoutHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	books    *handler.BookHandler
	users    *handler.UserHandler
	orders   *handler.OrderHandler
	payments *handler.PaymentHandler
	checkout *handler.CheckoutHandler
	auth     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		books:    params.BookHandler,
		users:    params.UserHandler,
		orders:   params.OrderHandler,
		payments: params.PaymentHandler,
		checkout: params.CheckoutHandler,
		auth:     params.AuthMiddleware,
	}
}

// Route policies. Ownership-scoped listings pin the email parameter to the
// caller so one account cannot read another's records by swapping it.
var (
	adminOnly = authz.Policy{
		Roles: entity.Roles{entity.RoleAdmin},
	}
	librarianOnly = authz.Policy{
		Roles: entity.Roles{entity.RoleLibrarian},
	}
	librarianOwn = authz.Policy{
		Roles:     entity.Roles{entity.RoleLibrarian},
		Ownership: authz.OwnEmailQuery,
	}
	librarianOrAdmin = authz.Policy{
		Roles: entity.Roles{entity.RoleLibrarian, entity.RoleAdmin},
	}
	purchaserOnly = authz.Policy{
		Roles: entity.Roles{entity.RoleUser},
	}
	purchaserOwn = authz.Policy{
		Roles:     entity.Roles{entity.RoleUser},
		Ownership: authz.OwnEmailQuery,
	}
	anyAccountOwn = authz.Policy{
		Roles:     entity.Roles{entity.RoleUser, entity.RoleLibrarian, entity.RoleAdmin},
		Ownership: authz.OwnEmailQuery,
	}
)

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)

	// Public catalog
	e.GET("/all-books", r.books.ListPublished)
	e.GET("/latest-book", r.books.Latest)
	e.GET("/bookById/:id", r.books.GetByID)

	// Public order widgets and placement
	e.GET("/recent-orders", r.orders.Recent)
	e.GET("/three-orders", r.orders.Three)
	e.GET("/delivered-orders", r.orders.Delivered)
	e.POST("/order", r.orders.Place)

	// Registration happens before an account exists, so it stays open.
	e.POST("/users", r.users.Register)

	// Checkout and settlement. The webhook authenticates by signature, the
	// status route re-reads the session from the processor.
	e.POST("/create-checkout-session", r.checkout.CreateSession)
	e.POST("/webhooks/stripe", r.checkout.Webhook)
	e.GET("/payment-status/:sessionId", r.payments.Status)
	e.GET("/checkout-qr", r.checkout.QR)

	// Everything below requires a verified credential and a resolved
	// account.
	protected := e.Group("", r.auth.Authenticate)

	protected.GET("/books", r.books.ListAll, r.auth.Authorize(adminOnly))
	protected.GET("/librarian-book", r.books.ListByLibrarian, r.auth.Authorize(librarianOwn))
	protected.POST("/add-book", r.books.Add, r.auth.Authorize(librarianOnly))
	protected.PATCH("/book-update/:bookId", r.books.Update, r.auth.Authorize(librarianOnly))
	protected.PATCH("/publish-status-update/:bookId", r.books.UpdatePublishedStatus, r.auth.Authorize(librarianOrAdmin))
	protected.DELETE("/delete-book/:bookId", r.books.Delete, r.auth.Authorize(adminOnly))

	protected.GET("/user", r.users.Get, r.auth.Authorize(anyAccountOwn))
	protected.GET("/users", r.users.List, r.auth.Authorize(adminOnly))
	protected.GET("/fetch-role-based-user", r.users.ListByRole, r.auth.Authorize(adminOnly))
	protected.PATCH("/update-user-role", r.users.UpdateRole, r.auth.Authorize(adminOnly))

	protected.GET("/all-orders", r.orders.ListAll, r.auth.Authorize(adminOnly))
	protected.GET("/orders", r.orders.ListByEmail, r.auth.Authorize(purchaserOwn))
	protected.GET("/librarian-orders", r.orders.ListByLibrarian, r.auth.Authorize(librarianOwn))
	protected.PATCH("/order-status/:orderId", r.orders.Cancel, r.auth.Authorize(purchaserOnly))
	protected.PATCH("/update-order-status/:orderId", r.orders.UpdateStatus, r.auth.Authorize(librarianOnly))

	protected.GET("/all-payments", r.payments.ListAll, r.auth.Authorize(adminOnly))
	protected.GET("/payments", r.payments.ListByEmail, r.auth.Authorize(purchaserOwn))
}
