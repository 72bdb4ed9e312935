// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"parcel/internal/delivery/http/middleware"
	"parcel/internal/delivery/http/router/handler"
	"parcel/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CourierHandler  *handler.CourierHandler
	OrderHandler    *handler.OrderHandler
	PricingHandler  *handler.PricingHandler
	ChatHandler     *handler.ChatHandler
	ProfileHandler  *handler.ProfileHandler
	TrackingHandler *handler.TrackingHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the three app
// surfaces: admin dashboard, customer app and driver app.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Admin dashboard session endpoints
	adminAuth := e.Group("/admin/auth")
	{
		adminAuth.POST("/login", p.AuthHandler.AdminLogin)
		adminAuth.POST("/refresh", p.AuthHandler.AdminRefresh)
	}

	// Admin dashboard, JWT-protected
	admin := e.Group("/admin")
	admin.Use(p.AuthMiddleware.AuthenticateAdmin)
	admin.Use(p.AuthMiddleware.RequireRole(string(entity.RoleAdmin)))
	{
		admin.POST("/auth/register", p.AuthHandler.AdminRegister)

		admin.POST("/couriers", p.CourierHandler.CreateCourier)
		admin.GET("/couriers", p.CourierHandler.ListCouriers)
		admin.GET("/couriers/:id", p.CourierHandler.GetCourier)
		admin.PATCH("/couriers/:id", p.CourierHandler.UpdateCourier)
		admin.PATCH("/couriers/:id/active", p.CourierHandler.SetCourierActive)
		admin.DELETE("/couriers/:id", p.CourierHandler.DeleteCourier)
		admin.GET("/couriers/:id/pricing", p.PricingHandler.GetCourierPricing)
		admin.PUT("/couriers/:id/pricing", p.PricingHandler.SaveCourierPricing)

		admin.POST("/drivers", p.CourierHandler.RegisterDriver)
		admin.GET("/drivers", p.CourierHandler.ListDrivers)
		admin.GET("/drivers/:id", p.CourierHandler.GetDriver)
		admin.POST("/drivers/:id/approve", p.CourierHandler.ApproveDriver)
		admin.POST("/drivers/:id/suspend", p.CourierHandler.SuspendDriver)

		admin.GET("/orders", p.OrderHandler.ListOrders)
		admin.GET("/orders/:id", p.OrderHandler.GetOrder)
		admin.POST("/orders/:id/cancel", p.OrderHandler.CancelOrder)
	}

	// Customer and driver app login (auth provider ID tokens)
	auth := e.Group("/auth")
	{
		auth.POST("/customer/login", p.AuthHandler.CustomerLogin)
		auth.POST("/driver/login", p.AuthHandler.DriverLogin)
	}

	// Customer app surface
	customer := e.Group("/customer")
	customer.Use(p.AuthMiddleware.AuthenticateUser(entity.RoleCustomer))
	{
		customer.GET("/me", p.AuthHandler.Me)
		customer.PATCH("/profile", p.ProfileHandler.UpdateProfile)

		customer.GET("/couriers", p.CourierHandler.ListActiveCouriers)
		customer.GET("/couriers/:id/quotes", p.PricingHandler.QuoteFares)

		customer.POST("/orders", p.OrderHandler.PlaceOrder)
		customer.GET("/orders", p.OrderHandler.ListOwnOrders)
		customer.GET("/orders/:id", p.OrderHandler.GetOwnOrder)
		customer.POST("/orders/:id/cancel", p.OrderHandler.CancelOwnOrder)
		customer.POST("/orders/:id/reschedule", p.OrderHandler.RescheduleOrder)
		customer.POST("/orders/:id/rate", p.OrderHandler.RateOrder)
		customer.GET("/orders/:id/qr", p.OrderHandler.CollectionQR)
		customer.GET("/orders/:id/location", p.TrackingHandler.GetLocation)
		customer.GET("/orders/:id/track", p.TrackingHandler.StreamLocation)
		customer.POST("/schedules/monitor", p.OrderHandler.MonitorSchedules)
		customer.DELETE("/schedules/monitor", p.OrderHandler.StopMonitoring)

		customer.POST("/payment-methods", p.ProfileHandler.AddPaymentMethod)
		customer.GET("/payment-methods", p.ProfileHandler.ListPaymentMethods)
		customer.DELETE("/payment-methods/:id", p.ProfileHandler.DeletePaymentMethod)

		customer.POST("/chats", p.ChatHandler.OpenRoom)
		customer.GET("/chats", p.ChatHandler.ListRooms)
		customer.POST("/chats/messages", p.ChatHandler.SendMessage)
		customer.GET("/chats/:roomId/messages", p.ChatHandler.ListMessages)
		customer.POST("/chats/:roomId/read", p.ChatHandler.MarkRead)
	}

	// Driver app surface
	driver := e.Group("/driver")
	driver.Use(p.AuthMiddleware.AuthenticateUser(entity.RoleDriver))
	{
		driver.GET("/me", p.AuthHandler.Me)
		driver.PATCH("/profile", p.ProfileHandler.UpdateProfile)
		driver.POST("/register", p.CourierHandler.RegisterSelf)
		driver.GET("/record", p.CourierHandler.GetOwnDriver)

		driver.GET("/orders/open", p.OrderHandler.ListOpenOrders)
		driver.GET("/orders", p.OrderHandler.ListAssignedOrders)
		driver.GET("/orders/:id", p.OrderHandler.GetDriverOrder)
		driver.POST("/orders/:id/accept", p.OrderHandler.AcceptOrder)
		driver.POST("/orders/:id/collect", p.OrderHandler.ConfirmCollection)
		driver.POST("/orders/:id/transit", p.OrderHandler.StartTransit)
		driver.POST("/orders/:id/deliver", p.OrderHandler.CompleteDelivery)

		driver.POST("/location", p.TrackingHandler.UpdateLocation)

		driver.POST("/chats", p.ChatHandler.OpenRoom)
		driver.GET("/chats", p.ChatHandler.ListRooms)
		driver.POST("/chats/messages", p.ChatHandler.SendMessage)
		driver.GET("/chats/:roomId/messages", p.ChatHandler.ListMessages)
		driver.POST("/chats/:roomId/read", p.ChatHandler.MarkRead)
	}
}
