package routes

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/anthemnandani/projec-traking-system-backend/controllers"
	"github.com/anthemnandani/projec-traking-system-backend/middleware"
	"github.com/anthemnandani/projec-traking-system-backend/services"
)

type Controllers struct {
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Clients  *controllers.ClientController
	Tasks    *controllers.TaskController
	Invoices *controllers.InvoiceController
	Payments *controllers.PaymentController
	Webhooks *controllers.WebhookController
}

// Register mounts the API. The Stripe webhook sits outside auth: Stripe
// authenticates by signature, not by bearer token.
func Register(engine *gin.Engine, tokens *services.TokenService, ctrl Controllers) {
	api := engine.Group("/api")

	authLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)
	auth := api.Group("/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.Refresh)
		auth.POST("/logout", ctrl.Auth.Logout)
		auth.POST("/forgot-password", ctrl.Auth.ForgotPassword)
		auth.POST("/reset-password", ctrl.Auth.ResetPassword)
	}

	api.POST("/payments/webhook", ctrl.Webhooks.StripeWebhook)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(tokens))
	{
		authed.GET("/users/me", ctrl.Users.Me)

		clients := authed.Group("/clients")
		{
			clients.GET("", ctrl.Clients.GetClients)
			clients.GET("/:id", ctrl.Clients.GetClient)
			clients.POST("", middleware.RequireAdmin(), ctrl.Clients.CreateClient)
			clients.PUT("/:id", middleware.RequireAdmin(), ctrl.Clients.UpdateClient)
			clients.PUT("/:id/status", middleware.RequireAdmin(), ctrl.Clients.UpdateClientStatus)
			clients.DELETE("/:id", middleware.RequireAdmin(), ctrl.Clients.DeleteClient)
			clients.POST("/:id/account", middleware.RequireAdmin(), ctrl.Clients.CreateAccount)
			clients.POST("/:id/resend-credentials", middleware.RequireAdmin(), ctrl.Clients.ResendCredentials)
		}

		tasks := authed.Group("/tasks")
		{
			tasks.GET("", ctrl.Tasks.GetTasks)
			tasks.POST("", middleware.RequireAdmin(), ctrl.Tasks.CreateTask)
			tasks.PUT("/:id", middleware.RequireAdmin(), ctrl.Tasks.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireAdmin(), ctrl.Tasks.DeleteTask)
		}

		invoices := authed.Group("/invoices")
		{
			invoices.GET("", ctrl.Invoices.GetInvoices)
			invoices.POST("", middleware.RequireAdmin(), ctrl.Invoices.CreateInvoice)
			invoices.PUT("/:id", middleware.RequireAdmin(), ctrl.Invoices.UpdateInvoice)
			invoices.DELETE("/:id", middleware.RequireAdmin(), ctrl.Invoices.DeleteInvoice)
		}

		payments := authed.Group("/payments")
		{
			payments.GET("", ctrl.Payments.GetPayments)
			payments.POST("", middleware.RequireAdmin(), ctrl.Payments.CreatePayment)
			payments.PUT("/:id", middleware.RequireAdmin(), ctrl.Payments.UpdatePayment)
			payments.DELETE("/:id", middleware.RequireAdmin(), ctrl.Payments.DeletePayment)
			payments.POST("/create-checkout-session", ctrl.Payments.CreateCheckoutSession)
			payments.POST("/verify", ctrl.Payments.VerifyPayment)
		}
	}
}
