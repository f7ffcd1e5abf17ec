package routes

import (
	"time"

	"membership/handlers"
	"membership/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all endpoints.
func RegisterRoutes(
	r *gin.Engine,
	memberHandler *handlers.MemberHandler,
	invoiceHandler *handlers.InvoiceHandler,
	paypalHandler *handlers.PaypalHandler,
	adminHandler *handlers.AdminHandler,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Stripe-Public-Key", "Paypal-Server-Url", "Paypal-Return-Url", "Paypal-Email"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		// Membership sign-up and renewal.
		api.POST("/members", memberHandler.NewMemberHandler)
		api.POST("/members/update", memberHandler.UpdateMemberHandler)
		api.GET("/members/verify/:hash", memberHandler.VerifyMemberHandler)
		api.GET("/members/renew/:hash", memberHandler.RenewPageHandler)
		api.POST("/renew", memberHandler.RenewMemberHandler)

		// Payments.
		api.POST("/invoices/update", invoiceHandler.UpdateInvoiceHandler)
		api.POST("/payments/paypal", paypalHandler.HandleIPN)

		// Back office.
		api.POST("/login", adminHandler.LoginHandler)
		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.GET("/members", adminHandler.MembersListHandler)
		admin.GET("/invoices/unaccepted", invoiceHandler.UnconfirmedPaymentsHandler)
		admin.POST("/invoices/unaccepted/:reference", invoiceHandler.AcceptPaymentHandler)
	}
}
