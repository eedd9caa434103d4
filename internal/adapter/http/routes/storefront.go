package routes

import (
	"github.com/gin-gonic/gin"
)

const (
	PathProducts = "/products"
	PathCheckout = "/checkout"
	PathOrders   = "/orders"
	PathContact  = "/contact"
	PathPayments = "/payments"
)

func addStorefrontRoutes(rg *gin.RouterGroup, h Handlers) {
	if h.Products != nil {
		products := rg.Group(PathProducts)
		{
			products.GET("", h.Products.ListProducts)
			products.GET("/:id", h.Products.GetProduct)
		}
	}

	if h.Checkout != nil {
		checkout := rg.Group(PathCheckout)
		{
			checkout.POST("", h.Checkout.StartCheckout)
			checkout.GET("/:session_id", h.Checkout.GetCheckout)
			checkout.PATCH("/:session_id", h.Checkout.UpdateCheckout)
			checkout.POST("/:session_id/next", h.Checkout.NextStep)
			checkout.POST("/:session_id/back", h.Checkout.PreviousStep)
			checkout.POST("/:session_id/pay", h.Checkout.InitiatePayment)
			checkout.POST("/:session_id/confirm", h.Checkout.ConfirmPayment)
			checkout.POST("/:session_id/dismiss", h.Checkout.DismissPayment)
			checkout.POST("/:session_id/direct-message", h.Checkout.DirectMessage)
		}
	}

	if h.Orders != nil {
		orders := rg.Group(PathOrders)
		{
			orders.POST("", h.Orders.CreateOrder)
			orders.POST("/:id/verify", h.Orders.VerifyPayment)
			orders.GET("/track/:order_number", h.Orders.TrackOrder)
		}
	}

	if h.Contact != nil {
		rg.POST(PathContact, h.Contact.SubmitContact)
	}

	if h.MockPayments != nil {
		rg.POST(PathPayments+"/mock/sign", h.MockPayments.SignPayment)
	}
}
