package routes

import (
	"github.com/gin-gonic/gin"
)

const PathAdmin = "/admin"

func addAdminRoutes(rg *gin.RouterGroup, h Handlers) {
	if h.Products != nil {
		products := rg.Group(PathProducts)
		{
			products.GET("", h.Products.ListAllProducts)
			products.POST("", h.Products.CreateProduct)
			products.PUT("/:id", h.Products.UpdateProduct)
			products.DELETE("/:id", h.Products.DeleteProduct)
		}
		rg.POST("/uploads", h.Products.UploadImage)
	}

	if h.Orders != nil {
		orders := rg.Group(PathOrders)
		{
			orders.GET("", h.Orders.ListOrders)
			orders.POST("", h.Orders.CreateDirectOrder)
			if h.OrderStream != nil {
				orders.GET("/stream", h.OrderStream.StreamOrders)
			}
			orders.GET("/:id", h.Orders.GetOrder)
			orders.PATCH("/:id", h.Orders.PatchOrder)
			orders.PUT("/:id/status", h.Orders.UpdateOrderStatus)
			orders.DELETE("/:id", h.Orders.DeleteOrder)
		}
	}
}
