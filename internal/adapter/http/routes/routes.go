package routes

import (
	"time"

	_ "handcrafted_gifts/docs"
	"handcrafted_gifts/internal/adapter/http/handlers"
	"handcrafted_gifts/internal/adapter/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const PathV1 = "/v1"

// Options configure the router. Nil handlers leave their routes out.
type Options struct {
	AdminToken     string
	AllowedOrigins []string
	Swagger        bool
}

// Handlers groups every HTTP handler the router mounts. MockPayments is only
// set when the payment gateway runs in mock mode.
type Handlers struct {
	Products     *handlers.ProductHandler
	Orders       *handlers.OrderHandler
	Checkout     *handlers.CheckoutHandler
	Contact      *handlers.ContactHandler
	OrderStream  *handlers.OrderStreamHandler
	MockPayments *handlers.MockPaymentHandler
}

// NewRouter builds the gin engine with public storefront routes under /v1 and
// the token protected admin routes under /v1/admin.
func NewRouter(opts Options, h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, opts)

	if opts.Swagger {
		// Swagger documentation endpoint
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := router.Group(PathV1)
	addPingRoutes(v1)
	addStorefrontRoutes(v1, h)

	admin := v1.Group(PathAdmin, middleware.AdminAuth(opts.AdminToken))
	addAdminRoutes(admin, h)

	return router
}

func setMiddlewares(router *gin.Engine, opts Options) {
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", handlers.Ping)
}
