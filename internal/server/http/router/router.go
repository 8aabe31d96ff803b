package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/virebo/lanthandel/internal/server/http/handlers"
	"github.com/virebo/lanthandel/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	sellerHandler := handlers.NewSellerHandler(facade)
	productHandler := handlers.NewProductHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	addressHandler := handlers.NewAddressHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)

	customerAuth := middleware.AuthRequired(facade)
	sellerAuth := middleware.SellerRequired(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.GET("/is-auth", customerAuth, authHandler.IsAuth)
	user.GET("/logout", authHandler.Logout)

	seller := api.Group("/seller")
	seller.POST("/login", sellerHandler.Login)
	seller.GET("/is-auth", sellerAuth, sellerHandler.IsAuth)
	seller.GET("/logout", sellerHandler.Logout)

	product := api.Group("/product")
	product.GET("/list", productHandler.List)
	product.GET("/id/:id", productHandler.Get)
	product.POST("/add", sellerAuth, productHandler.Add)
	product.POST("/update", sellerAuth, productHandler.Update)
	product.POST("/stock", sellerAuth, productHandler.ChangeStock)
	product.POST("/delete", sellerAuth, productHandler.Delete)

	api.POST("/cart/update", customerAuth, cartHandler.Update)

	address := api.Group("/address", customerAuth)
	address.POST("/add", addressHandler.Add)
	address.GET("/get", addressHandler.List)

	order := api.Group("/order")
	order.POST("/cod", customerAuth, orderHandler.PlaceCOD)
	order.POST("/stripe", customerAuth, orderHandler.PlaceOnline)
	order.GET("/user", customerAuth, orderHandler.UserOrders)
	order.GET("/status/:orderId", customerAuth, orderHandler.OrderState)
	order.GET("/seller", sellerAuth, orderHandler.SellerOrders)
	order.PUT("/:orderId", sellerAuth, orderHandler.UpdateStatus)
	order.PUT("/:orderId/cod-status", sellerAuth, orderHandler.UpdateCODStatus)
	order.DELETE("/:orderId", sellerAuth, orderHandler.Delete)

	engine.POST("/webhook", webhookHandler.Receive)

	return engine
}
