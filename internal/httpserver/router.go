package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.Customers))
	router.POST("/login", loginHandler(deps.Customers))

	router.GET("/categories", listCategoriesHandler(deps.Categories))
	router.GET("/products", listProductsHandler(deps.Products))
	router.GET("/products/search", searchProductsHandler(deps.Products))
	router.GET("/products/:id", getProductHandler(deps.Products))
	router.GET("/products/:id/reviews", listProductReviewsHandler(deps.Reviews))

	router.POST("/coupons/validate", validateCouponHandler(deps.Coupons))

	me := router.Group("/me", authRequired(deps.Customers))
	{
		me.GET("", currentCustomerHandler())
		me.POST("/addresses", addAddressHandler(deps.Customers))
		me.GET("/payment-methods", listPaymentMethodsHandler(deps.PaymentMethods))
		me.POST("/payment-methods", savePaymentMethodHandler(deps.PaymentMethods))
		me.DELETE("/payment-methods/:id", deletePaymentMethodHandler(deps.PaymentMethods))
	}

	cart := router.Group("/cart", authRequired(deps.Customers))
	{
		cart.GET("", getCartHandler(deps.Carts))
		cart.POST("/items", addCartItemHandler(deps.Carts))
		cart.PATCH("/items/:id", changeCartItemHandler(deps.Carts))
	}

	wishlist := router.Group("/wishlist", authRequired(deps.Customers))
	{
		wishlist.GET("", listWishlistHandler(deps.Wishlists))
		wishlist.POST("", addWishlistHandler(deps.Wishlists))
		wishlist.DELETE("/:productId", removeWishlistHandler(deps.Wishlists))
	}

	checkout := router.Group("/checkout", authRequired(deps.Customers))
	{
		checkout.POST("", startCheckoutHandler(deps.Checkout))
		checkout.GET("", getCheckoutHandler(deps.Checkout))
		checkout.GET("/quote", quoteHandler(deps.Checkout))
		checkout.PUT("/shipping-address", setShippingAddressHandler(deps.Checkout))
		checkout.PUT("/saved-address", useSavedAddressHandler(deps.Checkout))
		checkout.POST("/coupon", applyCouponHandler(deps.Checkout))
		checkout.POST("/advance", advanceCheckoutHandler(deps.Checkout))
		checkout.POST("/back", backCheckoutHandler(deps.Checkout))
		checkout.POST("/order", placeOrderHandler(deps.Checkout))
	}

	orders := router.Group("/orders", authRequired(deps.Customers))
	{
		orders.GET("", listOrdersHandler(deps.Orders))
		orders.GET("/:id", getOrderHandler(deps.Orders))
	}

	router.POST("/reviews", authRequired(deps.Customers), submitReviewHandler(deps.Reviews))

	if deps.AdminToken != "" {
		admin := router.Group("/admin", adminRequired(deps.AdminToken))
		{
			admin.GET("/orders", adminListOrdersHandler(deps.Orders))
			admin.PATCH("/orders/:id/status", adminChangeOrderStatusHandler(deps.Orders))
			admin.GET("/reviews/pending", adminListPendingReviewsHandler(deps.Reviews))
			admin.POST("/reviews/:id/moderate", adminModerateReviewHandler(deps.Reviews))
		}
	}

	return router
}
