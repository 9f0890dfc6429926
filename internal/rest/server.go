// Package rest exposes the shop's services as a JSON HTTP API on gin.
package rest

import (
	"context"
	"net/http"

	"stockstores-be/internal/address"
	"stockstores-be/internal/order"
	"stockstores-be/internal/product"
	"stockstores-be/internal/review"
	"stockstores-be/internal/store"
	"stockstores-be/internal/upload"
	"stockstores-be/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Seeder interface {
	Users(ctx context.Context) ([]user.User, error)
}

// Services groups everything the handlers call into.
type Services struct {
	Users    user.Service
	Stores   store.Service
	Products product.Service
	Reviews  review.Service
	Orders   order.Service
	Shipping address.Service
	Uploads  upload.Service
	Seed     Seeder
}

type Options struct {
	AllowedOrigins []string
	Production     bool
}

type Server struct {
	router *gin.Engine
	svc    Services
}

func NewServer(opts Options, svc Services) *Server {
	if opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = 2 << 20

	corsCfg := cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "X-Device-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
	}
	if len(opts.AllowedOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	router.Use(cors.New(corsCfg))

	s := &Server{router: router, svc: svc}
	s.setupRoutes()
	return s
}

// Handler returns the gin engine; the process wraps it with the request
// id, access log, auth and rate limit middleware.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	r := s.router

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to StockStores API")
	})
	r.GET("/seed", s.seedUsers)

	users := r.Group("/users")
	{
		users.POST("/signup", s.signup)
		users.POST("/login", s.login)
		users.POST("/forgot-password", s.forgotPassword)
		users.POST("/reset-password", s.resetPassword)
		users.PUT("/update/:id", requireAuth, s.updateUser)
	}

	stores := r.Group("/stores")
	{
		stores.GET("/", s.listStores)
		stores.GET("/find/:storeId", s.getStore)
		stores.GET("/seller/:sellerId", s.listSellerStores)
		stores.GET("/:storeSlug", s.getStoreBySlug)
		stores.POST("/create", requireAuth, s.createStore)
		stores.PUT("/update/:storeId", requireAuth, s.updateStore)
		stores.PUT("/update-seller", requireAuth, s.syncSeller)
		stores.DELETE("/delete/:storeId", requireAuth, s.deleteStore)
	}

	shipping := r.Group("/shipping", requireAuth)
	{
		shipping.GET("/:userId", s.listAddresses)
		shipping.POST("/create", s.createAddress)
		shipping.PUT("/update/:id", s.updateAddress)
		shipping.DELETE("/delete/:id", s.deleteAddress)
	}

	// gin needs one wildcard name per segment: ":ref" is a store id under
	// /all and a product slug on its own.
	products := r.Group("/products")
	{
		products.GET("/store-slug/:storeSlug", s.listProductsByStoreSlug)
		products.GET("/:ref/all", s.listProducts)
		products.GET("/:ref", s.getProductBySlug)
		products.POST("/create", requireAuth, s.createProduct)
		products.PUT("/update/:productId", requireAuth, s.updateProduct)
		products.DELETE("/delete/:productId", requireAuth, s.deleteProduct)
	}

	reviews := r.Group("/reviews")
	{
		reviews.GET("/:productId/all", s.listReviews)
		reviews.POST("/create", requireAuth, s.createReview)
		reviews.PUT("/update/:reviewId", requireAuth, s.updateReview)
		reviews.PUT("/update-user", requireAuth, s.syncReviewer)
		reviews.DELETE("/delete/:reviewId", requireAuth, s.deleteReview)
	}

	orders := r.Group("/orders")
	{
		orders.GET("/:orderId", s.getOrder)
		orders.GET("/user/:userId", s.listUserOrders)
		orders.GET("/store/:storeId", s.listStoreOrders)
		orders.GET("/store-slug/:storeSlug", s.listStoreOrdersBySlug)
		orders.POST("/create", requireAuth, s.createOrder)
		orders.PUT("/update/:orderId", requireAuth, s.updateOrder)
		orders.PUT("/update-store", requireAuth, s.syncStore)
	}

	r.POST("/upload/user/:userId", requireAuth, s.uploadUserPicture)
}
