package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/binhminh2409/WebXeDapApi/internal/http/handlers"
	"github.com/binhminh2409/WebXeDapApi/internal/http/middleware"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/comments"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/orders"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/payments"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/products"
	"github.com/binhminh2409/WebXeDapApi/internal/modules/users"
	"github.com/binhminh2409/WebXeDapApi/internal/storage"
)

func NewRouter(logger *slog.Logger, db *gorm.DB, store storage.Storage) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	// ErrorHandler wraps Recovery so a recovered panic still gets a JSON response.
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.Recovery(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ph := handlers.NewProductsHandler(products.NewService(db, store))
	oh := handlers.NewOrdersHandler(orders.NewService(db))
	pay := handlers.NewPaymentsHandler(payments.NewService(db))
	ch := handlers.NewCommentsHandler(comments.NewService(db))
	uh := handlers.NewUsersHandler(users.NewService(db), users.NewRepo(db))

	api := r.Group("/api")
	{
		api.POST("/users", uh.Register)
		api.GET("/users/:id", uh.Show)

		api.GET("/products", ph.List)
		api.GET("/products/search", ph.Search)
		api.GET("/products/brand", ph.ByBrand)
		api.GET("/products/category", ph.ByCategory)
		api.GET("/products/collection/:name", ph.ByCollection)
		api.GET("/products/price-range", ph.ByPriceRange)
		api.GET("/products/discounted", ph.Discounted)
		api.GET("/products/:id", ph.Show)
		api.GET("/products/:id/image", ph.Image)
		api.POST("/products", ph.Create)
		api.PUT("/products/:id", ph.Update)
		api.DELETE("/products/:id", ph.Delete)

		api.GET("/products/:id/comments", ch.ListByProduct)
		api.GET("/comments", ch.List)
		api.POST("/comments", ch.Create)
		api.GET("/users/:id/comments", ch.ListByUser)

		api.POST("/orders", oh.Place)
		api.GET("/orders/:id", oh.Detail)
		api.GET("/users/:id/orders", oh.ListByUser)

		api.POST("/payments", pay.Create)
		api.GET("/payments", pay.List)
		api.GET("/users/:id/payments", pay.ListByUser)
		api.POST("/payments/:id/confirm", pay.Confirm)
		api.PUT("/payments/:id/status", pay.UpdateStatus)
	}

	return r
}
