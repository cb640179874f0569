package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/nexuscart/nexuscart/internal/controllers"
	"github.com/nexuscart/nexuscart/internal/middleware"
	"github.com/nexuscart/nexuscart/internal/services"
)

// Controllers bundles everything Register wires into the engine.
type Controllers struct {
	Auth       *controllers.AuthController
	Products   *controllers.ProductController
	Cart       *controllers.CartController
	Orders     *controllers.OrderController
	Newsletter *controllers.NewsletterController
}

// Register mounts all API routes under /api.
func Register(r *gin.Engine, ctrl Controllers, tokens *services.TokenService) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		// credential endpoints get a tighter budget than the global limiter
		credLimit := middleware.RateLimit(rate.Every(time.Minute/10), 5)
		auth.POST("/register", credLimit, ctrl.Auth.Register)
		auth.POST("/login", credLimit, ctrl.Auth.Login)

		account := auth.Group("")
		account.Use(middleware.Auth(tokens))
		{
			account.GET("/profile", ctrl.Auth.Profile)
			account.PUT("/profile", ctrl.Auth.UpdateProfile)
			account.DELETE("/account", ctrl.Auth.DeleteAccount)
		}
	}

	products := api.Group("/products")
	{
		products.GET("", ctrl.Products.List)
		products.GET("/categories", ctrl.Products.Categories)
		products.GET("/:id", ctrl.Products.Get)

		manage := products.Group("")
		manage.Use(middleware.Auth(tokens))
		{
			manage.POST("", ctrl.Products.Create)
			manage.PUT("/:id", ctrl.Products.Update)
			manage.DELETE("/:id", ctrl.Products.Delete)
		}
	}

	cart := api.Group("/cart")
	cart.Use(middleware.Auth(tokens))
	{
		cart.GET("", ctrl.Cart.Get)
		cart.POST("/add", ctrl.Cart.Add)
		cart.PUT("/:itemId", ctrl.Cart.UpdateItem)
		cart.DELETE("/:itemId", ctrl.Cart.Remove)
		cart.DELETE("", ctrl.Cart.Clear)
		cart.POST("/checkout", ctrl.Cart.Checkout)
	}

	orders := api.Group("/orders")
	orders.Use(middleware.Auth(tokens))
	{
		orders.POST("", ctrl.Orders.Create)
		orders.GET("", ctrl.Orders.List)
		orders.GET("/:id", ctrl.Orders.Get)
		orders.PUT("/:id/status", ctrl.Orders.UpdateStatus)
		orders.DELETE("/:id", ctrl.Orders.Delete)
	}

	newsletter := api.Group("/newsletter")
	{
		newsletter.POST("/subscribe", ctrl.Newsletter.Subscribe)
		newsletter.POST("/unsubscribe", ctrl.Newsletter.Unsubscribe)
		newsletter.GET("/stats", ctrl.Newsletter.Stats)
	}
}
