package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexuscart/nexuscart/internal/middleware"
	"github.com/nexuscart/nexuscart/internal/models"
	"github.com/nexuscart/nexuscart/internal/services"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

func (cc *CartController) Get(c *gin.Context) {
	cart, err := cc.carts.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, cart, "")
}

func (cc *CartController) Add(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cart, err := cc.carts.Add(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, cart, "Item added to cart")
}

func (cc *CartController) UpdateItem(c *gin.Context) {
	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cart, err := cc.carts.UpdateItem(c.Request.Context(), middleware.UserID(c), c.Param("itemId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, cart, "Cart updated")
}

func (cc *CartController) Remove(c *gin.Context) {
	cart, err := cc.carts.Remove(c.Request.Context(), middleware.UserID(c), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, cart, "Item removed")
}

func (cc *CartController) Clear(c *gin.Context) {
	if err := cc.carts.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, &models.Cart{Items: []models.CartItem{}}, "Cart cleared")
}

func (cc *CartController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := cc.carts.Checkout(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, order, "Order placed")
}
