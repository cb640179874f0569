package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexuscart/nexuscart/internal/middleware"
	"github.com/nexuscart/nexuscart/internal/models"
	"github.com/nexuscart/nexuscart/internal/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (oc *OrderController) Create(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := oc.orders.CreateDirect(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, order, "Order placed")
}

func (oc *OrderController) List(c *gin.Context) {
	orders, err := oc.orders.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, orders, "")
}

func (oc *OrderController) Get(c *gin.Context) {
	order, err := oc.orders.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, order, "")
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	order, err := oc.orders.UpdateStatus(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, order, "Order updated")
}

func (oc *OrderController) Delete(c *gin.Context) {
	if err := oc.orders.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Order deleted")
}
