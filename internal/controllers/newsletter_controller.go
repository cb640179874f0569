package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexuscart/nexuscart/internal/services"
)

type subscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

type NewsletterController struct {
	newsletter *services.NewsletterService
}

func NewNewsletterController(newsletter *services.NewsletterService) *NewsletterController {
	return &NewsletterController{newsletter: newsletter}
}

func (nc *NewsletterController) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sub, err := nc.newsletter.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, sub, "Subscribed to newsletter")
}

func (nc *NewsletterController) Unsubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := nc.newsletter.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Unsubscribed from newsletter")
}

func (nc *NewsletterController) Stats(c *gin.Context) {
	stats, err := nc.newsletter.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, stats, "")
}
