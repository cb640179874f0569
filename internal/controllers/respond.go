package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexuscart/nexuscart/internal/apperrors"
)

// respond writes the success envelope every endpoint answers with.
func respond(c *gin.Context, status int, data interface{}, message string) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

func bindError(c *gin.Context, err error) {
	apperrors.Respond(c, apperrors.New(http.StatusBadRequest, "Invalid request payload", err))
}

func respondError(c *gin.Context, err error) {
	apperrors.Respond(c, err)
}
