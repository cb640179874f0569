package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nexuscart/nexuscart/internal/models"
	"github.com/nexuscart/nexuscart/internal/services"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func (pc *ProductController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	query := models.ProductQuery{
		Page:     page,
		Limit:    limit,
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}

	result, err := pc.products.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, result, "")
}

func (pc *ProductController) Get(c *gin.Context) {
	product, err := pc.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, product, "")
}

func (pc *ProductController) Create(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := pc.products.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, product, "Product created")
}

func (pc *ProductController) Update(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := pc.products.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, product, "Product updated")
}

func (pc *ProductController) Delete(c *gin.Context) {
	if err := pc.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "Product deleted")
}

func (pc *ProductController) Categories(c *gin.Context) {
	categories, err := pc.products.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, categories, "")
}
