package controllers

import (
	"errors"
	"strconv"

	"github.com/Nerfise/bossing/repositories"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productRepo *repositories.ProductRepository
}

func NewProductController(productRepo *repositories.ProductRepository) *ProductController {
	return &ProductController{
		productRepo: productRepo,
	}
}

// @Summary List products
// @Description List the active catalog
// @Tags Products
// @Produce json
// @Success 200 {object} models.Response
// @Router /products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	products, err := ctrl.productRepo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load products"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// @Summary Get product
// @Description Get one product by id
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	product, err := ctrl.productRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to load product"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Product retrieved successfully",
		"data":    product,
	})
}
