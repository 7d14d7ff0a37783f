package controllers

import (
	"errors"
	"strconv"

	"github.com/Nerfise/bossing/models"
	"github.com/Nerfise/bossing/repositories"
	"github.com/Nerfise/bossing/services"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartRepo    *repositories.CartRepository
	productRepo *repositories.ProductRepository
}

func NewCartController(cartRepo *repositories.CartRepository, productRepo *repositories.ProductRepository) *CartController {
	return &CartController{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// @Summary Get cart
// @Description Get the cart with the running total at current prices
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	items, err := ctrl.cartRepo.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load cart"})
		return
	}

	total, err := services.CartTotal(items)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to compute total"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart retrieved successfully",
		"data": gin.H{
			"items": items,
			"total": services.FormatAmount(total),
		},
	})
}

// @Summary Add cart item
// @Description Add a product to the cart or bump its quantity
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.AddCartItemRequest true "Product and quantity"
// @Success 201 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request data: " + err.Error()})
		return
	}

	if _, err := ctrl.productRepo.FindByID(c.Request.Context(), req.ProductID); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Product not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to look up product"})
		return
	}

	item, err := ctrl.cartRepo.Add(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to add cart item"})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Item added to cart",
		"data":    item,
	})
}

// @Summary Update cart item
// @Description Set the quantity of a cart item
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param body body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	itemID, _ := strconv.Atoi(c.Param("id"))
	if itemID <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid cart item ID"})
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request data: " + err.Error()})
		return
	}

	err := ctrl.cartRepo.UpdateQuantity(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrCartItemNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Cart item not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update cart item"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart item updated"})
}

// @Summary Remove cart item
// @Description Remove an item from the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	itemID, _ := strconv.Atoi(c.Param("id"))
	if itemID <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid cart item ID"})
		return
	}

	err := ctrl.cartRepo.Remove(c.Request.Context(), userID, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrCartItemNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Cart item not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to remove cart item"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Cart item removed"})
}
