package controllers

import (
	"errors"
	"math"
	"strconv"

	"github.com/Nerfise/bossing/repositories"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderRepo *repositories.OrderRepository
}

func NewOrderController(orderRepo *repositories.OrderRepository) *OrderController {
	return &OrderController{
		orderRepo: orderRepo,
	}
}

// @Summary Order history
// @Description Paginated order history for the authenticated user
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} models.PaginationResponse
// @Router /orders [get]
func (ctrl *OrderController) GetHistory(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	orders, total, err := ctrl.orderRepo.FindAllByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load order history"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Order history retrieved",
		"data":    orders,
		"meta": gin.H{
			"page":        page,
			"limit":       limit,
			"total_items": total,
			"total_pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// @Summary Get order
// @Description Get one order with its items
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	id, _ := strconv.Atoi(c.Param("id"))
	if id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	order, err := ctrl.orderRepo.FindByID(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Order not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to load order"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Order retrieved successfully",
		"data":    order,
	})
}
