package controllers

import (
	"errors"

	"github.com/Nerfise/bossing/models"
	"github.com/Nerfise/bossing/repositories"
	"github.com/Nerfise/bossing/services"
	"github.com/gin-gonic/gin"
)

type AddressController struct {
	addressRepo     *repositories.AddressRepository
	checkoutService *services.CheckoutService
}

func NewAddressController(addressRepo *repositories.AddressRepository, checkoutService *services.CheckoutService) *AddressController {
	return &AddressController{
		addressRepo:     addressRepo,
		checkoutService: checkoutService,
	}
}

// @Summary List addresses
// @Description List saved addresses in insertion order
// @Tags Addresses
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /profile/addresses [get]
func (ctrl *AddressController) List(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	addresses, err := ctrl.addressRepo.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to load addresses"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Addresses retrieved successfully",
		"data":    addresses,
	})
}

// @Summary Add address
// @Description Save a new address
// @Tags Addresses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.AddAddressRequest true "Address text"
// @Success 201 {object} models.Response
// @Router /profile/addresses [post]
func (ctrl *AddressController) Add(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request data: " + err.Error()})
		return
	}

	address, err := ctrl.addressRepo.Add(c.Request.Context(), userID, req.Address)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to save address"})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Address saved successfully",
		"data":    address,
	})
}

// @Summary Edit address
// @Description Replace the text of a saved address
// @Tags Addresses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Address ID"
// @Param body body models.UpdateAddressRequest true "Address text"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/addresses/{id} [patch]
func (ctrl *AddressController) Update(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	id := c.Param("id")

	var req models.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request data: " + err.Error()})
		return
	}

	err := ctrl.addressRepo.Update(c.Request.Context(), userID, id, req.Address)
	if err != nil {
		if errors.Is(err, repositories.ErrAddressNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Address not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update address"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Address updated successfully"})
}

// @Summary Remove address
// @Description Delete a saved address; clears it from an active checkout
// @Tags Addresses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Address ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/addresses/{id} [delete]
func (ctrl *AddressController) Delete(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	id := c.Param("id")

	err := ctrl.addressRepo.Delete(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAddressNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "Address not found"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to delete address"})
		return
	}

	if err := ctrl.checkoutService.HandleAddressDeleted(c.Request.Context(), userID, id); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update checkout session"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Address deleted successfully"})
}
