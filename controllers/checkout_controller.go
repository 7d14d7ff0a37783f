package controllers

import (
	"errors"

	"github.com/Nerfise/bossing/models"
	"github.com/Nerfise/bossing/repositories"
	"github.com/Nerfise/bossing/services"
	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutController(checkoutService *services.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

// @Summary Start checkout
// @Description Open a fresh checkout session on the address step
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.Response
// @Router /checkout/session [post]
func (ctrl *CheckoutController) Start(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	session, err := ctrl.checkoutService.Start(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to start checkout"})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Checkout started",
		"data":    session,
	})
}

// @Summary Get checkout state
// @Description Current step, selection, itemized cart and live total
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout/session [get]
func (ctrl *CheckoutController) GetSession(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	review, err := ctrl.checkoutService.Review(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			c.JSON(404, gin.H{"success": false, "message": "No active checkout session"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to load checkout session"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Checkout session retrieved",
		"data":    review,
	})
}

// @Summary Select address
// @Description Pick a saved address for this checkout; allowed at any step
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.SelectAddressRequest true "Address ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /checkout/session/address [patch]
func (ctrl *CheckoutController) SelectAddress(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request data: " + err.Error()})
		return
	}

	session, err := ctrl.checkoutService.SelectAddress(c.Request.Context(), userID, req.AddressID)
	if err != nil {
		ctrl.writeCheckoutError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Address selected",
		"data":    session,
	})
}

// @Summary Select delivery method
// @Description Choose cash_on_delivery, ewallet or points on the delivery step
// @Tags Checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.SelectDeliveryRequest true "Delivery method"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/session/delivery [patch]
func (ctrl *CheckoutController) SelectDelivery(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.SelectDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request data: " + err.Error()})
		return
	}

	session, err := ctrl.checkoutService.SelectDelivery(c.Request.Context(), userID, req.DeliveryMethod)
	if err != nil {
		ctrl.writeCheckoutError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Delivery method selected",
		"data":    session,
	})
}

// @Summary Advance checkout
// @Description Move the wizard one step forward
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/session/advance [post]
func (ctrl *CheckoutController) Advance(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	session, err := ctrl.checkoutService.Advance(c.Request.Context(), userID)
	if err != nil {
		ctrl.writeCheckoutError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Moved to " + session.Step,
		"data":    session,
	})
}

// @Summary Place order
// @Description Place the order from the review step
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/session/place [post]
func (ctrl *CheckoutController) Place(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	result, err := ctrl.checkoutService.Place(c.Request.Context(), userID)
	if err != nil {
		ctrl.writeCheckoutError(c, err)
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Order placed successfully",
		"data":    result,
	})
}

func (ctrl *CheckoutController) writeCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrSessionNotFound):
		c.JSON(404, gin.H{"success": false, "message": "No active checkout session"})
	case errors.Is(err, repositories.ErrAddressNotFound),
		errors.Is(err, services.ErrAddressMissing):
		c.JSON(404, gin.H{"success": false, "message": "Address not found"})
	case errors.Is(err, models.ErrNoAddressSelected):
		c.JSON(400, gin.H{"success": false, "message": "Select an address first"})
	case errors.Is(err, models.ErrInvalidMethod):
		c.JSON(400, gin.H{"success": false, "message": "Invalid delivery method"})
	case errors.Is(err, models.ErrMethodNotSelectable):
		c.JSON(400, gin.H{"success": false, "message": "Delivery method is chosen on the delivery step"})
	case errors.Is(err, models.ErrInvalidStep):
		c.JSON(400, gin.H{"success": false, "message": "Checkout cannot advance further"})
	case errors.Is(err, services.ErrCartEmpty):
		c.JSON(400, gin.H{"success": false, "message": "Cart is empty"})
	case errors.Is(err, services.ErrNameMissing):
		c.JSON(400, gin.H{"success": false, "message": "Set your display name before ordering"})
	case errors.Is(err, services.ErrNotInReview):
		c.JSON(400, gin.H{"success": false, "message": "Finish the checkout steps before placing the order"})
	default:
		c.JSON(500, gin.H{"success": false, "message": "Checkout failed", "error": err.Error()})
	}
}
