package controllers

import (
	"errors"
	"fmt"
	"io"

	"github.com/Nerfise/bossing/config"
	"github.com/Nerfise/bossing/libs"
	"github.com/Nerfise/bossing/models"
	"github.com/Nerfise/bossing/repositories"
	"github.com/Nerfise/bossing/services"
	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profileService *services.ProfileService
	cloudinary     *libs.CloudinaryService
}

func NewProfileController(profileService *services.ProfileService, cloudinary *libs.CloudinaryService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		cloudinary:     cloudinary,
	}
}

// @Summary Get profile
// @Description Get the authenticated user's profile
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /profile [get]
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	profile, err := ctrl.profileService.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Profile not found"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Profile retrieved successfully",
		"data":    profile,
	})
}

// @Summary Update profile
// @Description Update profile fields and optionally upload a new photo
// @Tags Profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param full_name formData string false "Full Name"
// @Param phone formData string false "Phone"
// @Param address formData string false "Address"
// @Param version formData int false "Last seen profile version"
// @Param photo formData file false "Profile photo"
// @Success 200 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /profile [patch]
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request data: " + err.Error()})
		return
	}

	if req.FullName != "" && len(req.FullName) < 3 {
		c.JSON(400, gin.H{"success": false, "message": "Full name must be at least 3 characters"})
		return
	}

	photoURL, photoPublicID, err := ctrl.handlePhotoUpload(c, userID)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	profile, err := ctrl.profileService.Update(c.Request.Context(), userID, req, photoURL, photoPublicID)
	if err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			c.JSON(409, gin.H{"success": false, "message": "Profile was changed elsewhere, reload and retry"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"data":    profile,
	})
}

func (ctrl *ProfileController) handlePhotoUpload(c *gin.Context, userID int) (string, string, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		// No photo in the request is fine.
		return "", "", nil
	}

	if ctrl.cloudinary == nil {
		return "", "", errors.New("photo storage not configured")
	}

	if err := ctrl.cloudinary.ValidateImageFile(fileHeader, config.AppConfig.MaxUploadSize); err != nil {
		return "", "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to read photo: %w", err)
	}
	defer file.Close()

	return ctrl.cloudinary.UploadProfilePhoto(c.Request.Context(), file, userID)
}

// @Summary Watch profile
// @Description Stream profile snapshots over SSE as the record changes
// @Tags Profile
// @Security BearerAuth
// @Produce text/event-stream
// @Success 200 {object} models.Profile
// @Router /profile/watch [get]
func (ctrl *ProfileController) WatchProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	ctx := c.Request.Context()
	updates := ctrl.profileService.Watch(ctx, userID)

	// Send the current snapshot first so the client never starts blind.
	if profile, err := ctrl.profileService.Get(ctx, userID); err == nil {
		c.SSEvent("profile", profile)
		c.Writer.Flush()
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case profile, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("profile", profile)
			return true
		}
	})
}

// @Summary Purchase points
// @Description Convert a purchase amount into loyalty points
// @Tags Points
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.PurchasePointsRequest true "Purchase amount"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/points/purchase [post]
func (ctrl *ProfileController) PurchasePoints(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	var req models.PurchasePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request data: " + err.Error()})
		return
	}

	earned, balance, err := ctrl.profileService.PurchasePoints(c.Request.Context(), userID, req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrAmountTooSmall) {
			c.JSON(400, gin.H{"success": false, "message": "Amount too small to earn points"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to add points"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": fmt.Sprintf("Earned %d points", earned),
		"data": gin.H{
			"earned":  earned,
			"balance": balance,
		},
	})
}

// @Summary Redeem points
// @Description Redeem a fixed block of loyalty points
// @Tags Points
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/points/redeem [post]
func (ctrl *ProfileController) RedeemPoints(c *gin.Context) {
	userID := c.GetInt("user_id")
	if userID == 0 {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	balance, err := ctrl.profileService.RedeemPoints(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotEnoughPoints) {
			c.JSON(400, gin.H{"success": false, "message": "Not Enough Points"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to redeem points"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": fmt.Sprintf("Redeemed %d points", ctrl.profileService.RedeemAmount()),
		"data": gin.H{
			"balance": balance,
		},
	})
}
