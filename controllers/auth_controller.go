package controllers

import (
	"github.com/Nerfise/bossing/models"
	"github.com/Nerfise/bossing/services"
	"github.com/Nerfise/bossing/utils"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{
		authService: services.NewAuthService(),
	}
}

// @Summary Register
// @Description Register a new customer account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request data: " + err.Error()})
		return
	}

	result, err := ctrl.authService.Register(c.Request.Context(), req)
	if err != nil {
		c.JSON(400, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Registration successful",
		"data":    result,
	})
}

// @Summary Login
// @Description Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request data: " + err.Error()})
		return
	}

	result, err := ctrl.authService.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(401, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    result,
	})
}

// @Summary Logout
// @Description Sign out the current token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	claimsValue, exists := c.Get("claims")
	if !exists {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	claims, ok := claimsValue.(*utils.Claims)
	if !ok {
		c.JSON(401, gin.H{"success": false, "message": "Unauthorized"})
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), claims); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to sign out"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Signed out"})
}
