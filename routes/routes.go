package routes

import (
	"log"

	"github.com/Nerfise/bossing/config"
	"github.com/Nerfise/bossing/controllers"
	"github.com/Nerfise/bossing/libs"
	"github.com/Nerfise/bossing/middleware"
	"github.com/Nerfise/bossing/repositories"
	"github.com/Nerfise/bossing/services"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	userRepo := repositories.NewUserRepository()
	addressRepo := repositories.NewAddressRepository()
	productRepo := repositories.NewProductRepository()
	cartRepo := repositories.NewCartRepository()
	orderRepo := repositories.NewOrderRepository()
	sessionRepo := repositories.NewSessionRepository()
	profileEvents := repositories.NewProfileEvents()

	var mailer services.ReceiptMailer
	if m, err := libs.NewEmailService(); err == nil {
		mailer = m
	} else {
		log.Printf("Email disabled: %v", err)
	}

	cloudinary, err := libs.NewCloudinaryService()
	if err != nil {
		log.Printf("Photo uploads disabled: %v", err)
	}

	checkoutService := services.NewCheckoutService(
		sessionRepo,
		addressRepo,
		cartRepo,
		orderRepo,
		userRepo,
		libs.NewPaymentLinkClient(),
		profileEvents,
		mailer,
		config.AppConfig.PointsEarnRate,
	)
	profileService := services.NewProfileService(
		userRepo,
		profileEvents,
		config.AppConfig.PointsEarnRate,
		config.AppConfig.PointsRedeemAmount,
	)

	authCtrl := controllers.NewAuthController()
	profileCtrl := controllers.NewProfileController(profileService, cloudinary)
	addressCtrl := controllers.NewAddressController(addressRepo, checkoutService)
	productCtrl := controllers.NewProductController(productRepo)
	cartCtrl := controllers.NewCartController(cartRepo, productRepo)
	checkoutCtrl := controllers.NewCheckoutController(checkoutService)
	orderCtrl := controllers.NewOrderController(orderRepo)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/auth/logout", authCtrl.Logout)

		auth.GET("/profile", profileCtrl.GetProfile)
		auth.PATCH("/profile", profileCtrl.UpdateProfile)
		auth.GET("/profile/watch", profileCtrl.WatchProfile)
		auth.POST("/profile/points/purchase", profileCtrl.PurchasePoints)
		auth.POST("/profile/points/redeem", profileCtrl.RedeemPoints)

		auth.GET("/profile/addresses", addressCtrl.List)
		auth.POST("/profile/addresses", addressCtrl.Add)
		auth.PATCH("/profile/addresses/:id", addressCtrl.Update)
		auth.DELETE("/profile/addresses/:id", addressCtrl.Delete)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:id", cartCtrl.UpdateItem)
		auth.DELETE("/cart/items/:id", cartCtrl.RemoveItem)

		auth.POST("/checkout/session", checkoutCtrl.Start)
		auth.GET("/checkout/session", checkoutCtrl.GetSession)
		auth.PATCH("/checkout/session/address", checkoutCtrl.SelectAddress)
		auth.PATCH("/checkout/session/delivery", checkoutCtrl.SelectDelivery)
		auth.POST("/checkout/session/advance", checkoutCtrl.Advance)
		auth.POST("/checkout/session/place", checkoutCtrl.Place)

		auth.GET("/orders", orderCtrl.GetHistory)
		auth.GET("/orders/:id", orderCtrl.GetOrderByID)
	}
}
