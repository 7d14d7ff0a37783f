package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	JWTSecret     string
	JWTExpiry     string
	MaxUploadSize int64

	// Payment-link provider. The secret key is only ever read from the
	// environment; it must never appear in source or client builds.
	PaymentAPIURL     string
	PaymentSecretKey  string
	PaymentCurrency   string
	PaymentSuccessURL string
	PaymentFailedURL  string

	PointsEarnRate     int64
	PointsRedeemAmount int64
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	earnRate, _ := strconv.ParseInt(os.Getenv("POINTS_EARN_RATE"), 10, 64)
	if earnRate == 0 {
		earnRate = 5000
	}

	redeemAmount, _ := strconv.ParseInt(os.Getenv("POINTS_REDEEM_AMOUNT"), 10, 64)
	if redeemAmount == 0 {
		redeemAmount = 5
	}

	AppConfig = &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("APP_PORT", getEnv("PORT", "8082")),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "bossing_shop"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		JWTExpiry:     getEnv("JWT_EXPIRY", "24h"),
		MaxUploadSize: maxUploadSize,

		PaymentAPIURL:     getEnv("PAYMENT_API_URL", "https://api.paymongo.com/v1/links"),
		PaymentSecretKey:  os.Getenv("PAYMENT_SECRET_KEY"),
		PaymentCurrency:   getEnv("PAYMENT_CURRENCY", "PHP"),
		PaymentSuccessURL: getEnv("PAYMENT_SUCCESS_URL", "https://bossing.shop/payment/success"),
		PaymentFailedURL:  getEnv("PAYMENT_FAILED_URL", "https://bossing.shop/payment/failed"),

		PointsEarnRate:     earnRate,
		PointsRedeemAmount: redeemAmount,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)

	if AppConfig.PaymentSecretKey == "" {
		log.Println("Warning: PAYMENT_SECRET_KEY not set, payment links disabled")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
