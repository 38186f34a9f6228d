package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"storefront-service/internal/api"
	"storefront-service/internal/config"
	"storefront-service/internal/consumer"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"
	"storefront-service/migrations"
)

func connectDB(cfg config.Config) (*sql.DB, error) {
	// parseTime is required so DATETIME columns scan into time.Time.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", cfg.DBName)
				return db, nil
			}
		}
		log.Printf("Retry %d: Failed to connect to DB %s (%s:%s): %v", i+1, cfg.DBName, cfg.DBHost, cfg.DBPort, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", cfg.DBName, cfg.DBHost, cfg.DBPort, err)
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := connectDB(cfg)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrateUsers(10, db); err != nil {
		log.Fatalf("Failed to migrate users table: %v", err)
	}
	if err := migrations.AutoMigrateProducts(10, db); err != nil {
		log.Fatalf("Failed to migrate products table: %v", err)
	}
	if err := migrations.AutoMigrateCartItems(10, db); err != nil {
		log.Fatalf("Failed to migrate cart_items table: %v", err)
	}
	if err := migrations.AutoMigrateOrders(10, db); err != nil {
		log.Fatalf("Failed to migrate orders tables: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaTopic)
	kafkaReader := config.NewKafkaReader(cfg.KafkaTopic, "storefront-stock")

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authService := service.NewAuthService(userRepo, rdb, cfg.JWTSecret)
	catalogService := service.NewCatalogService(productRepo, rdb)
	cartService := service.NewCartService(cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(cartRepo, productRepo, orderRepo, kafkaWriter)
	orderService := service.NewOrderService(orderRepo, productRepo, kafkaWriter)
	statsService := service.NewStatsService(userRepo, productRepo, orderRepo)

	authHandler := api.NewAuthHandler(authService)
	productHandler := api.NewProductHandler(catalogService)
	cartHandler := api.NewCartHandler(cartService)
	orderHandler := api.NewOrderHandler(orderService, checkoutService)
	adminHandler := api.NewAdminHandler(statsService)

	stockConsumer := consumer.NewConsumer(kafkaReader, catalogService)
	go func() {
		if err := stockConsumer.Run(context.Background()); err != nil {
			log.Printf("Stock consumer stopped: %v", err)
		}
	}()

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     60,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	requireJWT := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.JwtCustomClaims)
		},
	})
	requireAdmin := api.RequireAdmin(cfg.AdminUsername)

	// Auth
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/users/validate", authHandler.ValidateSession)
	e.POST("/logout", authHandler.Logout, requireJWT)

	// Users. POST /users is the legacy alias for /register.
	e.POST("/users", authHandler.Register)
	e.GET("/users", authHandler.ListUsers)
	e.GET("/users/:id", authHandler.GetUser)
	e.PATCH("/users/:id", authHandler.UpdateUser, requireJWT)
	e.DELETE("/users/:id", authHandler.DeleteUser, requireJWT, requireAdmin)

	// Products
	e.GET("/products", productHandler.ListProducts)
	e.GET("/products/home", productHandler.HomeSections)
	e.GET("/products/brand/:brand", productHandler.Browse)
	e.GET("/products/warmup-cache", productHandler.PreWarmupCache)
	e.GET("/products/:id", productHandler.GetProduct)
	e.POST("/products", productHandler.CreateProduct, requireJWT, requireAdmin)
	e.PUT("/products/:id", productHandler.UpdateProduct, requireJWT, requireAdmin)
	e.DELETE("/products/:id", productHandler.DeleteProduct, requireJWT, requireAdmin)

	// Cart
	e.GET("/cart", cartHandler.ListItems)
	e.GET("/cart/summary", cartHandler.Summary)
	e.GET("/cart/count", cartHandler.Count)
	e.POST("/cart", cartHandler.AddItem)
	e.PATCH("/cart/:id", cartHandler.UpdateQuantity)
	e.DELETE("/cart/:id", cartHandler.RemoveItem)
	e.DELETE("/cart", cartHandler.Clear)

	// Orders
	e.GET("/orders", orderHandler.ListOrders)
	e.GET("/orders/:id", orderHandler.GetOrder)
	e.POST("/orders", orderHandler.CreateOrder)
	e.POST("/checkout", orderHandler.Checkout, requireJWT)
	e.PUT("/orders/:id", orderHandler.UpdateStatus, requireJWT, requireAdmin)

	// Admin
	e.PUT("/admin/orders/:id/status", orderHandler.UpdateStatus, requireJWT, requireAdmin)
	e.GET("/admin/dashboard", adminHandler.Dashboard, requireJWT, requireAdmin)
	e.GET("/admin/statistics", adminHandler.Statistics, requireJWT, requireAdmin)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "storefront-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.HTTPPort)))
}
