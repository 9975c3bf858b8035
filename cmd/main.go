package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/blob"
	"catalog-service/internal/config"
	"catalog-service/internal/handlers"
	"catalog-service/internal/middleware"
	"catalog-service/internal/query"
	"catalog-service/internal/repository"
	"catalog-service/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()

	// Document store: Firestore when a project is configured, otherwise an
	// in-process store for credential-less local runs.
	var docStore store.DocumentStore
	if cfg.GCPProjectID != "" {
		fs, err := store.NewFirestoreStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatal("Failed to connect to Firestore:", err)
		}
		defer fs.Close()
		docStore = fs
		log.Println("✓ Firestore connected")
	} else {
		docStore = store.NewMemoryStore()
		log.Println("WARNING: GCP_PROJECT_ID not set, using in-memory document store")
	}

	// Blob store
	var blobs blob.BlobStore
	if cfg.StorageBucket != "" {
		gcs, err := blob.NewGCSStore(ctx, cfg.StorageBucket, cfg.SignedURLTTL)
		if err != nil {
			log.Fatal("Failed to connect to Cloud Storage:", err)
		}
		defer gcs.Close()
		blobs = gcs
		log.Println("✓ Cloud Storage connected")
	} else {
		blobs = blob.NewMemoryStore()
		log.Println("WARNING: STORAGE_BUCKET not set, using in-memory blob store")
	}

	// Redis: caching and filter-state persistence. The service runs
	// without it, just slower and without saved filters.
	var redisClient *redis.Client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
	} else {
		redisClient = redis.NewClient(redisOpts)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("WARNING: Failed to connect to Redis: %v (caching and saved filters disabled)", err)
			redisClient = nil
		} else {
			log.Println("✓ Redis connected successfully")
		}
		cancel()
	}

	// Repositories
	catalogRepo := repository.NewCatalogRepository(docStore, redisClient)
	productsRepo := repository.NewProductsRepository(docStore, redisClient)
	usersRepo := repository.NewUsersRepository(docStore)

	// Filter-state persistence
	var filterKV query.KV
	if redisClient != nil {
		filterKV = query.NewRedisKV(redisClient)
	}
	filterState := query.NewFilterStateStore(filterKV)

	// Handlers
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, logger)
	productsHandler := handlers.NewProductsHandler(productsRepo, catalogRepo, blobs, filterState, logger)
	variantsHandler := handlers.NewVariantsHandler(productsRepo, blobs, logger)
	shareHandler := handlers.NewShareHandler(productsRepo, blobs, logger)
	exportHandler := handlers.NewExportHandler(productsRepo, catalogRepo, logger)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	// Protected API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	api.Use(middleware.ResolveRole(usersRepo, cfg.AdminEmails, logger))

	{
		catalog := api.Group("/catalog")
		{
			catalog.GET("/categories", catalogHandler.GetCategories)
			catalog.GET("/subcategories", catalogHandler.GetSubcategories)
			catalog.GET("/fabric-types", catalogHandler.GetFabricTypes)
			catalog.GET("/options", catalogHandler.GetOptions)

			admin := catalog.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/categories", catalogHandler.CreateCategory)
				admin.POST("/subcategories", catalogHandler.CreateSubcategory)
				admin.POST("/fabric-types", catalogHandler.CreateFabricType)
				admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
				admin.DELETE("/subcategories/:id", catalogHandler.DeleteSubcategory)
				admin.DELETE("/fabric-types/:id", catalogHandler.DeleteFabricType)
			}
		}

		products := api.Group("/products")
		{
			products.GET("", productsHandler.GetProducts)
			products.GET("/export", exportHandler.ExportProducts)
			products.GET("/:id", productsHandler.GetProduct)
			products.POST("", productsHandler.CreateProduct)
			products.POST("/:id/image", productsHandler.UploadMainImage)
			products.POST("/:id/share", shareHandler.ShareVariants)

			products.POST("/:id/variants", variantsHandler.CreateVariant)
			products.PUT("/:id/variants/:variantId", variantsHandler.UpdateVariant)
			products.DELETE("/:id/variants/:variantId", variantsHandler.DeleteVariant)
		}
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Catalog service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down catalog-service...")

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}

	log.Println("Catalog service stopped")
}
