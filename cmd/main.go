package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/franciscosanchezn/pizzaone-api/docs" // Import generated docs
	"github.com/franciscosanchezn/pizzaone-api/internal/catalog"
	"github.com/franciscosanchezn/pizzaone-api/internal/config"
	"github.com/franciscosanchezn/pizzaone-api/internal/controllers"
	"github.com/franciscosanchezn/pizzaone-api/internal/database"
	"github.com/franciscosanchezn/pizzaone-api/internal/metrics"
	"github.com/franciscosanchezn/pizzaone-api/internal/middleware"
	"github.com/franciscosanchezn/pizzaone-api/internal/models"
	"github.com/franciscosanchezn/pizzaone-api/internal/receipts"
	"github.com/franciscosanchezn/pizzaone-api/internal/repository"
	"github.com/franciscosanchezn/pizzaone-api/internal/services"
	"github.com/franciscosanchezn/pizzaone-api/internal/storage"
)

var (
	configuration         *config.Config
	appMetrics            *metrics.Metrics
	catalogController     controllers.CatalogController
	orderController       *controllers.OrderController
	preferencesController *controllers.PreferencesController
)

// @title PizzaOne API
// @version 1.0
// @description Ordering storefront for the PizzaOne pizzeria
// @host localhost:8080
// @BasePath /
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()
	applyLogLevel(configuration.LogLevel)

	// Money leaves the API as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	appMetrics = metrics.New()

	// Order persistence: database first, local store as fallback
	local, err := repository.OpenLocalOrderRepository(configuration.FallbackStorePath)
	checkPanicErr(err)
	defer local.Close()
	store := setupOrderStore(configuration, local)

	artifacts := setupArtifactStore(configuration)
	prefs, err := config.LoadPreferences(configuration.PreferencesPath)
	checkPanicErr(err)

	var renderer receipts.PDFRenderer
	if configuration.ReceiptPDFEnabled {
		chrome := receipts.NewChromePDFRenderer(receipts.ChromeConfig{
			RemoteURL: configuration.ChromeRemoteURL,
			NoSandbox: true,
		})
		defer chrome.Close()
		renderer = chrome
	}

	menu := catalog.Default()
	cart := services.NewCartService(services.CartDeps{
		Catalog:     menu,
		Orders:      store,
		Artifacts:   artifacts,
		Ledger:      receipts.NewLedger(configuration.LedgerPath),
		Preferences: prefs,
		Renderer:    renderer,
		Metrics:     appMetrics,
	})
	if err := cart.Load(context.Background()); err != nil {
		log.WithError(err).Warn("Starting with an empty cart")
	}
	invoices := services.NewInvoiceService(store, configuration.NFEDelay, appMetrics)

	// Initialize services and controllers
	catalogController = controllers.NewCatalogController(services.NewCatalogService(menu))
	orderController = controllers.NewOrderController(cart, invoices)
	preferencesController = controllers.NewPreferencesController(prefs)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	serve(router, invoices)
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// applyLogLevel overrides the environment default when LOG_LEVEL is set
func applyLogLevel(level string) {
	if level == "" {
		database.SetLogLevel(log.GetLevel())
		return
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("log_level", level).Warn("Unknown log level, keeping the environment default")
		database.SetLogLevel(log.GetLevel())
		return
	}
	log.SetLevel(parsed)
	database.SetLogLevel(parsed)
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %s", conf)
	return conf
}

// setupOrderStore connects to the database and wraps it with the local fallback.
// When the database is still down after the startup retries, a deferred handle is used
// so calls reach it as soon as it comes up. Each call falls back on its own.
func setupOrderStore(conf *config.Config, local *repository.LocalOrderRepository) repository.Store {
	dbConfig := database.DatabaseConfig{
		Driver:     conf.DBDriver,
		Host:       conf.DBHost,
		Port:       conf.DBPort,
		User:       conf.DBUser,
		Password:   conf.DBPassword,
		Name:       conf.DBName,
		SSLMode:    conf.DBSSLMode,
		Path:       conf.DBPath,
		MaxRetries: conf.DBMaxRetries,
	}

	db, err := database.InitDatabase(dbConfig)
	if err != nil {
		log.WithError(err).Error("Database unavailable, orders go to the local store until it comes up")
		db, err = database.OpenDeferred(dbConfig)
		checkPanicErr(err)
	}

	primary := repository.NewGormOrderRepository(db).WithSchema(database.Migrate)
	if err := primary.EnsureSchema(context.Background()); err != nil {
		log.WithError(err).Warn("Database migration deferred to the first call that reaches the database")
	}

	return repository.NewFallbackOrderRepository(primary, local, appMetrics.ObserveFallback)
}

// setupArtifactStore picks where checkout reports and receipts are written
func setupArtifactStore(conf *config.Config) storage.ArtifactStore {
	if conf.StorageDriver == "s3" {
		store, err := storage.NewS3ArtifactStore(context.Background(), storage.S3Config{
			Endpoint:     conf.S3Endpoint,
			Region:       conf.S3Region,
			Bucket:       conf.S3Bucket,
			AccessKey:    conf.S3AccessKey,
			SecretKey:    conf.S3SecretKey,
			UsePathStyle: conf.S3UsePathStyle,
			Prefix:       "reports",
		})
		checkPanicErr(err)
		return store
	}

	store, err := storage.NewLocalArtifactStore(conf.ReportsDir)
	checkPanicErr(err)
	return store
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	if configuration.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log.StandardLogger()), middleware.HTTPMetrics(appMetrics))

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)
	router.GET("/metrics", gin.WrapH(appMetrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog", catalogController.GetAllProducts)
		v1.GET("/catalog/:id", catalogController.GetProductByID)

		v1.POST("/cart/preview", orderController.PreviewPrice)

		orders := v1.Group("/orders")
		{
			orders.GET("", orderController.GetOrders)
			orders.GET("/summary", orderController.GetSummary)
			orders.POST("", orderController.ConfirmOrder)
			orders.POST("/checkout", orderController.Checkout)
			orders.PUT("/:id", orderController.EditOrder)
			orders.PATCH("/:id/quantity", orderController.SetQuantity)
			orders.DELETE("/:id", middleware.RequireConfirmation(), orderController.DeleteOrder)
			orders.POST("/:id/invoice", orderController.IssueInvoice)
		}

		v1.GET("/preferences", preferencesController.GetPreferences)
		v1.PUT("/preferences/theme", preferencesController.SetTheme)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Route not found"))
	})
}

// serve runs the HTTP server until SIGINT/SIGTERM, then waits for pending invoices
func serve(router *gin.Engine, invoices *services.InvoiceService) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf("%v:%d", configuration.Host, configuration.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server stopped")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
	invoices.Wait()
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "pizzaone-api",
	})
}
