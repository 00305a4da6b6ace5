package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/kinlabs/kin-paymaster/internal/auth"
	awsclient "github.com/kinlabs/kin-paymaster/internal/client/aws"
	sqsclient "github.com/kinlabs/kin-paymaster/internal/client/sqs"
	"github.com/kinlabs/kin-paymaster/internal/client/treasury"
	"github.com/kinlabs/kin-paymaster/internal/client/vault"
	"github.com/kinlabs/kin-paymaster/internal/constants"
	"github.com/kinlabs/kin-paymaster/internal/db"
	"github.com/kinlabs/kin-paymaster/internal/events"
	"github.com/kinlabs/kin-paymaster/internal/handlers"
	"github.com/kinlabs/kin-paymaster/internal/helpers"
	"github.com/kinlabs/kin-paymaster/internal/logger"
	"github.com/kinlabs/kin-paymaster/internal/middleware"
	"github.com/kinlabs/kin-paymaster/internal/paymaster"
	"github.com/kinlabs/kin-paymaster/internal/services"
)

var (
	paymasterHandler *handlers.PaymasterHandler
	relayerHandler   *handlers.RelayerHandler

	store db.Store

	commonServices *handlers.CommonServices
	dispatcher     *events.Dispatcher
)

func InitializeHandlers() {
	var dsn string

	// Load environment variables from .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = helpers.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !helpers.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}

	logger.InitLogger()
	logger.Info("Initializing handlers for stage", zap.String("stage", stage))

	ctx := context.Background()

	secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
	}

	// --- Database Connection Setup ---
	if stage == helpers.StageProd || stage == helpers.StageDev {
		logger.Info("Running in deployed stage, fetching DB credentials from Secrets Manager", zap.String("stage", stage))

		dbEndpoint := os.Getenv("DB_HOST")
		dbName := os.Getenv("DB_NAME")
		dbSSLMode := os.Getenv("DB_SSLMODE")

		if dbEndpoint == "" || dbName == "" {
			logger.Fatal("Missing required DB environment variables for deployed stage (DB_HOST, DB_NAME)")
		}
		if dbSSLMode == "" {
			dbSSLMode = "require"
			logger.Warn("DB_SSLMODE not set, defaulting to 'require'")
		}

		type RdsSecret struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		var secretData RdsSecret

		err = secretsClient.GetSecretJSON(ctx, "RDS_SECRET_ARN", "", &secretData)
		if err != nil {
			logger.Fatal("Failed to retrieve or parse RDS secret", zap.Error(err))
		}
		if secretData.Username == "" || secretData.Password == "" {
			logger.Fatal("Username or password not found in RDS secret data")
		}

		dsn = fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
			url.QueryEscape(secretData.Username),
			url.QueryEscape(secretData.Password),
			dbEndpoint, dbName, dbSSLMode)
	} else {
		logger.Info("Running in local stage, using DATABASE_URL from env/secrets")
		dsn, err = secretsClient.GetSecretString(ctx, "DATABASE_URL_ARN", "DATABASE_URL")
		if err != nil {
			logger.Fatal("Failed to get DATABASE_URL", zap.Error(err))
		}
		if dsn == "" {
			logger.Fatal("DATABASE_URL is required for local development")
		}
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("Unable to parse database DSN", zap.Error(err))
	}

	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Minute * 30
	poolConfig.MaxConnIdleTime = time.Minute * 15

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal("Unable to create connection pool with config", zap.Error(err))
	}

	store = db.NewStore(dbpool)

	// --- Paymaster Configuration ---
	keeperAddress := os.Getenv("PAYMASTER_KEEPER_ADDRESS")
	if !helpers.IsAddressValid(keeperAddress) {
		logger.Fatal("PAYMASTER_KEEPER_ADDRESS is not a valid address")
	}

	vaultAddress := os.Getenv("PAYMASTER_VAULT_ADDRESS")
	if !helpers.IsAddressValid(vaultAddress) {
		logger.Fatal("PAYMASTER_VAULT_ADDRESS is not a valid address")
	}

	royaltyBpsEnv := os.Getenv("PAYMASTER_ROYALTY_BPS")
	if royaltyBpsEnv == "" {
		logger.Fatal("PAYMASTER_ROYALTY_BPS environment variable is required")
	}
	royaltyBps, err := strconv.ParseUint(royaltyBpsEnv, 10, 64)
	if err != nil {
		logger.Fatal("PAYMASTER_ROYALTY_BPS is not a valid unsigned integer", zap.Error(err))
	}

	paymasterConfig, err := paymaster.NewConfig(
		common.HexToAddress(keeperAddress),
		common.HexToAddress(vaultAddress),
		royaltyBps,
	)
	if err != nil {
		logger.Fatal("Invalid paymaster configuration", zap.Error(err), zap.Uint64("royalty_bps", royaltyBps))
	}

	// --- JWT Secret for admin tokens ---
	jwtSecret, err := secretsClient.GetSecretString(ctx, "PAYMASTER_JWT_SECRET_ARN", "PAYMASTER_JWT_SECRET")
	if err != nil || jwtSecret == "" {
		logger.Fatal("Failed to get paymaster JWT secret", zap.Error(err))
	}
	os.Setenv("PAYMASTER_JWT_SECRET", jwtSecret)

	// --- Treasury Client ---
	rpcURL := os.Getenv("TREASURY_RPC_URL")
	if rpcURL == "" {
		logger.Fatal("TREASURY_RPC_URL environment variable is required")
	}

	operatorKey, err := secretsClient.GetSecretString(ctx, "TREASURY_PRIVATE_KEY_ARN", "TREASURY_PRIVATE_KEY")
	if err != nil || operatorKey == "" {
		logger.Fatal("Failed to get treasury operator key", zap.Error(err))
	}
	if !helpers.IsPrivateKeyValid(operatorKey) {
		logger.Fatal("Treasury operator key is not a valid private key")
	}

	treasuryClient, err := treasury.NewClient(ctx, treasury.Config{
		RPCURL:     rpcURL,
		PrivateKey: operatorKey,
	})
	if err != nil {
		logger.Fatal("Unable to create treasury client", zap.Error(err))
	}
	logger.Info("Treasury client initialized", zap.String("address", treasuryClient.Address().Hex()))

	// --- Vault Client ---
	vaultClient, err := vault.NewClient(common.HexToAddress(vaultAddress), treasuryClient)
	if err != nil {
		logger.Fatal("Unable to create vault client", zap.Error(err))
	}

	// --- Event Dispatcher ---
	var sinks []events.Sink
	if webhookURL := os.Getenv("EVENTS_WEBHOOK_URL"); webhookURL != "" {
		sinks = append(sinks, events.NewWebhookSink(webhookURL))
		logger.Info("Webhook event sink configured")
	}
	if queueURL := os.Getenv("EVENTS_QUEUE_URL"); queueURL != "" {
		publisher, err := sqsclient.NewPublisher(ctx, queueURL)
		if err != nil {
			logger.Fatal("Unable to create SQS publisher", zap.Error(err))
		}
		sinks = append(sinks, events.NewSQSSink(publisher))
		logger.Info("SQS event sink configured")
	}
	if len(sinks) > 0 {
		dispatcher = events.NewDispatcher(3, 100, sinks...)
	} else {
		logger.Warn("No event sinks configured, facts will only be persisted")
	}

	paymasterService := services.NewPaymasterService(store, vaultClient, treasuryClient, paymasterConfig, dispatcher)

	commonServices = handlers.NewCommonServices(store, paymasterService)

	paymasterHandler = handlers.NewPaymasterHandler(commonServices)
	relayerHandler = handlers.NewRelayerHandler(commonServices)
}

func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())

	// Correlation ID middleware for request tracing
	router.Use(middleware.CorrelationID())

	// Default rate limit for all endpoints
	router.Use(middleware.DefaultRateLimiter.Middleware())

	router.Use(middleware.RequestLogging())

	// Swagger endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health for raw lambda url check
	router.GET("/:stage/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	if dispatcher != nil {
		dispatcher.Start()
	}

	// Drain pending facts before the process exits
	router.GET("/shutdown", func(c *gin.Context) {
		go func() {
			time.Sleep(1 * time.Second)
			if dispatcher != nil {
				dispatcher.Stop()
			}
			logger.Info("Server is shutting down...")
			os.Exit(0)
		}()
		c.JSON(http.StatusOK, gin.H{"message": "Server is shutting down..."})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(auth.EnsureValidAPIKeyOrToken(store))
		{
			// Admin-only routes
			admin := protected.Group("/admin")
			admin.Use(auth.RequireRoles(constants.RoleAdmin))
			{
				admin.POST("/relayers", relayerHandler.CreateRelayer)
				admin.GET("/relayers", relayerHandler.ListRelayers)
				admin.GET("/relayers/:id", relayerHandler.GetRelayer)
				admin.PUT("/relayers/:id/active", relayerHandler.SetRelayerActive)
				admin.POST("/relayers/:id/api-keys", relayerHandler.CreateAPIKey)
			}

			// Paymaster operations
			pm := protected.Group("/paymaster")
			{
				// Fund-moving endpoints get the strict limiter and require
				// a relayer API key
				pm.POST("/deposits", middleware.StrictRateLimiter.Middleware(), auth.RequireRelayer(), paymasterHandler.DepositFor)
				pm.POST("/withdrawals", middleware.StrictRateLimiter.Middleware(), auth.RequireRelayer(), paymasterHandler.WithdrawFor)
				pm.POST("/claims", middleware.StrictRateLimiter.Middleware(), auth.RequireRelayer(), paymasterHandler.ClaimRelayerFees)

				pm.GET("/credits", auth.RequireRelayer(), paymasterHandler.GetRelayerCredit)
				pm.GET("/config", paymasterHandler.GetConfig)
				pm.GET("/solvency", paymasterHandler.GetSolvency)
				pm.GET("/events", paymasterHandler.ListEvents)
			}
		}
	}
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	methodsEnv := os.Getenv("CORS_ALLOWED_METHODS")
	if methodsEnv == "" {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	} else {
		methods := strings.Split(methodsEnv, ",")
		for i, method := range methods {
			methods[i] = strings.TrimSpace(method)
		}
		corsConfig.AllowMethods = methods
	}

	headersEnv := os.Getenv("CORS_ALLOWED_HEADERS")
	if headersEnv == "" {
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Correlation-ID"}
	} else {
		headers := strings.Split(headersEnv, ",")
		for i, header := range headers {
			headers[i] = strings.TrimSpace(header)
		}
		corsConfig.AllowHeaders = headers
	}

	exposedHeadersEnv := os.Getenv("CORS_EXPOSED_HEADERS")
	if exposedHeadersEnv != "" {
		exposedHeaders := strings.Split(exposedHeadersEnv, ",")
		for i, header := range exposedHeaders {
			exposedHeaders[i] = strings.TrimSpace(header)
		}
		corsConfig.ExposeHeaders = exposedHeaders
	} else {
		corsConfig.ExposeHeaders = []string{
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"Retry-After",
			"X-Correlation-ID",
		}
	}

	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
