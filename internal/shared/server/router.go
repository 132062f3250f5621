package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"recommendation-backend/internal/llm"
	"recommendation-backend/internal/llm/bedrock"
	"recommendation-backend/internal/llm/localmock"
	"recommendation-backend/internal/recommend"
	"recommendation-backend/internal/shared/config"
	"recommendation-backend/internal/shared/metrics"
	"recommendation-backend/internal/shared/server/middleware"
	"recommendation-backend/internal/shared/server/respond"
	"recommendation-backend/internal/shared/storage/db"
	"recommendation-backend/internal/testgen"
	"recommendation-backend/internal/usage"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.APIKey),
		middleware.RateLimit(rateLimitConfig()),
	)

	// Dependencies
	invoker, err := newInvoker(cfg)
	if err != nil {
		return nil, err
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn.Close()
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var usageSvc *usage.Service
	if sqlDB != nil {
		usageSvc = usage.NewPostgresService(usage.NewPGStore(sqlDB))
	} else {
		usageSvc = usage.NewService()
	}
	usageHandler := usage.NewHandler(usageSvc)

	recommendSvc := &recommend.Service{LLM: invoker, ModelID: cfg.BedrockModelID}
	recommendHandler := recommend.NewHandler(recommendSvc, usageSvc)
	testgenSvc := &testgen.Service{LLM: invoker, ModelID: cfg.BedrockModelID}
	testgenHandler := testgen.NewHandler(testgenSvc, usageSvc)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/" + cfg.Env)
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	recommendHandler.RegisterRoutes(api)
	testgenHandler.RegisterRoutes(api)
	if cfg.Env == "dev" || cfg.Env == "local" {
		usageHandler.RegisterRoutes(api)
	}

	return r, nil
}

func newInvoker(cfg config.Config) (llm.Invoker, error) {
	if cfg.LLMProvider == "local" {
		return localmock.New(), nil
	}
	client, err := bedrock.New(context.Background(), cfg.AWSRegion, cfg.AWSEndpointURL)
	if err != nil {
		return nil, fmt.Errorf("init bedrock client: %w", err)
	}
	return client, nil
}

func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"inference": {Rate: 2, Burst: 10},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost {
				return "inference"
			}
			return ""
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
