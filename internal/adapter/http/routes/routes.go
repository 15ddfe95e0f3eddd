package routes

import (
	"context"
	"fmt"
	"log"
	"net/http"

	_ "proposal_gateway/docs" // generated by swag init
	"proposal_gateway/internal/adapter/http/handlers"
	"proposal_gateway/internal/adapter/persistence/repository"
	"proposal_gateway/internal/infrastructure/backend"
	"proposal_gateway/internal/infrastructure/config"
	"proposal_gateway/internal/infrastructure/database"
	"proposal_gateway/internal/infrastructure/metrics"
	"proposal_gateway/internal/infrastructure/sanitize"
	"proposal_gateway/internal/usecase"
	"proposal_gateway/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the use cases and options the router is built from.
type Dependencies struct {
	Proposals      usecase.IProposalUseCase
	Drafts         usecase.IDraftUseCase
	AllowedOrigins []string
	// MetricsHandler is served at /metrics when set.
	MetricsHandler http.Handler
}

// Run will start the server
func Run() {
	cfg := config.Load()

	router, err := buildRouter(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err)
	}

	log.Printf("[server] listening port=%s backend=%s draft_store=%s", cfg.Port, cfg.BackendBaseURL, cfg.DraftStore)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func buildRouter(ctx context.Context, cfg config.Config) (*gin.Engine, error) {
	draftRepo, err := newDraftRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	proxyMetrics := metrics.NewProxyMetrics(nil)

	var sanitizer interfaces.IBodySanitizer
	if cfg.SanitizeProposalHTML {
		sanitizer = sanitize.NewHTMLSanitizer()
	}

	proposalsClient := backend.NewProposalsClient(cfg.BackendBaseURL, cfg.BackendTimeout)
	proposalUseCase := usecase.NewProposalUseCase(proposalsClient, sanitizer, proxyMetrics)
	draftUseCase := usecase.NewDraftUseCase(draftRepo, proposalUseCase, proxyMetrics, cfg.DraftTTL)

	router := NewRouter(Dependencies{
		Proposals:      proposalUseCase,
		Drafts:         draftUseCase,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsHandler: promhttp.Handler(),
	})

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return router, nil
}

func newDraftRepository(ctx context.Context, cfg config.Config) (interfaces.IDraftRepository, error) {
	switch cfg.DraftStore {
	case config.DraftStoreMemory:
		return repository.NewDraftMemoryRepository(), nil
	case config.DraftStoreRedis:
		client, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return repository.NewDraftRedisRepository(client), nil
	case config.DraftStoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBSettings{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create dynamodb client: %w", err)
		}
		return repository.NewDraftDynamoRepository(ddb, cfg.DraftsTable), nil
	default:
		return nil, fmt.Errorf("unknown DRAFT_STORE %q", cfg.DraftStore)
	}
}

// NewRouter builds the HTTP surface without starting it.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, deps.AllowedOrigins)

	addPingRoutes(&router.RouterGroup)
	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	api := router.Group("/api")
	addProposalRoutes(api, handlers.NewProposalHandler(deps.Proposals))
	if deps.Drafts != nil {
		addDraftRoutes(api, handlers.NewDraftHandler(deps.Drafts))
	}
	addValidationRoutes(api, handlers.NewValidationHandler())
	return router
}

func setMiddlewares(router *gin.Engine, allowedOrigins []string) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}))
	router.Use(corsMiddleware(allowedOrigins))
}

// corsMiddleware answers preflights itself and decorates every other
// response with the CORS headers.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	policy := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "Authorization"},
	})
	return func(c *gin.Context) {
		policy.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.Abort()
			return
		}
		c.Next()
	}
}
