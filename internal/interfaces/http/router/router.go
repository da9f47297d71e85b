// Package router assembles the gin engine and route groups.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/festivo/backend/internal/infrastructure/auth"
	"github.com/festivo/backend/internal/infrastructure/config"
	"github.com/festivo/backend/internal/infrastructure/logger"
	"github.com/festivo/backend/internal/interfaces/http/handler"
	"github.com/festivo/backend/internal/interfaces/http/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	System  *handler.SystemHandler
	Report  *handler.ReportHandler
	Export  *handler.ExportHandler
	Finance *handler.FinanceHandler
	Sponsor *handler.SponsorHandler
	Sync    *handler.SyncHandler
}

// New builds the gin engine with the full middleware chain and all routes
func New(cfg *config.Config, jwtService *auth.JWTService, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowOrigins))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	// unauthenticated health endpoints
	h.System.RegisterRoutes(engine)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtService, log))
	{
		h.Report.RegisterRoutes(api)

		exports := api.Group("")
		exports.Use(middleware.RequireExporter())
		h.Export.RegisterRoutes(exports)

		h.Finance.RegisterRoutes(api, middleware.RequireFinanceEditor())
		h.Sponsor.RegisterRoutes(api, middleware.RequireSponsorManager())
		h.Sync.RegisterRoutes(api, middleware.RequireSyncTrigger())
	}

	return engine
}
