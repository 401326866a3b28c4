package router

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/unicatalog/internal/config"
	"github.com/stemsi/unicatalog/internal/handler"
	"github.com/stemsi/unicatalog/internal/middleware"
	"github.com/stemsi/unicatalog/internal/response"
	"github.com/stemsi/unicatalog/internal/service"
)

// datasetMaxAge is how long browsers may cache the raw dataset file.
const datasetMaxAge = 3600

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Page    *handler.PageHandler
	Catalog *handler.CatalogHandler
	Compare *handler.CompareHandler
	WS      *handler.WSHandler
}

// Deps carries what the route table needs besides the handlers.
type Deps struct {
	Clients      *service.ClientService
	Templates    *template.Template
	CompareLimit *middleware.RateLimiter
	Log          zerolog.Logger
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, deps Deps, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// Restrict to AllowedOrigins when set; otherwise allow all so dev works
	// without extra config. Credentials are needed for the client cookie.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(deps.Log))
	router.Use(middleware.Brotli())

	if deps.Templates != nil {
		router.SetHTMLTemplate(deps.Templates)
	}

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Raw dataset ───────────────────────────────────────────────────
	data := router.Group("/data", middleware.CacheControl(datasetMaxAge))
	if isRemote(cfg.DataSource) {
		data.GET("/universities.json", func(c *gin.Context) {
			c.Redirect(http.StatusFound, cfg.DataSource)
		})
	} else {
		data.StaticFile("/universities.json", cfg.DataSource)
	}

	clientIdentity := middleware.ClientIdentity(deps.Clients, cfg.GinMode == gin.ReleaseMode, deps.Log)
	compareLimit := deps.CompareLimit.Middleware()
	pageLimit := deps.CompareLimit.MiddlewareWith(handlers.Page.RateLimited)

	// ─── 1. HTML pages ─────────────────────────────────────────────────
	pages := router.Group("/", middleware.NoStore(), clientIdentity)
	{
		pages.GET("", handlers.Page.Index)
		pages.POST("/compare/clear", pageLimit, handlers.Page.ClearCompare)
		pages.POST("/compare/:id/toggle", pageLimit, handlers.Page.ToggleCompare)
	}

	// ─── 2. JSON API ───────────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			response.Success(c, http.StatusOK, gin.H{"status": "ok"})
		})
		api.GET("/universities", handlers.Catalog.ListUniversities)
		api.GET("/universities/:id", handlers.Catalog.GetUniversity)
		api.GET("/facets", handlers.Catalog.GetFacets)

		compare := api.Group("/compare", middleware.NoStore(), clientIdentity)
		{
			compare.GET("", handlers.Compare.GetCompare)
			compare.GET("/table", handlers.Compare.GetCompareTable)
			compare.POST("/:id", compareLimit, handlers.Compare.ToggleCompare)
			compare.DELETE("", compareLimit, handlers.Compare.ClearCompare)
		}
	}

	// ─── 3. WebSocket ──────────────────────────────────────────────────
	ws := router.Group("/ws/v1", clientIdentity)
	{
		ws.GET("/compare", handlers.WS.CompareStream)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	return router
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
