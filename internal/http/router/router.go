package router

import (
	"context"
	"net/http"
	"time"

	apphttp "skrytki/internal/http"
	"skrytki/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const readinessTimeout = 2 * time.Second

// New builds the gin engine: shared middleware, health endpoints and the
// routes of every module in app.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	api := engine.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		httpkit.OK(c, gin.H{"status": "ok"})
	})
	api.GET("/ready", func(c *gin.Context) {
		if app.Health == nil {
			httpkit.OK(c, gin.H{"status": "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := app.Health.Ping(ctx); err != nil {
			app.Logger.DatabaseError("readiness ping", err)
			httpkit.Error(c, http.StatusServiceUnavailable, "database unavailable", nil)
			return
		}
		httpkit.OK(c, gin.H{"status": "ok"})
	})

	rc := &apphttp.RouterContext{
		Engine:            engine,
		Root:              &engine.RouterGroup,
		API:               api,
		SearchRateLimiter: httpkit.NewIPRateLimiter(rate.Limit(app.Config.GetSearchRateLimit()), app.Config.GetSearchRateBurst(), app.Logger),
	}
	for _, m := range app.Modules {
		m.RegisterRoutes(rc)
		app.Logger.Debug("module routes registered", "module", m.Name())
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", httpkit.HeaderRequestID},
		ExposeHeaders: []string{httpkit.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if cfg.GetCORSAllowAll() || len(cfg.GetCORSOrigins()) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = cfg.GetCORSOrigins()
	c.AllowWildcard = true
	return c
}
