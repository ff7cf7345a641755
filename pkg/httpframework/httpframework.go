package httpframework

import (
	"net/http"
	"sync"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/configs"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/middleware"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/set"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

// Init initializes the gin engine with CORS, the access logger and recovery.
// Release mode is used outside local and test environments.
func Init(configs *configs.AppConfigs) {
	once.Do(func() {
		router = NewRouter(configs)
	})
}

// NewRouter builds a fresh engine; Init wraps it in a process-wide singleton.
func NewRouter(configs *configs.AppConfigs) *gin.Engine {
	env := configs.Configs.ApplicationEnv
	if env == "prod" || env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.HTTPLogger(), middleware.HTTPRecovery(), cors.New(CorsConfig(configs.Configs.CorsAllowedOrigins)))
	engine.GET("/health/self", func(c *gin.Context) {
		c.String(http.StatusOK, "true")
	})
	return engine
}

// CorsConfig allows every origin for "*" or an empty value, otherwise the
// listed origins only.
func CorsConfig(allowedOrigins string) cors.Config {
	corsConfig := cors.DefaultConfig()
	origins := set.SplitCSV(allowedOrigins)
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	return corsConfig
}

// Instance returns the engine. Init must have been called.
func Instance() *gin.Engine {
	if router == nil {
		logger.Panic("Router not initialized", nil)
	}
	return router
}
