package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/samjsmart/gig-int-garden-api/internal/http/handlers"
	httpMW "github.com/samjsmart/gig-int-garden-api/internal/http/middleware"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AllowedOrigins []string

	SubmitHandler *httpH.SubmitHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestID())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	if cfg.SubmitHandler != nil {
		r.POST("/submit", cfg.SubmitHandler.Submit)
	}

	return r
}
