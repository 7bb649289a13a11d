package app

import (
	"github.com/bettyshin1213/hbd-public/internal/config"
	"github.com/bettyshin1213/hbd-public/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func applyRuntimeSettings(cfg *config.AppConfig, logger *zap.Logger) {
	if cfg.SecretKey == "" {
		logger.Warn("secret_key is empty, sessions will not survive a restart")
	}
	if cfg.BirthdayPass == "" {
		logger.Warn("birthday_pass is empty, owner login is disabled")
	}
	if cfg.PortfolioMode {
		logger.Info("portfolio mode enabled, owner changes and notifications are disabled")
	}
}

func newRouter(cfg *config.AppConfig, logger *zap.Logger) *gin.Engine {
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins, cfg.IsDev())))
	return router
}
