package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sakyarasadi/tourguideBackend/config"
	"github.com/sakyarasadi/tourguideBackend/model"
	"github.com/sakyarasadi/tourguideBackend/pkg/clients/firebase"
	"github.com/sakyarasadi/tourguideBackend/pkg/clients/redis"
	"github.com/sakyarasadi/tourguideBackend/pkg/timeutil"
)

func databaseStatus() (firebaseUp, redisUp bool) {
	return firebase.GetInstance().IsConnected(), redis.GetInstance().IsConnected()
}

func overallStatus(firebaseUp, redisUp bool) string {
	switch {
	case firebaseUp && redisUp:
		return "healthy"
	case firebaseUp || redisUp:
		return "degraded"
	default:
		return "unhealthy"
	}
}

// Health handles GET /health.
func Health(ctx *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			model.ErrorResponse(ctx, http.StatusServiceUnavailable,
				"Service health check failed", "HEALTH_CHECK_ERROR")
		}
	}()

	cfg := config.GetInstance()
	firebaseUp, redisUp := databaseStatus()
	status := overallStatus(firebaseUp, redisUp)

	data := gin.H{
		"status":    status,
		"timestamp": timeutil.NowISO(),
		"service":   cfg.GetStringOrDefault(config.BotName, "AI Bot"),
		"version":   cfg.GetStringOrDefault(config.BotVersion, "1.0.0"),
		"service_info": gin.H{
			"name":        cfg.GetStringOrDefault(config.BotName, "AI Bot"),
			"version":     cfg.GetStringOrDefault(config.BotVersion, "1.0.0"),
			"description": cfg.GetString(config.BotDescription),
		},
		"database_connections": gin.H{
			"firebase": firebaseUp,
			"redis":    redisUp,
		},
	}
	model.SuccessResponse(ctx, "Service is "+status, data)
}

// HealthDetailed handles GET /health/detailed.
func HealthDetailed(ctx *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			model.ErrorResponse(ctx, http.StatusServiceUnavailable,
				"Service health check failed", "HEALTH_CHECK_ERROR")
		}
	}()

	cfg := config.GetInstance()
	firebaseUp, redisUp := databaseStatus()
	status := overallStatus(firebaseUp, redisUp)

	checks := gin.H{
		"service_info": gin.H{
			"name":        cfg.GetStringOrDefault(config.BotName, "AI Bot"),
			"version":     cfg.GetStringOrDefault(config.BotVersion, "1.0.0"),
			"description": cfg.GetString(config.BotDescription),
		},
		"database_connections": gin.H{
			"firebase": gin.H{"connected": firebaseUp, "status": connectionLabel(firebaseUp)},
			"redis":    gin.H{"connected": redisUp, "status": connectionLabel(redisUp)},
		},
		"environment": gin.H{
			"app_env":   cfg.GetStringOrDefault(config.AppEnv, "development"),
			"log_level": cfg.GetStringOrDefault(config.LogLevel, "info"),
		},
	}

	data := gin.H{
		"status":        status,
		"timestamp":     timeutil.NowISO(),
		"health_checks": checks,
	}
	model.SuccessResponse(ctx, "Detailed health check completed - Service is "+status, data)
}

func connectionLabel(up bool) string {
	if up {
		return "connected"
	}
	return "disconnected"
}
