package router

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/sakyarasadi/tourguideBackend/middleware"
	"github.com/sakyarasadi/tourguideBackend/model"
)

var once sync.Once
var instance *gin.Engine

func init() {
	once.Do(func() {
		instance = gin.New()
		instance.Use(gin.Recovery(), middleware.RequestID, middleware.Logger)
		instance.NoRoute(func(ctx *gin.Context) {
			model.ErrorResponse(ctx, http.StatusNotFound,
				fmt.Sprintf("Endpoint %s not found", ctx.Request.URL.Path), "NOT_FOUND")
		})
		addBasicRouter(instance)
		addApiRouter(instance)
	})
}

func GetInstance() *gin.Engine {
	return instance
}
