package controller

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/model"
	"github.com/sakyarasadi/tourguideBackend/repository/clientimplement"
	"github.com/sakyarasadi/tourguideBackend/service/smartrouter"
)

var (
	smartRouterOnce    sync.Once
	smartRouterService *smartrouter.Service
)

func getSmartRouterService() *smartrouter.Service {
	smartRouterOnce.Do(func() {
		smartRouterService = smartrouter.NewService(clientimplement.GetRepositoryFactoryInstance())
	})
	return smartRouterService
}

// SmartRoute handles POST /api/smart-router: one free-text entry point
// that answers from the knowledge base or dispatches to the matching
// structured operation.
func SmartRoute(ctx *gin.Context) {
	var req smartrouter.Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Request body is required", "MISSING_BODY")
		return
	}
	if strings.TrimSpace(req.QueryText()) == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "text is required", "MISSING_TEXT")
		return
	}

	result, err := getSmartRouterService().Route(ctx, &req)
	if err != nil {
		log.Errorf("SmartRoute error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to route query", "SMART_ROUTER_ERROR")
		return
	}
	writeRouterResult(ctx, result)
}
