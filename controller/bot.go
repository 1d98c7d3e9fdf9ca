package controller

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sakyarasadi/tourguideBackend/constant"
	"github.com/sakyarasadi/tourguideBackend/model"
	"github.com/sakyarasadi/tourguideBackend/repository/clientimplement"
	"github.com/sakyarasadi/tourguideBackend/service/bot"
)

var (
	botServiceOnce sync.Once
	botService     *bot.Service
)

func getBotService() *bot.Service {
	botServiceOnce.Do(func() {
		botService = bot.NewService(clientimplement.GetRepositoryFactoryInstance())
	})
	return botService
}

// GetBotInfo returns the bot's service info plus the most recent logged
// messages when a session_id is supplied.
func GetBotInfo(ctx *gin.Context) {
	svc := getBotService()

	info := model.BotInfo{
		ServiceInfo:    svc.GetServiceInfo(),
		SessionHistory: svc.GetRecentSessionHistoryFromFirestore(ctx, ctx.Query("session_id")),
	}
	model.SuccessResponse(ctx, "Bot service information retrieved successfully", info)
}

// ProcessMessage handles POST /api/bot.
func ProcessMessage(ctx *gin.Context) {
	var req model.BotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Request body is required", "MISSING_BODY")
		return
	}

	if strings.TrimSpace(req.InputMsg) == "" {
		model.ValidationErrorResponse(ctx, "input_msg is required", "MISSING_INPUT_MSG",
			gin.H{"required_fields": []string{"input_msg"}})
		return
	}
	if len(req.InputMsg) > constant.MaxInputMessageLength {
		model.ValidationErrorResponse(ctx, "Input message is too long", "INPUT_TOO_LONG",
			gin.H{
				"max_length":      constant.MaxInputMessageLength,
				"received_length": len(req.InputMsg),
			})
		return
	}

	sessionID := ctx.Query("session_id")
	userRole := ctx.GetHeader(constant.HeaderUserRole)

	result := getBotService().ProcessMessage(ctx, req.InputMsg, sessionID, userRole)
	result.OriginalMessage = req.InputMsg
	result.SessionID = sessionID
	result.UserRole = userRole

	model.SuccessResponse(ctx, "Message processed successfully", result)
}

// ClearSession handles POST /api/bot/clear-session.
func ClearSession(ctx *gin.Context) {
	var req struct {
		SessionID string `json:"session_id"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.SessionID) == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "session_id is required", "MISSING_SESSION_ID")
		return
	}

	if err := getBotService().ClearSession(ctx, req.SessionID); err != nil {
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear session", "CLEAR_SESSION_ERROR")
		return
	}
	model.SuccessResponse(ctx, "Session cleared successfully", gin.H{"session_id": req.SessionID})
}

// GetSessionHistory handles GET /api/bot/history. Source selects the
// Redis window or the permanent Firestore log, defaulting to Firestore.
func GetSessionHistory(ctx *gin.Context) {
	sessionID := ctx.Query("session_id")
	if sessionID == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "session_id is required", "MISSING_SESSION_ID")
		return
	}

	source := ctx.DefaultQuery("source", "firestore")
	svc := getBotService()

	var history interface{}
	var count int
	if source == "redis" {
		messages := svc.GetSessionHistory(ctx, sessionID)
		history, count = messages, len(messages)
	} else {
		source = "firestore"
		messages := svc.GetSessionHistoryFromFirestore(ctx, sessionID)
		history, count = messages, len(messages)
	}

	model.SuccessResponse(ctx, "Session history retrieved successfully", model.SessionHistory{
		SessionID:    sessionID,
		Source:       source,
		MessageCount: count,
		History:      history,
	})
}
