package model

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sakyarasadi/tourguideBackend/config"
	"github.com/sakyarasadi/tourguideBackend/pkg/timeutil"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusWarning = "warning"
)

// Response is the envelope every endpoint returns. ErrorCode is a short
// machine-readable string, present only on errors.
type Response struct {
	Message   string      `json:"message"`
	Status    string      `json:"status"`
	Service   string      `json:"service"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
}

func newResponse(message, status string, data interface{}, errorCode string) Response {
	return Response{
		Message:   message,
		Status:    status,
		Service:   config.GetInstance().GetString(config.BotName),
		Timestamp: timeutil.NowISO(),
		Data:      data,
		ErrorCode: errorCode,
	}
}

func SuccessResponse(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, newResponse(message, StatusSuccess, data, ""))
}

func CreatedResponse(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, newResponse(message, StatusSuccess, data, ""))
}

func ErrorResponse(ctx *gin.Context, httpStatus int, message, errorCode string) {
	ctx.JSON(httpStatus, newResponse(message, StatusError, nil, errorCode))
}

func ValidationErrorResponse(ctx *gin.Context, message, errorCode string, data interface{}) {
	ctx.JSON(http.StatusBadRequest, newResponse(message, StatusError, data, errorCode))
}

// StatusResponse writes a success envelope with an explicit HTTP status.
func StatusResponse(ctx *gin.Context, httpStatus int, message string, data interface{}) {
	ctx.JSON(httpStatus, newResponse(message, StatusSuccess, data, ""))
}

func NotFoundResponse(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusNotFound, newResponse(message, StatusError, nil, "NOT_FOUND"))
}
