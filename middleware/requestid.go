package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sakyarasadi/tourguideBackend/constant"
)

// RequestID accepts the client's X-Request-ID or generates one, and
// echoes it on the response so callers can correlate logs.
func RequestID(ctx *gin.Context) {
	requestID := ctx.GetHeader(constant.HeaderRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Set(constant.HeaderRequestID, requestID)
	ctx.Header(constant.HeaderRequestID, requestID)
	ctx.Next()
}
