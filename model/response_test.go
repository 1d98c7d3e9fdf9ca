package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, write func(ctx *gin.Context)) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	write(ctx)

	var resp Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return recorder, resp
}

func TestSuccessResponse(t *testing.T) {
	recorder, resp := record(t, func(ctx *gin.Context) {
		SuccessResponse(ctx, "all good", map[string]interface{}{"count": 1})
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "all good", resp.Message)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Empty(t, resp.ErrorCode)
	assert.NotNil(t, resp.Data)

	_, err := time.Parse(time.RFC3339, resp.Timestamp)
	assert.NoError(t, err)
}

func TestCreatedResponse(t *testing.T) {
	recorder, resp := record(t, func(ctx *gin.Context) {
		CreatedResponse(ctx, "created", nil)
	})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, StatusSuccess, resp.Status)
}

func TestErrorResponse(t *testing.T) {
	recorder, resp := record(t, func(ctx *gin.Context) {
		ErrorResponse(ctx, http.StatusBadRequest, "bad input", "MISSING_BODY")
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "MISSING_BODY", resp.ErrorCode)
	assert.Nil(t, resp.Data)
}

func TestValidationErrorResponse(t *testing.T) {
	recorder, resp := record(t, func(ctx *gin.Context) {
		ValidationErrorResponse(ctx, "missing field", "MISSING_INPUT_MSG",
			map[string]interface{}{"required_fields": []string{"input_msg"}})
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_INPUT_MSG", resp.ErrorCode)
	assert.NotNil(t, resp.Data)
}

func TestNotFoundResponse(t *testing.T) {
	recorder, resp := record(t, func(ctx *gin.Context) {
		NotFoundResponse(ctx, "no such request")
	})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "NOT_FOUND", resp.ErrorCode)
}
