package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakyarasadi/tourguideBackend/model"
)

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, model.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req

	handler(ctx)

	var resp model.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	return recorder, resp
}

func TestProcessMessageMissingBody(t *testing.T) {
	recorder, resp := performJSON(t, ProcessMessage, http.MethodPost, "/api/bot", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_BODY", resp.ErrorCode)
}

func TestProcessMessageMissingInput(t *testing.T) {
	recorder, resp := performJSON(t, ProcessMessage, http.MethodPost, "/api/bot", `{"input_msg": "   "}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_INPUT_MSG", resp.ErrorCode)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "required_fields")
}

func TestProcessMessageInputTooLong(t *testing.T) {
	long := strings.Repeat("a", 5001)
	recorder, resp := performJSON(t, ProcessMessage, http.MethodPost, "/api/bot",
		`{"input_msg": "`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "INPUT_TOO_LONG", resp.ErrorCode)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 5000, data["max_length"])
	assert.EqualValues(t, 5001, data["received_length"])
}

func TestClearSessionMissingSessionID(t *testing.T) {
	recorder, resp := performJSON(t, ClearSession, http.MethodPost, "/api/bot/clear-session", `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_SESSION_ID", resp.ErrorCode)
}

func TestGetSessionHistoryMissingSessionID(t *testing.T) {
	recorder, resp := performJSON(t, GetSessionHistory, http.MethodGet, "/api/bot/history", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_SESSION_ID", resp.ErrorCode)
}

func TestSmartRouteMissingBody(t *testing.T) {
	recorder, resp := performJSON(t, SmartRoute, http.MethodPost, "/api/smart-router", "not json")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_BODY", resp.ErrorCode)
}

func TestSmartRouteMissingText(t *testing.T) {
	recorder, resp := performJSON(t, SmartRoute, http.MethodPost, "/api/smart-router", `{"text": "  "}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_TEXT", resp.ErrorCode)
}

func TestCreateTourRequestMissingText(t *testing.T) {
	recorder, resp := performJSON(t, CreateTourRequest, http.MethodPost, "/api/tourist/requests", `{"touristId": "t1"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_TEXT", resp.ErrorCode)
}

func TestGetTouristApplicationsMissingRequestID(t *testing.T) {
	recorder, resp := performJSON(t, GetTouristApplications, http.MethodGet, "/api/tourist/applications", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_REQUEST_ID", resp.ErrorCode)
}

func TestAcceptApplicationMissingRequestID(t *testing.T) {
	recorder, resp := performJSON(t, AcceptApplication, http.MethodPost,
		"/api/tourist/applications/app-1/accept", `{"text": "go ahead"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_REQUEST_ID", resp.ErrorCode)
}

func TestTouristAIAssistMissingQuery(t *testing.T) {
	recorder, resp := performJSON(t, TouristAIAssist, http.MethodPost, "/api/tourist/ai-assist", `{"query": ""}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_QUERY", resp.ErrorCode)
}

func TestSubmitApplicationMissingGuideID(t *testing.T) {
	recorder, resp := performJSON(t, SubmitApplication, http.MethodPost,
		"/api/guide/applications", `{"requestId": "r1"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_GUIDE_ID", resp.ErrorCode)
}

func TestSubmitApplicationMissingRequestID(t *testing.T) {
	recorder, resp := performJSON(t, SubmitApplication, http.MethodPost,
		"/api/guide/applications", `{"guideId": "g1", "proposedPrice": 900}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_REQUEST_ID", resp.ErrorCode)
}

func TestGetMyApplicationsMissingGuideID(t *testing.T) {
	recorder, resp := performJSON(t, GetMyApplications, http.MethodGet, "/api/guide/applications", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_GUIDE_ID", resp.ErrorCode)
}

func TestGetApplicationDetailsMissingRequestID(t *testing.T) {
	recorder, resp := performJSON(t, GetApplicationDetails, http.MethodGet, "/api/guide/applications/app-1", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_REQUEST_ID", resp.ErrorCode)
}

func TestUpdateApplicationMissingRequestID(t *testing.T) {
	recorder, resp := performJSON(t, UpdateApplication, http.MethodPut,
		"/api/guide/applications/app-1", `{"proposedPrice": 900}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_REQUEST_ID", resp.ErrorCode)
}

func TestGetGuideBookingsMissingGuideID(t *testing.T) {
	recorder, resp := performJSON(t, GetGuideBookings, http.MethodGet, "/api/guide/bookings", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_GUIDE_ID", resp.ErrorCode)
}

func TestGuideAIAssistMissingQuery(t *testing.T) {
	recorder, resp := performJSON(t, GuideAIAssist, http.MethodPost, "/api/guide/ai-assist", `{"query": "  "}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "MISSING_QUERY", resp.ErrorCode)
}
