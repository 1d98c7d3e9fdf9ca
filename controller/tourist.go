package controller

import (
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/constant"
	"github.com/sakyarasadi/tourguideBackend/model"
	"github.com/sakyarasadi/tourguideBackend/repository/clientimplement"
	"github.com/sakyarasadi/tourguideBackend/service/smartrouter"
	"github.com/sakyarasadi/tourguideBackend/service/tourist"
)

var (
	touristServiceOnce sync.Once
	touristService     *tourist.Service
)

func getTouristService() *tourist.Service {
	touristServiceOnce.Do(func() {
		touristService = tourist.NewService(clientimplement.GetRepositoryFactoryInstance())
	})
	return touristService
}

// GetTourRequests handles GET /api/tourist/requests.
func GetTourRequests(ctx *gin.Context) {
	var filters model.TourRequestFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	page, err := getTouristService().GetTourRequests(ctx, &filters)
	if err != nil {
		log.Errorf("GetTourRequests error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve tour requests", "GET_TOUR_REQUESTS_ERROR")
		return
	}
	model.SuccessResponse(ctx, "Tour requests retrieved successfully", page)
}

// GetTourRequest handles GET /api/tourist/requests/:request_id.
func GetTourRequest(ctx *gin.Context) {
	requestID := ctx.Param("request_id")

	request, err := getTouristService().GetTourRequest(ctx, requestID)
	if err != nil {
		log.Errorf("GetTourRequest error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve tour request", "GET_TOUR_REQUEST_ERROR")
		return
	}
	if request == nil {
		model.ErrorResponse(ctx, http.StatusNotFound, "Tour request not found", "TOUR_REQUEST_NOT_FOUND")
		return
	}
	model.SuccessResponse(ctx, "Tour request retrieved successfully", request)
}

// CreateTourRequest handles POST /api/tourist/requests. The body is a
// free-text description; parsing and validation run through the smart
// router flow.
func CreateTourRequest(ctx *gin.Context) {
	var req struct {
		Text      string `json:"text"`
		TouristID string `json:"touristId"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Request body is required", "MISSING_BODY")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "text is required", "MISSING_TEXT")
		return
	}

	result, err := getSmartRouterService().CreateTourRequestFromText(ctx, req.Text, req.TouristID)
	if err != nil {
		log.Errorf("CreateTourRequest error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to create tour request", "CREATE_TOUR_REQUEST_ERROR")
		return
	}
	writeRouterResult(ctx, result)
}

// UpdateTourRequest handles PUT /api/tourist/requests/:request_id.
func UpdateTourRequest(ctx *gin.Context) {
	requestID := ctx.Param("request_id")

	var updates map[string]interface{}
	if err := ctx.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Request body is required", "MISSING_BODY")
		return
	}

	updated, err := getTouristService().UpdateTourRequest(ctx, requestID, updates)
	if err != nil {
		log.Errorf("UpdateTourRequest error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to update tour request", "UPDATE_TOUR_REQUEST_ERROR")
		return
	}
	if updated == nil {
		model.ErrorResponse(ctx, http.StatusNotFound, "Tour request not found", "TOUR_REQUEST_NOT_FOUND")
		return
	}
	model.SuccessResponse(ctx, "Tour request updated successfully", updated)
}

// CancelTourRequest handles DELETE /api/tourist/requests/:request_id.
func CancelTourRequest(ctx *gin.Context) {
	requestID := ctx.Param("request_id")

	if err := getTouristService().CancelTourRequest(ctx, requestID); err != nil {
		log.Errorf("CancelTourRequest error: %v", err)
		model.ErrorResponse(ctx, http.StatusNotFound, "Tour request not found", "TOUR_REQUEST_NOT_FOUND")
		return
	}
	model.SuccessResponse(ctx, "Tour request cancelled successfully", gin.H{"requestId": requestID})
}

// GetTouristBookings handles GET /api/tourist/bookings.
func GetTouristBookings(ctx *gin.Context) {
	var filters model.BookingFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY")
		return
	}

	page, err := getTouristService().GetBookings(ctx, &filters)
	if err != nil {
		log.Errorf("GetTouristBookings error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve bookings", "GET_BOOKINGS_ERROR")
		return
	}
	model.SuccessResponse(ctx, "Bookings retrieved successfully", page)
}

// GetTouristApplications handles GET /api/tourist/applications.
func GetTouristApplications(ctx *gin.Context) {
	var filters model.ApplicationFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY")
		return
	}
	if filters.RequestID == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "requestId is required", "MISSING_REQUEST_ID")
		return
	}

	page, err := getTouristService().GetApplications(ctx, &filters)
	if err != nil {
		log.Errorf("GetTouristApplications error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve applications", "GET_APPLICATIONS_ERROR")
		return
	}
	model.SuccessResponse(ctx, "Applications retrieved successfully", page)
}

var acceptRequestIDExpr = regexp.MustCompile(`(?i)(?:request|id)[\s:]*([A-Z0-9\-]+)`)

// AcceptApplication handles POST /api/tourist/applications/:application_id/accept.
// The request ID may arrive structured or buried in free text.
func AcceptApplication(ctx *gin.Context) {
	applicationID := ctx.Param("application_id")

	var req struct {
		RequestID string `json:"requestId"`
		Text      string `json:"text"`
	}
	_ = ctx.ShouldBindJSON(&req)

	requestID := req.RequestID
	if requestID == "" && req.Text != "" {
		if m := acceptRequestIDExpr.FindStringSubmatch(req.Text); m != nil {
			requestID = m[1]
		}
	}
	if requestID == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "requestId is required", "MISSING_REQUEST_ID")
		return
	}

	result, err := getTouristService().AcceptApplication(ctx, applicationID, requestID)
	if err != nil {
		log.Errorf("AcceptApplication error: %v", err)
		model.ErrorResponse(ctx, http.StatusBadRequest, "Failed to accept application", "ACCEPT_APPLICATION_ERROR")
		return
	}
	model.SuccessResponse(ctx, "Application accepted and booking created successfully", result)
}

// TouristAIAssist handles POST /api/tourist/ai-assist.
func TouristAIAssist(ctx *gin.Context) {
	var req struct {
		Query     string `json:"query"`
		SessionID string `json:"sessionId"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Request body is required", "MISSING_BODY")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "query is required", "MISSING_QUERY")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "tourist_ai_session"
	}
	result := getBotService().ProcessMessage(ctx, req.Query, sessionID, constant.UserRoleTourist)
	model.SuccessResponse(ctx, "AI assistance provided successfully", gin.H{
		"query":     req.Query,
		"response":  result.Response,
		"reasoning": result.Reasoning,
		"sessionId": sessionID,
	})
}

// writeRouterResult maps a smart router result onto the response
// envelope.
func writeRouterResult(ctx *gin.Context, result *smartrouter.Result) {
	if result.ErrorCode != "" {
		model.ErrorResponse(ctx, result.HTTPStatus, result.Message, result.ErrorCode)
		return
	}
	model.StatusResponse(ctx, result.HTTPStatus, result.Message, result.Data)
}
