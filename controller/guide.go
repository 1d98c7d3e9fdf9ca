package controller

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/constant"
	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/model"
	"github.com/sakyarasadi/tourguideBackend/repository/clientimplement"
	"github.com/sakyarasadi/tourguideBackend/service/guide"
)

var (
	guideServiceOnce sync.Once
	guideService     *guide.Service
)

func getGuideService() *guide.Service {
	guideServiceOnce.Do(func() {
		guideService = guide.NewService(clientimplement.GetRepositoryFactoryInstance())
	})
	return guideService
}

// GetAvailableRequests handles GET and POST /api/guide/requests. A text
// body or query switches to natural-language filtering via the smart
// router flow; otherwise structured filters apply. Status is always
// forced to open.
func GetAvailableRequests(ctx *gin.Context) {
	text := ctx.Query("text")
	guideID := ctx.Query("guideId")

	if ctx.Request.Method == http.MethodPost {
		var req struct {
			Text    string `json:"text"`
			GuideID string `json:"guideId"`
		}
		if err := ctx.ShouldBindJSON(&req); err != nil {
			model.ErrorResponse(ctx, http.StatusBadRequest, "Request body is required", "MISSING_BODY")
			return
		}
		text, guideID = req.Text, req.GuideID
	}

	if strings.TrimSpace(text) != "" {
		result, err := getSmartRouterService().BrowseRequestsFromText(ctx, text, guideID)
		if err != nil {
			log.Errorf("GetAvailableRequests error: %v", err)
			model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve tour requests", "GET_TOUR_REQUESTS_ERROR")
			return
		}
		writeRouterResult(ctx, result)
		return
	}

	var filters model.TourRequestFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY")
		return
	}
	filters.Status = constant.RequestStatusOpen.String()

	page, err := getTouristService().GetTourRequests(ctx, &filters)
	if err != nil {
		log.Errorf("GetAvailableRequests error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve tour requests", "GET_TOUR_REQUESTS_ERROR")
		return
	}
	model.SuccessResponse(ctx, "Available tour requests retrieved successfully", page)
}

// GetAvailableRequest handles GET /api/guide/requests/:request_id.
func GetAvailableRequest(ctx *gin.Context) {
	requestID := ctx.Param("request_id")

	request, err := getTouristService().GetTourRequest(ctx, requestID)
	if err != nil {
		log.Errorf("GetAvailableRequest error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve tour request", "GET_TOUR_REQUEST_ERROR")
		return
	}
	if request == nil {
		model.ErrorResponse(ctx, http.StatusNotFound, "Tour request not found", "TOUR_REQUEST_NOT_FOUND")
		return
	}
	model.SuccessResponse(ctx, "Tour request retrieved successfully", request)
}

// SubmitApplication handles POST /api/guide/applications. A text field
// routes through AI parsing; otherwise the structured fields are used
// directly.
func SubmitApplication(ctx *gin.Context) {
	var req struct {
		Text          string  `json:"text"`
		RequestID     string  `json:"requestId"`
		GuideID       string  `json:"guideId"`
		ProposedPrice float64 `json:"proposedPrice"`
		CoverLetter   string  `json:"coverLetter"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Request body is required", "MISSING_BODY")
		return
	}
	if req.GuideID == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "guideId is required", "MISSING_GUIDE_ID")
		return
	}

	if strings.TrimSpace(req.Text) != "" {
		result, err := getSmartRouterService().ApplyFromText(ctx, req.Text, req.GuideID, req.RequestID)
		if err != nil {
			log.Errorf("SubmitApplication error: %v", err)
			model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to submit application", "SUBMIT_APPLICATION_ERROR")
			return
		}
		writeRouterResult(ctx, result)
		return
	}

	if req.RequestID == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "requestId is required", "MISSING_REQUEST_ID")
		return
	}

	created, err := getGuideService().ApplyToRequest(ctx, &entity.Application{
		RequestID:     req.RequestID,
		GuideID:       req.GuideID,
		ProposedPrice: req.ProposedPrice,
		CoverLetter:   req.CoverLetter,
	})
	if err != nil {
		log.Errorf("SubmitApplication error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to submit application", "SUBMIT_APPLICATION_ERROR")
		return
	}
	model.CreatedResponse(ctx, "Application submitted successfully", created)
}

// GetMyApplications handles GET /api/guide/applications.
func GetMyApplications(ctx *gin.Context) {
	var filters model.ApplicationFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY")
		return
	}
	if filters.GuideID == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "guideId is required", "MISSING_GUIDE_ID")
		return
	}

	page, err := getGuideService().GetMyApplications(ctx, &filters)
	if err != nil {
		log.Errorf("GetMyApplications error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve applications", "GET_APPLICATIONS_ERROR")
		return
	}
	model.SuccessResponse(ctx, "Applications retrieved successfully", page)
}

// GetApplicationDetails handles GET /api/guide/applications/:application_id.
// The requestId query parameter is required because applications live
// under their tour request.
func GetApplicationDetails(ctx *gin.Context) {
	applicationID := ctx.Param("application_id")
	requestID := ctx.Query("requestId")
	if requestID == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "requestId is required", "MISSING_REQUEST_ID")
		return
	}

	application, err := getGuideService().GetApplicationDetails(ctx, applicationID, requestID)
	if err != nil {
		log.Errorf("GetApplicationDetails error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve application", "GET_APPLICATION_ERROR")
		return
	}
	if application == nil {
		model.ErrorResponse(ctx, http.StatusNotFound, "Application not found", "APPLICATION_NOT_FOUND")
		return
	}
	model.SuccessResponse(ctx, "Application details retrieved successfully", application)
}

// UpdateApplication handles PUT /api/guide/applications/:application_id.
// Only the owning guide can update, only while pending, and only the
// proposed price and cover letter are writable.
func UpdateApplication(ctx *gin.Context) {
	applicationID := ctx.Param("application_id")
	requestID := ctx.Query("requestId")
	if requestID == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "requestId is required", "MISSING_REQUEST_ID")
		return
	}

	var req struct {
		GuideID       string      `json:"guideId"`
		ProposedPrice *float64    `json:"proposedPrice"`
		CoverLetter   interface{} `json:"coverLetter"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Request body is required", "MISSING_BODY")
		return
	}

	application, err := getGuideService().GetApplication(ctx, applicationID, requestID)
	if err != nil {
		log.Errorf("UpdateApplication error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve application", "GET_APPLICATION_ERROR")
		return
	}
	if application == nil {
		model.ErrorResponse(ctx, http.StatusNotFound, "Application not found", "APPLICATION_NOT_FOUND")
		return
	}
	if req.GuideID != "" && req.GuideID != application.GuideID {
		model.ErrorResponse(ctx, http.StatusForbidden, "You can only update your own applications", "FORBIDDEN")
		return
	}
	if application.Status != constant.ApplicationStatusPending.String() {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Only pending applications can be updated", "INVALID_STATUS")
		return
	}

	updates := map[string]interface{}{}
	if req.ProposedPrice != nil {
		if *req.ProposedPrice < 0 {
			model.ErrorResponse(ctx, http.StatusBadRequest, "proposedPrice must be a positive number", "INVALID_PRICE")
			return
		}
		updates[entity.ApplicationFieldProposedPrice] = *req.ProposedPrice
	}
	if req.CoverLetter != nil {
		coverLetter, ok := req.CoverLetter.(string)
		if !ok {
			model.ErrorResponse(ctx, http.StatusBadRequest, "coverLetter must be a string", "INVALID_COVER_LETTER")
			return
		}
		updates[entity.ApplicationFieldCoverLetter] = coverLetter
	}

	updated, err := getGuideService().UpdateApplication(ctx, applicationID, requestID, updates)
	if err != nil {
		log.Errorf("UpdateApplication error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to update application", "UPDATE_APPLICATION_ERROR")
		return
	}
	model.SuccessResponse(ctx, "Application updated successfully", updated)
}

// WithdrawApplication handles DELETE /api/guide/applications/:application_id.
func WithdrawApplication(ctx *gin.Context) {
	applicationID := ctx.Param("application_id")
	requestID := ctx.Query("requestId")

	if err := getGuideService().WithdrawApplication(ctx, applicationID, requestID); err != nil {
		log.Errorf("WithdrawApplication error: %v", err)
		model.ErrorResponse(ctx, http.StatusNotFound, "Application not found", "APPLICATION_NOT_FOUND")
		return
	}
	model.SuccessResponse(ctx, "Application withdrawn successfully", gin.H{"applicationId": applicationID})
}

// GetGuideBookings handles GET /api/guide/bookings.
func GetGuideBookings(ctx *gin.Context) {
	var filters model.BookingFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		model.ErrorResponse(ctx, http.StatusBadRequest, "Invalid query parameters", "INVALID_QUERY")
		return
	}
	if filters.GuideID == "" {
		model.ErrorResponse(ctx, http.StatusBadRequest, "guideId is required", "MISSING_GUIDE_ID")
		return
	}

	page, err := getTouristService().GetBookings(ctx, &filters)
	if err != nil {
		log.Errorf("GetGuideBookings error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve bookings", "GET_BOOKINGS_ERROR")
		return
	}
	model.SuccessResponse(ctx, "Bookings retrieved successfully", page)
}

// GetGuideBooking handles GET /api/guide/bookings/:booking_id.
func GetGuideBooking(ctx *gin.Context) {
	bookingID := ctx.Param("booking_id")

	booking, err := getGuideService().GetBooking(ctx, bookingID)
	if err != nil {
		log.Errorf("GetGuideBooking error: %v", err)
		model.ErrorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve booking", "GET_BOOKING_ERROR")
		return
	}
	if booking == nil {
		model.ErrorResponse(ctx, http.StatusNotFound, "Booking not found", "BOOKING_NOT_FOUND")
		return
	}
	model.SuccessResponse(ctx, "Booking retrieved successfully", booking)
}

// GuideAIAssist handles POST /api/guide/ai-assist. The query is wrapped
// with guide-specific framing before going to the assistant.
func GuideAIAssist(ctx *gin.Context) {
	var req struct {
		Query     string `json:"query"`
		GuideID   string `json:"guideId"`
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

	result := getSmartRouterService().GuideAssist(ctx, req.Query, req.GuideID, req.SessionID)
	writeRouterResult(ctx, result)
}
