package smartrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/constant"
	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/model"
	"github.com/sakyarasadi/tourguideBackend/service/queryparser"
)

func (s *Service) dispatchTourist(ctx context.Context, req *Request, decision *routingDecision, text, userID string) (*Result, error) {
	touristID := decision.param("touristId")
	if touristID == "" {
		touristID = userID
	}

	switch decision.Endpoint {
	case EndpointCreateTourRequest:
		return s.createTourRequest(ctx, text, touristID)
	case EndpointGetTourRequests:
		page, err := s.touristService.GetTourRequests(ctx, &model.TourRequestFilters{
			Search:    decision.param("search"),
			TourType:  decision.param("tourType"),
			Status:    decision.param("status"),
			TouristID: touristID,
		})
		if err != nil {
			return nil, err
		}
		return okResult("Tour requests retrieved successfully", page), nil
	case EndpointGetTourRequest:
		return s.getTourRequest(ctx, decision, text)
	case EndpointUpdateTourRequest:
		return s.updateTourRequest(ctx, decision, text)
	case EndpointCancelTourRequest:
		requestID := requestIDFrom(decision, text)
		if requestID == "" {
			return errResult(http.StatusBadRequest, "Could not extract request ID for cancellation", "MISSING_REQUEST_ID"), nil
		}
		if err := s.touristService.CancelTourRequest(ctx, requestID); err != nil {
			return errResult(http.StatusNotFound, "Tour request not found", "TOUR_REQUEST_NOT_FOUND"), nil
		}
		return okResult("Tour request cancelled successfully via smart router",
			map[string]interface{}{"requestId": requestID}), nil
	case EndpointGetBookings:
		return s.getBookings(ctx, decision, text, touristID, "")
	case EndpointGetApplications:
		requestID := decision.param("requestId")
		if requestID == "" {
			return errResult(http.StatusBadRequest, "requestId is required", "MISSING_REQUEST_ID"), nil
		}
		page, err := s.touristService.GetApplications(ctx, &model.ApplicationFilters{
			RequestID: requestID,
			Status:    decision.param("status"),
		})
		if err != nil {
			return nil, err
		}
		return okResult("Applications retrieved successfully", page), nil
	case EndpointAcceptApplication:
		return s.acceptApplication(ctx, decision, text)
	default:
		return s.aiAssist(ctx, req, text, constant.UserRoleTourist), nil
	}
}

func (s *Service) dispatchGuide(ctx context.Context, req *Request, decision *routingDecision, text, userID string) (*Result, error) {
	guideID := decision.param("guideId")
	if guideID == "" {
		guideID = userID
	}

	switch decision.Endpoint {
	case EndpointGetAvailableRequests:
		return s.getAvailableRequests(ctx, text, guideID)
	case EndpointApplyToRequest:
		return s.applyToRequest(ctx, decision, text, guideID)
	case EndpointGetMyApplications:
		page, err := s.guideService.GetMyApplications(ctx, &model.ApplicationFilters{
			GuideID: guideID,
			Status:  decision.param("status"),
		})
		if err != nil {
			return nil, err
		}
		return okResult("Applications retrieved successfully", page), nil
	case EndpointGetMyBookings:
		if guideID == "" {
			return errResult(http.StatusBadRequest, "Guide ID is required to get bookings", "MISSING_GUIDE_ID"), nil
		}
		return s.getBookings(ctx, decision, text, "", guideID)
	case EndpointUpdateApplication:
		return s.updateApplication(ctx, decision, text)
	case EndpointGetApplicationDetail:
		applicationID := decision.param("applicationId")
		requestID := decision.param("requestId")
		if applicationID == "" {
			return errResult(http.StatusBadRequest, "Could not extract application ID", "MISSING_APPLICATION_ID"), nil
		}
		application, err := s.guideService.GetApplicationDetails(ctx, applicationID, requestID)
		if err != nil {
			return nil, err
		}
		if application == nil {
			return errResult(http.StatusNotFound, "Application not found", "APPLICATION_NOT_FOUND"), nil
		}
		return okResult("Application details retrieved successfully", application), nil
	default:
		return s.aiAssistGuide(ctx, req, text, guideID), nil
	}
}

// withSuggestions embeds an optional AI suggestions string into the
// JSON object of the wrapped payload.
type withSuggestions struct {
	Payload       interface{} `json:"-"`
	AISuggestions string      `json:"aiSuggestions,omitempty"`
}

func (w withSuggestions) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(w.Payload)
	if err != nil {
		return nil, err
	}
	if w.AISuggestions == "" {
		return raw, nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw, nil
	}
	obj["aiSuggestions"] = w.AISuggestions
	return json.Marshal(obj)
}

func (s *Service) createTourRequest(ctx context.Context, text, touristID string) (*Result, error) {
	sessionID := fmt.Sprintf("parse_%s", orDefault(touristID, "anonymous"))
	parseResponse := s.botService.ProcessMessage(ctx, fmt.Sprintf(parseTourRequestPromptFmt, text), sessionID, "")

	input := model.TourRequestInput{}
	if !extractJSON(parseResponse.Response, &input) || len(input) == 0 {
		input = s.touristService.ParseTourRequestText(text)
	}

	// enrich identity from the users collection when the client sent an
	// authenticated ID
	if touristID != "" {
		input[entity.TourRequestFieldTouristID] = touristID
		if name, email, err := s.lookupUser(ctx, touristID); err == nil {
			if v, _ := input[entity.TourRequestFieldTouristName].(string); v == "" {
				input[entity.TourRequestFieldTouristName] = name
			}
			if v, _ := input[entity.TourRequestFieldTouristEmail].(string); v == "" {
				input[entity.TourRequestFieldTouristEmail] = email
			}
		}
	} else {
		input[entity.TourRequestFieldTouristID] = "anonymous"
	}

	validation := s.touristService.ValidateTourRequestData(input)
	if !validation.IsValid {
		questions := s.touristService.GenerateQuestionsForMissingFields(validation.MissingFields)
		return okResult("I need more information to create your tour request", map[string]interface{}{
			"missing_fields": validation.MissingFields,
			"questions":      questions,
			"collected_data": validation.Parsed,
			"status":         "incomplete",
		}), nil
	}

	suggestions := s.tourSuggestions(ctx, text, validation.Parsed.TouristID)

	created, err := s.touristService.CreateTourRequest(ctx, &validation.Parsed)
	if err != nil {
		return nil, err
	}

	return createdResult("Tour request created successfully via smart router",
		withSuggestions{Payload: created, AISuggestions: suggestions}), nil
}

func (s *Service) tourSuggestions(ctx context.Context, text, touristID string) string {
	sessionID := fmt.Sprintf("tourist_%s", touristID)
	response := s.botService.ProcessMessage(ctx, fmt.Sprintf(suggestionsPromptFmt, text), sessionID, constant.UserRoleTourist)
	if response.MessageType == "error" {
		return ""
	}
	return response.Response
}

func (s *Service) lookupUser(ctx context.Context, userID string) (name, email string, err error) {
	repo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return "", "", err
	}
	return repo.GetGuideUser(ctx, userID)
}

func requestIDFrom(decision *routingDecision, text string) string {
	if id := decision.param("requestId"); id != "" {
		return id
	}
	if id := decision.param("id"); id != "" {
		return id
	}
	return extractIDFromText(text)
}

func (s *Service) getTourRequest(ctx context.Context, decision *routingDecision, text string) (*Result, error) {
	requestID := requestIDFrom(decision, text)
	if requestID == "" {
		return errResult(http.StatusBadRequest, "Could not extract request ID", "MISSING_REQUEST_ID"), nil
	}

	request, err := s.touristService.GetTourRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return errResult(http.StatusNotFound, "Tour request not found", "TOUR_REQUEST_NOT_FOUND"), nil
	}
	return okResult("Tour request retrieved successfully", request), nil
}

func (s *Service) updateTourRequest(ctx context.Context, decision *routingDecision, text string) (*Result, error) {
	requestID := requestIDFrom(decision, text)
	if requestID == "" {
		return errResult(http.StatusBadRequest, "Could not extract request ID for update", "MISSING_REQUEST_ID"), nil
	}

	current, err := s.touristService.GetTourRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return errResult(http.StatusNotFound, "Tour request not found", "TOUR_REQUEST_NOT_FOUND"), nil
	}

	currentJSON, _ := json.MarshalIndent(current, "", "  ")
	parseResponse := s.botService.ProcessMessage(ctx,
		fmt.Sprintf(parseUpdatePromptFmt, string(currentJSON), text),
		fmt.Sprintf("update_%s", requestID), "")

	updates := map[string]interface{}{}
	if !extractJSON(parseResponse.Response, &updates) || len(updates) == 0 {
		updates = s.touristService.ParseUpdateText(text)
	}

	updated, err := s.touristService.UpdateTourRequest(ctx, requestID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return errResult(http.StatusBadRequest, "Failed to update tour request", "UPDATE_TOUR_REQUEST_ERROR"), nil
	}
	return okResult("Tour request updated successfully via smart router", updated), nil
}

var tourNameExprs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)show\s+(?:my\s+)?([A-Z][a-zA-Z\s,]+?)\s+booking`),
	regexp.MustCompile(`(?i)my\s+([A-Z][a-zA-Z\s,]+?)\s+booking`),
	regexp.MustCompile(`(?i)([A-Z][a-zA-Z\s,]+?)\s+booking\s+details?`),
	regexp.MustCompile(`(?i)booking\s+(?:for|to|in|of)\s+([A-Z][a-zA-Z\s,]+?)(?:\.|,|$|\s+details?)`),
}

var (
	plainBookingQueryExpr = regexp.MustCompile(`^(show\s+)?(my\s+)?(all\s+)?bookings?$`)
	tourNameTrailExpr     = regexp.MustCompile(`(?i)\s+(tour|trip|booking|request|details?)\s*$`)
	tourNameLeadExpr      = regexp.MustCompile(`(?i)^(show|my|the|a|an)\s+`)
	capitalizedNameExpr   = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)
)

// extractTourNameFromQuery pulls a tour title out of phrasing like
// "show my Japan Tour booking". Returns empty for a plain listing query.
func extractTourNameFromQuery(text string) string {
	if plainBookingQueryExpr.MatchString(strings.TrimSpace(strings.ToLower(text))) {
		return ""
	}

	for _, expr := range tourNameExprs {
		m := expr.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		name = tourNameTrailExpr.ReplaceAllString(name, "")
		name = tourNameLeadExpr.ReplaceAllString(name, "")
		if name = strings.TrimSpace(name); len(name) > 2 {
			return name
		}
	}

	if m := capitalizedNameExpr.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		if !tourNameLeadExpr.MatchString(name) {
			return name
		}
	}
	return ""
}

func matchesTourName(booking entity.Booking, tourName string) bool {
	title := strings.ToLower(booking.Title)
	destination := strings.ToLower(booking.Destination)
	if strings.Contains(title, tourName) || strings.Contains(destination, tourName) {
		return true
	}
	for _, part := range strings.Fields(tourName) {
		if len(part) > 2 && (strings.Contains(title, part) || strings.Contains(destination, part)) {
			return true
		}
	}
	return false
}

func formatBookingsForDisplay(bookings []entity.Booking) string {
	if len(bookings) == 0 {
		return "No bookings found."
	}

	plural := ""
	if len(bookings) > 1 {
		plural = "s"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d booking%s:\n\n", len(bookings), plural)

	const divider = "----------------------------------------\n"
	for _, booking := range bookings {
		b.WriteString(divider)
		fmt.Fprintf(&b, "%s\n", orDefault(booking.Title, "Untitled Tour"))
		fmt.Fprintf(&b, "   Destination: %s\n", orDefault(booking.Destination, "N/A"))
		fmt.Fprintf(&b, "   Type: %s\n\n", orDefault(booking.TourType, "N/A"))
		if booking.StartDate != "" && booking.EndDate != "" {
			fmt.Fprintf(&b, "Dates: %s to %s\n", booking.StartDate, booking.EndDate)
		}
		if booking.AgreedPrice > 0 {
			fmt.Fprintf(&b, "Agreed Price: $%.0f\n", booking.AgreedPrice)
		} else if booking.Budget > 0 {
			fmt.Fprintf(&b, "Budget: $%.0f\n", booking.Budget)
		}
		fmt.Fprintf(&b, "People: %d\n", booking.NumberOfPeople)
		fmt.Fprintf(&b, "Status: %s\n", orDefault(booking.Status, "N/A"))
		if booking.TouristName != "" {
			fmt.Fprintf(&b, "Tourist: %s\n", booking.TouristName)
		}
		if booking.GuideName != "" {
			fmt.Fprintf(&b, "Guide: %s\n", booking.GuideName)
		}
		fmt.Fprintf(&b, "Booking ID: %s\n", booking.ID)
		fmt.Fprintf(&b, "Request ID: %s\n\n", booking.RequestID)
	}
	b.WriteString(divider)
	return b.String()
}

func (s *Service) getBookings(ctx context.Context, decision *routingDecision, text, touristID, guideID string) (*Result, error) {
	tourName := extractTourNameFromQuery(text)

	// a tour name matches word-by-word below, which is wider than the
	// repository's substring search, so it is not sent as a search filter
	search := ""
	if tourName == "" {
		search = decision.param("search")
	}

	page, err := s.touristService.GetBookings(ctx, &model.BookingFilters{
		Search:    search,
		Status:    decision.param("status"),
		TouristID: touristID,
		GuideID:   guideID,
		Limit:     50,
	})
	if err != nil {
		return nil, err
	}

	bookings := page.Data
	if tourName != "" {
		tourNameLower := strings.ToLower(tourName)
		filtered := bookings[:0]
		for _, booking := range bookings {
			if matchesTourName(booking, tourNameLower) {
				filtered = append(filtered, booking)
			}
		}
		bookings = filtered
	}

	if len(bookings) == 0 {
		return okResult("No bookings found.", []entity.Booking{}), nil
	}
	return okResult(formatBookingsForDisplay(bookings), bookings), nil
}

var applicationIDExpr = regexp.MustCompile(`(?i)(?:application|app)[\s:]*([A-Z0-9\-]+)`)

func (s *Service) acceptApplication(ctx context.Context, decision *routingDecision, text string) (*Result, error) {
	applicationID := decision.param("applicationId")
	if applicationID == "" {
		if m := applicationIDExpr.FindStringSubmatch(text); m != nil {
			applicationID = m[1]
		}
	}
	requestID := requestIDFrom(decision, text)

	if applicationID == "" || requestID == "" {
		return errResult(http.StatusBadRequest, "Could not extract application ID or request ID", "MISSING_ID"), nil
	}

	result, err := s.touristService.AcceptApplication(ctx, applicationID, requestID)
	if err != nil {
		log.Errorf("%s accept application: %v", serviceName, err)
		return errResult(http.StatusBadRequest, "Failed to accept application", "ACCEPT_APPLICATION_ERROR"), nil
	}
	return okResult("Application accepted and booking created successfully via smart router", result), nil
}

func (s *Service) aiAssist(ctx context.Context, req *Request, text, userRole string) *Result {
	sessionID := orDefault(req.SessionID, "tourist_ai_session")
	response := s.botService.ProcessMessage(ctx, text, sessionID, userRole)
	return okResult("AI assistance provided successfully via smart router", aiAssistData(text, response, sessionID))
}

const guideAssistPreamble = `As a tour guide assistant, help with this query:

%s

Provide guidance specifically for tour guides, including:
- Professional proposal writing tips
- Competitive pricing strategies
- Customer service best practices
- Tour planning and execution advice
- How to stand out from other guides
`

func (s *Service) aiAssistGuide(ctx context.Context, req *Request, text, guideID string) *Result {
	sessionID := req.SessionID
	if sessionID == "" {
		if guideID != "" {
			sessionID = fmt.Sprintf("guide_%s", guideID)
		} else {
			sessionID = "guide_ai_session"
		}
	}

	response := s.botService.ProcessMessage(ctx, fmt.Sprintf(guideAssistPreamble, text), sessionID, constant.UserRoleGuide)
	data := aiAssistData(text, response, sessionID)
	data["userRole"] = constant.UserRoleGuide
	return okResult("AI assistance provided successfully for guide", data)
}

func (s *Service) getAvailableRequests(ctx context.Context, text, guideID string) (*Result, error) {
	aiFilters := queryparser.BrowseFilters{}
	if text != "" {
		sessionID := fmt.Sprintf("guide_browse_%s", orDefault(guideID, "anonymous"))
		parseResponse := s.botService.ProcessMessage(ctx,
			fmt.Sprintf(parseBrowseFiltersPromptFmt, text), sessionID, constant.UserRoleGuide)
		extractJSON(parseResponse.Response, &aiFilters)
	}

	merged := mergeBrowseFilters(queryparser.ParseBrowseQuery(text), aiFilters)

	validation := queryparser.ValidateBrowseQuery(merged, text)
	if !validation.IsClear {
		return okResult("I need more details to find the best tour requests for you", map[string]interface{}{
			"questions":         queryparser.GenerateClarifyingQuestions(merged),
			"extracted_filters": merged,
			"confidence":        validation.Confidence,
			"status":            "needs_clarification",
		}), nil
	}

	page, err := s.touristService.GetTourRequests(ctx, &model.TourRequestFilters{
		Status:        constant.RequestStatusOpen.String(),
		Destination:   merged.Destination,
		Search:        merged.Search,
		TourType:      merged.TourType,
		MinBudget:     merged.MinBudget,
		MaxBudget:     merged.MaxBudget,
		StartDateFrom: merged.StartDateFrom,
		StartDateTo:   merged.StartDateTo,
		Requirements:  merged.Requirements,
	})
	if err != nil {
		return nil, err
	}

	return okResult("Available tour requests retrieved successfully", map[string]interface{}{
		"data":       page.Data,
		"pagination": page.Pagination,
		"query_text": text,
		"query_type": "natural_language",
	}), nil
}

// mergeBrowseFilters overlays AI-extracted filters on the regex parse.
// The AI wins where it found a value, the regex fills the gaps.
func mergeBrowseFilters(regex, ai queryparser.BrowseFilters) queryparser.BrowseFilters {
	merged := regex
	if ai.Destination != "" {
		merged.Destination = ai.Destination
	}
	if ai.Search != "" {
		merged.Search = ai.Search
	}
	if ai.TourType != "" {
		merged.TourType = ai.TourType
	}
	if ai.MinBudget != nil {
		merged.MinBudget = ai.MinBudget
	}
	if ai.MaxBudget != nil {
		merged.MaxBudget = ai.MaxBudget
	}
	if ai.StartDateFrom != "" {
		merged.StartDateFrom = ai.StartDateFrom
	}
	if ai.StartDateTo != "" {
		merged.StartDateTo = ai.StartDateTo
	}
	if len(ai.Languages) > 0 {
		merged.Languages = ai.Languages
	}
	if ai.NumberOfPeople != nil {
		merged.NumberOfPeople = ai.NumberOfPeople
	}
	if ai.Requirements != "" {
		merged.Requirements = ai.Requirements
	}
	return merged
}

var (
	applyTourNameExpr    = regexp.MustCompile(`(?i)(?:apply to|want to apply|apply for|interested in|apply)\s+([A-Za-z][a-zA-Z\s,]+?)(?:\.|,|$|\s+(?:tour|trip|request|with))`)
	applyTourNameAltExpr = regexp.MustCompile(`apply\s+([A-Z][a-zA-Z\s]+?)(?:\.|,|$)`)
	applyPriceExpr       = regexp.MustCompile(`(?i)(?:proposed|price|budget|cost).*?(\d+(?:\.\d+)?)`)
	noCoverLetterExpr    = regexp.MustCompile(`(?i)cover\s*letter\s+no\s+need|no\s+cover\s*letter|coverletter\s+no\s+need`)
)

type parsedApplicationUpdate struct {
	ProposedPrice *float64 `json:"proposedPrice"`
	CoverLetter   *string  `json:"coverLetter"`
}

func (s *Service) applyToRequest(ctx context.Context, decision *routingDecision, text, guideID string) (*Result, error) {
	if guideID == "" {
		return errResult(http.StatusBadRequest, "guideId is required", "MISSING_GUIDE_ID"), nil
	}
	sessionID := fmt.Sprintf("guide_apply_%s", guideID)

	requestID, clarification, err := s.resolveApplicationRequest(ctx, decision, text)
	if err != nil {
		return nil, err
	}
	if clarification != nil {
		return clarification, nil
	}
	if requestID == "" {
		return errResult(http.StatusBadRequest,
			"Could not identify the tour request. Please provide the tour title, destination, or request ID.",
			"MISSING_REQUEST_ID"), nil
	}

	request, err := s.touristService.GetTourRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return errResult(http.StatusNotFound, "Tour request not found", "TOUR_REQUEST_NOT_FOUND"), nil
	}

	existing, err := s.guideService.GetApplication(ctx, guideID, requestID)
	if err != nil {
		log.Warnf("%s existing application check: %v", serviceName, err)
	}

	proposedPrice, coverLetter, coverLetterNotNeeded := s.parseApplicationDetails(ctx, text, request, sessionID)

	if existing != nil {
		return s.updateExistingApplication(ctx, existing, request, proposedPrice, coverLetter)
	}

	missing := missingApplicationFields(proposedPrice, coverLetter, coverLetterNotNeeded, request.Budget)
	if coverLetterNotNeeded && coverLetter == "" {
		coverLetter = fmt.Sprintf("I am interested in guiding the %s and would like to apply for this opportunity.",
			orDefault(request.Title, "tour"))
	}
	if len(missing) > 0 {
		return okResult(applicationQuestions(missing, proposedPrice, request.Budget), map[string]interface{}{
			"status":        "needs_information",
			"missingFields": missing,
			"requestId":     requestID,
			"tourTitle":     request.Title,
			"tourBudget":    request.Budget,
		}), nil
	}

	application := &entity.Application{
		RequestID:     requestID,
		GuideID:       guideID,
		ProposedPrice: *proposedPrice,
		CoverLetter:   strings.TrimSpace(coverLetter),
		TourTitle:     request.Title,
		Destination:   request.Destination,
		StartDate:     request.StartDate,
		EndDate:       request.EndDate,
		TourType:      request.TourType,
		TouristID:     request.TouristID,
		TouristName:   request.TouristName,
		TouristBudget: request.Budget,
	}

	created, err := s.guideService.ApplyToRequest(ctx, application)
	if err != nil {
		return nil, err
	}

	// the clarification conversation is over once the application lands
	_ = s.botService.ClearSession(ctx, sessionID)

	return createdResult(fmt.Sprintf("Application submitted successfully to %q!", request.Title), created), nil
}

func (s *Service) resolveApplicationRequest(ctx context.Context, decision *routingDecision, text string) (string, *Result, error) {
	potentialID := decision.param("requestId")
	if potentialID == "" {
		potentialID = extractIDFromText(text)
	}
	if potentialID != "" && uuidExpr.MatchString(potentialID) {
		return potentialID, nil, nil
	}

	tourName := potentialID
	if m := applyTourNameExpr.FindStringSubmatch(text); m != nil {
		tourName = strings.TrimSpace(m[1])
	} else if m := applyTourNameAltExpr.FindStringSubmatch(text); m != nil {
		tourName = strings.TrimSpace(m[1])
	}
	if tourName == "" {
		return "", nil, nil
	}

	page, err := s.touristService.GetTourRequests(ctx, &model.TourRequestFilters{
		Search: tourName,
		Status: constant.RequestStatusOpen.String(),
		Limit:  10,
	})
	if err != nil {
		return "", nil, err
	}

	tourNameLower := strings.ToLower(tourName)
	for _, tour := range page.Data {
		if strings.Contains(strings.ToLower(tour.Title), tourNameLower) ||
			strings.Contains(strings.ToLower(tour.Destination), tourNameLower) {
			return tour.ID, nil, nil
		}
	}
	if len(page.Data) == 1 {
		return page.Data[0].ID, nil, nil
	}

	matching := page.Data
	if len(matching) > 5 {
		matching = matching[:5]
	}

	var question string
	if len(matching) > 1 {
		var list strings.Builder
		for i, t := range matching {
			fmt.Fprintf(&list, "%d. %s - %s (ID: %s)\n", i+1, t.Title, t.Destination, t.ID)
		}
		question = fmt.Sprintf("I found %d tours matching '%s'. Which one would you like to apply to?\n\n%s\nPlease specify the tour number or ID.",
			len(page.Data), tourName, list.String())
	} else {
		question = fmt.Sprintf("I couldn't find an exact match for '%s'. Could you provide more details like the destination, dates, or the tour request ID?", tourName)
	}

	return "", okResult(question, map[string]interface{}{
		"status":        "needs_clarification",
		"matchingTours": matching,
		"tourName":      tourName,
	}), nil
}

func (s *Service) parseApplicationDetails(ctx context.Context, text string, request *entity.TourRequest, sessionID string) (*float64, string, bool) {
	var proposedPrice *float64
	if m := applyPriceExpr.FindStringSubmatch(text); m != nil {
		if v, ok := parseFloat(m[1]); ok {
			proposedPrice = &v
		}
	}

	parseResponse := s.botService.ProcessMessage(ctx,
		fmt.Sprintf(parseApplicationPromptFmt, text, request.Title, request.Destination, request.Budget),
		sessionID, constant.UserRoleGuide)

	parsed := parsedApplicationUpdate{}
	extractJSON(parseResponse.Response, &parsed)

	if proposedPrice == nil {
		proposedPrice = parsed.ProposedPrice
	}

	coverLetter := ""
	if parsed.CoverLetter != nil {
		coverLetter = *parsed.CoverLetter
	}

	notNeeded := noCoverLetterExpr.MatchString(text)
	if coverLetter != "" && containsAny(strings.ToLower(coverLetter), "no need", "not needed", "dont need") {
		notNeeded = true
		coverLetter = ""
	}
	return proposedPrice, coverLetter, notNeeded
}

func missingApplicationFields(proposedPrice *float64, coverLetter string, coverLetterNotNeeded bool, tourBudget float64) []string {
	var missing []string
	if proposedPrice == nil || *proposedPrice == 0 || *proposedPrice == tourBudget {
		missing = append(missing, "proposedPrice")
	}
	if !coverLetterNotNeeded && strings.TrimSpace(coverLetter) == "" {
		missing = append(missing, "coverLetter")
	}
	return missing
}

func applicationQuestions(missing []string, proposedPrice *float64, tourBudget float64) string {
	var questions []string
	for _, field := range missing {
		switch field {
		case "proposedPrice":
			if proposedPrice != nil && *proposedPrice == tourBudget {
				questions = append(questions, fmt.Sprintf(
					"The tourist's budget is $%.0f. Please provide your proposed price (it should be different from the budget).", tourBudget))
			} else {
				questions = append(questions, fmt.Sprintf(
					"What is your proposed price for this tour? (Tourist's budget: $%.0f)", tourBudget))
			}
		case "coverLetter":
			questions = append(questions, "Please provide a cover letter explaining why you're the best guide for this tour.")
		}
	}

	var b strings.Builder
	b.WriteString("To complete your application, I need the following information:\n\n")
	for i, q := range questions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	b.WriteString("\nYou can provide all information at once.")
	return b.String()
}

func (s *Service) updateExistingApplication(ctx context.Context, existing *entity.Application, request *entity.TourRequest, proposedPrice *float64, coverLetter string) (*Result, error) {
	if proposedPrice != nil && *proposedPrice == request.Budget {
		return okResult(fmt.Sprintf(
			"The tourist's budget is $%.0f. Please provide a different proposed price for your application.", request.Budget),
			map[string]interface{}{
				"status":        "needs_information",
				"missingFields": []string{"proposedPrice"},
				"requestId":     request.ID,
				"tourTitle":     request.Title,
				"tourBudget":    request.Budget,
			}), nil
	}

	updates := map[string]interface{}{}
	if proposedPrice != nil {
		updates[entity.ApplicationFieldProposedPrice] = *proposedPrice
	}
	if coverLetter != "" {
		updates[entity.ApplicationFieldCoverLetter] = coverLetter
	}

	updated, err := s.guideService.UpdateApplication(ctx, existing.ID, existing.RequestID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		updated = existing
	}
	return createdResult(fmt.Sprintf("Application submitted successfully to %q!", request.Title), updated), nil
}

func (s *Service) updateApplication(ctx context.Context, decision *routingDecision, text string) (*Result, error) {
	applicationID := decision.param("applicationId")
	if applicationID == "" {
		applicationID = extractIDFromText(text)
	}
	if applicationID == "" {
		return errResult(http.StatusBadRequest, "Could not extract application ID", "MISSING_APPLICATION_ID"), nil
	}
	requestID := decision.param("requestId")

	sessionID := fmt.Sprintf("guide_update_%s", applicationID)
	parseResponse := s.botService.ProcessMessage(ctx,
		fmt.Sprintf("Parse this application update:\n{\n    \"proposedPrice\": number or null,\n    \"coverLetter\": \"string\" or null\n}\n\nUpdate text: %s\n\nOnly include fields to update. Return ONLY valid JSON:", text),
		sessionID, constant.UserRoleGuide)

	parsed := parsedApplicationUpdate{}
	extractJSON(parseResponse.Response, &parsed)

	updates := map[string]interface{}{}
	if parsed.ProposedPrice != nil {
		updates[entity.ApplicationFieldProposedPrice] = *parsed.ProposedPrice
	}
	if parsed.CoverLetter != nil && *parsed.CoverLetter != "" {
		updates[entity.ApplicationFieldCoverLetter] = *parsed.CoverLetter
	}
	if len(updates) == 0 {
		updates[entity.ApplicationFieldCoverLetter] = text
	}

	updated, err := s.guideService.UpdateApplication(ctx, applicationID, requestID, updates)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return errResult(http.StatusNotFound, "Application not found", "APPLICATION_NOT_FOUND"), nil
	}
	return okResult("Application updated successfully via smart router", updated), nil
}

// GuideAssist backs the guide AI-assist endpoint.
func (s *Service) GuideAssist(ctx context.Context, query, guideID, sessionID string) *Result {
	return s.aiAssistGuide(ctx, &Request{SessionID: sessionID}, query, guideID)
}

// CreateTourRequestFromText backs the text-based tour request creation
// endpoint, sharing the smart router's parse and validation flow.
func (s *Service) CreateTourRequestFromText(ctx context.Context, text, touristID string) (*Result, error) {
	return s.createTourRequest(ctx, text, touristID)
}

// BrowseRequestsFromText backs the guide's natural-language request
// search endpoint.
func (s *Service) BrowseRequestsFromText(ctx context.Context, text, guideID string) (*Result, error) {
	return s.getAvailableRequests(ctx, text, guideID)
}

// ApplyFromText backs the guide's text-based application endpoint.
// requestID may be empty, in which case it is extracted from the text.
func (s *Service) ApplyFromText(ctx context.Context, text, guideID, requestID string) (*Result, error) {
	decision := &routingDecision{Parameters: map[string]interface{}{}}
	if requestID != "" {
		decision.Parameters["requestId"] = requestID
	}
	return s.applyToRequest(ctx, decision, text, guideID)
}

func parseFloat(s string) (float64, bool) {
	var v float64
	if _, err := fmt.Sscanf(s, "%f", &v); err != nil {
		return 0, false
	}
	return v, true
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
