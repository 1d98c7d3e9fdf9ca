package smartrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/service/queryparser"
)

func TestDetermineEndpointFromKeywords(t *testing.T) {
	cases := []struct {
		text       string
		endpoint   string
		confidence float64
	}{
		{"I am planning a trip to Kandy", EndpointCreateTourRequest, 0.8},
		{"show my requests", EndpointGetTourRequests, 0.7},
		{"change the dates on my request", EndpointUpdateTourRequest, 0.7},
		{"cancel my request", EndpointCancelTourRequest, 0.7},
		{"my bookings please", EndpointGetBookings, 0.7},
		{"who are the applicants?", EndpointGetApplications, 0.7},
		{"accept the first one", EndpointAcceptApplication, 0.7},
		{"travel somewhere nice", EndpointCreateTourRequest, 0.6},
		{"what is the weather like", EndpointAIAssist, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			decision := determineEndpointFromKeywords(tc.text)
			assert.Equal(t, tc.endpoint, decision.Endpoint)
			assert.Equal(t, tc.confidence, decision.Confidence)
			assert.NotEmpty(t, decision.Reasoning)
			assert.NotNil(t, decision.Parameters)
		})
	}
}

func TestExtractJSON(t *testing.T) {
	var decision routingDecision
	ok := extractJSON(`Here is my routing decision:
{"endpoint": "get_bookings", "confidence": 0.9, "parameters": {"touristId": "t-1"}, "reasoning": "booking query"}
Hope that helps!`, &decision)

	require.True(t, ok)
	assert.Equal(t, "get_bookings", decision.Endpoint)
	assert.Equal(t, 0.9, decision.Confidence)
	assert.Equal(t, "t-1", decision.param("touristId"))
}

func TestExtractJSONNoObject(t *testing.T) {
	var decision routingDecision
	assert.False(t, extractJSON("no json here at all", &decision))
}

func TestRoutingDecisionParamNull(t *testing.T) {
	decision := routingDecision{Parameters: map[string]interface{}{
		"touristId": "null",
		"requestId": nil,
		"guideId":   "g-1",
	}}
	assert.Equal(t, "", decision.param("touristId"))
	assert.Equal(t, "", decision.param("requestId"))
	assert.Equal(t, "", decision.param("missing"))
	assert.Equal(t, "g-1", decision.param("guideId"))
}

func TestExtractIDFromText(t *testing.T) {
	assert.Equal(t, "ABC123", extractIDFromText("cancel request ABC123 please"))
	assert.Equal(t, "9F8E7D6C5B", extractIDFromText("look at 9F8E7D6C5B"))
	assert.Equal(t, "", extractIDFromText("nothing here"))
}

func TestUUIDExpr(t *testing.T) {
	assert.True(t, uuidExpr.MatchString("9f8e7d6c-1234-4abc-9def-0123456789ab"))
	assert.True(t, uuidExpr.MatchString("9F8E7D6C-1234-4ABC-9DEF-0123456789AB"))
	assert.False(t, uuidExpr.MatchString("REQ-1234"))
	assert.False(t, uuidExpr.MatchString("not a uuid"))
}

func TestRequestQueryText(t *testing.T) {
	req := Request{Query: "fallback"}
	assert.Equal(t, "fallback", req.QueryText())

	req.Text = "primary"
	assert.Equal(t, "primary", req.QueryText())
}

func TestRequestResolveUserID(t *testing.T) {
	assert.Equal(t, "", (&Request{}).ResolveUserID())
	assert.Equal(t, "u1", (&Request{UserID: "u1", GuideID: "g1"}).ResolveUserID())
	assert.Equal(t, "g1", (&Request{GuideID: "g1"}).ResolveUserID())
}

func TestExtractTourNameFromQuery(t *testing.T) {
	assert.Equal(t, "Kandy Cultural", extractTourNameFromQuery("show my Kandy Cultural booking"))
	assert.Equal(t, "", extractTourNameFromQuery("show my bookings"))
	assert.Equal(t, "", extractTourNameFromQuery("bookings"))
}

func TestFormatBookingsForDisplay(t *testing.T) {
	bookings := []entity.Booking{{
		ID:             "b-1",
		RequestID:      "r-1",
		Title:          "Kandy Cultural Tour",
		Destination:    "Kandy",
		TourType:       "cultural",
		StartDate:      "2026-09-10",
		EndDate:        "2026-09-14",
		Status:         "upcoming",
		AgreedPrice:    1500,
		NumberOfPeople: 2,
		TouristName:    "John Smith",
		GuideName:      "Jane Doe",
	}}

	out := formatBookingsForDisplay(bookings)
	assert.Contains(t, out, "Found 1 booking:")
	assert.Contains(t, out, "Kandy Cultural Tour")
	assert.Contains(t, out, "Dates: 2026-09-10 to 2026-09-14")
	assert.Contains(t, out, "Agreed Price: $1500")
	assert.Contains(t, out, "Booking ID: b-1")
	assert.Contains(t, out, "Request ID: r-1")
}

func TestFormatBookingsForDisplayEmpty(t *testing.T) {
	assert.Equal(t, "No bookings found.", formatBookingsForDisplay(nil))
}

func TestMatchesTourName(t *testing.T) {
	booking := entity.Booking{Title: "Kandy Cultural Tour", Destination: "Kandy"}
	assert.True(t, matchesTourName(booking, "kandy"))
	assert.True(t, matchesTourName(booking, "cultural tour"))
	assert.False(t, matchesTourName(booking, "galle beach"))
}

func TestMergeBrowseFilters(t *testing.T) {
	min := 1000.0
	aiMin := 1500.0
	regex := queryparser.BrowseFilters{Destination: "Kandy", MinBudget: &min, TourType: "cultural"}
	ai := queryparser.BrowseFilters{MinBudget: &aiMin}

	merged := mergeBrowseFilters(regex, ai)
	assert.Equal(t, "Kandy", merged.Destination)
	assert.Equal(t, "cultural", merged.TourType)
	require.NotNil(t, merged.MinBudget)
	assert.Equal(t, 1500.0, *merged.MinBudget)
}

func TestMissingApplicationFields(t *testing.T) {
	price := 900.0

	missing := missingApplicationFields(nil, "", false, 1000)
	assert.ElementsMatch(t, []string{"proposedPrice", "coverLetter"}, missing)

	missing = missingApplicationFields(&price, "I am the right guide", false, 1000)
	assert.Empty(t, missing)

	// an offer equal to the tourist's budget is treated as unanswered
	budget := 1000.0
	missing = missingApplicationFields(&budget, "letter", false, 1000)
	assert.Equal(t, []string{"proposedPrice"}, missing)

	missing = missingApplicationFields(&price, "", true, 1000)
	assert.Empty(t, missing)
}

func TestApplicationQuestions(t *testing.T) {
	budget := 1000.0
	msg := applicationQuestions([]string{"proposedPrice", "coverLetter"}, nil, budget)
	assert.Contains(t, msg, "To complete your application, I need the following information:")
	assert.Contains(t, msg, "1. What is your proposed price for this tour? (Tourist's budget: $1000)")
	assert.Contains(t, msg, "2. Please provide a cover letter")

	msg = applicationQuestions([]string{"proposedPrice"}, &budget, budget)
	assert.Contains(t, msg, "it should be different from the budget")
}
