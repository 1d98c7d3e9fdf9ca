package queryparser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBrowseQueryLocation(t *testing.T) {
	filters := ParseBrowseQuery("Show me cultural tours in Kandy")
	assert.Equal(t, "Kandy", filters.Destination)
	assert.Equal(t, "Kandy", filters.Search)
	assert.Equal(t, "cultural", filters.TourType)
}

func TestParseBrowseQueryKnownCity(t *testing.T) {
	filters := ParseBrowseQuery("any adventure tours around sigiriya?")
	assert.Equal(t, "Sigiriya", filters.Destination)
	assert.Equal(t, "adventure", filters.TourType)
}

func TestParseBrowseQueryMinBudget(t *testing.T) {
	filters := ParseBrowseQuery("tours in Colombo with budget above $1,000")
	require.NotNil(t, filters.MinBudget)
	assert.Equal(t, 1000.0, *filters.MinBudget)
	assert.Nil(t, filters.MaxBudget)
}

func TestParseBrowseQueryMaxBudget(t *testing.T) {
	filters := ParseBrowseQuery("show tours with price under 500")
	require.NotNil(t, filters.MaxBudget)
	assert.Equal(t, 500.0, *filters.MaxBudget)
}

func TestParseBrowseQueryBudgetRange(t *testing.T) {
	filters := ParseBrowseQuery("tours with budget $500 to $1500")
	require.NotNil(t, filters.MinBudget)
	require.NotNil(t, filters.MaxBudget)
	assert.Equal(t, 500.0, *filters.MinBudget)
	assert.Equal(t, 1500.0, *filters.MaxBudget)
}

func TestParseBrowseQueryGroupSize(t *testing.T) {
	filters := ParseBrowseQuery("tours for 4 people in Galle")
	require.NotNil(t, filters.NumberOfPeople)
	assert.Equal(t, 4, *filters.NumberOfPeople)
}

func TestParseBrowseQuerySoloTraveler(t *testing.T) {
	filters := ParseBrowseQuery("tours for a solo traveler")
	require.NotNil(t, filters.NumberOfPeople)
	assert.Equal(t, 1, *filters.NumberOfPeople)
}

func TestParseBrowseQueryLanguages(t *testing.T) {
	filters := ParseBrowseQuery("tours in Ella with english and german speaking tourists")
	assert.Contains(t, filters.Languages, "English")
	assert.Contains(t, filters.Languages, "German")
}

func TestParseBrowseQueryRequirementsAndUrgency(t *testing.T) {
	filters := ParseBrowseQuery("wheelchair accessible tours starting soon")
	assert.Equal(t, "accessibility", filters.Requirements)
	assert.True(t, filters.Urgent)
}

func TestParseBrowseQueryApplicationStatus(t *testing.T) {
	filters := ParseBrowseQuery("show requests with no applications yet")
	assert.Equal(t, "none", filters.ApplicationStatus)
}

func TestParseDateRangeNextWeek(t *testing.T) {
	// Wednesday 2026-08-26, next Monday is 2026-08-31
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	from, to := parseDateRange("tours next week", "tours next week", now)
	assert.Equal(t, "2026-08-31", from)
	assert.Equal(t, "2026-09-07", to)
}

func TestParseDateRangeNextWeekOnMonday(t *testing.T) {
	// Already Monday: "next week" means the following Monday, not today.
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	from, _ := parseDateRange("next week", "next week", now)
	assert.Equal(t, "2026-09-07", from)
}

func TestParseDateRangeMonth(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	from, to := parseDateRange("tours in December", "tours in december", now)
	assert.Equal(t, "2026-12-01", from)
	assert.Equal(t, "2026-12-31", to)

	from, to = parseDateRange("tours in February 2027", "tours in february 2027", now)
	assert.Equal(t, "2027-02-01", from)
	assert.Equal(t, "2027-02-28", to)
}

func TestValidateBrowseQueryVague(t *testing.T) {
	v := ValidateBrowseQuery(BrowseFilters{}, "show me all available tours")
	assert.False(t, v.IsClear)
	assert.Equal(t, 0.2, v.Confidence)
	assert.Equal(t, []string{"filters"}, v.MissingClarity)
}

func TestValidateBrowseQuerySpecific(t *testing.T) {
	min := 1000.0
	v := ValidateBrowseQuery(BrowseFilters{
		Destination: "Kandy",
		TourType:    "cultural",
		MinBudget:   &min,
	}, "cultural tours in Kandy above $1000")
	assert.True(t, v.IsClear)
	assert.InDelta(t, 1.0, v.Confidence, 0.001)
	assert.Empty(t, v.MissingClarity)
}

func TestValidateBrowseQueryConfidenceCap(t *testing.T) {
	min := 500.0
	one := 2
	v := ValidateBrowseQuery(BrowseFilters{
		Destination:    "Galle",
		TourType:       "beach",
		MinBudget:      &min,
		StartDateFrom:  "2026-09-01",
		Languages:      []string{"English"},
		NumberOfPeople: &one,
	}, "beach tours in Galle above 500 in September for 2 english speakers")
	assert.Equal(t, 1.0, v.Confidence)
}

func TestGenerateClarifyingQuestionsNoFilters(t *testing.T) {
	msg := GenerateClarifyingQuestions(BrowseFilters{})
	assert.Contains(t, msg, "I'd like to know a few more details")
	assert.Contains(t, msg, "1. What type of tours are you interested in?")
	assert.Contains(t, msg, "4. When are you available for tours?")
	assert.Contains(t, msg, "You can answer all at once")
}

func TestGenerateClarifyingQuestionsSingleMissing(t *testing.T) {
	min := 1000.0
	msg := GenerateClarifyingQuestions(BrowseFilters{
		Destination:   "Kandy",
		Search:        "Kandy",
		TourType:      "cultural",
		MinBudget:     &min,
		StartDateFrom: "",
	})
	assert.Contains(t, msg, "I need one more detail:")
	assert.Contains(t, msg, "When are you looking for tours?")
}

func TestGenerateClarifyingQuestionsNothingMissing(t *testing.T) {
	min := 1000.0
	msg := GenerateClarifyingQuestions(BrowseFilters{
		Destination:   "Kandy",
		TourType:      "cultural",
		MinBudget:     &min,
		StartDateFrom: "2026-09-01",
	})
	assert.Contains(t, msg, "refine the search")
}
