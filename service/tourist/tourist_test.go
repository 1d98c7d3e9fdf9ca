package tourist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/model"
)

func completeInput() model.TourRequestInput {
	return model.TourRequestInput{
		entity.TourRequestFieldDestination:    "Kandy",
		entity.TourRequestFieldStartDate:      "2026-09-10",
		entity.TourRequestFieldEndDate:        "2026-09-14",
		entity.TourRequestFieldBudget:         1600.0,
		entity.TourRequestFieldNumberOfPeople: 2,
		entity.TourRequestFieldTourType:       "cultural",
		entity.TourRequestFieldDescription:    "temple visits and hill country",
		entity.TourRequestFieldTouristID:      "tourist-1",
	}
}

func TestValidateTourRequestDataComplete(t *testing.T) {
	svc := &Service{}

	v := svc.ValidateTourRequestData(completeInput())
	assert.True(t, v.IsValid)
	assert.Empty(t, v.MissingFields)
	assert.Equal(t, "Kandy", v.Parsed.Destination)
	assert.Equal(t, 1600.0, v.Parsed.Budget)
	assert.Equal(t, 2, v.Parsed.NumberOfPeople)
	assert.Equal(t, "Kandy Tour", v.Parsed.Title)
}

func TestValidateTourRequestDataMissingFields(t *testing.T) {
	svc := &Service{}

	input := completeInput()
	delete(input, entity.TourRequestFieldDestination)
	delete(input, entity.TourRequestFieldBudget)

	v := svc.ValidateTourRequestData(input)
	assert.False(t, v.IsValid)
	assert.Contains(t, v.MissingFields, entity.TourRequestFieldDestination)
	assert.Contains(t, v.MissingFields, entity.TourRequestFieldBudget)
	assert.Equal(t, "Tour Request", v.Parsed.Title)
}

func TestValidateTourRequestDataNotApplicable(t *testing.T) {
	svc := &Service{}

	input := completeInput()
	input[entity.TourRequestFieldDestination] = "N/A"

	v := svc.ValidateTourRequestData(input)
	assert.False(t, v.IsValid)
	assert.Contains(t, v.MissingFields, entity.TourRequestFieldDestination)
}

func TestValidateTourRequestDataBudgetCoercion(t *testing.T) {
	svc := &Service{}

	input := completeInput()
	input[entity.TourRequestFieldBudget] = "$1,600"

	v := svc.ValidateTourRequestData(input)
	assert.True(t, v.IsValid)
	assert.Equal(t, 1600.0, v.Parsed.Budget)

	input[entity.TourRequestFieldBudget] = "0"
	v = svc.ValidateTourRequestData(input)
	assert.False(t, v.IsValid)
	assert.Contains(t, v.MissingFields, entity.TourRequestFieldBudget)
}

func TestValidateTourRequestDataBadDates(t *testing.T) {
	svc := &Service{}

	input := completeInput()
	input[entity.TourRequestFieldStartDate] = "none"
	input[entity.TourRequestFieldEndDate] = "soon"

	v := svc.ValidateTourRequestData(input)
	assert.False(t, v.IsValid)
	assert.Contains(t, v.MissingFields, entity.TourRequestFieldStartDate)
	assert.Contains(t, v.MissingFields, entity.TourRequestFieldEndDate)
}

func TestValidateTourRequestDataExplicitTitle(t *testing.T) {
	svc := &Service{}

	input := completeInput()
	input[entity.TourRequestFieldTitle] = "Hill Country Escape"

	v := svc.ValidateTourRequestData(input)
	assert.True(t, v.IsValid)
	assert.Equal(t, "Hill Country Escape", v.Parsed.Title)
}

func TestGenerateQuestionsSingleField(t *testing.T) {
	svc := &Service{}

	msg := svc.GenerateQuestionsForMissingFields([]string{entity.TourRequestFieldBudget})
	assert.Contains(t, msg, "To complete your tour request, I need one more piece of information:")
	assert.Contains(t, msg, "What is your total budget for this tour?")
}

func TestGenerateQuestionsMultipleFields(t *testing.T) {
	svc := &Service{}

	msg := svc.GenerateQuestionsForMissingFields([]string{
		entity.TourRequestFieldDestination,
		entity.TourRequestFieldStartDate,
	})
	assert.Contains(t, msg, "To complete your tour request, I need a few more details:")
	assert.Contains(t, msg, "1. Where would you like to visit?")
	assert.Contains(t, msg, "2. When would you like to start your tour?")
	assert.Contains(t, msg, "Please provide these details so I can create your tour request.")
}

func TestGenerateQuestionsUnknownField(t *testing.T) {
	svc := &Service{}

	msg := svc.GenerateQuestionsForMissingFields([]string{"somethingElse"})
	assert.Equal(t, "I need more information to create your tour request. Could you please provide the missing details?", msg)
}

func TestParseTourRequestText(t *testing.T) {
	svc := &Service{}

	text := "John Smith is planning a cultural trip to Kandy, 2026-09-10 to 2026-09-14, for 2 people with a budget of $1,600"
	input := svc.ParseTourRequestText(text)

	assert.Equal(t, "Kandy", input[entity.TourRequestFieldDestination])
	assert.Equal(t, "Kandy Tour", input[entity.TourRequestFieldTitle])
	assert.Equal(t, 1600.0, input[entity.TourRequestFieldBudget])
	assert.Equal(t, 2, input[entity.TourRequestFieldNumberOfPeople])
	assert.Equal(t, "cultural", input[entity.TourRequestFieldTourType])
	assert.Equal(t, "2026-09-10", input[entity.TourRequestFieldStartDate])
	assert.Equal(t, "2026-09-14", input[entity.TourRequestFieldEndDate])
	assert.Equal(t, "John Smith", input[entity.TourRequestFieldTouristName])
	assert.Equal(t, text, input[entity.TourRequestFieldDescription])
}

func TestParseTourRequestTextDefaults(t *testing.T) {
	svc := &Service{}

	input := svc.ParseTourRequestText("hello")
	assert.Equal(t, "Tour Request Tour", input[entity.TourRequestFieldTitle])
	assert.Equal(t, "", input[entity.TourRequestFieldDestination])
	assert.Equal(t, float64(0), input[entity.TourRequestFieldBudget])
	assert.Equal(t, 1, input[entity.TourRequestFieldNumberOfPeople])
	assert.Equal(t, "general", input[entity.TourRequestFieldTourType])
	assert.Equal(t, []string{"English"}, input[entity.TourRequestFieldLanguages])
}

func TestParseUpdateText(t *testing.T) {
	svc := &Service{}

	updates := svc.ParseUpdateText("change the budget to $2,000 for 3 people")
	require.Contains(t, updates, entity.TourRequestFieldBudget)
	assert.Equal(t, 2000.0, updates[entity.TourRequestFieldBudget])
	require.Contains(t, updates, entity.TourRequestFieldNumberOfPeople)
	assert.Equal(t, 3, updates[entity.TourRequestFieldNumberOfPeople])
}

func TestParseUpdateTextEmpty(t *testing.T) {
	svc := &Service{}
	assert.Empty(t, svc.ParseUpdateText("no structured changes here"))
}
