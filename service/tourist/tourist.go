package tourist

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/sakyarasadi/tourguideBackend/constant"
	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/model"
	"github.com/sakyarasadi/tourguideBackend/repository/factory"
)

const serviceName = "tourist_service"

var (
	serviceOnce sync.Once
	instance    *Service
)

type Service struct {
	repositoryFactory factory.Factory
}

func NewService(repositoryFactory factory.Factory) *Service {
	serviceOnce.Do(func() {
		instance = &Service{repositoryFactory: repositoryFactory}
	})
	return instance
}

// GetTourRequests returns a filtered, paginated tour request listing.
func (s *Service) GetTourRequests(ctx context.Context, filters *model.TourRequestFilters) (*model.TourRequestPage, error) {
	repo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	normalizePaging(&filters.Page, &filters.Limit)
	items, total, err := repo.GetTourRequests(ctx, filters)
	if err != nil {
		return nil, model.NewError(model.ErrorParams, err)
	}

	return &model.TourRequestPage{
		Data:       items,
		Pagination: model.NewPagination(filters.Page, filters.Limit, total),
	}, nil
}

// GetTourRequest returns one tour request, nil when it does not exist.
func (s *Service) GetTourRequest(ctx context.Context, requestID string) (*entity.TourRequest, error) {
	repo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	return repo.GetTourRequest(ctx, requestID)
}

var requiredFields = []string{
	entity.TourRequestFieldDestination,
	entity.TourRequestFieldStartDate,
	entity.TourRequestFieldEndDate,
	entity.TourRequestFieldBudget,
	entity.TourRequestFieldNumberOfPeople,
	entity.TourRequestFieldTourType,
	entity.TourRequestFieldDescription,
	entity.TourRequestFieldTouristID,
}

func stringField(input model.TourRequestInput, key string) (string, bool) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return "", false
	}
	str, ok := raw.(string)
	if !ok {
		return fmt.Sprintf("%v", raw), true
	}
	str = strings.TrimSpace(str)
	if str == "" || strings.EqualFold(str, "n/a") {
		return "", false
	}
	return str, true
}

func floatField(input model.TourRequestInput, key string) (float64, bool) {
	switch v := input[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		str := strings.TrimSpace(strings.TrimPrefix(v, "$"))
		str = strings.ReplaceAll(str, ",", "")
		f, err := strconv.ParseFloat(str, 64)
		return f, err == nil
	}
	return 0, false
}

func intField(input model.TourRequestInput, key string) (int, bool) {
	switch v := input[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

func stringList(input model.TourRequestInput, key string) []string {
	switch v := input[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return []string{}
}

// ValidateTourRequestData checks a loosely typed create payload for the
// required fields, coercing numbers and flagging empty or "N/A" values
// as missing. A title is generated from the destination when absent.
func (s *Service) ValidateTourRequestData(input model.TourRequestInput) model.TourRequestValidation {
	var missing []string
	parsed := entity.TourRequest{}

	for _, field := range requiredFields {
		value, ok := stringField(input, field)
		if !ok && input[field] == nil {
			missing = append(missing, field)
			continue
		}

		switch field {
		case entity.TourRequestFieldBudget:
			budget, numOK := floatField(input, field)
			if !numOK || budget <= 0 {
				missing = append(missing, field)
				continue
			}
			parsed.Budget = budget
		case entity.TourRequestFieldNumberOfPeople:
			people, numOK := intField(input, field)
			if !numOK || people <= 0 {
				missing = append(missing, field)
				continue
			}
			parsed.NumberOfPeople = people
		case entity.TourRequestFieldStartDate, entity.TourRequestFieldEndDate:
			if !ok || len(value) < 8 || strings.EqualFold(value, "none") {
				missing = append(missing, field)
				continue
			}
			if field == entity.TourRequestFieldStartDate {
				parsed.StartDate = value
			} else {
				parsed.EndDate = value
			}
		default:
			if !ok {
				missing = append(missing, field)
				continue
			}
			switch field {
			case entity.TourRequestFieldDestination:
				parsed.Destination = value
			case entity.TourRequestFieldTourType:
				parsed.TourType = value
			case entity.TourRequestFieldDescription:
				parsed.Description = value
			case entity.TourRequestFieldTouristID:
				parsed.TouristID = value
			}
		}
	}

	if title, ok := stringField(input, entity.TourRequestFieldTitle); ok {
		parsed.Title = title
	} else if parsed.Destination != "" {
		parsed.Title = parsed.Destination + " Tour"
	} else {
		parsed.Title = "Tour Request"
	}

	parsed.Languages = stringList(input, entity.TourRequestFieldLanguages)
	parsed.Requirements, _ = stringField(input, entity.TourRequestFieldRequirements)
	parsed.TouristName, _ = stringField(input, entity.TourRequestFieldTouristName)
	parsed.TouristEmail, _ = stringField(input, entity.TourRequestFieldTouristEmail)

	return model.TourRequestValidation{
		IsValid:       len(missing) == 0,
		MissingFields: missing,
		Parsed:        parsed,
	}
}

var fieldQuestions = map[string]string{
	entity.TourRequestFieldDestination:    "Where would you like to visit? Please provide the destination city or region.",
	entity.TourRequestFieldStartDate:      `When would you like to start your tour? Please provide the start date (e.g., "June 10, 2025" or "2025-06-10").`,
	entity.TourRequestFieldEndDate:        `When would you like your tour to end? Please provide the end date (e.g., "June 14, 2025" or "2025-06-14").`,
	entity.TourRequestFieldBudget:         `What is your total budget for this tour? Please provide the amount (e.g., "$1,600" or "1600 USD").`,
	entity.TourRequestFieldNumberOfPeople: "How many people will be traveling? Please provide the number of travelers.",
	entity.TourRequestFieldTourType:       "What type of tour are you interested in? (e.g., cultural, adventure, beach, historical, nature, etc.)",
	entity.TourRequestFieldDescription:    "Could you provide more details about what you'd like to see and do during your tour?",
	entity.TourRequestFieldTouristID:      "Please provide your user ID or tourist identifier.",
}

// GenerateQuestionsForMissingFields phrases the follow-up prompt that
// asks the tourist for whatever the validation found missing.
func (s *Service) GenerateQuestionsForMissingFields(missingFields []string) string {
	var questions []string
	for _, field := range missingFields {
		if q, ok := fieldQuestions[field]; ok {
			questions = append(questions, q)
		}
	}

	switch {
	case len(questions) == 1:
		return fmt.Sprintf("To complete your tour request, I need one more piece of information: %s", questions[0])
	case len(questions) > 1:
		var b strings.Builder
		b.WriteString("To complete your tour request, I need a few more details:\n\n")
		for i, q := range questions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
		b.WriteString("\nPlease provide these details so I can create your tour request.")
		return b.String()
	default:
		return "I need more information to create your tour request. Could you please provide the missing details?"
	}
}

// CreateTourRequest stores a validated tour request. A missing ID gets a
// fresh uuid; new requests always start open with zero applications.
func (s *Service) CreateTourRequest(ctx context.Context, req *entity.TourRequest) (*entity.TourRequest, error) {
	repo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Title == "" {
		req.Title = req.Destination + " Tour"
	}
	req.ApplicationCount = 0
	req.Status = constant.RequestStatusOpen.String()
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	created, err := repo.CreateTourRequest(ctx, req)
	if err != nil {
		return nil, model.NewError(model.ErrorParams, err)
	}
	log.Infof("%s created tour request %s for tourist %s", serviceName, created.ID, created.TouristID)
	return created, nil
}

// UpdateTourRequest merges the given fields into a request. Returns nil
// when the request does not exist.
func (s *Service) UpdateTourRequest(ctx context.Context, requestID string, updates map[string]interface{}) (*entity.TourRequest, error) {
	repo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	return repo.UpdateTourRequest(ctx, requestID, updates)
}

// CancelTourRequest marks a request cancelled.
func (s *Service) CancelTourRequest(ctx context.Context, requestID string) error {
	repo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}
	return repo.CancelTourRequest(ctx, requestID)
}

// GetBookings returns a filtered, paginated booking listing.
func (s *Service) GetBookings(ctx context.Context, filters *model.BookingFilters) (*model.BookingPage, error) {
	repo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	normalizePaging(&filters.Page, &filters.Limit)
	items, total, err := repo.GetBookings(ctx, filters)
	if err != nil {
		return nil, model.NewError(model.ErrorParams, err)
	}

	return &model.BookingPage{
		Data:       items,
		Pagination: model.NewPagination(filters.Page, filters.Limit, total),
	}, nil
}

// GetBooking returns one booking, nil when absent.
func (s *Service) GetBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	repo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	return repo.GetBooking(ctx, bookingID)
}

// GetApplications returns the applications submitted for a tour request.
func (s *Service) GetApplications(ctx context.Context, filters *model.ApplicationFilters) (*model.ApplicationPage, error) {
	repo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	normalizePaging(&filters.Page, &filters.Limit)
	items, total, err := repo.GetApplications(ctx, filters)
	if err != nil {
		return nil, model.NewError(model.ErrorParams, err)
	}

	return &model.ApplicationPage{
		Data:       items,
		Pagination: model.NewPagination(filters.Page, filters.Limit, total),
	}, nil
}

// AcceptApplication turns an application into a booking: the booking
// copies the request and application details, the application becomes
// selected and the request becomes booked.
func (s *Service) AcceptApplication(ctx context.Context, applicationID, requestID string) (*model.AcceptResult, error) {
	touristRepo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	guideRepo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	application, err := guideRepo.GetApplication(ctx, applicationID, requestID)
	if err != nil {
		return nil, model.NewError(model.ErrorParams, err)
	}
	if application == nil {
		return nil, model.NewErrorWithMessage(model.ErrorNotFound, "application not found")
	}

	request, err := touristRepo.GetTourRequest(ctx, requestID)
	if err != nil {
		return nil, model.NewError(model.ErrorParams, err)
	}
	if request == nil {
		return nil, model.NewErrorWithMessage(model.ErrorNotFound, "tour request not found")
	}
	if request.Status != constant.RequestStatusOpen.String() {
		return nil, model.NewErrorWithMessage(model.ErrorRequestNotOpen,
			fmt.Sprintf("tour request %s is %s", requestID, request.Status))
	}

	now := time.Now().UTC()
	booking := &entity.Booking{
		ID:             uuid.New().String(),
		RequestID:      requestID,
		TouristID:      request.TouristID,
		TouristName:    request.TouristName,
		GuideID:        application.GuideID,
		GuideName:      application.GuideName,
		Title:          request.Title,
		Destination:    request.Destination,
		StartDate:      request.StartDate,
		EndDate:        request.EndDate,
		Status:         constant.BookingStatusUpcoming.String(),
		AgreedPrice:    application.ProposedPrice,
		NumberOfPeople: request.NumberOfPeople,
		Budget:         request.Budget,
		TourType:       request.TourType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := touristRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, model.NewError(model.ErrorParams, err)
	}

	if _, err := guideRepo.UpdateApplication(ctx, applicationID, requestID, map[string]interface{}{
		entity.ApplicationFieldStatus: constant.ApplicationStatusSelected.String(),
	}); err != nil {
		return nil, model.NewError(model.ErrorApplicationState, err)
	}

	if _, err := touristRepo.UpdateTourRequest(ctx, requestID, map[string]interface{}{
		entity.TourRequestFieldStatus: constant.RequestStatusBooked.String(),
	}); err != nil {
		return nil, model.NewError(model.ErrorParams, err)
	}

	log.Infof("%s accepted application %s on request %s, booking %s", serviceName, applicationID, requestID, created.ID)
	return &model.AcceptResult{
		BookingID:     created.ID,
		RequestID:     requestID,
		ApplicationID: applicationID,
	}, nil
}

func normalizePaging(page, limit *int) {
	if *page < 1 {
		*page = 1
	}
	if *limit < 1 {
		*limit = constant.DefaultPageLimit
	}
}
