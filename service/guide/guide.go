package guide

import (
	"context"
	"fmt"
	"regexp"
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

const serviceName = "guide_service"

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

// ApplyToRequest submits a guide's application on a tour request. The
// application document is keyed by the guide ID, so a guide holds at
// most one application per request. Guide name and email fall back to
// the users collection when the payload omits them, and the parent
// request's application counter is bumped.
func (s *Service) ApplyToRequest(ctx context.Context, app *entity.Application) (*entity.Application, error) {
	guideRepo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	if app.RequestID == "" || app.GuideID == "" {
		return nil, model.NewErrorWithMessage(model.ErrorParams, "requestId and guideId are required")
	}

	if app.ID == "" {
		app.ID = app.GuideID
	}

	if app.GuideEmail == "" || app.GuideName == "" {
		name, email, lookupErr := guideRepo.GetGuideUser(ctx, app.GuideID)
		if lookupErr != nil {
			log.Warnf("%s guide user lookup for %s: %v", serviceName, app.GuideID, lookupErr)
			if app.GuideName == "" {
				app.GuideName = "Unknown Guide"
			}
		} else {
			if app.GuideEmail == "" {
				app.GuideEmail = email
			}
			if app.GuideName == "" {
				app.GuideName = name
			}
		}
	}

	app.Status = constant.ApplicationStatusPending.String()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	created, err := guideRepo.CreateApplication(ctx, app)
	if err != nil {
		return nil, model.NewError(model.ErrorParams, err)
	}

	s.incrementApplicationCount(ctx, app.RequestID)

	log.Infof("%s guide %s applied to request %s", serviceName, app.GuideID, app.RequestID)
	return created, nil
}

func (s *Service) incrementApplicationCount(ctx context.Context, requestID string) {
	touristRepo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		log.Warnf("%s could not increment application count: %v", serviceName, err)
		return
	}

	request, err := touristRepo.GetTourRequest(ctx, requestID)
	if err != nil || request == nil {
		log.Warnf("%s could not increment application count for %s: %v", serviceName, requestID, err)
		return
	}

	if _, err := touristRepo.UpdateTourRequest(ctx, requestID, map[string]interface{}{
		entity.TourRequestFieldApplicationCount: request.ApplicationCount + 1,
	}); err != nil {
		log.Warnf("%s could not increment application count for %s: %v", serviceName, requestID, err)
	}
}

// GetMyApplications returns a guide's applications, newest first.
func (s *Service) GetMyApplications(ctx context.Context, filters *model.ApplicationFilters) (*model.ApplicationPage, error) {
	repo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = constant.DefaultPageLimit
	}
	if filters.SortBy == "" {
		filters.SortBy = entity.ApplicationFieldCreatedAt
	}

	items, total, err := repo.GetApplications(ctx, filters)
	if err != nil {
		return nil, model.NewError(model.ErrorParams, err)
	}

	return &model.ApplicationPage{
		Data:       items,
		Pagination: model.NewPagination(filters.Page, filters.Limit, total),
	}, nil
}

// GetApplication returns one application, nil when absent. The request
// ID speeds up the lookup; an empty one scans all requests.
func (s *Service) GetApplication(ctx context.Context, applicationID, requestID string) (*entity.Application, error) {
	repo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	return repo.GetApplication(ctx, applicationID, requestID)
}

// GetApplicationDetails returns an application merged with its tour
// request so a client gets the full picture in one call.
func (s *Service) GetApplicationDetails(ctx context.Context, applicationID, requestID string) (*entity.Application, error) {
	application, err := s.GetApplication(ctx, applicationID, requestID)
	if err != nil || application == nil {
		return application, err
	}

	touristRepo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		return application, nil
	}
	request, err := touristRepo.GetTourRequest(ctx, requestID)
	if err != nil || request == nil {
		return application, nil
	}

	if application.TourTitle == "" {
		application.TourTitle = request.Title
	}
	if application.Destination == "" {
		application.Destination = request.Destination
	}
	if application.TouristName == "" {
		application.TouristName = request.TouristName
	}
	application.TouristID = request.TouristID
	if application.StartDate == "" {
		application.StartDate = request.StartDate
	}
	if application.EndDate == "" {
		application.EndDate = request.EndDate
	}
	if application.TouristBudget == 0 {
		application.TouristBudget = request.Budget
	}
	if application.TourType == "" {
		application.TourType = request.TourType
	}

	return application, nil
}

// UpdateApplication merges fields into a pending application.
func (s *Service) UpdateApplication(ctx context.Context, applicationID, requestID string, updates map[string]interface{}) (*entity.Application, error) {
	repo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	return repo.UpdateApplication(ctx, applicationID, requestID, updates)
}

// WithdrawApplication marks an application withdrawn. Returns the not
// found error when the application does not exist.
func (s *Service) WithdrawApplication(ctx context.Context, applicationID, requestID string) error {
	repo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	updated, err := repo.UpdateApplication(ctx, applicationID, requestID, map[string]interface{}{
		entity.ApplicationFieldStatus: constant.ApplicationStatusWithdrawn.String(),
	})
	if err != nil {
		return model.NewError(model.ErrorApplicationState, err)
	}
	if updated == nil {
		return model.NewErrorWithMessage(model.ErrorNotFound, "application not found")
	}
	return nil
}

// GetBooking returns one booking, nil when absent.
func (s *Service) GetBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	repo, err := s.repositoryFactory.NewTouristRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	return repo.GetBooking(ctx, bookingID)
}

// CreateGuideProfile stores a new guide profile with zeroed stats.
func (s *Service) CreateGuideProfile(ctx context.Context, profile *entity.GuideProfile) (*entity.GuideProfile, error) {
	repo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	profile.Rating = 0
	profile.TotalTours = 0
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	return repo.CreateGuideProfile(ctx, profile)
}

// GetGuideProfile returns a guide profile, nil when absent.
func (s *Service) GetGuideProfile(ctx context.Context, guideID string) (*entity.GuideProfile, error) {
	repo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	return repo.GetGuideProfile(ctx, guideID)
}

// UpdateGuideProfile merges fields into a guide profile.
func (s *Service) UpdateGuideProfile(ctx context.Context, guideID string, updates map[string]interface{}) (*entity.GuideProfile, error) {
	repo, err := s.repositoryFactory.NewGuideRepository()
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}
	return repo.UpdateGuideProfile(ctx, guideID, updates)
}

// ParsedApplication is what the fallback parser extracts from a free
// text application when LLM parsing fails.
type ParsedApplication struct {
	ProposedPrice   float64  `json:"proposedPrice"`
	CoverLetter     string   `json:"coverLetter"`
	Experience      string   `json:"experience"`
	Specializations []string `json:"specializations"`
	Languages       []string `json:"languages"`
}

var (
	priceExpr      = regexp.MustCompile(`\$?(\d+(?:,\d{3})*(?:\.\d{2})?)`)
	experienceExpr = regexp.MustCompile(`(?i)(\d+)\s+(?:years?|yrs?)\s+(?:of\s+)?(?:experience|exp)`)
	languagesExpr  = regexp.MustCompile(`(?i)(?:speak|languages?|fluent in)\s+([A-Z][a-z]+(?:,?\s+and\s+[A-Z][a-z]+)*)`)
	langSplitExpr  = regexp.MustCompile(`\s+and\s+|\s*,\s*`)
)

var specializationKeywords = []string{
	"cultural", "adventure", "historical", "food", "wine", "nature", "museum", "art",
}

// ParseApplicationText extracts price, experience, languages and
// specializations from free text. The full text becomes the cover
// letter.
func (s *Service) ParseApplicationText(text string) ParsedApplication {
	parsed := ParsedApplication{
		CoverLetter:     text,
		Specializations: []string{},
		Languages:       []string{"English"},
	}

	if m := priceExpr.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil {
			parsed.ProposedPrice = v
		}
	}

	if m := experienceExpr.FindStringSubmatch(text); m != nil {
		parsed.Experience = fmt.Sprintf("%s years of experience", m[1])
	}

	if m := languagesExpr.FindStringSubmatch(text); m != nil {
		parts := langSplitExpr.Split(m[1], -1)
		langs := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				langs = append(langs, p)
			}
		}
		if len(langs) > 0 {
			parsed.Languages = langs
		}
	}

	textLower := strings.ToLower(text)
	for _, keyword := range specializationKeywords {
		if strings.Contains(textLower, keyword) {
			parsed.Specializations = append(parsed.Specializations, keyword)
		}
	}

	return parsed
}
