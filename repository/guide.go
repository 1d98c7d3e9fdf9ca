package repository

import (
	"context"

	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/model"
)

// GuideRepository covers guide applications and profiles. Applications
// live as subcollections under their tour request, so lookups without a
// request ID scan across requests.
type GuideRepository interface {
	// CreateApplication writes the application under its tour request.
	CreateApplication(ctx context.Context, app *entity.Application) (*entity.Application, error)
	// GetApplication finds an application; requestID may be empty.
	GetApplication(ctx context.Context, applicationID, requestID string) (*entity.Application, error)
	// GetApplications returns one page of applications plus the total count.
	GetApplications(ctx context.Context, filters *model.ApplicationFilters) ([]entity.Application, int, error)
	// UpdateApplication merges field updates; requestID may be empty.
	UpdateApplication(ctx context.Context, applicationID, requestID string, updates map[string]interface{}) (*entity.Application, error)
	// DeleteApplication removes an application; requestID may be empty.
	DeleteApplication(ctx context.Context, applicationID, requestID string) error

	// CreateGuideProfile writes a profile keyed by the guide ID.
	CreateGuideProfile(ctx context.Context, profile *entity.GuideProfile) (*entity.GuideProfile, error)
	// GetGuideProfile returns a profile, nil if absent.
	GetGuideProfile(ctx context.Context, guideID string) (*entity.GuideProfile, error)
	// UpdateGuideProfile merges field updates and returns the new document.
	UpdateGuideProfile(ctx context.Context, guideID string, updates map[string]interface{}) (*entity.GuideProfile, error)
	// GetAllGuides returns one page of profiles plus the total count.
	GetAllGuides(ctx context.Context, page, limit int) ([]entity.GuideProfile, int, error)
	// GetGuideUser reads name and email from the users collection,
	// returning empty strings when the user document is missing.
	GetGuideUser(ctx context.Context, guideID string) (name, email string, err error)
}
