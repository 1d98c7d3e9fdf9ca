package firestoreimplement

import (
	"context"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"

	"github.com/sakyarasadi/tourguideBackend/constant"
	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/model"
	"github.com/sakyarasadi/tourguideBackend/repository"
)

type GuideRepository struct {
	db *firestore.Client
}

func NewGuideRepository(db *firestore.Client) (repository.GuideRepository, error) {
	if db == nil {
		return nil, errors.New("firestore client is nil")
	}
	return &GuideRepository{db: db}, nil
}

func (r *GuideRepository) applicationsOf(requestID string) *firestore.CollectionRef {
	return r.db.Collection(entity.CollectionTourRequests).Doc(requestID).Collection(entity.SubcollectionApplications)
}

func (r *GuideRepository) CreateApplication(ctx context.Context, app *entity.Application) (*entity.Application, error) {
	if app.ID == "" {
		return nil, errors.New("application id is required")
	}
	if app.RequestID == "" {
		return nil, errors.New("request id is required")
	}

	ref := r.applicationsOf(app.RequestID).Doc(app.ID)
	if _, err := ref.Set(ctx, app); err != nil {
		return nil, errors.Wrap(err, "create application")
	}
	return r.GetApplication(ctx, app.ID, app.RequestID)
}

// GetApplication with an empty requestID scans every tour request's
// applications subcollection for the id.
func (r *GuideRepository) GetApplication(ctx context.Context, applicationID, requestID string) (*entity.Application, error) {
	if requestID != "" {
		snap, err := r.applicationsOf(requestID).Doc(applicationID).Get(ctx)
		if isNotFound(err) {
			return nil, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "get application")
		}
		return decodeApplication(snap, requestID)
	}

	requests := r.db.Collection(entity.CollectionTourRequests).Documents(ctx)
	defer requests.Stop()
	for {
		reqDoc, err := requests.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterate tour requests")
		}

		snap, err := reqDoc.Ref.Collection(entity.SubcollectionApplications).Doc(applicationID).Get(ctx)
		if isNotFound(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "get application")
		}
		return decodeApplication(snap, reqDoc.Ref.ID)
	}
	return nil, nil
}

func decodeApplication(snap *firestore.DocumentSnapshot, requestID string) (*entity.Application, error) {
	var app entity.Application
	if err := snap.DataTo(&app); err != nil {
		return nil, errors.Wrap(err, "decode application")
	}
	app.ID = snap.Ref.ID
	app.RequestID = requestID
	return &app, nil
}

func (r *GuideRepository) GetApplications(ctx context.Context, filters *model.ApplicationFilters) ([]entity.Application, int, error) {
	var apps []entity.Application

	collect := func(requestID string, query firestore.Query) error {
		iter := query.Documents(ctx)
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err == iterator.Done {
				return nil
			}
			if err != nil {
				return errors.Wrap(err, "iterate applications")
			}
			app, err := decodeApplication(snap, requestID)
			if err != nil {
				return err
			}
			apps = append(apps, *app)
		}
	}

	withStatus := func(q firestore.Query) firestore.Query {
		if filters != nil && filters.Status != "" {
			return q.Where(entity.ApplicationFieldStatus, "==", filters.Status)
		}
		return q
	}

	switch {
	case filters != nil && filters.RequestID != "":
		query := r.applicationsOf(filters.RequestID).Query
		if filters.GuideID != "" {
			query = query.Where(entity.ApplicationFieldGuideID, "==", filters.GuideID)
		}
		if err := collect(filters.RequestID, withStatus(query)); err != nil {
			return nil, 0, err
		}
	default:
		requests := r.db.Collection(entity.CollectionTourRequests).Documents(ctx)
		defer requests.Stop()
		for {
			reqDoc, err := requests.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, 0, errors.Wrap(err, "iterate tour requests")
			}

			query := reqDoc.Ref.Collection(entity.SubcollectionApplications).Query
			if filters != nil && filters.GuideID != "" {
				query = query.Where(entity.ApplicationFieldGuideID, "==", filters.GuideID)
			}
			if err := collect(reqDoc.Ref.ID, withStatus(query)); err != nil {
				return nil, 0, err
			}
		}
	}

	if filters != nil {
		filtered := apps[:0]
		for _, app := range apps {
			if filters.MinPrice != nil && app.ProposedPrice < *filters.MinPrice {
				continue
			}
			if filters.MaxPrice != nil && app.ProposedPrice > *filters.MaxPrice {
				continue
			}
			filtered = append(filtered, app)
		}
		apps = filtered
	}

	sortBy, sortOrder := "", ""
	page, limit := 1, constant.DefaultPageLimit
	if filters != nil {
		sortBy, sortOrder = filters.SortBy, filters.SortOrder
		page, limit = filters.Page, filters.Limit
	}
	sortApplications(apps, sortBy, sortOrder)

	total := len(apps)
	return paginate(apps, page, limit), total, nil
}

func sortApplications(apps []entity.Application, sortBy, sortOrder string) {
	desc := sortOrder != "asc"
	sort.SliceStable(apps, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "proposedPrice":
			less = apps[i].ProposedPrice < apps[j].ProposedPrice
		default:
			less = apps[i].CreatedAt.Before(apps[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func (r *GuideRepository) UpdateApplication(ctx context.Context, applicationID, requestID string, updates map[string]interface{}) (*entity.Application, error) {
	if requestID == "" {
		app, err := r.GetApplication(ctx, applicationID, "")
		if err != nil {
			return nil, err
		}
		if app == nil {
			return nil, nil
		}
		requestID = app.RequestID
	}

	ref := r.applicationsOf(requestID).Doc(applicationID)
	doc := map[string]interface{}{
		"updatedAt": firestore.ServerTimestamp,
	}
	for k, v := range updates {
		doc[k] = v
	}

	if _, err := ref.Set(ctx, doc, firestore.MergeAll); err != nil {
		return nil, errors.Wrap(err, "update application")
	}
	return r.GetApplication(ctx, applicationID, requestID)
}

func (r *GuideRepository) DeleteApplication(ctx context.Context, applicationID, requestID string) error {
	if requestID == "" {
		app, err := r.GetApplication(ctx, applicationID, "")
		if err != nil {
			return err
		}
		if app == nil {
			return nil
		}
		requestID = app.RequestID
	}

	if _, err := r.applicationsOf(requestID).Doc(applicationID).Delete(ctx); err != nil {
		return errors.Wrap(err, "delete application")
	}
	return nil
}

func (r *GuideRepository) CreateGuideProfile(ctx context.Context, profile *entity.GuideProfile) (*entity.GuideProfile, error) {
	if profile.ID == "" {
		return nil, errors.New("guide id is required")
	}

	ref := r.db.Collection(entity.CollectionGuides).Doc(profile.ID)
	if _, err := ref.Set(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "create guide profile")
	}
	return r.GetGuideProfile(ctx, profile.ID)
}

func (r *GuideRepository) GetGuideProfile(ctx context.Context, guideID string) (*entity.GuideProfile, error) {
	snap, err := r.db.Collection(entity.CollectionGuides).Doc(guideID).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get guide profile")
	}

	var profile entity.GuideProfile
	if err := snap.DataTo(&profile); err != nil {
		return nil, errors.Wrap(err, "decode guide profile")
	}
	profile.ID = snap.Ref.ID
	return &profile, nil
}

func (r *GuideRepository) UpdateGuideProfile(ctx context.Context, guideID string, updates map[string]interface{}) (*entity.GuideProfile, error) {
	ref := r.db.Collection(entity.CollectionGuides).Doc(guideID)
	doc := map[string]interface{}{
		"updatedAt": firestore.ServerTimestamp,
	}
	for k, v := range updates {
		doc[k] = v
	}

	if _, err := ref.Set(ctx, doc, firestore.MergeAll); err != nil {
		return nil, errors.Wrap(err, "update guide profile")
	}
	return r.GetGuideProfile(ctx, guideID)
}

func (r *GuideRepository) GetAllGuides(ctx context.Context, page, limit int) ([]entity.GuideProfile, int, error) {
	iter := r.db.Collection(entity.CollectionGuides).Documents(ctx)
	defer iter.Stop()

	var guides []entity.GuideProfile
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrap(err, "iterate guides")
		}

		var profile entity.GuideProfile
		if err := snap.DataTo(&profile); err != nil {
			return nil, 0, errors.Wrap(err, "decode guide profile")
		}
		profile.ID = snap.Ref.ID
		guides = append(guides, profile)
	}

	total := len(guides)
	return paginate(guides, page, limit), total, nil
}

func (r *GuideRepository) GetGuideUser(ctx context.Context, guideID string) (string, string, error) {
	snap, err := r.db.Collection(entity.CollectionUsers).Doc(guideID).Get(ctx)
	if isNotFound(err) {
		return "", "", nil
	}
	if err != nil {
		return "", "", errors.Wrap(err, "get guide user")
	}

	data := snap.Data()
	email, _ := data["email"].(string)
	firstName, _ := data["firstName"].(string)
	lastName, _ := data["lastName"].(string)

	name := strings.TrimSpace(firstName + " " + lastName)
	if name == "" && email != "" {
		name = strings.Split(email, "@")[0]
	}
	return name, email, nil
}
