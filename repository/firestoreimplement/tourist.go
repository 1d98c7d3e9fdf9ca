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

type TouristRepository struct {
	db *firestore.Client
}

func NewTouristRepository(db *firestore.Client) (repository.TouristRepository, error) {
	if db == nil {
		return nil, errors.New("firestore client is nil")
	}
	return &TouristRepository{db: db}, nil
}

// GetTourRequests fetches the whole collection and filters client-side.
// Request volume is small and this avoids composite index requirements.
func (r *TouristRepository) GetTourRequests(ctx context.Context, filters *model.TourRequestFilters) ([]entity.TourRequest, int, error) {
	iter := r.db.Collection(entity.CollectionTourRequests).Documents(ctx)
	defer iter.Stop()

	var all []entity.TourRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrap(err, "iterate tour requests")
		}

		var req entity.TourRequest
		if err := doc.DataTo(&req); err != nil {
			return nil, 0, errors.Wrap(err, "decode tour request")
		}
		req.ID = doc.Ref.ID
		all = append(all, req)
	}

	filtered := filterTourRequests(all, filters)
	sortTourRequests(filtered, filters.SortBy, filters.SortOrder)

	total := len(filtered)
	return paginate(filtered, filters.Page, filters.Limit), total, nil
}

func filterTourRequests(requests []entity.TourRequest, f *model.TourRequestFilters) []entity.TourRequest {
	if f == nil {
		return requests
	}

	var out []entity.TourRequest
	for _, req := range requests {
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if f.TourType != "" && req.TourType != f.TourType {
			continue
		}
		if f.TouristID != "" && req.TouristID != f.TouristID {
			continue
		}
		if f.Destination != "" {
			if !strings.Contains(strings.ToLower(req.Destination), strings.ToLower(strings.TrimSpace(f.Destination))) {
				continue
			}
		} else if f.Search != "" {
			// search is ignored when destination is given so a broad
			// search term cannot override destination filtering
			term := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(req.Title), term) &&
				!strings.Contains(strings.ToLower(req.Destination), term) &&
				!strings.Contains(strings.ToLower(req.Description), term) {
				continue
			}
		}
		if f.MinBudget != nil && req.Budget < *f.MinBudget {
			continue
		}
		if f.MaxBudget != nil && req.Budget > *f.MaxBudget {
			continue
		}
		if f.MinPeople != nil && req.NumberOfPeople < *f.MinPeople {
			continue
		}
		if f.MaxPeople != nil && req.NumberOfPeople > *f.MaxPeople {
			continue
		}
		if f.StartDateFrom != "" && req.StartDate < f.StartDateFrom {
			continue
		}
		if f.StartDateTo != "" && req.StartDate > f.StartDateTo {
			continue
		}
		if f.Requirements != "" {
			term := strings.ToLower(f.Requirements)
			if !strings.Contains(strings.ToLower(req.Requirements), term) &&
				!strings.Contains(strings.ToLower(req.Description), term) {
				continue
			}
		}
		out = append(out, req)
	}
	return out
}

func sortTourRequests(requests []entity.TourRequest, sortBy, sortOrder string) {
	desc := sortOrder != "asc"
	sort.SliceStable(requests, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "budget":
			less = requests[i].Budget < requests[j].Budget
		case "startDate":
			less = requests[i].StartDate < requests[j].StartDate
		default:
			less = requests[i].CreatedAt.Before(requests[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func (r *TouristRepository) GetTourRequest(ctx context.Context, requestID string) (*entity.TourRequest, error) {
	snap, err := r.db.Collection(entity.CollectionTourRequests).Doc(requestID).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get tour request")
	}

	var req entity.TourRequest
	if err := snap.DataTo(&req); err != nil {
		return nil, errors.Wrap(err, "decode tour request")
	}
	req.ID = snap.Ref.ID
	return &req, nil
}

func (r *TouristRepository) CreateTourRequest(ctx context.Context, req *entity.TourRequest) (*entity.TourRequest, error) {
	ref := r.db.Collection(entity.CollectionTourRequests).Doc(req.ID)
	if _, err := ref.Set(ctx, req); err != nil {
		return nil, errors.Wrap(err, "create tour request")
	}
	return r.GetTourRequest(ctx, req.ID)
}

func (r *TouristRepository) UpdateTourRequest(ctx context.Context, requestID string, updates map[string]interface{}) (*entity.TourRequest, error) {
	ref := r.db.Collection(entity.CollectionTourRequests).Doc(requestID)

	doc := map[string]interface{}{
		entity.TourRequestFieldUpdatedAt: firestore.ServerTimestamp,
	}
	for k, v := range updates {
		doc[k] = v
	}

	if _, err := ref.Set(ctx, doc, firestore.MergeAll); err != nil {
		return nil, errors.Wrap(err, "update tour request")
	}
	return r.GetTourRequest(ctx, requestID)
}

func (r *TouristRepository) CancelTourRequest(ctx context.Context, requestID string) error {
	_, err := r.UpdateTourRequest(ctx, requestID, map[string]interface{}{
		entity.TourRequestFieldStatus: constant.RequestStatusCancelled.String(),
	})
	return err
}

// GetBookings pushes equality filters to Firestore and handles range
// filters, sorting, and pagination client-side.
func (r *TouristRepository) GetBookings(ctx context.Context, filters *model.BookingFilters) ([]entity.Booking, int, error) {
	query := r.db.Collection(entity.CollectionBookings).Query
	if filters != nil {
		if filters.Status != "" {
			query = query.Where(entity.BookingFieldStatus, "==", filters.Status)
		}
		if filters.GuideID != "" {
			query = query.Where(entity.BookingFieldGuideID, "==", filters.GuideID)
		}
		if filters.TouristID != "" {
			query = query.Where(entity.BookingFieldTouristID, "==", filters.TouristID)
		}
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var all []entity.Booking
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrap(err, "iterate bookings")
		}

		var booking entity.Booking
		if err := doc.DataTo(&booking); err != nil {
			return nil, 0, errors.Wrap(err, "decode booking")
		}
		booking.ID = doc.Ref.ID
		all = append(all, booking)
	}

	all = filterBookings(all, filters)

	sortBy, sortOrder := "", ""
	page, limit := 1, constant.DefaultPageLimit
	if filters != nil {
		sortBy, sortOrder = filters.SortBy, filters.SortOrder
		page, limit = filters.Page, filters.Limit
	}
	sortBookings(all, sortBy, sortOrder)

	total := len(all)
	return paginate(all, page, limit), total, nil
}

func filterBookings(bookings []entity.Booking, f *model.BookingFilters) []entity.Booking {
	if f == nil {
		return bookings
	}

	out := bookings[:0]
	for _, b := range bookings {
		if f.Search != "" {
			term := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(b.Title), term) &&
				!strings.Contains(strings.ToLower(b.Destination), term) {
				continue
			}
		}
		if f.MinPrice != nil && b.AgreedPrice < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && b.AgreedPrice > *f.MaxPrice {
			continue
		}
		if f.StartDateFrom != "" && b.StartDate < f.StartDateFrom {
			continue
		}
		if f.StartDateTo != "" && b.StartDate > f.StartDateTo {
			continue
		}
		out = append(out, b)
	}
	return out
}

func sortBookings(bookings []entity.Booking, sortBy, sortOrder string) {
	desc := sortOrder != "asc"
	sort.SliceStable(bookings, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "agreedPrice":
			less = bookings[i].AgreedPrice < bookings[j].AgreedPrice
		case "startDate":
			less = bookings[i].StartDate < bookings[j].StartDate
		default:
			less = bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func (r *TouristRepository) GetBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	snap, err := r.db.Collection(entity.CollectionBookings).Doc(bookingID).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get booking")
	}

	var booking entity.Booking
	if err := snap.DataTo(&booking); err != nil {
		return nil, errors.Wrap(err, "decode booking")
	}
	booking.ID = snap.Ref.ID
	return &booking, nil
}

func (r *TouristRepository) CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	ref := r.db.Collection(entity.CollectionBookings).Doc(booking.ID)
	if _, err := ref.Set(ctx, booking); err != nil {
		return nil, errors.Wrap(err, "create booking")
	}
	return r.GetBooking(ctx, booking.ID)
}
