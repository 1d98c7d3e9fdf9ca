package repository

import (
	"context"

	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/model"
)

// TouristRepository covers tour requests and bookings. Listings fetch
// matching documents and filter, sort, and paginate client-side so no
// composite Firestore indexes are required.
type TouristRepository interface {
	// GetTourRequests returns one page of requests plus the total match count.
	GetTourRequests(ctx context.Context, filters *model.TourRequestFilters) ([]entity.TourRequest, int, error)
	// GetTourRequest returns a single request, nil if absent.
	GetTourRequest(ctx context.Context, requestID string) (*entity.TourRequest, error)
	// CreateTourRequest writes the request keyed by its ID.
	CreateTourRequest(ctx context.Context, req *entity.TourRequest) (*entity.TourRequest, error)
	// UpdateTourRequest merges field updates and returns the new document.
	UpdateTourRequest(ctx context.Context, requestID string, updates map[string]interface{}) (*entity.TourRequest, error)
	// CancelTourRequest marks the request cancelled.
	CancelTourRequest(ctx context.Context, requestID string) error

	// GetBookings returns one page of bookings plus the total match count.
	GetBookings(ctx context.Context, filters *model.BookingFilters) ([]entity.Booking, int, error)
	// GetBooking returns a single booking, nil if absent.
	GetBooking(ctx context.Context, bookingID string) (*entity.Booking, error)
	// CreateBooking writes the booking keyed by its ID.
	CreateBooking(ctx context.Context, booking *entity.Booking) (*entity.Booking, error)
}
