package firestoreimplement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/model"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, paginate(items, 1, 2))
	assert.Equal(t, []int{3, 4}, paginate(items, 2, 2))
	assert.Equal(t, []int{5}, paginate(items, 3, 2))
	assert.Empty(t, paginate(items, 4, 2))

	// out-of-range page and limit fall back to sane values
	assert.Equal(t, items, paginate(items, 0, 0))
	assert.Empty(t, paginate([]int{}, 1, 10))
}

func sampleRequests() []entity.TourRequest {
	return []entity.TourRequest{
		{ID: "r1", Title: "Kandy Cultural Tour", Destination: "Kandy", TourType: "cultural",
			Budget: 1500, NumberOfPeople: 2, StartDate: "2026-09-10", Status: "open",
			TouristID: "t1", Description: "Temple visits", Requirements: "vegetarian meals",
			CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "r2", Title: "Galle Beach Trip", Destination: "Galle", TourType: "beach",
			Budget: 800, NumberOfPeople: 4, StartDate: "2026-10-01", Status: "open",
			TouristID: "t2", Description: "Relaxing beach week",
			CreatedAt: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "r3", Title: "Ella Hiking Adventure", Destination: "Ella", TourType: "adventure",
			Budget: 2000, NumberOfPeople: 1, StartDate: "2026-09-20", Status: "booked",
			TouristID: "t1", Description: "Multi day hikes",
			CreatedAt: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
	}
}

func TestFilterTourRequestsNilFilters(t *testing.T) {
	requests := sampleRequests()
	assert.Equal(t, requests, filterTourRequests(requests, nil))
}

func TestFilterTourRequestsByStatusAndTourist(t *testing.T) {
	out := filterTourRequests(sampleRequests(), &model.TourRequestFilters{Status: "open", TouristID: "t1"})
	assert.Len(t, out, 1)
	assert.Equal(t, "r1", out[0].ID)
}

func TestFilterTourRequestsByDestination(t *testing.T) {
	out := filterTourRequests(sampleRequests(), &model.TourRequestFilters{Destination: "  kandy "})
	assert.Len(t, out, 1)
	assert.Equal(t, "r1", out[0].ID)
}

func TestFilterTourRequestsSearchIgnoredWithDestination(t *testing.T) {
	// a broad search term must not widen the destination filter
	out := filterTourRequests(sampleRequests(), &model.TourRequestFilters{Destination: "Galle", Search: "tour"})
	assert.Len(t, out, 1)
	assert.Equal(t, "r2", out[0].ID)
}

func TestFilterTourRequestsBySearch(t *testing.T) {
	out := filterTourRequests(sampleRequests(), &model.TourRequestFilters{Search: "beach"})
	assert.Len(t, out, 1)
	assert.Equal(t, "r2", out[0].ID)
}

func TestFilterTourRequestsByBudgetRange(t *testing.T) {
	min, max := 1000.0, 1800.0
	out := filterTourRequests(sampleRequests(), &model.TourRequestFilters{MinBudget: &min, MaxBudget: &max})
	assert.Len(t, out, 1)
	assert.Equal(t, "r1", out[0].ID)
}

func TestFilterTourRequestsByDates(t *testing.T) {
	out := filterTourRequests(sampleRequests(), &model.TourRequestFilters{
		StartDateFrom: "2026-09-15", StartDateTo: "2026-10-15"})
	assert.Len(t, out, 2)
}

func TestFilterTourRequestsByRequirements(t *testing.T) {
	out := filterTourRequests(sampleRequests(), &model.TourRequestFilters{Requirements: "vegetarian"})
	assert.Len(t, out, 1)
	assert.Equal(t, "r1", out[0].ID)
}

func TestSortTourRequests(t *testing.T) {
	requests := sampleRequests()

	sortTourRequests(requests, "budget", "asc")
	assert.Equal(t, "r2", requests[0].ID)
	assert.Equal(t, "r3", requests[2].ID)

	sortTourRequests(requests, "budget", "desc")
	assert.Equal(t, "r3", requests[0].ID)

	sortTourRequests(requests, "startDate", "asc")
	assert.Equal(t, "r1", requests[0].ID)

	// default sort is createdAt descending, newest first
	sortTourRequests(requests, "", "")
	assert.Equal(t, "r3", requests[0].ID)
	assert.Equal(t, "r1", requests[2].ID)
}

func TestSortApplications(t *testing.T) {
	apps := []entity.Application{
		{ID: "a1", ProposedPrice: 1200, CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "a2", ProposedPrice: 900, CreatedAt: time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)},
	}

	sortApplications(apps, "proposedPrice", "asc")
	assert.Equal(t, "a2", apps[0].ID)

	sortApplications(apps, "", "")
	assert.Equal(t, "a2", apps[0].ID)

	sortApplications(apps, "", "asc")
	assert.Equal(t, "a1", apps[0].ID)
}

func TestFilterBookingsBySearch(t *testing.T) {
	bookings := []entity.Booking{
		{ID: "b1", Title: "Kandy Cultural Tour", Destination: "Kandy"},
		{ID: "b2", Title: "Beach Week", Destination: "Galle"},
	}

	out := filterBookings(bookings, &model.BookingFilters{Search: "kandy"})
	assert.Len(t, out, 1)
	assert.Equal(t, "b1", out[0].ID)

	out = filterBookings([]entity.Booking{
		{ID: "b1", Title: "Kandy Cultural Tour", Destination: "Kandy"},
		{ID: "b2", Title: "Beach Week", Destination: "Galle"},
	}, &model.BookingFilters{Search: "galle"})
	assert.Len(t, out, 1)
	assert.Equal(t, "b2", out[0].ID)
}

func TestFilterBookingsByPriceAndDates(t *testing.T) {
	min, max := 800.0, 1600.0
	bookings := []entity.Booking{
		{ID: "b1", AgreedPrice: 1500, StartDate: "2026-09-10"},
		{ID: "b2", AgreedPrice: 700, StartDate: "2026-08-20"},
		{ID: "b3", AgreedPrice: 1200, StartDate: "2026-11-01"},
	}

	out := filterBookings(bookings, &model.BookingFilters{
		MinPrice: &min, MaxPrice: &max,
		StartDateFrom: "2026-09-01", StartDateTo: "2026-10-31",
	})
	assert.Len(t, out, 1)
	assert.Equal(t, "b1", out[0].ID)
}

func TestFilterBookingsNilFilters(t *testing.T) {
	bookings := []entity.Booking{{ID: "b1"}}
	assert.Equal(t, bookings, filterBookings(bookings, nil))
}

func TestSortBookings(t *testing.T) {
	bookings := []entity.Booking{
		{ID: "b1", AgreedPrice: 1500, StartDate: "2026-09-10", CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b2", AgreedPrice: 700, StartDate: "2026-08-20", CreatedAt: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)},
	}

	sortBookings(bookings, "agreedPrice", "asc")
	assert.Equal(t, "b2", bookings[0].ID)

	sortBookings(bookings, "startDate", "desc")
	assert.Equal(t, "b1", bookings[0].ID)

	sortBookings(bookings, "", "")
	assert.Equal(t, "b2", bookings[0].ID)
}
