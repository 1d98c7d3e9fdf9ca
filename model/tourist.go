package model

import "github.com/sakyarasadi/tourguideBackend/entity"

// Pagination describes one page of a filtered listing.
type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{
		Page:            page,
		Limit:           limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// TourRequestFilters narrows a tour request listing. Nil numeric fields
// mean unbounded. Destination takes precedence over Search.
type TourRequestFilters struct {
	Search        string   `form:"search"`
	Destination   string   `form:"destination"`
	TourType      string   `form:"tourType"`
	Status        string   `form:"status"`
	TouristID     string   `form:"touristId"`
	MinBudget     *float64 `form:"minBudget"`
	MaxBudget     *float64 `form:"maxBudget"`
	MinPeople     *int     `form:"minPeople"`
	MaxPeople     *int     `form:"maxPeople"`
	StartDateFrom string   `form:"startDateFrom"`
	StartDateTo   string   `form:"startDateTo"`
	Requirements  string   `form:"requirements"`
	SortBy        string   `form:"sortBy"`
	SortOrder     string   `form:"sortOrder"`
	Page          int      `form:"page"`
	Limit         int      `form:"limit"`
}

// BookingFilters narrows a booking listing.
type BookingFilters struct {
	Search        string   `form:"search"`
	Status        string   `form:"status"`
	GuideID       string   `form:"guideId"`
	TouristID     string   `form:"touristId"`
	MinPrice      *float64 `form:"minPrice"`
	MaxPrice      *float64 `form:"maxPrice"`
	StartDateFrom string   `form:"startDateFrom"`
	StartDateTo   string   `form:"startDateTo"`
	SortBy        string   `form:"sortBy"`
	SortOrder     string   `form:"sortOrder"`
	Page          int      `form:"page"`
	Limit         int      `form:"limit"`
}

// ApplicationFilters narrows an application listing.
type ApplicationFilters struct {
	RequestID string   `form:"requestId"`
	GuideID   string   `form:"guideId"`
	Status    string   `form:"status"`
	MinPrice  *float64 `form:"minPrice"`
	MaxPrice  *float64 `form:"maxPrice"`
	SortBy    string   `form:"sortBy"`
	SortOrder string   `form:"sortOrder"`
	Page      int      `form:"page"`
	Limit     int      `form:"limit"`
}

// TourRequestPage is a paginated tour request listing.
type TourRequestPage struct {
	Data       []entity.TourRequest `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// BookingPage is a paginated booking listing.
type BookingPage struct {
	Data       []entity.Booking `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// ApplicationPage is a paginated application listing.
type ApplicationPage struct {
	Data       []entity.Application `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// TourRequestInput is the create/update body for a tour request. All
// values arrive untyped because AI-assisted clients submit loosely
// structured data; validation coerces them.
type TourRequestInput map[string]interface{}

// TourRequestValidation is the outcome of validating a tour request input.
type TourRequestValidation struct {
	IsValid       bool
	MissingFields []string
	Parsed        entity.TourRequest
}

// AcceptResult identifies the documents touched when an application is
// accepted.
type AcceptResult struct {
	BookingID     string `json:"bookingId"`
	RequestID     string `json:"requestId"`
	ApplicationID string `json:"applicationId"`
}
