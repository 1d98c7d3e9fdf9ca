package entity

import "time"

const (
	CollectionTourRequests = "tourRequests"

	TourRequestFieldStatus           = "status"
	TourRequestFieldTitle            = "title"
	TourRequestFieldTourType         = "tourType"
	TourRequestFieldTouristID        = "touristId"
	TourRequestFieldTouristName      = "touristName"
	TourRequestFieldTouristEmail     = "touristEmail"
	TourRequestFieldDestination      = "destination"
	TourRequestFieldBudget           = "budget"
	TourRequestFieldNumberOfPeople   = "numberOfPeople"
	TourRequestFieldLanguages        = "languages"
	TourRequestFieldDescription      = "description"
	TourRequestFieldRequirements     = "requirements"
	TourRequestFieldStartDate        = "startDate"
	TourRequestFieldEndDate          = "endDate"
	TourRequestFieldApplicationCount = "applicationCount"
	TourRequestFieldCreatedAt        = "createdAt"
	TourRequestFieldUpdatedAt        = "updatedAt"
)

// TourRequest is a tourist's public request for a guided tour. Dates are
// YYYY-MM-DD strings, matching what clients submit.
type TourRequest struct {
	ID               string    `firestore:"id" json:"id"`
	Title            string    `firestore:"title" json:"title"`
	Destination      string    `firestore:"destination" json:"destination"`
	StartDate        string    `firestore:"startDate" json:"startDate"`
	EndDate          string    `firestore:"endDate" json:"endDate"`
	Budget           float64   `firestore:"budget" json:"budget"`
	NumberOfPeople   int       `firestore:"numberOfPeople" json:"numberOfPeople"`
	TourType         string    `firestore:"tourType" json:"tourType"`
	Languages        []string  `firestore:"languages" json:"languages"`
	Description      string    `firestore:"description" json:"description"`
	Requirements     string    `firestore:"requirements" json:"requirements"`
	TouristID        string    `firestore:"touristId" json:"touristId"`
	TouristName      string    `firestore:"touristName" json:"touristName"`
	TouristEmail     string    `firestore:"touristEmail,omitempty" json:"touristEmail,omitempty"`
	ApplicationCount int       `firestore:"applicationCount" json:"applicationCount"`
	Status           string    `firestore:"status" json:"status"`
	CreatedAt        time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `firestore:"updatedAt" json:"updatedAt"`
}
