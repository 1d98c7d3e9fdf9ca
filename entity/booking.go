package entity

import "time"

const (
	CollectionBookings = "bookings"

	BookingFieldStatus    = "status"
	BookingFieldGuideID   = "guideId"
	BookingFieldTouristID = "touristId"
	BookingFieldStartDate = "startDate"
	BookingFieldCreatedAt = "createdAt"
)

// Booking is the confirmed pairing of a tourist's request and the
// accepted guide application.
type Booking struct {
	ID             string    `firestore:"id" json:"id"`
	RequestID      string    `firestore:"requestId" json:"requestId"`
	TouristID      string    `firestore:"touristId" json:"touristId"`
	TouristName    string    `firestore:"touristName" json:"touristName"`
	GuideID        string    `firestore:"guideId" json:"guideId"`
	GuideName      string    `firestore:"guideName" json:"guideName"`
	Title          string    `firestore:"title" json:"title"`
	Destination    string    `firestore:"destination" json:"destination"`
	StartDate      string    `firestore:"startDate" json:"startDate"`
	EndDate        string    `firestore:"endDate" json:"endDate"`
	Status         string    `firestore:"status" json:"status"`
	AgreedPrice    float64   `firestore:"agreedPrice" json:"agreedPrice"`
	NumberOfPeople int       `firestore:"numberOfPeople" json:"numberOfPeople"`
	Budget         float64   `firestore:"budget" json:"budget"`
	TourType       string    `firestore:"tourType" json:"tourType"`
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`
}
