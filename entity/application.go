package entity

import "time"

const (
	// Applications live as a subcollection under their tour request:
	// tourRequests/{requestId}/applications/{applicationId}.
	SubcollectionApplications = "applications"

	ApplicationFieldGuideID       = "guideId"
	ApplicationFieldStatus        = "status"
	ApplicationFieldRequestID     = "requestId"
	ApplicationFieldProposedPrice = "proposedPrice"
	ApplicationFieldCoverLetter   = "coverLetter"
	ApplicationFieldCreatedAt     = "createdAt"
	ApplicationFieldUpdatedAt     = "updatedAt"
)

// Application is a guide's offer on a tour request.
type Application struct {
	ID            string    `firestore:"id" json:"id"`
	RequestID     string    `firestore:"requestId" json:"requestId"`
	GuideID       string    `firestore:"guideId" json:"guideId"`
	GuideEmail    string    `firestore:"guideEmail" json:"guideEmail"`
	GuideName     string    `firestore:"guideName" json:"guideName"`
	ProposedPrice float64   `firestore:"proposedPrice" json:"proposedPrice"`
	CoverLetter   string    `firestore:"coverLetter" json:"coverLetter"`
	Status        string    `firestore:"status" json:"status"`
	TourTitle     string    `firestore:"tourTitle,omitempty" json:"tourTitle,omitempty"`
	Destination   string    `firestore:"destination,omitempty" json:"destination,omitempty"`
	StartDate     string    `firestore:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate       string    `firestore:"endDate,omitempty" json:"endDate,omitempty"`
	TourType      string    `firestore:"tourType,omitempty" json:"tourType,omitempty"`
	TouristID     string    `firestore:"touristId,omitempty" json:"touristId,omitempty"`
	TouristName   string    `firestore:"touristName,omitempty" json:"touristName,omitempty"`
	TouristBudget float64   `firestore:"touristBudget,omitempty" json:"touristBudget,omitempty"`
	CreatedAt     time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt" json:"updatedAt"`
}
