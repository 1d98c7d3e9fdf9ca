package entity

import "time"

const (
	CollectionGuides = "guides"
	CollectionUsers  = "users"
)

// GuideProfile is a guide's public profile document.
type GuideProfile struct {
	ID              string    `firestore:"id" json:"id"`
	Name            string    `firestore:"name" json:"name"`
	Email           string    `firestore:"email" json:"email"`
	Phone           string    `firestore:"phone" json:"phone"`
	Bio             string    `firestore:"bio" json:"bio"`
	Experience      string    `firestore:"experience" json:"experience"`
	Specializations []string  `firestore:"specializations" json:"specializations"`
	Languages       []string  `firestore:"languages" json:"languages"`
	Certifications  []string  `firestore:"certifications" json:"certifications"`
	Rating          float64   `firestore:"rating" json:"rating"`
	TotalTours      int       `firestore:"totalTours" json:"totalTours"`
	CreatedAt       time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt" json:"updatedAt"`
}
