package constant

// =============================================
// Tour request status constants
// =============================================

// RequestStatus is the lifecycle state of a tour request.
type RequestStatus string

const (
	RequestStatusOpen      RequestStatus = "open"
	RequestStatusBooked    RequestStatus = "booked"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) String() string {
	return string(s)
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusOpen, RequestStatusBooked, RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

// =============================================
// Application status constants
// =============================================

// ApplicationStatus is the lifecycle state of a guide application.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusSelected  ApplicationStatus = "selected"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

func (s ApplicationStatus) String() string {
	return string(s)
}

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusSelected, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// =============================================
// Booking status constants
// =============================================

type BookingStatus string

const (
	BookingStatusUpcoming  BookingStatus = "upcoming"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) String() string {
	return string(s)
}
