package factory

import "github.com/sakyarasadi/tourguideBackend/repository"

// Factory hands out repositories backed by the shared Redis and
// Firestore clients. Constructors fail when the backing store is down,
// which callers surface as a degraded response rather than a crash.
type Factory interface {
	NewChatSessionRepository() (repository.ChatSessionRepository, error)
	NewMessageLogRepository() (repository.MessageLogRepository, error)
	NewTouristRepository() (repository.TouristRepository, error)
	NewGuideRepository() (repository.GuideRepository, error)
}
