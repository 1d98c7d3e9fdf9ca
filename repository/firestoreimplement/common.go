package firestoreimplement

import (
	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sakyarasadi/tourguideBackend/config"
	"github.com/sakyarasadi/tourguideBackend/entity"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// paginate slices one page out of an already filtered and sorted list.
func paginate[T any](items []T, page, limit int) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func messagesCollection(db *firestore.Client) *firestore.CollectionRef {
	name := config.GetInstance().GetStringOrDefault(config.FirestoreCollectionMessages, entity.DefaultCollectionMessages)
	return db.Collection(name)
}

func sessionsCollection(db *firestore.Client) *firestore.CollectionRef {
	name := config.GetInstance().GetStringOrDefault(config.FirestoreCollectionSessions, entity.DefaultCollectionSessions)
	return db.Collection(name)
}

func countersCollection(db *firestore.Client) *firestore.CollectionRef {
	name := config.GetInstance().GetStringOrDefault(config.FirestoreCollectionCounters, entity.DefaultCollectionCounters)
	return db.Collection(name)
}
