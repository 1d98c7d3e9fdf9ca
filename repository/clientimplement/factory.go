package clientimplement

import (
	"sync"

	"github.com/sakyarasadi/tourguideBackend/pkg/clients/firebase"
	"github.com/sakyarasadi/tourguideBackend/pkg/clients/redis"
	"github.com/sakyarasadi/tourguideBackend/repository"
	"github.com/sakyarasadi/tourguideBackend/repository/factory"
	"github.com/sakyarasadi/tourguideBackend/repository/firestoreimplement"
	"github.com/sakyarasadi/tourguideBackend/repository/redisimplement"
)

var once sync.Once
var instance *Factory

type Factory struct {
	redis    *redis.RedisApi
	firebase *firebase.FirebaseApi
}

func GetRepositoryFactoryInstance() factory.Factory {
	once.Do(func() {
		instance = &Factory{
			redis:    redis.GetInstance(),
			firebase: firebase.GetInstance(),
		}
	})
	return instance
}

func (f *Factory) NewChatSessionRepository() (repository.ChatSessionRepository, error) {
	return redisimplement.NewChatSessionRepository(f.redis.Client())
}

func (f *Factory) NewMessageLogRepository() (repository.MessageLogRepository, error) {
	return firestoreimplement.NewMessageLogRepository(f.firebase.Firestore())
}

func (f *Factory) NewTouristRepository() (repository.TouristRepository, error) {
	return firestoreimplement.NewTouristRepository(f.firebase.Firestore())
}

func (f *Factory) NewGuideRepository() (repository.GuideRepository, error) {
	return firestoreimplement.NewGuideRepository(f.firebase.Firestore())
}
