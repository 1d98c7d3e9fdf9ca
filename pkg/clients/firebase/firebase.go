package firebase

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/sakyarasadi/tourguideBackend/config"
)

const clientNameFirebase = "[firebase client]"

// FirebaseApi wraps the admin app and its Firestore client. A missing or
// invalid credential leaves both nil; the service starts degraded and
// callers must check IsConnected before use.
type FirebaseApi struct {
	app       *fb.App
	firestore *firestore.Client
}

var (
	instance *FirebaseApi
	once     sync.Once
)

func GetInstance() *FirebaseApi {
	once.Do(func() {
		api, err := newFirebaseApi()
		if err != nil {
			log.Warnf("%s unavailable, continuing without message logs: %v", clientNameFirebase, err)
			instance = &FirebaseApi{}
			return
		}
		instance = api
	})
	return instance
}

// newFirebaseApi prefers inline JSON credentials over a file path so a
// single env var is enough in container deployments.
func newFirebaseApi() (*FirebaseApi, error) {
	cfg := config.GetInstance()

	var opts []option.ClientOption
	switch {
	case cfg.GetString(config.FirebaseCredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.GetString(config.FirebaseCredentialsJSON))))
	case cfg.GetString(config.FirebaseCredentialsPath) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.GetString(config.FirebaseCredentialsPath)))
	default:
		return nil, errors.New("no firebase credentials configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	app, err := fb.NewApp(ctx, &fb.Config{
		ProjectID:     cfg.GetString(config.FirebaseProjectID),
		StorageBucket: cfg.GetString(config.FirebaseStorageBucket),
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "init firebase app")
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init firestore client")
	}

	log.Infof("%s connected to project %s", clientNameFirebase, cfg.GetString(config.FirebaseProjectID))
	return &FirebaseApi{app: app, firestore: fs}, nil
}

// Firestore returns the Firestore client, nil when disconnected.
func (f *FirebaseApi) Firestore() *firestore.Client {
	if f == nil {
		return nil
	}
	return f.firestore
}

func (f *FirebaseApi) IsConnected() bool {
	return f != nil && f.firestore != nil
}

func (f *FirebaseApi) Close() error {
	if f == nil || f.firestore == nil {
		return nil
	}
	return f.firestore.Close()
}
