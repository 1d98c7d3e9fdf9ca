package bot

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakyarasadi/tourguideBackend/entity"
	"github.com/sakyarasadi/tourguideBackend/repository"
)

type fakeMessageLogRepo struct {
	sessions      map[string]*entity.SessionMeta
	ticketsIssued int
	updates       []string
	deletes       []string
}

func newFakeMessageLogRepo() *fakeMessageLogRepo {
	return &fakeMessageLogRepo{sessions: map[string]*entity.SessionMeta{}}
}

func (r *fakeMessageLogRepo) LogMessage(ctx context.Context, sessionID, message, role string) (string, error) {
	return "doc-1", nil
}

func (r *fakeMessageLogRepo) GetAllMessagesForSession(ctx context.Context, sessionID string) ([]entity.MessageLog, error) {
	return nil, nil
}

func (r *fakeMessageLogRepo) GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]entity.MessageLog, error) {
	return nil, nil
}

func (r *fakeMessageLogRepo) GenerateTicketID(ctx context.Context) (string, error) {
	r.ticketsIssued++
	return fmt.Sprintf("TKT2608%02d", r.ticketsIssued), nil
}

func (r *fakeMessageLogRepo) CreateSession(ctx context.Context, sessionID string, meta map[string]interface{}) error {
	ticketID, _ := meta[entity.SessionMetaFieldTicketID].(string)
	r.sessions[sessionID] = &entity.SessionMeta{SessionID: sessionID, Status: "active", TicketID: ticketID}
	return nil
}

func (r *fakeMessageLogRepo) UpdateSession(ctx context.Context, sessionID string, updates map[string]interface{}) error {
	r.updates = append(r.updates, sessionID)
	return nil
}

func (r *fakeMessageLogRepo) GetSession(ctx context.Context, sessionID string) (*entity.SessionMeta, error) {
	return r.sessions[sessionID], nil
}

func (r *fakeMessageLogRepo) DeleteSession(ctx context.Context, sessionID string) error {
	delete(r.sessions, sessionID)
	r.deletes = append(r.deletes, sessionID)
	return nil
}

type fakeChatSessionRepo struct {
	cleared []string
}

func (r *fakeChatSessionRepo) GetConversationHistory(ctx context.Context, sessionID string) ([]entity.ChatMessage, error) {
	return nil, nil
}

func (r *fakeChatSessionRepo) AddMessage(ctx context.Context, sessionID, role, message string) error {
	return nil
}

func (r *fakeChatSessionRepo) SetConversationHistory(ctx context.Context, sessionID string, messages []entity.ChatMessage) error {
	return nil
}

func (r *fakeChatSessionRepo) GetSummary(ctx context.Context, sessionID string) (string, error) {
	return "", nil
}

func (r *fakeChatSessionRepo) SetSummary(ctx context.Context, sessionID, summary string) error {
	return nil
}

func (r *fakeChatSessionRepo) ClearSession(ctx context.Context, sessionID string) error {
	r.cleared = append(r.cleared, sessionID)
	return nil
}

type fakeFactory struct {
	chatRepo     *fakeChatSessionRepo
	logRepo      *fakeMessageLogRepo
	logRepoError error
}

func (f *fakeFactory) NewChatSessionRepository() (repository.ChatSessionRepository, error) {
	return f.chatRepo, nil
}

func (f *fakeFactory) NewMessageLogRepository() (repository.MessageLogRepository, error) {
	if f.logRepoError != nil {
		return nil, f.logRepoError
	}
	return f.logRepo, nil
}

func (f *fakeFactory) NewTouristRepository() (repository.TouristRepository, error) {
	return nil, errors.New("not backed in this test")
}

func (f *fakeFactory) NewGuideRepository() (repository.GuideRepository, error) {
	return nil, errors.New("not backed in this test")
}

func TestEnsureSessionMetaCreatesThenTouches(t *testing.T) {
	logRepo := newFakeMessageLogRepo()
	svc := &Service{repositoryFactory: &fakeFactory{chatRepo: &fakeChatSessionRepo{}, logRepo: logRepo}}
	ctx := context.Background()

	svc.ensureSessionMeta(ctx, "sess-1")

	require.Contains(t, logRepo.sessions, "sess-1")
	assert.Equal(t, "TKT260801", logRepo.sessions["sess-1"].TicketID)
	assert.Equal(t, 1, logRepo.ticketsIssued)
	assert.Empty(t, logRepo.updates)

	// a later message only touches the existing document
	svc.ensureSessionMeta(ctx, "sess-1")
	assert.Equal(t, 1, logRepo.ticketsIssued)
	assert.Equal(t, []string{"sess-1"}, logRepo.updates)
}

func TestClearSessionRemovesFirestoreSession(t *testing.T) {
	logRepo := newFakeMessageLogRepo()
	chatRepo := &fakeChatSessionRepo{}
	logRepo.sessions["sess-1"] = &entity.SessionMeta{SessionID: "sess-1"}
	svc := &Service{repositoryFactory: &fakeFactory{chatRepo: chatRepo, logRepo: logRepo}}

	err := svc.ClearSession(context.Background(), "sess-1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"sess-1"}, chatRepo.cleared)
	assert.Equal(t, []string{"sess-1"}, logRepo.deletes)
	assert.NotContains(t, logRepo.sessions, "sess-1")
}

func TestClearSessionToleratesMessageLogOutage(t *testing.T) {
	chatRepo := &fakeChatSessionRepo{}
	svc := &Service{repositoryFactory: &fakeFactory{
		chatRepo:     chatRepo,
		logRepoError: errors.New("firestore unavailable"),
	}}

	err := svc.ClearSession(context.Background(), "sess-1")

	assert.NoError(t, err)
	assert.Equal(t, []string{"sess-1"}, chatRepo.cleared)
}
