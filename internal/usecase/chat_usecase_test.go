package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storerepo "gigspace/internal/adapter/repository"
	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/internal/infrastructure/memstore"
	"gigspace/internal/infrastructure/ratelimit"
	"gigspace/pkg/errors"
)

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func (f *fakeProjectRepo) Create(ctx context.Context, p *entity.Project) error { return nil }
func (f *fakeProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, errors.NotFound("Project", nil)
	}
	return p, nil
}
func (f *fakeProjectRepo) Update(ctx context.Context, p *entity.Project) error { return nil }
func (f *fakeProjectRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.Project, error) {
	return nil, nil
}
func (f *fakeProjectRepo) ListOpen(ctx context.Context, category string, limit, offset int) ([]*entity.Project, error) {
	return nil, nil
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.UserProfile) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	return &entity.UserProfile{ID: id, DisplayName: "Someone"}, nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	return nil, errors.NotFound("User", nil)
}
func (f *fakeUserRepo) Update(ctx context.Context, u *entity.UserProfile) error   { return nil }
func (f *fakeUserRepo) UpdateLastSeen(ctx context.Context, id string) error       { return nil }

// spyChatRepo counts writes so tests can prove validation happens first.
type spyChatRepo struct {
	repository.ChatRepository
	mu        sync.Mutex
	sendCalls int
}

func (s *spyChatRepo) SendMessage(ctx context.Context, room *entity.ChatRoom, msg *entity.ChatMessage) error {
	s.mu.Lock()
	s.sendCalls++
	s.mu.Unlock()
	return s.ChatRepository.SendMessage(ctx, room, msg)
}

func (s *spyChatRepo) sent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendCalls
}

func newChatFixture(t *testing.T) (*ChatUseCase, *spyChatRepo, *entity.ChatRoom) {
	t.Helper()

	chatRepo := &spyChatRepo{ChatRepository: storerepo.NewStoreChatRepository(memstore.New())}
	projectRepo := &fakeProjectRepo{projects: map[string]*entity.Project{
		"project-1": {ID: "project-1", ClientID: "client-1", Status: "in_progress"},
	}}

	uc := NewChatUseCase(chatRepo, projectRepo, &fakeUserRepo{}, ratelimit.NewRateLimiter(), DefaultMessageWindow)

	room, err := uc.CreateRoom(context.Background(), "client-1", CreateRoomInput{
		ProjectID:    "project-1",
		FreelancerID: "freelancer-1",
	})
	require.NoError(t, err)
	return uc, chatRepo, room
}

func TestCreateRoomReturnsExistingRoom(t *testing.T) {
	uc, _, room := newChatFixture(t)

	again, err := uc.CreateRoom(context.Background(), "client-1", CreateRoomInput{
		ProjectID:    "project-1",
		FreelancerID: "freelancer-1",
	})
	require.NoError(t, err)
	assert.Equal(t, room.ID, again.ID)
}

func TestCreateRoomRequiresProjectOwner(t *testing.T) {
	uc, _, _ := newChatFixture(t)

	_, err := uc.CreateRoom(context.Background(), "someone-else", CreateRoomInput{
		ProjectID:    "project-1",
		FreelancerID: "freelancer-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestCreateRoomRejectsSelfChat(t *testing.T) {
	uc, _, _ := newChatFixture(t)

	_, err := uc.CreateRoom(context.Background(), "client-1", CreateRoomInput{
		ProjectID:    "project-1",
		FreelancerID: "client-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestSendMessageRejectsEmptyTextBeforeAnyWrite(t *testing.T) {
	uc, spy, room := newChatFixture(t)
	ctx := context.Background()

	_, err := uc.SendMessage(ctx, room.ID, "client-1", SendMessageInput{Content: "   "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	assert.Equal(t, 0, spy.sent(), "validation failures must not reach the store")

	got, err := uc.GetRoom(ctx, room.ID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "", got.LastMessage, "room summary is untouched by rejected sends")
	assert.Equal(t, 0, got.UnreadCount.Freelancer)
}

func TestSendMessageRejectsUnknownKind(t *testing.T) {
	uc, spy, room := newChatFixture(t)

	_, err := uc.SendMessage(context.Background(), room.ID, "client-1", SendMessageInput{
		Content: "hello",
		Kind:    "carrier-pigeon",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	assert.Equal(t, 0, spy.sent())
}

func TestSendMessageForbiddenForNonParticipant(t *testing.T) {
	uc, spy, room := newChatFixture(t)

	_, err := uc.SendMessage(context.Background(), room.ID, "stranger", SendMessageInput{Content: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
	assert.Equal(t, 0, spy.sent())
}

func TestSendMessageTrimsAndStores(t *testing.T) {
	uc, _, room := newChatFixture(t)
	ctx := context.Background()

	msg, err := uc.SendMessage(ctx, room.ID, "freelancer-1", SendMessageInput{Content: "  hello there  "})
	require.NoError(t, err)
	assert.Equal(t, "hello there", msg.Content)
	assert.Equal(t, entity.RoleFreelancer, msg.SenderRole)
	assert.False(t, msg.Timestamp.IsZero())

	got, err := uc.GetRoom(ctx, room.ID, "client-1")
	require.NoError(t, err)
	assert.Equal(t, "hello there", got.LastMessage)
	assert.Equal(t, 1, got.UnreadCount.Client)
}

func TestSendMessageRateLimited(t *testing.T) {
	uc, _, room := newChatFixture(t)
	ctx := context.Background()

	var err error
	for i := 0; i < 10; i++ {
		_, err = uc.SendMessage(ctx, room.ID, "client-1", SendMessageInput{Content: "spam"})
		require.NoError(t, err)
	}

	_, err = uc.SendMessage(ctx, room.ID, "client-1", SendMessageInput{Content: "one too many"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeTooManyRequests))
}

func TestMarkReadParticipantOnly(t *testing.T) {
	uc, _, room := newChatFixture(t)

	_, err := uc.MarkRead(context.Background(), room.ID, "stranger")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestMarkReadFlipsCounterThroughUsecase(t *testing.T) {
	uc, _, room := newChatFixture(t)
	ctx := context.Background()

	_, err := uc.SendMessage(ctx, room.ID, "client-1", SendMessageInput{Content: "unread"})
	require.NoError(t, err)

	flipped, err := uc.MarkRead(ctx, room.ID, "freelancer-1")
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)

	got, err := uc.GetRoom(ctx, room.ID, "freelancer-1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.UnreadCount.Freelancer)
}

func TestStreamMessagesForbiddenForNonParticipant(t *testing.T) {
	uc, _, room := newChatFixture(t)

	_, err := uc.StreamMessages(context.Background(), room.ID, "stranger",
		func(messages []*entity.ChatMessage, err error) {})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeForbidden))
}

func TestStreamMessagesDeliversSnapshots(t *testing.T) {
	uc, _, room := newChatFixture(t)
	ctx := context.Background()

	var mu sync.Mutex
	var snapshots [][]*entity.ChatMessage

	cancel, err := uc.StreamMessages(ctx, room.ID, "freelancer-1",
		func(messages []*entity.ChatMessage, err error) {
			require.NoError(t, err)
			mu.Lock()
			snapshots = append(snapshots, messages)
			mu.Unlock()
		})
	require.NoError(t, err)
	defer cancel()

	_, err = uc.SendMessage(ctx, room.ID, "client-1", SendMessageInput{Content: "Hi"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, snapshots, 2)
	assert.Empty(t, snapshots[0])
	require.Len(t, snapshots[1], 1)
	assert.Equal(t, "Hi", snapshots[1][0].Content)
}

func TestGetMessagesClampsLimitToWindow(t *testing.T) {
	chatRepo := &spyChatRepo{ChatRepository: storerepo.NewStoreChatRepository(memstore.New())}
	projectRepo := &fakeProjectRepo{projects: map[string]*entity.Project{
		"project-1": {ID: "project-1", ClientID: "client-1", Status: "in_progress"},
	}}
	uc := NewChatUseCase(chatRepo, projectRepo, &fakeUserRepo{}, ratelimit.NewRateLimiter(), 2)

	ctx := context.Background()
	room, err := uc.CreateRoom(ctx, "client-1", CreateRoomInput{ProjectID: "project-1", FreelancerID: "freelancer-1"})
	require.NoError(t, err)

	for _, text := range []string{"a", "b", "c"} {
		_, err := uc.SendMessage(ctx, room.ID, "client-1", SendMessageInput{Content: text})
		require.NoError(t, err)
	}

	messages, err := uc.GetMessages(ctx, room.ID, "client-1", 1000)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "b", messages[0].Content)
	assert.Equal(t, "c", messages[1].Content)
}
