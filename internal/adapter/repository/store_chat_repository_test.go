package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigspace/internal/domain/entity"
	"gigspace/internal/domain/repository"
	"gigspace/internal/infrastructure/memstore"
)

func newTestRoom(t *testing.T, repo repository.ChatRepository) *entity.ChatRoom {
	t.Helper()
	room := &entity.ChatRoom{
		ProjectID:    "project-1",
		ClientID:     "client-1",
		FreelancerID: "freelancer-1",
	}
	require.NoError(t, repo.CreateRoom(context.Background(), room))
	require.NotEmpty(t, room.ID)
	return room
}

func sendText(t *testing.T, repo repository.ChatRepository, room *entity.ChatRoom, role entity.ParticipantRole, text string) *entity.ChatMessage {
	t.Helper()
	msg := &entity.ChatMessage{
		SenderID:   room.ParticipantID(role),
		SenderRole: role,
		Content:    text,
		Kind:       entity.MessageKindText,
	}
	require.NoError(t, repo.SendMessage(context.Background(), room, msg))
	return msg
}

func TestCreateRoomStartsWithZeroCounters(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)

	got, err := repo.GetRoom(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UnreadCount.Client)
	assert.Equal(t, 0, got.UnreadCount.Freelancer)
	assert.Equal(t, "", got.LastMessage)
	assert.True(t, got.IsActive)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSendMessageUpdatesRoomSummary(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)

	msg := sendText(t, repo, room, entity.RoleClient, "Hi")
	require.NotEmpty(t, msg.ID)
	assert.False(t, msg.Timestamp.IsZero())
	assert.False(t, msg.IsRead)

	got, err := repo.GetRoom(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi", got.LastMessage)
	assert.Equal(t, 0, got.UnreadCount.Client, "sender's own counter stays put")
	assert.Equal(t, 1, got.UnreadCount.Freelancer, "recipient's counter is incremented")
	assert.False(t, got.LastMessageAt.Before(msg.Timestamp))
}

func TestSendMessageCountsAccumulatePerRecipient(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)

	sendText(t, repo, room, entity.RoleClient, "one")
	sendText(t, repo, room, entity.RoleClient, "two")
	sendText(t, repo, room, entity.RoleFreelancer, "reply")

	got, err := repo.GetRoom(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.UnreadCount.Freelancer)
	assert.Equal(t, 1, got.UnreadCount.Client)
	assert.Equal(t, "reply", got.LastMessage)
}

func TestLastMessageAtNeverMovesBackward(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)

	var previous = room.LastMessageAt
	for i := 0; i < 10; i++ {
		sendText(t, repo, room, entity.RoleClient, "tick")
		got, err := repo.GetRoom(context.Background(), room.ID)
		require.NoError(t, err)
		assert.True(t, got.LastMessageAt.After(previous))
		previous = got.LastMessageAt
	}
}

func TestGetMessagesAscendingWindow(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)

	m1 := sendText(t, repo, room, entity.RoleClient, "first")
	m2 := sendText(t, repo, room, entity.RoleFreelancer, "second")
	m3 := sendText(t, repo, room, entity.RoleClient, "third")

	messages, err := repo.GetMessages(context.Background(), room.ID, 50)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, m1.ID, messages[0].ID)
	assert.Equal(t, m2.ID, messages[1].ID)
	assert.Equal(t, m3.ID, messages[2].ID)
	assert.True(t, messages[0].Timestamp.Before(messages[1].Timestamp))
	assert.True(t, messages[1].Timestamp.Before(messages[2].Timestamp))
}

func TestGetMessagesWindowKeepsMostRecent(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)

	for _, text := range []string{"a", "b", "c", "d", "e"} {
		sendText(t, repo, room, entity.RoleClient, text)
	}

	messages, err := repo.GetMessages(context.Background(), room.ID, 3)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "c", messages[0].Content)
	assert.Equal(t, "e", messages[2].Content)
}

func TestMarkMessagesReadFlipsAndResets(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)
	ctx := context.Background()

	sendText(t, repo, room, entity.RoleClient, "one")
	sendText(t, repo, room, entity.RoleClient, "two")
	own := sendText(t, repo, room, entity.RoleFreelancer, "mine")

	flipped, err := repo.MarkMessagesRead(ctx, room, entity.RoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, 2, flipped)

	got, err := repo.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UnreadCount.Freelancer, "reader's counter is reset")
	assert.Equal(t, 1, got.UnreadCount.Client, "other side's counter is untouched")

	messages, err := repo.GetMessages(ctx, room.ID, 50)
	require.NoError(t, err)
	for _, m := range messages {
		if m.ID == own.ID {
			assert.False(t, m.IsRead, "reader's own messages stay unread")
			continue
		}
		assert.True(t, m.IsRead)
	}
}

func TestMarkMessagesReadIsIdempotent(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)
	ctx := context.Background()

	sendText(t, repo, room, entity.RoleClient, "hello")

	flipped, err := repo.MarkMessagesRead(ctx, room, entity.RoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)

	flipped, err = repo.MarkMessagesRead(ctx, room, entity.RoleFreelancer)
	require.NoError(t, err)
	assert.Equal(t, 0, flipped)

	got, err := repo.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UnreadCount.Freelancer)
}

func TestMarkMessagesReadOnEmptyRoom(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)

	flipped, err := repo.MarkMessagesRead(context.Background(), room, entity.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, 0, flipped)
}

func TestSubscribeReceivesFullSnapshots(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)

	var mu sync.Mutex
	var snapshots [][]*entity.ChatMessage

	cancel, err := repo.SubscribeToMessages(room.ID, 50, func(messages []*entity.ChatMessage, err error) {
		require.NoError(t, err)
		mu.Lock()
		snapshots = append(snapshots, messages)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer cancel()

	sendText(t, repo, room, entity.RoleClient, "Hi")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, snapshots, 2)
	assert.Empty(t, snapshots[0])
	require.Len(t, snapshots[1], 1)
	assert.Equal(t, "Hi", snapshots[1][0].Content)
}

func TestSubscribeSnapshotsStayAscendingWithinWindow(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)

	var mu sync.Mutex
	var last []*entity.ChatMessage

	cancel, err := repo.SubscribeToMessages(room.ID, 2, func(messages []*entity.ChatMessage, err error) {
		mu.Lock()
		last = messages
		mu.Unlock()
	})
	require.NoError(t, err)
	defer cancel()

	for _, text := range []string{"one", "two", "three"} {
		sendText(t, repo, room, entity.RoleClient, text)
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, last, 2, "window holds the most recent messages only")
	assert.Equal(t, "two", last[0].Content)
	assert.Equal(t, "three", last[1].Content)
	assert.True(t, last[0].Timestamp.Before(last[1].Timestamp))
}

func TestSubscribeDoesNotLeakAcrossRooms(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	roomA := newTestRoom(t, repo)

	roomB := &entity.ChatRoom{
		ProjectID:    "project-2",
		ClientID:     "client-2",
		FreelancerID: "freelancer-2",
	}
	require.NoError(t, repo.CreateRoom(context.Background(), roomB))

	var mu sync.Mutex
	var last []*entity.ChatMessage

	cancel, err := repo.SubscribeToMessages(roomA.ID, 50, func(messages []*entity.ChatMessage, err error) {
		mu.Lock()
		last = messages
		mu.Unlock()
	})
	require.NoError(t, err)
	defer cancel()

	sendText(t, repo, roomB, entity.RoleClient, "elsewhere")
	sendText(t, repo, roomA, entity.RoleClient, "here")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, last, 1)
	assert.Equal(t, "here", last[0].Content)
}

func TestUnsubscribeStopsSnapshots(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)

	var mu sync.Mutex
	count := 0

	cancel, err := repo.SubscribeToMessages(room.ID, 50, func(messages []*entity.ChatMessage, err error) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	require.NoError(t, err)

	cancel()
	sendText(t, repo, room, entity.RoleClient, "after cancel")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count, "only the initial snapshot arrives before cancel")
}

func TestFindRoomByProject(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)
	ctx := context.Background()

	found, err := repo.FindRoomByProject(ctx, room.ProjectID, room.ClientID, room.FreelancerID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, room.ID, found.ID)

	missing, err := repo.FindRoomByProject(ctx, "project-x", room.ClientID, room.FreelancerID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListRoomsByUserOrderedByActivity(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	ctx := context.Background()

	first := &entity.ChatRoom{ProjectID: "p1", ClientID: "client-1", FreelancerID: "f1"}
	second := &entity.ChatRoom{ProjectID: "p2", ClientID: "client-1", FreelancerID: "f2"}
	require.NoError(t, repo.CreateRoom(ctx, first))
	require.NoError(t, repo.CreateRoom(ctx, second))

	sendText(t, repo, first, entity.RoleFreelancer, "bump")

	rooms, err := repo.ListRoomsByUser(ctx, "client-1", entity.RoleClient)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, first.ID, rooms[0].ID, "most recently active room comes first")
	assert.Equal(t, second.ID, rooms[1].ID)
}

func TestAttachmentMessagePreview(t *testing.T) {
	repo := NewStoreChatRepository(memstore.New())
	room := newTestRoom(t, repo)
	ctx := context.Background()

	msg := &entity.ChatMessage{
		SenderID:    room.ClientID,
		SenderRole:  entity.RoleClient,
		Kind:        entity.MessageKindImage,
		Attachments: []string{"https://storage.example.com/shot.png"},
	}
	require.NoError(t, repo.SendMessage(ctx, room, msg))

	got, err := repo.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sent an image", got.LastMessage)

	messages, err := repo.GetMessages(ctx, room.ID, 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, []string{"https://storage.example.com/shot.png"}, messages[0].Attachments)
}
