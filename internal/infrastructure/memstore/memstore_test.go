package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigspace/internal/domain/store"
	"gigspace/pkg/errors"
)

func TestInsertAndGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.Insert(ctx, "rooms", map[string]interface{}{
		"clientId":  "client-1",
		"createdAt": store.ServerTimestamp,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.Get(ctx, "rooms", id)
	require.NoError(t, err)
	assert.Equal(t, "client-1", doc.Data["clientId"])
	_, ok := doc.Data["createdAt"].(time.Time)
	assert.True(t, ok, "server timestamp should resolve to a concrete time")
}

func TestGetMissingDocument(t *testing.T) {
	s := New()

	_, err := s.Get(context.Background(), "rooms", "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestServerTimestampsAreMonotonic(t *testing.T) {
	s := New()
	ctx := context.Background()

	var stamps []time.Time
	for i := 0; i < 100; i++ {
		id, err := s.Insert(ctx, "messages", map[string]interface{}{
			"timestamp": store.ServerTimestamp,
		})
		require.NoError(t, err)

		doc, err := s.Get(ctx, "messages", id)
		require.NoError(t, err)
		stamps = append(stamps, doc.Data["timestamp"].(time.Time))
	}

	for i := 1; i < len(stamps); i++ {
		assert.True(t, stamps[i].After(stamps[i-1]),
			"stamp %d should be strictly after stamp %d", i, i-1)
	}
}

func TestUpdateDottedPathAndIncrement(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.Insert(ctx, "rooms", map[string]interface{}{
		"unreadCount": map[string]interface{}{"client": 0, "freelancer": 0},
	})
	require.NoError(t, err)

	err = s.Update(ctx, "rooms", id, map[string]interface{}{
		"unreadCount.freelancer": store.Increment(1),
	})
	require.NoError(t, err)

	err = s.Update(ctx, "rooms", id, map[string]interface{}{
		"unreadCount.freelancer": store.Increment(1),
	})
	require.NoError(t, err)

	doc, err := s.Get(ctx, "rooms", id)
	require.NoError(t, err)
	counts := doc.Data["unreadCount"].(map[string]interface{})
	assert.Equal(t, int64(2), counts["freelancer"])
	assert.Equal(t, 0, counts["client"])
}

func TestUpdateMissingDocument(t *testing.T) {
	s := New()

	err := s.Update(context.Background(), "rooms", "nope", map[string]interface{}{
		"lastMessage": "hi",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestBatchWriteIsAtomic(t *testing.T) {
	s := New()
	ctx := context.Background()

	roomID, err := s.Insert(ctx, "rooms", map[string]interface{}{
		"lastMessage": "",
	})
	require.NoError(t, err)

	// Second op targets a missing document, so the whole batch must fail
	// without applying the first op.
	err = s.BatchWrite(ctx, []store.WriteOp{
		{
			Kind:       store.WriteUpdate,
			Collection: "rooms",
			ID:         roomID,
			Data:       map[string]interface{}{"lastMessage": "hello"},
		},
		{
			Kind:       store.WriteUpdate,
			Collection: "rooms",
			ID:         "missing",
			Data:       map[string]interface{}{"lastMessage": "hello"},
		},
	})
	require.Error(t, err)

	doc, err := s.Get(ctx, "rooms", roomID)
	require.NoError(t, err)
	assert.Equal(t, "", doc.Data["lastMessage"])
}

func TestBatchWriteInsertAndUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()

	roomID, err := s.Insert(ctx, "rooms", map[string]interface{}{
		"lastMessage": "",
		"unreadCount": map[string]interface{}{"client": 0, "freelancer": 0},
	})
	require.NoError(t, err)

	err = s.BatchWrite(ctx, []store.WriteOp{
		{
			Kind:       store.WriteInsert,
			Collection: "messages",
			ID:         "m1",
			Data: map[string]interface{}{
				"chatId":    roomID,
				"text":      "Hi",
				"timestamp": store.ServerTimestamp,
			},
		},
		{
			Kind:       store.WriteUpdate,
			Collection: "rooms",
			ID:         roomID,
			Data: map[string]interface{}{
				"lastMessage":            "Hi",
				"unreadCount.freelancer": store.Increment(1),
			},
		},
	})
	require.NoError(t, err)

	msg, err := s.Get(ctx, "messages", "m1")
	require.NoError(t, err)
	assert.Equal(t, "Hi", msg.Data["text"])

	room, err := s.Get(ctx, "rooms", roomID)
	require.NoError(t, err)
	assert.Equal(t, "Hi", room.Data["lastMessage"])
	counts := room.Data["unreadCount"].(map[string]interface{})
	assert.Equal(t, int64(1), counts["freelancer"])
}

func TestQueryFilterOrderLimit(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, m := range []map[string]interface{}{
		{"chatId": "room-1", "text": "first", "timestamp": store.ServerTimestamp},
		{"chatId": "room-1", "text": "second", "timestamp": store.ServerTimestamp},
		{"chatId": "room-2", "text": "other", "timestamp": store.ServerTimestamp},
		{"chatId": "room-1", "text": "third", "timestamp": store.ServerTimestamp},
	} {
		_, err := s.Insert(ctx, "messages", m)
		require.NoError(t, err)
	}

	docs, err := s.Query(ctx, "messages",
		[]store.Filter{{Field: "chatId", Op: "==", Value: "room-1"}},
		[]store.Order{{Field: "timestamp"}},
		0)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "first", docs[0].Data["text"])
	assert.Equal(t, "second", docs[1].Data["text"])
	assert.Equal(t, "third", docs[2].Data["text"])

	// Descending with a window keeps only the most recent entries.
	docs, err = s.Query(ctx, "messages",
		[]store.Filter{{Field: "chatId", Op: "==", Value: "room-1"}},
		[]store.Order{{Field: "timestamp", Desc: true}},
		2)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "third", docs[0].Data["text"])
	assert.Equal(t, "second", docs[1].Data["text"])
}

func TestQueryMissingFieldNeverMatches(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Insert(ctx, "messages", map[string]interface{}{"text": "no read flag"})
	require.NoError(t, err)

	docs, err := s.Query(ctx, "messages",
		[]store.Filter{{Field: "isRead", Op: "==", Value: false}},
		nil, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestQueryArrayContains(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Insert(ctx, "projects", map[string]interface{}{
		"skillsRequired": []string{"go", "react"},
	})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "projects", map[string]interface{}{
		"skillsRequired": []string{"python"},
	})
	require.NoError(t, err)

	docs, err := s.Query(ctx, "projects",
		[]store.Filter{{Field: "skillsRequired", Op: "array-contains", Value: "go"}},
		nil, 0)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestSubscribeDeliversInitialAndUpdatedSnapshots(t *testing.T) {
	s := New()
	ctx := context.Background()

	var mu sync.Mutex
	var snapshots [][]store.Document

	cancel, err := s.Subscribe("messages",
		[]store.Filter{{Field: "chatId", Op: "==", Value: "room-1"}},
		[]store.Order{{Field: "timestamp"}},
		0,
		func(docs []store.Document, err error) {
			require.NoError(t, err)
			mu.Lock()
			snapshots = append(snapshots, docs)
			mu.Unlock()
		})
	require.NoError(t, err)
	defer cancel()

	_, err = s.Insert(ctx, "messages", map[string]interface{}{
		"chatId":    "room-1",
		"text":      "Hi",
		"timestamp": store.ServerTimestamp,
	})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, snapshots, 2)
	assert.Empty(t, snapshots[0], "initial snapshot of an empty room")
	require.Len(t, snapshots[1], 1)
	assert.Equal(t, "Hi", snapshots[1][0].Data["text"])
}

func TestSubscribeSnapshotIsFullNotDiff(t *testing.T) {
	s := New()
	ctx := context.Background()

	var mu sync.Mutex
	var last []store.Document

	cancel, err := s.Subscribe("messages",
		[]store.Filter{{Field: "chatId", Op: "==", Value: "room-1"}},
		[]store.Order{{Field: "timestamp"}},
		0,
		func(docs []store.Document, err error) {
			mu.Lock()
			last = docs
			mu.Unlock()
		})
	require.NoError(t, err)
	defer cancel()

	for _, text := range []string{"one", "two", "three"} {
		_, err := s.Insert(ctx, "messages", map[string]interface{}{
			"chatId":    "room-1",
			"text":      text,
			"timestamp": store.ServerTimestamp,
		})
		require.NoError(t, err)
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, last, 3)
	assert.Equal(t, "one", last[0].Data["text"])
	assert.Equal(t, "three", last[2].Data["text"])
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := New()
	ctx := context.Background()

	var mu sync.Mutex
	count := 0

	cancel, err := s.Subscribe("messages", nil, nil, 0, func(docs []store.Document, err error) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	require.NoError(t, err)

	cancel()

	_, err = s.Insert(ctx, "messages", map[string]interface{}{"text": "after"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count, "only the initial snapshot should have been delivered")
}

func TestConcurrentWritesAndSubscriptions(t *testing.T) {
	s := New()
	ctx := context.Background()

	cancel, err := s.Subscribe("messages", nil, []store.Order{{Field: "timestamp"}}, 0,
		func(docs []store.Document, err error) {})
	require.NoError(t, err)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := s.Insert(ctx, "messages", map[string]interface{}{
					"timestamp": store.ServerTimestamp,
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	docs, err := s.Query(ctx, "messages", nil, nil, 0)
	require.NoError(t, err)
	assert.Len(t, docs, 200)
}

func TestSubscribeInitialSnapshotPrecedesConcurrentWrite(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Insert(ctx, "messages", map[string]interface{}{"text": "first"})
	require.NoError(t, err)

	var mu sync.Mutex
	var sizes []int
	first := true
	entered := make(chan struct{})
	release := make(chan struct{})

	var cancel func()
	subscribed := make(chan struct{})
	go func() {
		defer close(subscribed)
		c, err := s.Subscribe("messages", nil, nil, 0, func(docs []store.Document, err error) {
			mu.Lock()
			sizes = append(sizes, len(docs))
			mu.Unlock()
			if first {
				first = false
				close(entered)
				<-release
			}
		})
		assert.NoError(t, err)
		cancel = c
	}()
	<-entered

	// A write that commits while the initial snapshot is still being
	// delivered must not publish its fresher snapshot ahead of it.
	written := make(chan struct{})
	go func() {
		defer close(written)
		_, err := s.Insert(ctx, "messages", map[string]interface{}{"text": "second"})
		assert.NoError(t, err)
	}()

	select {
	case <-written:
		t.Fatal("concurrent write delivered before the initial snapshot finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-written
	<-subscribed
	cancel()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{1, 2}, sizes, "initial snapshot should arrive first")
}
