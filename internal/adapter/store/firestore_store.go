package store

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	domainstore "gigspace/internal/domain/store"
	"gigspace/pkg/errors"
	"gigspace/pkg/logger"
)

// FirestoreStore adapts a Firestore client to the DocumentStore contract.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Insert(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	ref := s.client.Collection(collection).NewDoc()
	if _, err := ref.Set(ctx, translateValues(data)); err != nil {
		return "", errors.Internal("Failed to create document", err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (*domainstore.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Document", err)
		}
		return nil, errors.Internal("Failed to get document", err)
	}
	return &domainstore.Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, translateUpdates(fields)); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Document", err)
		}
		return errors.Internal("Failed to update document", err)
	}
	return nil
}

func (s *FirestoreStore) BatchWrite(ctx context.Context, ops []domainstore.WriteOp) error {
	batch := s.client.Batch()
	for _, op := range ops {
		col := s.client.Collection(op.Collection)
		var ref *firestore.DocumentRef
		if op.ID != "" {
			ref = col.Doc(op.ID)
		} else {
			ref = col.NewDoc()
		}
		switch op.Kind {
		case domainstore.WriteInsert:
			batch.Set(ref, translateValues(op.Data))
		case domainstore.WriteUpdate:
			batch.Update(ref, translateUpdates(op.Data))
		}
	}

	if _, err := batch.Commit(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Document", err)
		}
		return errors.Internal("Failed to commit batch", err)
	}
	return nil
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, filters []domainstore.Filter, orderBy []domainstore.Order, limit int) ([]domainstore.Document, error) {
	iter := s.buildQuery(collection, filters, orderBy, limit).Documents(ctx)
	defer iter.Stop()

	var docs []domainstore.Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to query documents", err)
		}
		docs = append(docs, domainstore.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) Subscribe(collection string, filters []domainstore.Filter, orderBy []domainstore.Order, limit int, fn domainstore.SnapshotFunc) (func(), error) {
	ctx, stop := context.WithCancel(context.Background())
	snapshots := s.buildQuery(collection, filters, orderBy, limit).Snapshots(ctx)

	var mu sync.Mutex
	closed := false

	go func() {
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				mu.Lock()
				if !closed {
					logger.Error("Snapshot listener on %s failed: %v", collection, err)
					fn(nil, errors.Internal("Snapshot listener failed", err))
				}
				mu.Unlock()
				return
			}

			var docs []domainstore.Document
			iter := snap.Documents
			for {
				doc, err := iter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					mu.Lock()
					if !closed {
						fn(nil, errors.Internal("Snapshot read failed", err))
					}
					mu.Unlock()
					return
				}
				docs = append(docs, domainstore.Document{ID: doc.Ref.ID, Data: doc.Data()})
			}

			mu.Lock()
			if !closed {
				fn(docs, nil)
			}
			mu.Unlock()
		}
	}()

	cancel := func() {
		mu.Lock()
		closed = true
		mu.Unlock()
		stop()
		snapshots.Stop()
	}
	return cancel, nil
}

func (s *FirestoreStore) buildQuery(collection string, filters []domainstore.Filter, orderBy []domainstore.Order, limit int) firestore.Query {
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, f.Op, f.Value)
	}
	for _, o := range orderBy {
		dir := firestore.Asc
		if o.Desc {
			dir = firestore.Desc
		}
		q = q.OrderBy(o.Field, dir)
	}
	if len(orderBy) > 0 {
		// The contract promises an ascending document-id tiebreaker.
		// Firestore's implicit __name__ ordering follows the direction of
		// the last explicit key, so it must be pinned.
		q = q.OrderBy(firestore.DocumentID, firestore.Asc)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}

// translateValues maps the contract's write sentinels onto their Firestore
// counterparts for Set-style writes.
func translateValues(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = translateValue(v)
	}
	return out
}

func translateValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case domainstore.ServerTimestampValue:
		return firestore.ServerTimestamp
	case domainstore.IncrementValue:
		return firestore.Increment(tv.Amount)
	case map[string]interface{}:
		return translateValues(tv)
	default:
		return v
	}
}

func translateUpdates(fields map[string]interface{}) []firestore.Update {
	updates := make([]firestore.Update, 0, len(fields))
	for path, v := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: translateValue(v)})
	}
	return updates
}
