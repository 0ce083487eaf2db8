// Package memstore is an in-memory implementation of the DocumentStore
// contract. It backs unit tests and the STORE_BACKEND=memory development
// mode with the same semantics the Firestore adapter provides: server
// assigned timestamps, atomic batches, and live query snapshots.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"gigspace/internal/domain/store"
	"gigspace/pkg/errors"
)

type Store struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]interface{}
	subs        map[int64]*subscription
	nextSubID   int64
	lastStamp   time.Time
}

type subscription struct {
	collection string
	filters    []store.Filter
	orderBy    []store.Order
	limit      int
	fn         store.SnapshotFunc

	// deliverMu serializes snapshot delivery against cancellation, so no
	// callback can start after Unsubscribe has returned.
	deliverMu sync.Mutex
	closed    bool
}

type delivery struct {
	sub  *subscription
	docs []store.Document
}

func New() *Store {
	return &Store{
		collections: make(map[string]map[string]map[string]interface{}),
		subs:        make(map[int64]*subscription),
	}
}

// serverNow is the store clock. It never returns the same or an earlier
// value twice, which keeps timestamp-ordered queries total.
func (s *Store) serverNow() time.Time {
	now := time.Now()
	if !now.After(s.lastStamp) {
		now = s.lastStamp.Add(time.Microsecond)
	}
	s.lastStamp = now
	return now
}

func (s *Store) Insert(ctx context.Context, collection string, data map[string]interface{}) (string, error) {
	s.mu.Lock()
	id := s.insertLocked(collection, "", data)
	deliveries := s.snapshotsLocked(collection)
	s.mu.Unlock()

	dispatch(deliveries)
	return id, nil
}

func (s *Store) insertLocked(collection, id string, data map[string]interface{}) string {
	col, ok := s.collections[collection]
	if !ok {
		col = make(map[string]map[string]interface{})
		s.collections[collection] = col
	}

	if id == "" {
		id = uuid.New().String()
	}

	doc := make(map[string]interface{})
	col[id] = doc
	s.applyFieldsLocked(doc, data)
	return id
}

func (s *Store) Get(ctx context.Context, collection, id string) (*store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, errors.NotFound("Document", nil)
	}

	return &store.Document{ID: id, Data: copyMap(doc)}, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	doc, ok := s.collections[collection][id]
	if !ok {
		s.mu.Unlock()
		return errors.NotFound("Document", nil)
	}
	s.applyFieldsLocked(doc, fields)
	deliveries := s.snapshotsLocked(collection)
	s.mu.Unlock()

	dispatch(deliveries)
	return nil
}

// BatchWrite validates every operation before applying any, so a failed
// batch leaves the store untouched.
func (s *Store) BatchWrite(ctx context.Context, ops []store.WriteOp) error {
	s.mu.Lock()

	for _, op := range ops {
		if op.Kind == store.WriteUpdate {
			if _, ok := s.collections[op.Collection][op.ID]; !ok {
				s.mu.Unlock()
				return errors.NotFound("Document", nil)
			}
		}
	}

	touched := make(map[string]bool)
	for _, op := range ops {
		switch op.Kind {
		case store.WriteInsert:
			s.insertLocked(op.Collection, op.ID, op.Data)
		case store.WriteUpdate:
			s.applyFieldsLocked(s.collections[op.Collection][op.ID], op.Data)
		}
		touched[op.Collection] = true
	}

	var deliveries []delivery
	for collection := range touched {
		deliveries = append(deliveries, s.snapshotsLocked(collection)...)
	}
	s.mu.Unlock()

	dispatch(deliveries)
	return nil
}

func (s *Store) Query(ctx context.Context, collection string, filters []store.Filter, orderBy []store.Order, limit int) ([]store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryLocked(collection, filters, orderBy, limit), nil
}

func (s *Store) Subscribe(collection string, filters []store.Filter, orderBy []store.Order, limit int, fn store.SnapshotFunc) (func(), error) {
	sub := &subscription{
		collection: collection,
		filters:    filters,
		orderBy:    orderBy,
		limit:      limit,
		fn:         fn,
	}

	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = sub
	initial := s.queryLocked(collection, filters, orderBy, limit)

	// Initial snapshot, matching the Firestore listener contract. deliverMu
	// is taken before the store unlocks so a concurrent write cannot publish
	// a fresher snapshot ahead of this one.
	sub.deliverMu.Lock()
	s.mu.Unlock()
	sub.fn(initial, nil)
	sub.deliverMu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()

		sub.deliverMu.Lock()
		sub.closed = true
		sub.deliverMu.Unlock()
	}
	return cancel, nil
}

func (sub *subscription) deliver(docs []store.Document) {
	sub.deliverMu.Lock()
	defer sub.deliverMu.Unlock()
	if sub.closed {
		return
	}
	sub.fn(docs, nil)
}

func dispatch(deliveries []delivery) {
	for _, d := range deliveries {
		d.sub.deliver(d.docs)
	}
}

// snapshotsLocked re-evaluates every subscription on the collection. Each
// mutation republishes the full window, so subscribers may observe
// redundant snapshots with unchanged content.
func (s *Store) snapshotsLocked(collection string) []delivery {
	var out []delivery
	for _, sub := range s.subs {
		if sub.collection != collection {
			continue
		}
		out = append(out, delivery{
			sub:  sub,
			docs: s.queryLocked(sub.collection, sub.filters, sub.orderBy, sub.limit),
		})
	}
	return out
}

func (s *Store) queryLocked(collection string, filters []store.Filter, orderBy []store.Order, limit int) []store.Document {
	var docs []store.Document
	for id, data := range s.collections[collection] {
		if matches(data, filters) {
			docs = append(docs, store.Document{ID: id, Data: copyMap(data)})
		}
	}

	sortDocs(docs, orderBy)

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}

func (s *Store) applyFieldsLocked(doc map[string]interface{}, fields map[string]interface{}) {
	for path, value := range fields {
		switch v := value.(type) {
		case store.ServerTimestampValue:
			setField(doc, path, s.serverNow())
		case store.IncrementValue:
			setField(doc, path, toInt64(getField(doc, path))+v.Amount)
		case map[string]interface{}:
			setField(doc, path, copyMap(v))
		default:
			setField(doc, path, value)
		}
	}
}

func matches(doc map[string]interface{}, filters []store.Filter) bool {
	for _, f := range filters {
		value, ok := getFieldOK(doc, f.Field)
		if !ok {
			return false
		}
		switch f.Op {
		case "==":
			if compare(value, f.Value) != 0 {
				return false
			}
		case "!=":
			if compare(value, f.Value) == 0 {
				return false
			}
		case "<":
			if compare(value, f.Value) >= 0 {
				return false
			}
		case "<=":
			if compare(value, f.Value) > 0 {
				return false
			}
		case ">":
			if compare(value, f.Value) <= 0 {
				return false
			}
		case ">=":
			if compare(value, f.Value) < 0 {
				return false
			}
		case "array-contains":
			if !arrayContains(value, f.Value) {
				return false
			}
		case "array-contains-any":
			if !arrayContainsAny(value, f.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// sortDocs orders by the requested keys, then by document id so that equal
// sort keys (for example identical timestamps) still produce one
// reproducible order.
func sortDocs(docs []store.Document, orderBy []store.Order) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, o := range orderBy {
			a, _ := getFieldOK(docs[i].Data, o.Field)
			b, _ := getFieldOK(docs[j].Data, o.Field)
			c := compare(a, b)
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return docs[i].ID < docs[j].ID
	})
}

func compare(a, b interface{}) int {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			}
			return 0
		}
	}

	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}

	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs)
		}
	}

	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case !ab && bb:
				return -1
			case ab && !bb:
				return 1
			}
			return 0
		}
	}

	return 0
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toInt64(v interface{}) int64 {
	f, ok := toFloat(v)
	if !ok {
		return 0
	}
	return int64(f)
}

func arrayContains(value, target interface{}) bool {
	for _, item := range toSlice(value) {
		if compare(item, target) == 0 {
			return true
		}
	}
	return false
}

func arrayContainsAny(value, targets interface{}) bool {
	for _, target := range toSlice(targets) {
		if arrayContains(value, target) {
			return true
		}
	}
	return false
}

func toSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		return s
	case []string:
		out := make([]interface{}, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out
	}
	return nil
}

func getField(doc map[string]interface{}, path string) interface{} {
	v, _ := getFieldOK(doc, path)
	return v
}

func getFieldOK(doc map[string]interface{}, path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	current := doc
	for i, part := range parts {
		value, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return value, true
		}
		nested, ok := value.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current = nested
	}
	return nil, false
}

func setField(doc map[string]interface{}, path string, value interface{}) {
	parts := strings.Split(path, ".")
	current := doc
	for i, part := range parts {
		if i == len(parts)-1 {
			current[part] = value
			return
		}
		nested, ok := current[part].(map[string]interface{})
		if !ok {
			nested = make(map[string]interface{})
			current[part] = nested
		}
		current = nested
	}
}

func copyMap(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		if nested, ok := v.(map[string]interface{}); ok {
			dst[k] = copyMap(nested)
			continue
		}
		if slice, ok := v.([]interface{}); ok {
			dst[k] = append([]interface{}(nil), slice...)
			continue
		}
		if slice, ok := v.([]string); ok {
			dst[k] = append([]string(nil), slice...)
			continue
		}
		dst[k] = v
	}
	return dst
}
