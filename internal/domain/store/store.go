package store

import "context"

// Document is a raw record from a collection. ID is the store-assigned
// document id; it is not duplicated inside Data.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Filter is a single field predicate. Op is one of "==", "!=", "<", "<=",
// ">", ">=", "array-contains", "array-contains-any". Documents missing the
// field never match, regardless of operator.
type Filter struct {
	Field string
	Op    string
	Value interface{}
}

// Order is a sort key. The store always appends the document id as a final
// ascending tiebreaker so result order is deterministic.
type Order struct {
	Field string
	Desc  bool
}

type WriteKind int

const (
	WriteInsert WriteKind = iota
	WriteUpdate
)

// WriteOp is one element of an atomic batch. For WriteUpdate the document
// must already exist; fields support dotted paths ("unreadCount.client").
type WriteOp struct {
	Kind       WriteKind
	Collection string
	ID         string
	Data       map[string]interface{}
}

// ServerTimestampValue marks a field to be filled with the store's clock at
// commit time.
type ServerTimestampValue struct{}

// ServerTimestamp is the sentinel used as a field value in writes.
var ServerTimestamp = ServerTimestampValue{}

// IncrementValue marks a numeric field for an atomic server-side increment.
type IncrementValue struct {
	Amount int64
}

func Increment(n int64) IncrementValue {
	return IncrementValue{Amount: n}
}

// SnapshotFunc receives the full current result set of a subscribed query
// each time the underlying data changes. A snapshot is an authoritative
// replacement, not a diff, and redundant deliveries are possible. On a
// subscription failure the error is non-nil and docs must be ignored.
type SnapshotFunc func(docs []Document, err error)

// DocumentStore is the collection-oriented storage contract the messaging
// core is written against. Firestore backs it in production; an in-memory
// implementation backs tests and local development.
type DocumentStore interface {
	Insert(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// BatchWrite applies all operations atomically: either every write is
	// durably applied or none is.
	BatchWrite(ctx context.Context, ops []WriteOp) error

	Query(ctx context.Context, collection string, filters []Filter, orderBy []Order, limit int) ([]Document, error)

	// Subscribe establishes a live query. The returned cancel func releases
	// the subscription; after it returns, fn is never invoked again.
	Subscribe(collection string, filters []Filter, orderBy []Order, limit int, fn SnapshotFunc) (func(), error)
}
