// Package memory is an in-process implementation of every repository, used
// for local development (STORE_DRIVER=memory) and tests.
package memory

import (
	"sync"
	"time"

	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/internal/store"
	"github.com/google/uuid"
)

// table keeps rows in insertion order.
type table[T any] struct {
	rows  map[uuid.UUID]*T
	order []uuid.UUID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]*T)}
}

func (t *table[T]) insert(id uuid.UUID, row T) {
	t.rows[id] = &row
	t.order = append(t.order, id)
}

func (t *table[T]) get(id uuid.UUID) (*T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) remove(id uuid.UUID) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// scan returns copies of the rows matching keep, in insertion order.
func (t *table[T]) scan(keep func(*T) bool) []*T {
	out := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if keep == nil || keep(row) {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out
}

type DB struct {
	mu            sync.RWMutex
	now           func() time.Time
	users         *table[entity.User]
	classes       *table[entity.Class]
	payments      *table[entity.Payment]
	assignments   *table[entity.Assignment]
	submissions   *table[entity.Submission]
	teachRequests *table[entity.TeachRequest]
	feedback      *table[entity.Feedback]
}

func NewDB() *DB {
	return &DB{
		now:           time.Now,
		users:         newTable[entity.User](),
		classes:       newTable[entity.Class](),
		payments:      newTable[entity.Payment](),
		assignments:   newTable[entity.Assignment](),
		submissions:   newTable[entity.Submission](),
		teachRequests: newTable[entity.TeachRequest](),
		feedback:      newTable[entity.Feedback](),
	}
}

// New returns repositories backed by a fresh in-memory database.
func New() store.Repositories {
	db := NewDB()
	return store.Repositories{
		Users:         &userRepository{db: db},
		Classes:       &classRepository{db: db},
		Payments:      &paymentRepository{db: db},
		Assignments:   &assignmentRepository{db: db},
		Submissions:   &submissionRepository{db: db},
		TeachRequests: &teachRequestRepository{db: db},
		Feedback:      &feedbackRepository{db: db},
	}
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
