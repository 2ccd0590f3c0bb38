package expense

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// DefaultKey is the storage key holding the serialized expense list.
const DefaultKey = "smartexpense-data"

const maxIDAttempts = 16

//go:generate mockgen -source=store.go -destination=backend_mock.go -package=expense
type Backend interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Store owns the canonical expense list. Every applied mutation rewrites the
// whole list under a single key and is then broadcast to subscribers.
type Store struct {
	backend Backend
	key     string
	ids     IDGenerator
	logger  *slog.Logger

	mu        sync.Mutex
	expenses  []Expense
	index     map[string]int
	version   uint64
	listeners map[int]func(Snapshot)
	nextSub   int
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		key:       DefaultKey,
		ids:       TimestampIDs{},
		logger:    slog.Default(),
		index:     make(map[string]int),
		listeners: make(map[int]func(Snapshot)),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With("component", "expense_store", "key", s.key)

	return s
}

// Load replaces the in-memory list with the persisted one. A missing or
// unreadable blob yields an empty list; only backend failures are returned.
func (s *Store) Load(ctx context.Context) error {
	raw, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("reading expenses: %w", err)
	}

	var loaded []Expense

	switch {
	case !ok || raw == "":
		s.logger.Info("no persisted expenses, starting empty")
	default:
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			s.logger.Warn("persisted expenses are malformed, starting empty", "error", err)
			loaded = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = make([]Expense, 0, len(loaded))
	s.index = make(map[string]int, len(loaded))

	for _, e := range loaded {
		if _, dup := s.index[e.ID]; dup {
			s.logger.Warn("dropping expense with duplicate id", "id", e.ID)
			continue
		}

		s.index[e.ID] = len(s.expenses)
		s.expenses = append(s.expenses, e)
	}

	s.version++
	s.logger.Debug("expenses loaded", "count", len(s.expenses))

	return nil
}

func (s *Store) Add(ctx context.Context, params CreateParams) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		return Expense{}, err
	}

	e := Expense{
		ID:          id,
		Title:       params.Title,
		Amount:      params.Amount,
		Category:    params.Category,
		Date:        params.Date,
		Description: params.Description,
	}

	s.index[e.ID] = len(s.expenses)
	s.expenses = append(s.expenses, e)

	return e, s.commit(ctx, "add")
}

// Update merges params into the expense with the given id. The boolean is
// false when no such expense exists; that case is not an error.
func (s *Store) Update(ctx context.Context, id string, params UpdateParams) (Expense, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Expense{}, false, nil
	}

	e := params.apply(s.expenses[i])
	s.expenses[i] = e

	return e, true, s.commit(ctx, "update")
}

// Delete removes the expense with the given id. The boolean is false when
// no such expense exists; that case is not an error.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false, nil
	}

	s.expenses = slices.Delete(s.expenses, i, i+1)
	s.reindex()

	return true, s.commit(ctx, "delete")
}

// Clear drops every expense and removes the storage key.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = nil
	s.index = make(map[string]int)
	s.version++

	err := s.backend.Remove(ctx, s.key)
	if err != nil {
		s.logger.Error("failed to remove persisted expenses", "error", err)
		err = fmt.Errorf("removing expenses: %w", err)
	}

	s.broadcast()

	return err
}

func (s *Store) Get(id string) (Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return Expense{}, false
	}

	return s.expenses[i], true
}

func (s *Store) List() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Subscribe registers fn to receive a snapshot after every applied mutation.
// Listeners run synchronously on the mutating goroutine and must not call
// back into the store. The returned function unregisters fn.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn

	var once sync.Once

	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			delete(s.listeners, id)
		})
	}
}

// commit persists the full list and notifies listeners. A failed write keeps
// the in-memory change; memory and storage stay out of sync until the next
// successful commit.
func (s *Store) commit(ctx context.Context, op string) error {
	s.version++

	err := s.persist(ctx)
	if err != nil {
		s.logger.Error("failed to persist expenses", "operation", op, "error", err)
	}

	s.broadcast()

	return err
}

func (s *Store) persist(ctx context.Context) error {
	list := s.expenses
	if list == nil {
		list = []Expense{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}

	if err := s.backend.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("writing expenses: %w", err)
	}

	return nil
}

func (s *Store) broadcast() {
	if len(s.listeners) == 0 {
		return
	}

	for _, fn := range s.listeners {
		fn(s.snapshot())
	}
}

func (s *Store) snapshot() Snapshot {
	list := slices.Clone(s.expenses)
	if list == nil {
		list = []Expense{}
	}

	return Snapshot{Version: s.version, Expenses: list}
}

func (s *Store) reindex() {
	clear(s.index)

	for i, e := range s.expenses {
		s.index[e.ID] = i
	}
}

func (s *Store) newID() (string, error) {
	for range maxIDAttempts {
		id := s.ids.NewID()
		if _, taken := s.index[id]; !taken && id != "" {
			return id, nil
		}
	}

	return "", fmt.Errorf("generating expense id: %d attempts collided", maxIDAttempts)
}
