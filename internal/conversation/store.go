package conversation

import (
	"sync"
	"time"
)

// Defaults seed a context on first creation. They never overwrite values
// on an existing context.
type Defaults struct {
	Name   string
	Region string
}

// Store keeps one Context per user id for the lifetime of the process.
//
// Access is serialized per user: Acquire hands out the context together
// with a release function and holds that user's lock until release is
// called, so at most one turn per user id is ever in flight. Different
// users never contend beyond the brief map lookup.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu  sync.Mutex
	ctx *Context
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Acquire returns the context for userID, creating it from defaults on
// first use, with that user's turn lock held. Callers must invoke the
// returned release function when the turn is fully applied.
func (s *Store) Acquire(userID string, defaults Defaults) (*Context, func()) {
	s.mu.Lock()
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{ctx: newContext(userID, defaults)}
		s.entries[userID] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	return e.ctx, e.mu.Unlock
}

// Peek returns the context for userID without creating one. The caller
// receives the context with the user lock held, exactly as with Acquire.
func (s *Store) Peek(userID string) (*Context, func(), bool) {
	s.mu.Lock()
	e, ok := s.entries[userID]
	s.mu.Unlock()
	if !ok {
		return nil, nil, false
	}
	e.mu.Lock()
	return e.ctx, e.mu.Unlock, true
}

// Clear removes the context for userID. Clearing an absent user is a
// no-op.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	delete(s.entries, userID)
	s.mu.Unlock()
}

// Len reports how many users currently have a context.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// UserIDs returns the ids of all users with a live context.
func (s *Store) UserIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	return ids
}

func newContext(userID string, defaults Defaults) *Context {
	name := defaults.Name
	if name == "" {
		name = "Friend"
	}
	region := defaults.Region
	if region == "" {
		region = "centre"
	}
	return &Context{
		UserID:         userID,
		Name:           name,
		Region:         region,
		MentionedCrops: []string{},
		History:        []Turn{},
		SessionStart:   time.Now().UTC(),
	}
}
