package store

import (
	"sync"

	"dabois-portal/models"
)

// MemoryStore keeps every collection in memory. It backs the engine tests and
// works as a throwaway store for local experiments.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []models.User
	events    []models.Event
	trips     []models.Trip
	wiseWords []models.WiseWord
	links     []models.Link
	memories  []models.Memory
	locations []models.Location
	wikiPages []models.WikiPage
	messages  []models.ChatMessage
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func copySlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func (s *MemoryStore) LoadUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.users), nil
}

func (s *MemoryStore) SaveUsers(users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = copySlice(users)
	return nil
}

func (s *MemoryStore) LoadEvents() ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.events), nil
}

func (s *MemoryStore) SaveEvents(events []models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = copySlice(events)
	return nil
}

func (s *MemoryStore) LoadTrips() ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.trips), nil
}

func (s *MemoryStore) SaveTrips(trips []models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = copySlice(trips)
	return nil
}

func (s *MemoryStore) LoadWiseWords() ([]models.WiseWord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.wiseWords), nil
}

func (s *MemoryStore) SaveWiseWords(words []models.WiseWord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wiseWords = copySlice(words)
	return nil
}

func (s *MemoryStore) LoadLinks() ([]models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.links), nil
}

func (s *MemoryStore) SaveLinks(links []models.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = copySlice(links)
	return nil
}

func (s *MemoryStore) LoadMemories() ([]models.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.memories), nil
}

func (s *MemoryStore) SaveMemories(memories []models.Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = copySlice(memories)
	return nil
}

func (s *MemoryStore) LoadLocations() ([]models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.locations), nil
}

func (s *MemoryStore) SaveLocations(locations []models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = copySlice(locations)
	return nil
}

func (s *MemoryStore) LoadWikiPages() ([]models.WikiPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.wikiPages), nil
}

func (s *MemoryStore) SaveWikiPages(pages []models.WikiPage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wikiPages = copySlice(pages)
	return nil
}

func (s *MemoryStore) LoadMessages() ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.messages), nil
}

func (s *MemoryStore) SaveMessages(messages []models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = copySlice(messages)
	return nil
}
