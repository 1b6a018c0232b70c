package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"dabois-portal/models"
)

// SQLiteStore persists each collection as a document table: one row per
// entity, the entity itself as a JSON column. Save rewrites the whole table
// inside one transaction, so a failed write never leaves a half-updated
// collection behind.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already-migrated database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func loadAll[T any](db *sql.DB, table string) ([]T, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT data FROM %s ORDER BY rowid", table))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("load %s: %w", table, err)
		}
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("load %s: decode row: %w", table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	return items, nil
}

func saveAll[T any](db *sql.DB, table string, items []T, id func(T) string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (id, data) VALUES (?, ?)", table))
	if err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	defer stmt.Close()

	for _, item := range items {
		raw, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("save %s: encode row: %w", table, err)
		}
		if _, err := stmt.Exec(id(item), raw); err != nil {
			return fmt.Errorf("save %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	return nil
}

func (s *SQLiteStore) LoadUsers() ([]models.User, error) {
	return loadAll[models.User](s.db, "users")
}

func (s *SQLiteStore) SaveUsers(users []models.User) error {
	return saveAll(s.db, "users", users, func(u models.User) string { return u.ID })
}

func (s *SQLiteStore) LoadEvents() ([]models.Event, error) {
	return loadAll[models.Event](s.db, "events")
}

func (s *SQLiteStore) SaveEvents(events []models.Event) error {
	return saveAll(s.db, "events", events, func(e models.Event) string { return e.ID })
}

func (s *SQLiteStore) LoadTrips() ([]models.Trip, error) {
	return loadAll[models.Trip](s.db, "trips")
}

func (s *SQLiteStore) SaveTrips(trips []models.Trip) error {
	return saveAll(s.db, "trips", trips, func(t models.Trip) string { return t.ID })
}

func (s *SQLiteStore) LoadWiseWords() ([]models.WiseWord, error) {
	return loadAll[models.WiseWord](s.db, "wise_words")
}

func (s *SQLiteStore) SaveWiseWords(words []models.WiseWord) error {
	return saveAll(s.db, "wise_words", words, func(w models.WiseWord) string { return w.ID })
}

func (s *SQLiteStore) LoadLinks() ([]models.Link, error) {
	return loadAll[models.Link](s.db, "links")
}

func (s *SQLiteStore) SaveLinks(links []models.Link) error {
	return saveAll(s.db, "links", links, func(l models.Link) string { return l.ID })
}

func (s *SQLiteStore) LoadMemories() ([]models.Memory, error) {
	return loadAll[models.Memory](s.db, "memories")
}

func (s *SQLiteStore) SaveMemories(memories []models.Memory) error {
	return saveAll(s.db, "memories", memories, func(m models.Memory) string { return m.ID })
}

func (s *SQLiteStore) LoadLocations() ([]models.Location, error) {
	return loadAll[models.Location](s.db, "locations")
}

func (s *SQLiteStore) SaveLocations(locations []models.Location) error {
	return saveAll(s.db, "locations", locations, func(l models.Location) string { return l.ID })
}

func (s *SQLiteStore) LoadWikiPages() ([]models.WikiPage, error) {
	return loadAll[models.WikiPage](s.db, "wiki_pages")
}

func (s *SQLiteStore) SaveWikiPages(pages []models.WikiPage) error {
	return saveAll(s.db, "wiki_pages", pages, func(p models.WikiPage) string { return p.ID })
}

func (s *SQLiteStore) LoadMessages() ([]models.ChatMessage, error) {
	return loadAll[models.ChatMessage](s.db, "chat_messages")
}

func (s *SQLiteStore) SaveMessages(messages []models.ChatMessage) error {
	return saveAll(s.db, "chat_messages", messages, func(m models.ChatMessage) string { return m.ID })
}
