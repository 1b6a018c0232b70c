package store

import "dabois-portal/models"

// Store is the persistence collaborator: every collection is loaded and saved
// wholesale. Implementations must make Save atomic; a failed save leaves the
// stored collection unchanged.
type Store interface {
	LoadUsers() ([]models.User, error)
	SaveUsers([]models.User) error

	LoadEvents() ([]models.Event, error)
	SaveEvents([]models.Event) error

	LoadTrips() ([]models.Trip, error)
	SaveTrips([]models.Trip) error

	LoadWiseWords() ([]models.WiseWord, error)
	SaveWiseWords([]models.WiseWord) error

	LoadLinks() ([]models.Link, error)
	SaveLinks([]models.Link) error

	LoadMemories() ([]models.Memory, error)
	SaveMemories([]models.Memory) error

	LoadLocations() ([]models.Location, error)
	SaveLocations([]models.Location) error

	LoadWikiPages() ([]models.WikiPage, error)
	SaveWikiPages([]models.WikiPage) error

	LoadMessages() ([]models.ChatMessage, error)
	SaveMessages([]models.ChatMessage) error
}
