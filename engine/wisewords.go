package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"dabois-portal/models"
)

// AddWiseWord puts a new quote on the leaderboard. Category defaults to
// Common when left empty.
func (e *Engine) AddWiseWord(actor Actor, phrase, author string, category models.WiseWordCategory) (models.WiseWord, error) {
	if err := requireContentCreator(actor); err != nil {
		return models.WiseWord{}, err
	}
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return models.WiseWord{}, fmt.Errorf("%w: phrase is required", ErrValidation)
	}
	if category == "" {
		category = models.CategoryCommon
	}
	if !category.Valid() {
		return models.WiseWord{}, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}

	e.wordsMu.Lock()
	defer e.wordsMu.Unlock()

	words, err := e.store.LoadWiseWords()
	if err != nil {
		return models.WiseWord{}, err
	}
	word := models.WiseWord{
		ID:        uuid.NewString(),
		Phrase:    phrase,
		Author:    strings.TrimSpace(author),
		AddedBy:   actor.Name,
		Category:  category,
		CreatedAt: e.now(),
	}
	words = append(words, word)
	if err := e.store.SaveWiseWords(words); err != nil {
		return models.WiseWord{}, err
	}
	return word, nil
}

// ToggleUpvote adds the actor's upvote, or withdraws it if already present.
// Each user counts at most once.
func (e *Engine) ToggleUpvote(actor Actor, wordID string) (models.WiseWord, error) {
	if err := requireActor(actor); err != nil {
		return models.WiseWord{}, err
	}

	e.wordsMu.Lock()
	defer e.wordsMu.Unlock()

	words, err := e.store.LoadWiseWords()
	if err != nil {
		return models.WiseWord{}, err
	}
	i := indexWiseWord(words, wordID)
	if i < 0 {
		return models.WiseWord{}, fmt.Errorf("%w: wise word %s", ErrNotFound, wordID)
	}
	if words[i].HasUpvote(actor.ID) {
		kept := words[i].Upvotes[:0]
		for _, id := range words[i].Upvotes {
			if id != actor.ID {
				kept = append(kept, id)
			}
		}
		words[i].Upvotes = kept
	} else {
		words[i].Upvotes = append(words[i].Upvotes, actor.ID)
	}
	if err := e.store.SaveWiseWords(words); err != nil {
		return models.WiseWord{}, err
	}
	return words[i], nil
}

// SetWiseWordPinned flips the pin flag. Admin only.
func (e *Engine) SetWiseWordPinned(actor Actor, wordID string, pinned bool) (models.WiseWord, error) {
	if err := requireAdmin(actor); err != nil {
		return models.WiseWord{}, err
	}

	e.wordsMu.Lock()
	defer e.wordsMu.Unlock()

	words, err := e.store.LoadWiseWords()
	if err != nil {
		return models.WiseWord{}, err
	}
	i := indexWiseWord(words, wordID)
	if i < 0 {
		return models.WiseWord{}, fmt.Errorf("%w: wise word %s", ErrNotFound, wordID)
	}
	words[i].Pinned = pinned
	if err := e.store.SaveWiseWords(words); err != nil {
		return models.WiseWord{}, err
	}
	return words[i], nil
}

// DeleteWiseWord removes a quote. Admin or the user who added it.
func (e *Engine) DeleteWiseWord(actor Actor, wordID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	e.wordsMu.Lock()
	defer e.wordsMu.Unlock()

	words, err := e.store.LoadWiseWords()
	if err != nil {
		return err
	}
	i := indexWiseWord(words, wordID)
	if i < 0 {
		return fmt.Errorf("%w: wise word %s", ErrNotFound, wordID)
	}
	if !actor.CanManage(words[i].AddedBy) {
		return fmt.Errorf("%w: only the adder or an admin may delete a wise word", ErrForbidden)
	}
	words = append(words[:i], words[i+1:]...)
	return e.store.SaveWiseWords(words)
}

// RankWiseWords orders the leaderboard: upvote count descending, ties broken
// by category rank (Exotic before Legendary before Common). The input is not
// modified.
func RankWiseWords(words []models.WiseWord) []models.WiseWord {
	ranked := make([]models.WiseWord, len(words))
	copy(ranked, words)
	sort.SliceStable(ranked, func(i, j int) bool {
		if len(ranked[i].Upvotes) != len(ranked[j].Upvotes) {
			return len(ranked[i].Upvotes) > len(ranked[j].Upvotes)
		}
		return ranked[i].Category.Rank() < ranked[j].Category.Rank()
	})
	return ranked
}

func indexWiseWord(words []models.WiseWord, id string) int {
	for i := range words {
		if words[i].ID == id {
			return i
		}
	}
	return -1
}
