package engine

import (
	"errors"
	"testing"

	"dabois-portal/models"
)

func TestUpvoteToggleScenarioF(t *testing.T) {
	e, actors := newTestEngine(t)

	word, err := e.AddWiseWord(actors["bob"], "trust the process", "carol", models.CategoryCommon)
	if err != nil {
		t.Fatalf("add wise word: %v", err)
	}

	got, err := e.ToggleUpvote(actors["carol"], word.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(got.Upvotes) != 1 || got.Upvotes[0] != "u-carol" {
		t.Fatalf("expected carol's upvote, got %v", got.Upvotes)
	}

	got, err = e.ToggleUpvote(actors["carol"], word.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if len(got.Upvotes) != 0 {
		t.Fatalf("second toggle must withdraw the upvote, got %v", got.Upvotes)
	}
}

func TestRankWiseWords(t *testing.T) {
	words := []models.WiseWord{
		{ID: "w1", Category: models.CategoryCommon, Upvotes: []string{"a", "b"}},
		{ID: "w2", Category: models.CategoryExotic, Upvotes: []string{"a", "b"}},
		{ID: "w3", Category: models.CategoryLegendary, Upvotes: []string{"a", "b", "c"}},
		{ID: "w4", Category: models.CategoryLegendary},
	}
	ranked := RankWiseWords(words)
	want := []string{"w3", "w2", "w1", "w4"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Fatalf("rank %d: expected %s, got %s", i, id, ranked[i].ID)
		}
	}
	if words[0].ID != "w1" {
		t.Fatal("ranking must not reorder the input slice")
	}
}

func TestWiseWordAuthorization(t *testing.T) {
	e, actors := newTestEngine(t)

	if _, err := e.AddWiseWord(actors["dave"], "no", "dave", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("parents cannot add wise words, got %v", err)
	}

	word, _ := e.AddWiseWord(actors["bob"], "trust the process", "carol", "")
	if word.Category != models.CategoryCommon {
		t.Fatalf("empty category must default to Common, got %s", word.Category)
	}

	if _, err := e.SetWiseWordPinned(actors["bob"], word.ID, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("pinning is admin only, got %v", err)
	}
	pinned, err := e.SetWiseWordPinned(actors["alice"], word.ID, true)
	if err != nil {
		t.Fatalf("pin: %v", err)
	}
	if !pinned.Pinned {
		t.Fatal("word not pinned")
	}

	if err := e.DeleteWiseWord(actors["carol"], word.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("only adder or admin may delete, got %v", err)
	}
	if err := e.DeleteWiseWord(actors["bob"], word.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	words, _ := e.store.LoadWiseWords()
	if len(words) != 0 {
		t.Fatal("word not deleted")
	}
}
