package api

import (
	"net/http"

	"dabois-portal/engine"
	"dabois-portal/models"
)

// AddWiseWordHandler puts a new quote on the leaderboard.
func AddWiseWordHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Phrase   string `json:"phrase" validate:"required"`
		Author   string `json:"author" validate:"required"`
		Category string `json:"category"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	word, err := eng.AddWiseWord(actor, req.Phrase, req.Author, models.WiseWordCategory(req.Category))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, word)
}

// ListWiseWordsHandler returns the leaderboard in ranked order.
func ListWiseWordsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	words, err := appStore.LoadWiseWords()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, engine.RankWiseWords(words))
}

// UpvoteWiseWordHandler toggles the actor's upvote on a quote.
func UpvoteWiseWordHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	word, err := eng.ToggleUpvote(actor, r.PathValue("wordID"))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, word)
}

// PinWiseWordHandler sets or clears the pin flag on a quote.
func PinWiseWordHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req struct {
		Pinned bool `json:"pinned"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	word, err := eng.SetWiseWordPinned(actor, r.PathValue("wordID"), req.Pinned)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, word)
}

// DeleteWiseWordHandler removes a quote.
func DeleteWiseWordHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if err := eng.DeleteWiseWord(actor, r.PathValue("wordID")); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Wise word deleted"})
}
