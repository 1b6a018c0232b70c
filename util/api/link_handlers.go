package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"dabois-portal/models"
)

// AddLinkHandler posts a link to the shared board.
func AddLinkHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if !actor.CanCreateContent() {
		http.Error(w, "Parents have read-only access", http.StatusForbidden)
		return
	}
	var req struct {
		Title       string `json:"title" validate:"required"`
		URL         string `json:"url" validate:"required"`
		Description string `json:"description"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	parsed, err := url.Parse(req.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		http.Error(w, "url must be absolute", http.StatusBadRequest)
		return
	}

	linksMu.Lock()
	defer linksMu.Unlock()
	links, err := appStore.LoadLinks()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	link := models.Link{
		ID:          uuid.NewString(),
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		AddedBy:     actor.Name,
		CreatedAt:   time.Now().UTC(),
	}
	links = append(links, link)
	if err := appStore.SaveLinks(links); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// ListLinksHandler returns the whole link board.
func ListLinksHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	links, err := appStore.LoadLinks()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if links == nil {
		links = []models.Link{}
	}
	writeJSON(w, http.StatusOK, links)
}

// DeleteLinkHandler removes a link. Admin or the user who added it.
func DeleteLinkHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	linksMu.Lock()
	defer linksMu.Unlock()
	links, err := appStore.LoadLinks()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	id := r.PathValue("linkID")
	for i, link := range links {
		if link.ID != id {
			continue
		}
		if !actor.CanManage(link.AddedBy) {
			http.Error(w, "Only the adder or an admin may delete a link", http.StatusForbidden)
			return
		}
		links = append(links[:i], links[i+1:]...)
		if err := appStore.SaveLinks(links); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Link deleted"})
		return
	}
	http.Error(w, "Link not found", http.StatusNotFound)
}
