package api

import (
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"

	"dabois-portal/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// PutWikiPageHandler creates or replaces the page at the slug. Last write
// wins; there is no revision history.
func PutWikiPageHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if !actor.CanCreateContent() {
		http.Error(w, "Parents have read-only access", http.StatusForbidden)
		return
	}
	slug := r.PathValue("slug")
	if !slugPattern.MatchString(slug) {
		http.Error(w, "slug must be lowercase letters, digits and hyphens", http.StatusBadRequest)
		return
	}
	var req struct {
		Title   string `json:"title" validate:"required"`
		Content string `json:"content"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	wikiMu.Lock()
	defer wikiMu.Unlock()
	pages, err := appStore.LoadWikiPages()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	now := time.Now().UTC()
	for i, p := range pages {
		if p.Slug != slug {
			continue
		}
		pages[i].Title = req.Title
		pages[i].Content = req.Content
		pages[i].UpdatedBy = actor.Name
		pages[i].UpdatedAt = now
		if err := appStore.SaveWikiPages(pages); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pages[i])
		return
	}
	page := models.WikiPage{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     req.Title,
		Content:   req.Content,
		UpdatedBy: actor.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	pages = append(pages, page)
	if err := appStore.SaveWikiPages(pages); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

// ListWikiPagesHandler returns every page without its content, for the index.
func ListWikiPagesHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	pages, err := appStore.LoadWikiPages()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	type indexEntry struct {
		Slug      string    `json:"slug"`
		Title     string    `json:"title"`
		UpdatedBy string    `json:"updated_by"`
		UpdatedAt time.Time `json:"updated_at"`
	}
	out := make([]indexEntry, 0, len(pages))
	for _, p := range pages {
		out = append(out, indexEntry{Slug: p.Slug, Title: p.Title, UpdatedBy: p.UpdatedBy, UpdatedAt: p.UpdatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetWikiPageHandler returns one page by slug.
func GetWikiPageHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	pages, err := appStore.LoadWikiPages()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	slug := r.PathValue("slug")
	for _, p := range pages {
		if p.Slug == slug {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	http.Error(w, "Page not found", http.StatusNotFound)
}

// DeleteWikiPageHandler removes a page. Admin only.
func DeleteWikiPageHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		http.Error(w, "Only an admin may delete a page", http.StatusForbidden)
		return
	}
	wikiMu.Lock()
	defer wikiMu.Unlock()
	pages, err := appStore.LoadWikiPages()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	slug := r.PathValue("slug")
	for i, p := range pages {
		if p.Slug != slug {
			continue
		}
		pages = append(pages[:i], pages[i+1:]...)
		if err := appStore.SaveWikiPages(pages); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Page deleted"})
		return
	}
	http.Error(w, "Page not found", http.StatusNotFound)
}
