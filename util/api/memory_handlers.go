package api

import (
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"dabois-portal/models"
)

// AddMemoryHandler posts a dated memory to the board.
func AddMemoryHandler(w http.ResponseWriter, r *http.Request) {
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
		Description string `json:"description"`
		Date        string `json:"date" validate:"required"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	date, valid := parseDate(req.Date)
	if !valid || date.IsZero() {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	memoriesMu.Lock()
	defer memoriesMu.Unlock()
	memories, err := appStore.LoadMemories()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	memory := models.Memory{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		AddedBy:     actor.Name,
		CreatedAt:   time.Now().UTC(),
	}
	memories = append(memories, memory)
	if err := appStore.SaveMemories(memories); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, memory)
}

// ListMemoriesHandler returns the board newest-first.
func ListMemoriesHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireActor(w, r); !ok {
		return
	}
	memories, err := appStore.LoadMemories()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	sorted := make([]models.Memory, len(memories))
	copy(sorted, memories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	writeJSON(w, http.StatusOK, sorted)
}

// DeleteMemoryHandler removes a memory. Admin or the user who added it.
func DeleteMemoryHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	memoriesMu.Lock()
	defer memoriesMu.Unlock()
	memories, err := appStore.LoadMemories()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	id := r.PathValue("memoryID")
	for i, m := range memories {
		if m.ID != id {
			continue
		}
		if !actor.CanManage(m.AddedBy) {
			http.Error(w, "Only the adder or an admin may delete a memory", http.StatusForbidden)
			return
		}
		memories = append(memories[:i], memories[i+1:]...)
		if err := appStore.SaveMemories(memories); err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Memory deleted"})
		return
	}
	http.Error(w, "Memory not found", http.StatusNotFound)
}
