package handlers

import (
	"net/http"

	"awc/internal/models"
	"awc/internal/store"
)

func (h *Handlers) ShowIndexPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index.html", map[string]any{
		"Title": "Argentinians Who Code",
	})
}

func (h *Handlers) ShowAboutPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "about.html", map[string]any{
		"Title": "About",
	})
}

// ShowDevsPage renders the public directory of approved developers,
// newest first, with the substring and expertise filters applied.
func (h *Handlers) ShowDevsPage(w http.ResponseWriter, r *http.Request) {
	query, expertises, err := parseListQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	devs, err := h.Records.List(r.Context(), store.ListFilter{
		Status:      models.StatusApproved,
		Query:       query,
		Expertises:  expertises,
		NewestFirst: true,
	})
	if err != nil {
		h.serverError(w, "list devs failed", err)
		return
	}

	// The public directory is cacheable; skip the header for admins so
	// their session-aware chrome is never cached.
	if _, isAdmin := h.Sessions.UserID(r); !isAdmin {
		w.Header().Set("Cache-Control", "public, max-age=600")
	}

	data := listData("Devs", devs, query, expertises)
	h.render(w, r, "devs.html", data)
}
