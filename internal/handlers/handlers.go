package handlers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"awc/internal/models"
	"awc/internal/notify"
	"awc/internal/ratelimit"
	"awc/internal/sessions"
	"awc/internal/store"
	"awc/internal/validate"
)

// Handlers carries the collaborators every route needs. Everything is
// injected so tests can swap the limiter, the notifier and the database.
type Handlers struct {
	Records  *store.RecordStore
	Users    *store.UserStore
	Sessions *sessions.Manager
	Gate     *validate.Gate
	Limiter  ratelimit.Limiter
	Notifier *notify.Dispatcher
	Log      *slog.Logger

	// TemplateDir is where the html templates live, web/templates by
	// default.
	TemplateDir string
}

func (h *Handlers) templates(names ...string) []string {
	dir := h.TemplateDir
	if dir == "" {
		dir = "web/templates"
	}
	files := []string{filepath.Join(dir, "base.html")}
	for _, n := range names {
		files = append(files, filepath.Join(dir, n))
	}
	return files
}

// render executes the base template with the page content. IsAdmin, the
// pending flash message and the current year are available to every page.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, page string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	_, isAdmin := h.Sessions.UserID(r)
	data["IsAdmin"] = isAdmin
	data["Year"] = time.Now().Year()
	if msg, ok := h.Sessions.PopFlash(w, r); ok {
		data["Flash"] = msg
	}

	tmpl, err := template.ParseFiles(h.templates(page)...)
	if err != nil {
		h.Log.Error("template parse failed", "page", page, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		h.Log.Error("template execute failed", "page", page, "error", err)
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, msg string, err error) {
	h.Log.Error(msg, "error", err)
	http.Error(w, "something went wrong, please try again later", http.StatusInternalServerError)
}

// parseListQuery turns the query/expertise URL parameters into a validated
// filter. Unrecognized expertise values are rejected, not ignored.
func parseListQuery(vals url.Values) (query string, expertises []string, err error) {
	query = strings.TrimSpace(vals.Get("query"))
	for _, e := range vals["expertise"] {
		if !models.ValidExpertise(e) {
			return "", nil, fmt.Errorf("unknown expertise %q", e)
		}
		expertises = append(expertises, e)
	}
	return query, expertises, nil
}

// listData assembles the template payload shared by the listing pages.
func listData(title string, records []models.Record, query string, active []string) map[string]any {
	activeSet := map[string]bool{}
	for _, e := range active {
		activeSet[e] = true
	}
	return map[string]any{
		"Title":            title,
		"Records":          records,
		"Query":            query,
		"Expertises":       models.Expertises,
		"ActiveExpertises": activeSet,
		"ExpertiseLabels":  models.ExpertiseLabels,
	}
}
