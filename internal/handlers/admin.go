package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"awc/internal/metrics"
	"awc/internal/models"
	"awc/internal/store"
	"awc/internal/validate"
)

// bucketStatus maps the URL bucket segment to a lifecycle status.
func bucketStatus(bucket string) (models.Status, bool) {
	switch bucket {
	case "nominees":
		return models.StatusPending, true
	case "devs":
		return models.StatusApproved, true
	default:
		return "", false
	}
}

func (h *Handlers) AdminHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/nominees", http.StatusFound)
}

// AdminNomineesPage lists pending records oldest-first so review order is
// fair to early submissions.
func (h *Handlers) AdminNomineesPage(w http.ResponseWriter, r *http.Request) {
	query, expertises, err := parseListQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	nominees, err := h.Records.List(r.Context(), store.ListFilter{
		Status:     models.StatusPending,
		Query:      query,
		Expertises: expertises,
	})
	if err != nil {
		h.serverError(w, "list nominees failed", err)
		return
	}
	data := listData("Admin · Nominees", nominees, query, expertises)
	data["Bucket"] = "nominees"
	h.render(w, r, "admin_nominees.html", data)
}

// AdminDevsPage lists approved records newest-first.
func (h *Handlers) AdminDevsPage(w http.ResponseWriter, r *http.Request) {
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
	data := listData("Admin · Devs", devs, query, expertises)
	data["Bucket"] = "devs"
	h.render(w, r, "admin_devs.html", data)
}

// HandleNomineeAction dispatches the intent form posted from the pending
// list: approve moves the record to the directory, delete rejects it, edit
// goes to the prefilled form. A stale id (second click, concurrent admin)
// is a 404, never a silent no-op.
func (h *Handlers) HandleNomineeAction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordIDFromForm(w, r)
	if !ok {
		return
	}

	switch r.PostForm.Get("intent") {
	case "approve":
		if err := h.Records.Approve(r.Context(), id); err != nil {
			h.mutationError(w, "approve failed", err)
			return
		}
		metrics.NominationsApproved.Inc()
		h.Log.Info("nominee approved", "id", id)
		http.Redirect(w, r, "/admin/nominees", http.StatusSeeOther)

	case "delete":
		if err := h.Records.Delete(r.Context(), id, models.StatusPending); err != nil {
			h.mutationError(w, "reject failed", err)
			return
		}
		h.Log.Info("nominee rejected", "id", id)
		http.Redirect(w, r, "/admin/nominees", http.StatusSeeOther)

	case "edit":
		http.Redirect(w, r, "/admin/edit/nominees/"+strconv.FormatInt(id, 10), http.StatusSeeOther)

	default:
		http.Error(w, "invalid form intent", http.StatusBadRequest)
	}
}

// HandleDevAction dispatches the intent form posted from the directory
// list. Approved records can only be deleted or edited.
func (h *Handlers) HandleDevAction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recordIDFromForm(w, r)
	if !ok {
		return
	}

	switch r.PostForm.Get("intent") {
	case "delete":
		if err := h.Records.Delete(r.Context(), id, models.StatusApproved); err != nil {
			h.mutationError(w, "delete dev failed", err)
			return
		}
		h.Log.Info("dev deleted", "id", id)
		http.Redirect(w, r, "/admin/devs", http.StatusSeeOther)

	case "edit":
		http.Redirect(w, r, "/admin/edit/devs/"+strconv.FormatInt(id, 10), http.StatusSeeOther)

	default:
		http.Error(w, "invalid form intent", http.StatusBadRequest)
	}
}

// ShowEditForm renders the edit form prefilled with the record's fields.
func (h *Handlers) ShowEditForm(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	status, ok := bucketStatus(bucket)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return
	}

	rec, err := h.Records.Get(r.Context(), id, status)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		h.serverError(w, "load record failed", err)
		return
	}

	in := validate.NominationInput{
		Name:      rec.Name,
		From:      rec.From,
		Expertise: rec.Expertise,
		Link:      rec.Link,
		Reason:    rec.Reason,
	}
	h.render(w, r, "edit.html", h.editData(bucket, id, in, nil))
}

// HandleEdit updates a record's fields in place. Id, bucket and creation
// time are untouched; the update misses (404) if the record left the
// bucket since the form was loaded.
func (h *Handlers) HandleEdit(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	status, ok := bucketStatus(bucket)
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, errs := h.Gate.Nomination(validate.NominationFromForm(r.PostForm))
	if errs != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, "edit.html", h.editData(bucket, id, in, errs))
		return
	}

	ok, err = h.Limiter.Allow(r.Context(), "edit")
	if err != nil {
		h.Log.Warn("rate limiter unavailable, allowing", "error", err)
		ok = true
	}
	if !ok {
		metrics.RateLimited.WithLabelValues("edit").Inc()
		http.Error(w, "Exceeded the rate limit, try again shortly", http.StatusTooManyRequests)
		return
	}

	err = h.Records.Update(r.Context(), id, status, models.Record{
		Name:      in.Name,
		From:      in.From,
		Expertise: in.Expertise,
		Link:      in.Link,
		Reason:    in.Reason,
	})
	if err != nil {
		h.mutationError(w, "update record failed", err)
		return
	}
	h.Log.Info("record edited", "id", id, "bucket", bucket)
	http.Redirect(w, r, "/admin/"+bucket, http.StatusSeeOther)
}

func (h *Handlers) editData(bucket string, id int64, in validate.NominationInput, errs validate.FieldErrors) map[string]any {
	data := h.nominateData(in, errs)
	data["Title"] = "Edit"
	data["Bucket"] = bucket
	data["ID"] = id
	return data
}

// recordIDFromForm parses the form and extracts the mandatory recordId.
func (h *Handlers) recordIDFromForm(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return 0, false
	}
	idStr := r.PostForm.Get("recordId")
	if idStr == "" {
		http.Error(w, "record id is required", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *Handlers) mutationError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "record not found, it may already have been handled", http.StatusNotFound)
		return
	}
	h.serverError(w, msg, err)
}
