package handlers

import (
	"net/http"

	"awc/internal/metrics"
	"awc/internal/models"
	"awc/internal/notify"
	"awc/internal/validate"
)

func (h *Handlers) nominateData(in validate.NominationInput, errs validate.FieldErrors) map[string]any {
	return map[string]any{
		"Title":           "Nominate",
		"Input":           in,
		"Errors":          errs,
		"Provinces":       models.Provinces,
		"Expertises":      models.Expertises,
		"ExpertiseLabels": models.ExpertiseLabels,
	}
}

func (h *Handlers) ShowNominateForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "nominate.html", h.nominateData(validate.NominationInput{}, nil))
}

// HandleNominate accepts an anonymous nomination: validate, rate limit,
// persist as pending, then hand the notification to the dispatcher. The
// submission counts as accepted the moment the row is stored; a mail
// outage never turns into a user-facing failure.
func (h *Handlers) HandleNominate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, errs := h.Gate.Nomination(validate.NominationFromForm(r.PostForm))
	if errs != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, "nominate.html", h.nominateData(in, errs))
		return
	}

	ok, err := h.Limiter.Allow(r.Context(), "nominate")
	if err != nil {
		// Limiter outages fail open.
		h.Log.Warn("rate limiter unavailable, allowing", "error", err)
		ok = true
	}
	if !ok {
		metrics.RateLimited.WithLabelValues("nominate").Inc()
		http.Error(w, "Exceeded the rate limit, try again shortly", http.StatusTooManyRequests)
		return
	}

	rec, err := h.Records.Create(r.Context(), models.Record{
		Name:      in.Name,
		From:      in.From,
		Expertise: in.Expertise,
		Link:      in.Link,
		Reason:    in.Reason,
	})
	if err != nil {
		h.serverError(w, "create nominee failed", err)
		return
	}
	metrics.NominationsSubmitted.Inc()
	h.Log.Info("nomination submitted", "id", rec.ID, "name", rec.Name)

	h.Notifier.Enqueue(notify.Nomination{
		Name:      rec.Name,
		From:      rec.From,
		Expertise: rec.Expertise,
		Link:      rec.Link,
		Reason:    rec.Reason,
	})

	if err := h.Sessions.Flash(w, r, "Nomination submitted successfully!"); err != nil {
		h.Log.Warn("flash save failed", "error", err)
	}
	http.Redirect(w, r, "/nominate", http.StatusSeeOther)
}
