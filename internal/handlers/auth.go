package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"awc/internal/store"
	"awc/internal/validate"
)

const badCredentials = "Email or password are incorrect"

func (h *Handlers) loginData(in validate.LoginInput, errs validate.FieldErrors, formError, redirectTo string) map[string]any {
	return map[string]any{
		"Title":      "Login",
		"Input":      in,
		"Errors":     errs,
		"FormError":  formError,
		"RedirectTo": redirectTo,
	}
}

func (h *Handlers) ShowLoginPage(w http.ResponseWriter, r *http.Request) {
	redirectTo := r.URL.Query().Get("redirectTo")
	h.render(w, r, "login.html", h.loginData(validate.LoginInput{}, nil, "", redirectTo))
}

// HandleLogin verifies the credentials and establishes the 7-day session.
// Unknown email and wrong password produce the same message on purpose.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	redirectTo := r.PostForm.Get("redirectTo")

	in, errs := h.Gate.Login(validate.LoginFromForm(r.PostForm))
	if errs != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, "login.html", h.loginData(in, errs, "", redirectTo))
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), in.Email)
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, "login.html", h.loginData(in, nil, badCredentials, redirectTo))
		return
	} else if err != nil {
		h.serverError(w, "login lookup failed", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, "login.html", h.loginData(in, nil, badCredentials, redirectTo))
		return
	}

	if err := h.Sessions.SetUserID(w, r, user.ID); err != nil {
		h.serverError(w, "session save failed", err)
		return
	}

	if redirectTo == "" {
		redirectTo = "/admin/nominees"
	}
	http.Redirect(w, r, redirectTo, http.StatusFound)
}

// HandleLogout destroys the session and returns to the public home page.
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Clear(w, r); err != nil {
		h.serverError(w, "logout failed", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
