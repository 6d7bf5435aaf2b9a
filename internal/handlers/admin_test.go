package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awc/internal/middleware"
)

func actionForm(intent, recordID string) url.Values {
	return url.Values{
		"intent":   {intent},
		"recordId": {recordID},
	}
}

// editRouter mounts the edit handlers so chi fills in {bucket} and {id}.
func editRouter(h *Handlers) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/admin/edit/{bucket}/{id}", h.ShowEditForm)
	r.Post("/admin/edit/{bucket}/{id}", h.HandleEdit)
	return r
}

func TestHandleNomineeAction_ApproveThenStaleApprove(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectExec(`UPDATE records SET status = \$1 WHERE id = \$2 AND status = \$3`).
		WithArgs("approved", int64(42), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	env.mock.ExpectExec(`UPDATE records SET status = \$1 WHERE id = \$2 AND status = \$3`).
		WithArgs("approved", int64(42), "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := httptest.NewRecorder()
	env.h.HandleNomineeAction(w, postForm("/admin/nominees", actionForm("approve", "42")))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/nominees", w.Header().Get("Location"))

	// The same button clicked again races the first approval and loses.
	w = httptest.NewRecorder()
	env.h.HandleNomineeAction(w, postForm("/admin/nominees", actionForm("approve", "42")))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "already have been handled")
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestHandleNomineeAction_Reject(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectExec(`DELETE FROM records WHERE id = \$1 AND status = \$2`).
		WithArgs(int64(7), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	env.h.HandleNomineeAction(w, postForm("/admin/nominees", actionForm("delete", "7")))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/nominees", w.Header().Get("Location"))
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestHandleNomineeAction_EditRedirects(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.HandleNomineeAction(w, postForm("/admin/nominees", actionForm("edit", "42")))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/edit/nominees/42", w.Header().Get("Location"))
}

func TestHandleNomineeAction_MissingRecordID(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.HandleNomineeAction(w, postForm("/admin/nominees", url.Values{"intent": {"approve"}}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "record id is required")
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestHandleNomineeAction_UnknownIntent(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.HandleNomineeAction(w, postForm("/admin/nominees", actionForm("promote", "42")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid form intent")
}

func TestAdminOnly_UnauthenticatedActionLeavesRecordUntouched(t *testing.T) {
	env := newTestEnv(t)

	protected := middleware.AdminOnly(env.h.Sessions, env.h.HandleNomineeAction)

	w := httptest.NewRecorder()
	protected(w, postForm("/admin/nominees", actionForm("delete", "7")))

	assert.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, "/admin/nominees", loc.Query().Get("redirectTo"))
	// No statement may have reached the database.
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestHandleDevAction_Delete(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectExec(`DELETE FROM records WHERE id = \$1 AND status = \$2`).
		WithArgs(int64(3), "approved").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	env.h.HandleDevAction(w, postForm("/admin/devs", actionForm("delete", "3")))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/devs", w.Header().Get("Location"))
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestShowEditForm_PrefillsRecord(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectQuery(`SELECT .+ FROM records WHERE id = \$1 AND status = \$2`).
		WithArgs(int64(7), "pending").
		WillReturnRows(sqlmock.NewRows(recordCols).
			AddRow(7, "Ana Gomez", "Córdoba", "backend", "https://example.com/ana", strings.Repeat("x", 75), "pending", time.Now()))

	w := httptest.NewRecorder()
	editRouter(env.h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/edit/nominees/7", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ana Gomez")
}

func TestShowEditForm_UnknownBucket(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	editRouter(env.h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/edit/archive/7", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShowEditForm_RecordGone(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectQuery(`SELECT .+ FROM records WHERE id = \$1 AND status = \$2`).
		WithArgs(int64(7), "pending").
		WillReturnRows(sqlmock.NewRows(recordCols))

	w := httptest.NewRecorder()
	editRouter(env.h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/edit/nominees/7", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleEdit_Success(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectExec(`UPDATE records\s+SET name = \$1, province = \$2, expertise = \$3, link = \$4, reason = \$5\s+WHERE id = \$6 AND status = \$7`).
		WithArgs("Ana Gomez", "Córdoba", "backend", "https://example.com/ana", strings.Repeat("x", 75), int64(7), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	editRouter(env.h).ServeHTTP(w, postForm("/admin/edit/nominees/7", validNominationForm()))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/nominees", w.Header().Get("Location"))
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestHandleEdit_ValidationFailure(t *testing.T) {
	env := newTestEnv(t)

	form := validNominationForm()
	form.Set("from", "Atlantis")

	w := httptest.NewRecorder()
	editRouter(env.h).ServeHTTP(w, postForm("/admin/edit/devs/3", form))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestHandleEdit_RateLimited(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectExec(`UPDATE records`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := httptest.NewRecorder()
	editRouter(env.h).ServeHTTP(w, postForm("/admin/edit/nominees/7", validNominationForm()))
	require.Equal(t, http.StatusSeeOther, w.Code)

	// Second edit inside the 10 s window.
	w = httptest.NewRecorder()
	editRouter(env.h).ServeHTTP(w, postForm("/admin/edit/nominees/7", validNominationForm()))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestHandleEdit_StaleRecord(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectExec(`UPDATE records`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := httptest.NewRecorder()
	editRouter(env.h).ServeHTTP(w, postForm("/admin/edit/nominees/7", validNominationForm()))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "already have been handled")
}
