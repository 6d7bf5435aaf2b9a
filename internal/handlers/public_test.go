package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestShowDevsPage_ListsApprovedNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	now := time.Now()

	env.mock.ExpectQuery(`SELECT .+ FROM records WHERE status = \$1 ORDER BY created_at DESC`).
		WithArgs("approved").
		WillReturnRows(sqlmock.NewRows(recordCols).
			AddRow(2, "Berta Diaz", "Mendoza", "qa", "https://example.com/berta", strings.Repeat("y", 75), "approved", now).
			AddRow(1, "Ana Gomez", "Córdoba", "backend", "https://example.com/ana", strings.Repeat("x", 75), "approved", now.Add(-time.Hour)))

	w := httptest.NewRecorder()
	env.h.ShowDevsPage(w, httptest.NewRequest(http.MethodGet, "/devs", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Berta Diaz")
	assert.Contains(t, body, "Ana Gomez")
	assert.Equal(t, "public, max-age=600", w.Header().Get("Cache-Control"))
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestShowDevsPage_AppliesFilters(t *testing.T) {
	env := newTestEnv(t)

	env.mock.ExpectQuery(`SELECT .+ FROM records WHERE status = \$1 AND name ILIKE \$2 AND expertise = ANY\(\$3\)`).
		WithArgs("approved", "%ana%", pq.Array([]string{"backend"})).
		WillReturnRows(sqlmock.NewRows(recordCols))

	w := httptest.NewRecorder()
	env.h.ShowDevsPage(w, httptest.NewRequest(http.MethodGet, "/devs?query=ana&expertise=backend", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No devs match your filters.")
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func TestShowDevsPage_RejectsUnknownExpertise(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	env.h.ShowDevsPage(w, httptest.NewRequest(http.MethodGet, "/devs?expertise=wizard", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "wizard")
	assert.NoError(t, env.mock.ExpectationsWereMet())
}
