package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/mealfinder/pkg/domain"
)

func TestServer_statusHandler(t *testing.T) {
	srv := testServer(t, Deps{})

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "test", resp["version"])
	assert.NotEmpty(t, resp["time"])
}

func TestServer_goalsHandler(t *testing.T) {
	srv := testServer(t, Deps{})

	w := serve(srv, httptest.NewRequest(http.MethodGet, "/api/v1/goals", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Goals []domain.Goal `json:"goals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.Goals(), resp.Goals)
	assert.Equal(t, domain.DefaultGoalKey(), resp.Goals[0].Key)
}

func TestServer_respondWithError(t *testing.T) {
	srv := testServer(t, Deps{})

	tbl := []struct {
		name string
		code int
		msg  string
		err  error
	}{
		{"server error", http.StatusInternalServerError, "Failed to load", errors.New("secret details")},
		{"client error", http.StatusBadRequest, "Invalid form data", errors.New("bad encoding")},
		{"no error", http.StatusBadRequest, "Unknown goal", nil},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.respondWithError(w, tt.code, tt.msg, tt.err)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.msg+"\n", w.Body.String())
		})
	}
}

func TestRenderJSON(t *testing.T) {
	w := httptest.NewRecorder()
	renderJSON(w, nil, http.StatusCreated, map[string]string{"key": "value"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"key":"value"}`, w.Body.String())

	w = httptest.NewRecorder()
	renderJSON(w, nil, http.StatusNoContent, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestServer_Ping(t *testing.T) {
	srv := testServer(t, Deps{})
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "mealfinder", w.Header().Get("App-Name"))
}
