package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfield/transpas/server/api"
	"github.com/wrenfield/transpas/server/dao/inmem"
)

type transpileResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPostTranspile_Success(t *testing.T) {
	a := &api.API{History: inmem.NewDatastore().Translations()}
	h := a.Router()

	w := postJSON(t, h, "/transpile", `{"code":"begin var a: integer := 1; end."}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp transpileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Result, "int a = 1;")
}

func TestPostTranspile_TranslationFailureStillReturns200(t *testing.T) {
	a := &api.API{}
	h := a.Router()

	w := postJSON(t, h, "/transpile", `{"code":"begin var a: integer := true; end."}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp transpileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Result, "SemanticError")
}

func TestPostTranspile_MalformedJSON(t *testing.T) {
	a := &api.API{}
	h := a.Router()

	w := postJSON(t, h, "/transpile", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostTranspile_RecordsHistory(t *testing.T) {
	history := inmem.NewDatastore()
	a := &api.API{History: history.Translations()}
	h := a.Router()

	postJSON(t, h, "/transpile", `{"code":"begin var a: integer := 1; end."}`)

	all, err := history.Translations().GetAll(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Contains(t, all[0].Target, "int a = 1;")
}

func TestGetHistory_EmptyWithoutStore(t *testing.T) {
	a := &api.API{}
	h := a.Router()

	req := httptest.NewRequest(http.MethodGet, "/history", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetHistoryEntry_NotFound(t *testing.T) {
	a := &api.API{History: inmem.NewDatastore().Translations()}
	h := a.Router()

	req := httptest.NewRequest(http.MethodGet, "/history/"+newUUID(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHistoryEntry_InvalidID(t *testing.T) {
	a := &api.API{History: inmem.NewDatastore().Translations()}
	h := a.Router()

	req := httptest.NewRequest(http.MethodGet, "/history/not-a-uuid", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHistory_LimitValidation(t *testing.T) {
	a := &api.API{History: inmem.NewDatastore().Translations()}
	h := a.Router()

	req := httptest.NewRequest(http.MethodGet, "/history?limit=0", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func newUUID() string {
	return "00000000-0000-0000-0000-000000000000"
}
