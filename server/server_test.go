package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfield/transpas/server/dao/inmem"
)

func TestNew_MountsAPIUnderPathPrefix(t *testing.T) {
	s := New(nil)
	require.NotNil(t, s.router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNew_NilStoreDisablesHistory(t *testing.T) {
	s := New(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history/00000000-0000-0000-0000-000000000000", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClose_ClosesHistoryStore(t *testing.T) {
	db := inmem.NewDatastore()
	s := New(db)
	assert.NoError(t, s.Close())
}

func TestClose_NilStoreIsNoop(t *testing.T) {
	s := New(nil)
	assert.NoError(t, s.Close())
}

func TestRequestID_HeaderPresentOnEveryResponse(t *testing.T) {
	s := New(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/history", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}
