package result_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wrenfield/transpas/server/result"
)

type payload struct {
	Value string `json:"value"`
}

func TestOK_WritesStatusAndBody(t *testing.T) {
	r := result.OK(payload{Value: "hi"})
	w := httptest.NewRecorder()
	r.WriteResponse(w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got payload
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "hi", got.Value)
}

func TestBadRequest_WritesErrorBody(t *testing.T) {
	r := result.BadRequest("bad input")
	w := httptest.NewRecorder()
	r.WriteResponse(w)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var got result.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "bad input", got.Error)
	assert.Equal(t, http.StatusBadRequest, got.Status)
}

func TestNotFound_DefaultMessage(t *testing.T) {
	r := result.NotFound()
	w := httptest.NewRecorder()
	r.WriteResponse(w)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", r.InternalMsg)
}

func TestInternalServerError_CustomInternalMsg(t *testing.T) {
	r := result.InternalServerError("boom: %s", "disk full")
	assert.Equal(t, "boom: disk full", r.InternalMsg)
	assert.True(t, r.IsErr)
}

func TestWithHeader_SetsHeaderWithoutMutatingOriginal(t *testing.T) {
	base := result.OK(payload{Value: "x"})
	tagged := base.WithHeader("X-Custom", "yes")

	w := httptest.NewRecorder()
	tagged.WriteResponse(w)
	assert.Equal(t, "yes", w.Header().Get("X-Custom"))

	w2 := httptest.NewRecorder()
	base.WriteResponse(w2)
	assert.Equal(t, "", w2.Header().Get("X-Custom"))
}

func TestWriteResponse_PanicsWhenUnpopulated(t *testing.T) {
	var r result.Result
	w := httptest.NewRecorder()
	assert.Panics(t, func() { r.WriteResponse(w) })
}

func TestLog_DoesNotPanic(t *testing.T) {
	r := result.OK(payload{Value: "x"})
	req := httptest.NewRequest(http.MethodGet, "/whatever", nil)
	assert.NotPanics(t, func() { r.Log(req) })
}
