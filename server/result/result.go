// Package result contains the response envelope used to write out the
// transpiler daemon's API responses.
//
// Grounded on server/result/result.go (teacher): the constructor-per-status
// shape, the JSON-marshal-then-write split, and logging each result against
// the request it answers.
package result

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// ErrorResponse is the JSON body written for any non-2xx Result.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Result is a prepared HTTP response: a status code, a JSON-marshalable
// payload, and a message logged server-side that is never shown to the
// caller.
type Result struct {
	Status      int
	IsErr       bool
	InternalMsg string

	resp     interface{}
	hdrs     [][2]string
	jsonBody []byte
}

// OK returns a Result carrying an HTTP-200 and respObj as its JSON body.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	return Response(http.StatusOK, respObj, fmtMsg("OK", internalMsg))
}

// Created returns a Result carrying an HTTP-201 and respObj as its JSON
// body.
func Created(respObj interface{}, internalMsg ...interface{}) Result {
	return Response(http.StatusCreated, respObj, fmtMsg("created", internalMsg))
}

// BadRequest returns a Result carrying an HTTP-400 with userMsg as the
// caller-visible error.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	return Err(http.StatusBadRequest, userMsg, fmtMsg("bad request", internalMsg))
}

// NotFound returns a Result carrying an HTTP-404.
func NotFound(internalMsg ...interface{}) Result {
	return Err(http.StatusNotFound, "the requested resource was not found", fmtMsg("not found", internalMsg))
}

// UnprocessableEntity returns a Result carrying an HTTP-422. The transpile
// endpoint does not use it: a source file that fails to translate is
// answered with an HTTP-200 whose body has success false.
func UnprocessableEntity(userMsg string, internalMsg ...interface{}) Result {
	return Err(http.StatusUnprocessableEntity, userMsg, fmtMsg("translation failed", internalMsg))
}

// InternalServerError returns a Result carrying an HTTP-500.
func InternalServerError(internalMsg ...interface{}) Result {
	return Err(http.StatusInternalServerError, "an internal server error occurred", fmtMsg("internal server error", internalMsg))
}

func fmtMsg(def string, args []interface{}) string {
	if len(args) == 0 {
		return def
	}
	format, ok := args[0].(string)
	if !ok {
		return def
	}
	return fmt.Sprintf(format, args[1:]...)
}

// Response builds a Result with an arbitrary status and JSON body.
func Response(status int, respObj interface{}, internalMsg string) Result {
	return Result{Status: status, InternalMsg: internalMsg, resp: respObj}
}

// Err builds a Result with an arbitrary error status and an ErrorResponse
// body containing userMsg.
func Err(status int, userMsg, internalMsg string) Result {
	return Result{
		Status:      status,
		IsErr:       true,
		InternalMsg: internalMsg,
		resp:        ErrorResponse{Error: userMsg, Status: status},
	}
}

// WithHeader returns a copy of r with an additional response header set.
func (r Result) WithHeader(name, val string) Result {
	r.hdrs = append(append([][2]string(nil), r.hdrs...), [2]string{name, val})
	return r
}

// WriteResponse marshals r's payload and writes the full HTTP response to w.
func (r Result) WriteResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	body, err := json.Marshal(r.resp)
	if err != nil {
		panic(fmt.Sprintf("result: could not marshal response: %s", err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	for _, h := range r.hdrs {
		w.Header().Set(h[0], h[1])
	}
	w.WriteHeader(r.Status)
	w.Write(body)
}

// Log writes a one-line summary of r to the standard logger, tagged with
// the request it answers.
func (r Result) Log(req *http.Request) {
	log.Printf("%s %s -> %d: %s", req.Method, req.URL.Path, r.Status, r.InternalMsg)
}
