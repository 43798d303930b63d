// Package middle contains middleware for use with the transpiler daemon.
//
// Grounded on server/middle/middle.go (teacher): the Middleware function
// type and DontPanic's panic-recovery shape are kept as-is. AuthHandler and
// its token/user plumbing are dropped: this daemon has no user or session
// concept, so only recovery, request-ID tagging, and access logging survive.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/wrenfield/transpas/server/result"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware wraps a handler with additional behavior.
type Middleware func(next http.Handler) http.Handler

type ctxKey int

// RequestIDKey is the context key RequestID populates with the request's
// generated ID.
const RequestIDKey ctxKey = iota

// RequestID returns a Middleware that tags every request's context with a
// freshly generated UUID and echoes it back as the X-Request-Id header.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			id := uuid.NewString()
			w.Header().Set("X-Request-Id", id)
			ctx := context.WithValue(req.Context(), RequestIDKey, id)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// DontPanic returns a Middleware that recovers from a panic in next, writes
// a generic HTTP-500 to the client, and logs the panic and stack trace.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.InternalServerError(
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		r.Log(req)
		return true
	}
	return false
}

// AccessLog returns a Middleware that logs the method, path, status, and
// duration of every request once it completes.
func AccessLog() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, req)
			fmt.Printf("%s %s %d %s\n", req.Method, req.URL.Path, rec.status, time.Since(start))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
