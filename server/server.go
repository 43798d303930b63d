// Package server wires the transpiler daemon's HTTP surface together: the
// chi router mounted under api.PathPrefix, the recovery/request-ID/access-log
// middleware stack, and an optional history store.
//
// Grounded on server/server.go and cmd/tqserver/main.go (teacher): a single
// constructor assembling the router and a ServeForever-style entry point,
// trimmed of the JWT/user-account machinery this domain has no use for.
package server

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wrenfield/transpas/server/api"
	"github.com/wrenfield/transpas/server/dao"
	"github.com/wrenfield/transpas/server/middle"
)

// Server is the transpiler daemon's HTTP surface.
type Server struct {
	router chi.Router
	db     dao.Store
}

// New builds a Server. db may be nil, which disables translation history
// (no transpile is recorded, the history listing is always empty, and
// looking up a history entry by ID 404s).
func New(db dao.Store) *Server {
	s := &Server{db: db}

	a := &api.API{}
	if db != nil {
		a.History = db.Translations()
	}

	r := chi.NewRouter()
	r.Use(middle.DontPanic())
	r.Use(middle.RequestID())
	r.Use(middle.AccessLog())
	r.Mount(api.PathPrefix, a.Router())

	s.router = r

	return s
}

// ListenAndServe starts serving the daemon's HTTP surface on addr, blocking
// until the listener errors out or the process is shut down.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("INFO  listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Close releases the Server's resources, including its history store, if
// any.
func (s *Server) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
