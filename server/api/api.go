// Package api provides the HTTP API for the transpiler daemon.
//
// Grounded on server/api/api.go (teacher): the EndpointFunc/httpEndpoint
// wrapping pattern (an endpoint returns a result.Result; the wrapper handles
// logging and writing it), PathPrefix-mounted chi routing, and parseJSON's
// content-type/body handling. Trimmed to the one endpoint this domain needs
// (plus read-only history); the auth/session/JWT machinery the teacher
// wraps around every endpoint has no equivalent here.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wrenfield/transpas"
	"github.com/wrenfield/transpas/internal/cerrors"
	"github.com/wrenfield/transpas/server/dao"
	"github.com/wrenfield/transpas/server/result"
)

// PathPrefix is the prefix every route in this package is mounted under.
const PathPrefix = "/api/v1"

// API holds the dependencies the endpoint handlers need.
type API struct {
	// Translator runs the source-to-target pipeline. Nil means use the
	// package-level transpas.Transpile with the default name table.
	Translator *transpas.Translator

	// History persists translation attempts. Nil disables history: POST
	// /transpile still works but records nothing, GET /history answers with
	// an empty list, and GET /history/{id} always 404s.
	History dao.TranslationRepository
}

// Router builds a chi.Router serving this API's endpoints under PathPrefix.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Post("/transpile", httpEndpoint(a.postTranspile))
	r.Get("/history", httpEndpoint(a.getHistory))
	r.Get("/history/{id}", httpEndpoint(a.getHistoryEntry))
	return r
}

// transpileRequest is the body of POST /api/v1/transpile.
type transpileRequest struct {
	Code string `json:"code"`
}

// transpileResponse is the body spec.md §7 requires: a transpile either
// succeeds with a result or fails with a "<ErrorKind>: <message>" result.
type transpileResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

func (a *API) translate(source string) (string, error) {
	if a.Translator != nil {
		return a.Translator.Transpile(source)
	}
	return transpas.Transpile(source)
}

// formatErr renders err as "<ErrorKind>: <message>" for a *cerrors.Error,
// or just its message for anything else (a body that failed to parse as
// JSON, for instance, never reaches the pipeline).
func formatErr(err error) string {
	if cerr, ok := err.(*cerrors.Error); ok {
		return fmt.Sprintf("%s: %s", cerr.Kind(), cerr.Error())
	}
	return err.Error()
}

func (a *API) postTranspile(req *http.Request) result.Result {
	var body transpileRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error())
	}

	target, err := a.translate(body.Code)

	if a.History != nil {
		rec := dao.Translation{Source: body.Code}
		if err != nil {
			rec.Err = formatErr(err)
		} else {
			rec.Target = target
		}
		if _, saveErr := a.History.Create(req.Context(), rec); saveErr != nil {
			return result.InternalServerError(fmt.Sprintf("could not save translation history: %s", saveErr))
		}
	}

	if err != nil {
		return result.OK(transpileResponse{Success: false, Result: formatErr(err)}, "translation failed: %s", err)
	}

	return result.OK(transpileResponse{Success: true, Result: target})
}

func (a *API) getHistoryEntry(req *http.Request) result.Result {
	if a.History == nil {
		return result.NotFound("history is disabled")
	}

	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		return result.BadRequest("id is not a valid UUID")
	}

	t, err := a.History.GetByID(req.Context(), id)
	if err != nil {
		return result.NotFound("%s", err)
	}

	return result.OK(t)
}

func (a *API) getHistory(req *http.Request) result.Result {
	if a.History == nil {
		return result.OK([]dao.Translation{})
	}

	limit := 50
	if v := req.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return result.BadRequest("limit must be a positive integer")
		}
		limit = parsed
	}

	all, err := a.History.GetAll(req.Context(), limit)
	if err != nil {
		return result.InternalServerError("%s", err)
	}

	return result.OK(all)
}

// EndpointFunc is an HTTP handler that produces a result.Result instead of
// writing directly to the response, so that logging and response-writing
// happen uniformly regardless of which endpoint ran.
type EndpointFunc func(req *http.Request) result.Result

func httpEndpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r := ep(req)
		r.WriteResponse(w)
		r.Log(req)
	}
}

// parseJSON decodes a JSON request body into v. v must be a pointer.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
		return fmt.Errorf("request content-type is not application/json")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer req.Body.Close()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("malformed JSON in request: %w", err)
	}

	return nil
}
