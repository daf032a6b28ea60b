// Package server exposes the board service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"sparse-life/internal/service"
	"sparse-life/pkg/core"
	"sparse-life/pkg/sims/life"
)

const maxBodyBytes = 8 << 20

// Server routes HTTP requests to a board service.
type Server struct {
	svc    *service.Service
	logger *log.Logger
	mux    *http.ServeMux
}

// New builds a Server. A nil logger falls back to log.Default.
func New(svc *service.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{svc: svc, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /boards/{$}", s.handleCreate)
	s.mux.HandleFunc("POST /boards/patterns/{name}", s.handleCreatePattern)
	s.mux.HandleFunc("GET /boards/{id}", s.handleGet)
	s.mux.HandleFunc("GET /boards/{id}/next", s.handleNext)
	s.mux.HandleFunc("GET /boards/{id}/iterate/{n}", s.handleIterate)
	s.mux.HandleFunc("GET /boards/{id}/final/{n}", s.handleFinal)
	s.mux.HandleFunc("GET /boards/{id}/dense", s.handleDense)
	s.mux.HandleFunc("GET /boards/{id}/watch", s.handleWatch)
	s.mux.HandleFunc("GET /patterns", s.handlePatterns)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type boardID struct {
	BoardID string `json:"board_id"`
}

type createRequest struct {
	Coordinates json.RawMessage `json:"coordinates"`
}

type denseResponse struct {
	MinRow int     `json:"min_row"`
	MinCol int     `json:"min_col"`
	Rows   [][]int `json:"rows"`
}

type patternInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cells       int    `json:"cells"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req createRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return
	}
	coords, err := life.DecodeCoordinates(req.Coordinates)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, _, err := s.svc.Create(r.Context(), coords)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, boardID{BoardID: id})
}

func (s *Server) handleCreatePattern(w http.ResponseWriter, r *http.Request) {
	origin, ok := s.originFromQuery(w, r)
	if !ok {
		return
	}
	id, _, err := s.svc.CreatePattern(r.Context(), r.PathValue("name"), origin)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, boardID{BoardID: id})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	state, err := s.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.advance(w, r, 1, s.svc.Advance)
}

func (s *Server) handleIterate(w http.ResponseWriter, r *http.Request) {
	n, ok := s.pathInt(w, r, "n")
	if !ok {
		return
	}
	s.advance(w, r, n, s.svc.Advance)
}

func (s *Server) handleFinal(w http.ResponseWriter, r *http.Request) {
	n, ok := s.pathInt(w, r, "n")
	if !ok {
		return
	}
	s.advance(w, r, n, s.svc.Final)
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request, n int, run func(context.Context, string, int) (life.State, error)) {
	state, err := run(r.Context(), r.PathValue("id"), n)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleDense(w http.ResponseWriter, r *http.Request) {
	grid, err := s.svc.Dense(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, denseResponse{
		MinRow: grid.Origin.Row,
		MinCol: grid.Origin.Col,
		Rows:   grid.Rows(),
	})
}

func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	all := core.Patterns()
	out := make([]patternInfo, 0, len(all))
	for _, p := range all {
		out = append(out, patternInfo{Name: p.Name, Description: p.Description, Cells: len(p.Cells)})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return n, true
}

func (s *Server) queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, name+" must be an integer")
		return 0, false
	}
	return n, true
}

func (s *Server) originFromQuery(w http.ResponseWriter, r *http.Request) (core.Coord, bool) {
	row, ok := s.queryInt(w, r, "row", 0)
	if !ok {
		return core.Coord{}, false
	}
	col, ok := s.queryInt(w, r, "col", 0)
	if !ok {
		return core.Coord{}, false
	}
	return core.Coord{Row: row, Col: col}, true
}

// statusFor maps service and engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrBoardNotFound), errors.Is(err, service.ErrUnknownPattern):
		return http.StatusNotFound
	case errors.Is(err, service.ErrIterationLimit),
		errors.Is(err, service.ErrNotFinal),
		errors.Is(err, life.ErrInvalidInput),
		errors.Is(err, life.ErrIterationBounds):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Printf("internal error: %v", err)
		s.writeError(w, status, "internal error")
		return
	}
	s.writeError(w, status, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Printf("write response: %v", err)
	}
}
