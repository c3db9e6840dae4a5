package web

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"challengesim/profile"
	"challengesim/sim"
	"challengesim/strategy"
)

// Server is the presentation boundary: it exposes the calculator and
// the simulation engine over HTTP and streams state snapshots over a
// websocket. It only ever reads engine state through snapshots.
type Server struct {
	addr   string
	engine *sim.Engine
	hub    *Hub
	router chi.Router
	srv    *http.Server

	// batches outlive their triggering request
	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer(addr string, engine *sim.Engine, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		addr:   addr,
		engine: engine,
		hub:    newHub(allowedOrigins),
		ctx:    ctx,
		cancel: cancel,
	}
	engine.SetListener(s.hub)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Route("/api", func(rr chi.Router) {
		rr.Post("/strategy", s.handleStrategy)
		rr.Get("/state", s.handleState)
		rr.Post("/trade", s.handleTrade)
		rr.Post("/simulate", s.handleSimulate)
		rr.Post("/reset", s.handleReset)
	})
	r.Get("/ws", s.hub.handleWS)

	s.router = r
	s.srv = &http.Server{Addr: addr, Handler: r}
	return s
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) ListenAndServe() error {
	log.Printf("challenge server listening on %s", s.addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Close() error {
	s.cancel()
	s.hub.closeAll()
	return s.srv.Close()
}

type strategyResponse struct {
	Strategy strategy.Strategy `json:"strategy"`
	State    sim.Snapshot      `json:"state"`
}

// handleStrategy recalculates the strategy from a submitted profile
// and starts a fresh attempt seeded with it.
func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := p.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	strat, err := strategy.Calculate(p)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	snap, err := s.engine.Initialize(p, strat)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, strategyResponse{Strategy: strat, State: snap})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.CurrentSnapshot())
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Win bool `json:"win"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap, err := s.engine.ManualTrade(req.Win)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleSimulate reserves an auto-simulate batch and returns once it
// is in flight; progress is observable on /api/state and the websocket
// stream as the engine reveals one trade at a time. The reservation
// happens under the engine's guard, so concurrent requests get at most
// one 202 — the rest see 409.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Days int `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.engine.AutoSimulateStart(s.ctx, req.Days); err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusAccepted, s.engine.CurrentSnapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Reset()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// statusFor maps the engine/calculator error taxonomy onto HTTP codes:
// validation and domain errors are the caller's input (422), a batch
// in flight is a conflict (409).
func statusFor(err error) int {
	var verr *profile.ValidationError
	var derr *strategy.DomainError
	switch {
	case errors.Is(err, sim.ErrBatchInFlight):
		return http.StatusConflict
	case errors.Is(err, sim.ErrNotInitialized),
		errors.Is(err, sim.ErrInvalidDays),
		errors.As(err, &verr),
		errors.As(err, &derr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
