package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/Inselaffe03/mortail-coil-arena/game/engine"
	"github.com/Inselaffe03/mortail-coil-arena/game/level"
	"github.com/Inselaffe03/mortail-coil-arena/game/service"
	"github.com/Inselaffe03/mortail-coil-arena/transport/websocket"
)

// Server represents the REST API server.
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. The hub may be nil, in which case
// the /ws route responds with 503.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Game state and level catalog
	api.HandleFunc("/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/levels", s.handleListLevels).Methods("GET")
	api.HandleFunc("/levels/{id}/load", s.handleLoadLevel).Methods("POST")

	// Game operations
	api.HandleFunc("/game/start", s.handleStart).Methods("POST")
	api.HandleFunc("/game/move", s.handleMove).Methods("POST")
	api.HandleFunc("/game/reset", s.handleReset).Methods("POST")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// statusForError maps engine sentinels to HTTP status codes. The core has
// no notion of status codes; this is the request layer's translation.
// ErrNoMovement stays 200: the command was well-formed, the game simply
// did not move, and the body carries success=false.
func statusForError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, level.ErrLevelNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidDirection),
		errors.Is(err, engine.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrAlreadyStarted),
		errors.Is(err, engine.ErrBlockedCell),
		errors.Is(err, engine.ErrNotActive):
		return http.StatusConflict
	case errors.Is(err, engine.ErrNoMovement):
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

// Handlers

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.service.GetState(r.Context()))
}

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	infos := s.service.ListLevels(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(infos),
		"levels": infos,
	})
}

func (s *Server) handleLoadLevel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "level id must be an integer")
		return
	}

	result, opErr := s.service.LoadLevel(r.Context(), id)
	respondJSON(w, statusForError(opErr), result)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X int `json:"x"`
		Y int `json:"y"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, opErr := s.service.Start(r.Context(), req.X, req.Y)
	respondJSON(w, statusForError(opErr), result)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, opErr := s.service.Move(r.Context(), req.Direction)

	// Compact server log for observability
	log.Info().
		Str("direction", req.Direction).
		Bool("success", result.Success).
		Int("visited", result.VisitedCount).
		Int("total", result.TotalCells).
		Bool("finished", result.Finished).
		Bool("won", result.Won).
		Msg("move")

	respondJSON(w, statusForError(opErr), result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	result, opErr := s.service.Reset(r.Context())
	respondJSON(w, statusForError(opErr), result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "live updates unavailable", http.StatusServiceUnavailable)
		return
	}
	s.hub.ServeWS(w, r)
}
