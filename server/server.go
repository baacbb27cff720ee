package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"sente/engine"
	"sente/game"
	"sente/player"
	"sente/store"
)

const (
	tickInterval    = 50 * time.Millisecond
	defaultSavePath = "match.json"
)

// Server exposes one live match over HTTP and websockets. Human moves
// arrive through the API; a ticker drives forced passes and AI turns.
// AI searches run off the lock against a fork of the position, and a
// result is discarded if the match moved on while the search ran.
type Server struct {
	mu       sync.Mutex
	match    *engine.Match
	hub      *Hub
	thinking bool
	thinkSeq int
}

func New(match *engine.Match) *Server {
	return &Server{match: match, hub: NewHub()}
}

type statusResponse struct {
	Variant    string      `json:"variant"`
	BoardSize  int         `json:"board_size"`
	Board      [][]int     `json:"board"`
	NextPlayer int         `json:"next_player"`
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Moves      int         `json:"moves"`
	Passes     int         `json:"passes"`
	Thinking   bool        `json:"ai_thinking"`
	History    []game.Move `json:"history"`
	Black      seatDTO     `json:"black"`
	White      seatDTO     `json:"white"`
	BlackScore float64     `json:"black_score"`
	WhiteScore float64     `json:"white_score"`
}

type seatDTO struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type moveRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type newRequest struct {
	Variant  string `json:"variant"`
	Size     int    `json:"size"`
	Black    string `json:"black"`
	White    string `json:"white"`
	BudgetMs int    `json:"budget_ms"`
	Seed     uint64 `json:"seed"`
}

type loadRequest struct {
	Path  string `json:"path"`
	Black string `json:"black"`
	White string `json:"white"`
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/status", s.handleStatus)
	r.Post("/api/new", s.handleNew)
	r.Post("/api/move", s.handleMove)
	r.Post("/api/pass", s.handlePass)
	r.Post("/api/undo", s.handleUndo)
	r.Post("/api/save", s.handleSave)
	r.Post("/api/load", s.handleLoad)
	r.Get("/ws", s.serveWS)
	return r
}

// Run serves the API until ctx is cancelled or the listener fails.
func (s *Server) Run(ctx context.Context, addr string) error {
	go s.hub.Run(ctx.Done())
	go s.drive(ctx)

	srv := &http.Server{Addr: addr, Handler: s.Router()}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info().Msgf("serving on %s", addr)

	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

func (s *Server) drive(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.step()
		}
	}
}

// step advances the match by at most one non-human action.
func (s *Server) step() {
	s.mu.Lock()
	m := s.match
	if m.Status().Over() {
		s.mu.Unlock()
		return
	}
	if m.ForcedPass() {
		st := s.statusLocked()
		s.mu.Unlock()
		s.hub.Broadcast(st)
		return
	}
	agent := m.CurrentAgent()
	if agent.Kind() == player.Human || s.thinking {
		s.mu.Unlock()
		return
	}
	s.thinking = true
	s.thinkSeq++
	seq := s.thinkSeq
	board, rules := m.Fork()
	moves := m.Moves()
	s.mu.Unlock()

	go func() {
		mv := agent.ChooseMove(board, rules)
		s.mu.Lock()
		if s.thinkSeq == seq {
			s.thinking = false
		}
		// the result is stale once the match was swapped, undone or
		// advanced during the search
		if s.match == m && m.Moves() == moves && !m.Status().Over() && !mv.IsPass() {
			m.Play(mv)
		}
		st := s.statusLocked()
		s.mu.Unlock()
		s.hub.Broadcast(st)
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.statusLocked()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	var req newRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Variant == "" {
		req.Variant = "gomoku"
	}
	variant, err := game.ParseVariant(req.Variant)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	blackCfg := player.Config{Seed: req.Seed, Duration: time.Duration(req.BudgetMs) * time.Millisecond}
	whiteCfg := blackCfg
	if req.Seed != 0 {
		whiteCfg.Seed = req.Seed + 1
	}
	black, err := buildAgent(req.Black, game.Black, blackCfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	white, err := buildAgent(req.White, game.White, whiteCfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	match, err := engine.NewMatch(engine.Settings{Variant: variant, Size: req.Size}, black, white)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.match = match
	st := s.statusLocked()
	s.mu.Unlock()
	s.hub.Broadcast(st)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	s.mu.Lock()
	if s.match.Status().Over() {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "game is over")
		return
	}
	if s.match.CurrentAgent().Kind() != player.Human {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "not a human turn")
		return
	}
	applied, reason := s.match.Play(game.Move{Row: req.Row, Col: req.Col})
	st := s.statusLocked()
	s.mu.Unlock()

	if !applied {
		writeError(w, http.StatusBadRequest, reason)
		return
	}
	s.hub.Broadcast(st)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handlePass(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.match.Status().Over() {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "game is over")
		return
	}
	if s.match.CurrentAgent().Kind() != player.Human {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "not a human turn")
		return
	}
	err := s.match.Pass()
	st := s.statusLocked()
	s.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.hub.Broadcast(st)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.match.Undo()
	st := s.statusLocked()
	s.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.hub.Broadcast(st)
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	path := req.Path
	if path == "" {
		path = defaultSavePath
	}

	s.mu.Lock()
	rec := s.match.Snapshot()
	s.mu.Unlock()

	if err := store.Save(path, rec); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	path := req.Path
	if path == "" {
		path = defaultSavePath
	}
	rec, err := store.Load(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	black, err := buildAgent(req.Black, game.Black, player.Config{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	white, err := buildAgent(req.White, game.White, player.Config{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	match, err := engine.Restore(rec, black, white)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.match = match
	st := s.statusLocked()
	s.mu.Unlock()
	s.hub.Broadcast(st)
	writeJSON(w, http.StatusOK, st)
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: s.hub, send: make(chan []byte, 16)}
	s.hub.Register(client)

	s.mu.Lock()
	st := s.statusLocked()
	s.mu.Unlock()
	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(st)})

	go func() {
		defer conn.Close()
		for data := range client.send {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.Unregister(client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			s.mu.Lock()
			st := s.statusLocked()
			s.mu.Unlock()
			client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(st)})
		}
	}
}

func (s *Server) statusLocked() statusResponse {
	m := s.match
	board := m.Board()
	st := statusResponse{
		Variant:    m.Variant().String(),
		BoardSize:  board.Size(),
		Board:      boardRows(board),
		NextPlayer: int(m.Mover()),
		Status:     m.Status().String(),
		Message:    m.Message(),
		Moves:      m.Moves(),
		Passes:     m.Passes(),
		Thinking:   s.thinking,
		History:    m.History(),
		Black:      seatDTO{Name: m.Agent(game.Black).Name(), Kind: m.Agent(game.Black).Kind().String()},
		White:      seatDTO{Name: m.Agent(game.White).Name(), Kind: m.Agent(game.White).Kind().String()},
	}
	if m.Status().Over() {
		st.BlackScore, st.WhiteScore = m.Scores()
	}
	return st
}

func boardRows(board *game.Board) [][]int {
	size := board.Size()
	rows := make([][]int, size)
	for r := 0; r < size; r++ {
		rows[r] = make([]int, size)
		for c := 0; c < size; c++ {
			rows[r][c] = int(board.At(r, c))
		}
	}
	return rows
}

func buildAgent(kind string, color game.Cell, cfg player.Config) (player.Agent, error) {
	if kind == "" {
		kind = "human"
	}
	k, err := player.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	return player.New(k, fmt.Sprintf("%s-%s", k, color), color, cfg), nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().Msgf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
