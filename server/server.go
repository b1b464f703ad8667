package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/patience"
	"github.com/minaorangina/patience/deck"
	"github.com/minaorangina/patience/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NewSessionReq struct {
	GameID int     `json:"game_id"`
	Seed   *uint64 `json:"seed"`
}

type NewSessionRes struct {
	SessionID string            `json:"session_id"`
	Snapshot  patience.Snapshot `json:"snapshot"`
}

type MoveReq struct {
	From  int `json:"from"`
	Index int `json:"index"`
	To    int `json:"to"`
}

type AutoDropRes struct {
	Dropped  int               `json:"dropped"`
	Snapshot patience.Snapshot `json:"snapshot"`
}

type HintRes struct {
	Hint *patience.Hint `json:"hint"`
}

type GameInfo struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	AltNames []string `json:"alt_names,omitempty"`
	Type     string   `json:"type"`
	Decks    int      `json:"decks"`
	Redeals  int      `json:"redeals"`
	Skill    string   `json:"skill"`
}

type ServerOpts struct {
	Registry       *patience.Registry
	Store          store.SessionStore
	DefaultGame    int
	MaxFillSteps   int
	AllowedOrigins []string
}

// GameServer serves solitaire sessions over HTTP and websockets
type GameServer struct {
	registry     *patience.Registry
	store        store.SessionStore
	defaultGame  int
	maxFillSteps int

	// mutex guards hubs
	mu   sync.Mutex
	hubs map[string]*hub

	http.Server
}

// NewServer creates a new GameServer
func NewServer(opts ServerOpts) *GameServer {
	s := &GameServer{
		registry:     opts.Registry,
		store:        opts.Store,
		defaultGame:  opts.DefaultGame,
		maxFillSteps: opts.MaxFillSteps,
		hubs:         map[string]*hub{},
	}

	router := http.NewServeMux()
	router.HandleFunc("GET /games", s.HandleListGames)
	router.HandleFunc("POST /new", s.HandleNewSession)
	router.HandleFunc("GET /session/{id}", s.HandleGetSession)
	router.HandleFunc("DELETE /session/{id}", s.HandleDeleteSession)
	router.HandleFunc("POST /session/{id}/move", s.HandleMove)
	router.HandleFunc("POST /session/{id}/deal", s.HandleDeal)
	router.HandleFunc("POST /session/{id}/autodrop", s.HandleAutoDrop)
	router.HandleFunc("GET /session/{id}/hint", s.HandleHint)
	router.HandleFunc("GET /ws", s.HandleWS)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	s.Handler = handlers.RecoveryHandler()(handlers.LoggingHandler(log.Logger, cors(router)))

	return s
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

func (g *GameServer) HandleListGames(w http.ResponseWriter, r *http.Request) {
	infos := lo.Map(g.registry.Definitions(), func(d *patience.Definition, _ int) GameInfo {
		return GameInfo{
			ID:       d.ID,
			Name:     d.Name,
			AltNames: d.AltNames,
			Type:     d.Type.String(),
			Decks:    d.Decks,
			Redeals:  d.Redeals,
			Skill:    d.Skill.String(),
		}
	})

	writeJSON(w, http.StatusOK, infos)
}

// HandleNewSession deals a new game
func (g *GameServer) HandleNewSession(w http.ResponseWriter, r *http.Request) {
	var data NewSessionReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}

	gameID := data.GameID
	if gameID == 0 {
		gameID = g.defaultGame
	}
	seed := deck.NewSeed()
	if data.Seed != nil {
		seed = *data.Seed
	}

	h := newHub()
	sess, err := g.registry.NewSession(gameID, patience.SessionOpts{
		Seed:         seed,
		Sink:         h,
		MaxFillSteps: g.maxFillSteps,
	})
	if errors.Is(err, patience.ErrUnknownGame) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		log.Error().Err(err).Int("game", gameID).Uint64("seed", seed).Msg("could not deal")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	entry, err := g.store.Add(sess)
	if errors.Is(err, store.ErrStoreFull) {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.setSessionID(entry.ID)
	g.mu.Lock()
	g.hubs[entry.ID] = h
	g.mu.Unlock()

	log.Info().Str("session", entry.ID).Int("game", gameID).Msg("session created")

	writeJSON(w, http.StatusCreated, NewSessionRes{
		SessionID: entry.ID,
		Snapshot:  sess.Snapshot(),
	})
}

func (g *GameServer) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	entry, ok := g.findEntry(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, entry.Snapshot())
}

func (g *GameServer) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !g.drop(id) {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w '%s'", store.ErrUnknownSessionID, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *GameServer) HandleMove(w http.ResponseWriter, r *http.Request) {
	var data MoveReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		writeParseError(err, w, r)
		return
	}

	g.act(w, r, func(s *patience.Session) (any, error) {
		if err := s.Play(data.From, data.Index, data.To); err != nil {
			return nil, err
		}
		return s.Snapshot(), nil
	})
}

func (g *GameServer) HandleDeal(w http.ResponseWriter, r *http.Request) {
	g.act(w, r, func(s *patience.Session) (any, error) {
		if err := s.DealTalon(); err != nil {
			return nil, err
		}
		return s.Snapshot(), nil
	})
}

func (g *GameServer) HandleAutoDrop(w http.ResponseWriter, r *http.Request) {
	g.act(w, r, func(s *patience.Session) (any, error) {
		n, err := s.AutoDrop()
		if err != nil {
			return nil, err
		}
		return AutoDropRes{Dropped: n, Snapshot: s.Snapshot()}, nil
	})
}

func (g *GameServer) HandleHint(w http.ResponseWriter, r *http.Request) {
	g.act(w, r, func(s *patience.Session) (any, error) {
		h, ok := s.Hint()
		if !ok {
			return HintRes{}, nil
		}
		return HintRes{Hint: &h}, nil
	})
}

// act runs fn on the session named in the path and writes its result.
// A session that aborts is removed.
func (g *GameServer) act(w http.ResponseWriter, r *http.Request, fn func(s *patience.Session) (any, error)) {
	entry, ok := g.findEntry(w, r)
	if !ok {
		return
	}

	var res any
	err := entry.Do(func(s *patience.Session) error {
		var err error
		res, err = fn(s)
		return err
	})
	if err != nil {
		if patience.Fatal(err) {
			g.drop(entry.ID)
		}
		writeError(w, statusFor(err), err)
		return
	}

	if snap, ok := res.(patience.Snapshot); ok {
		if h, found := g.hub(entry.ID); found {
			h.broadcastSnapshot(snap)
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (g *GameServer) findEntry(w http.ResponseWriter, r *http.Request) (*store.Entry, bool) {
	entry, err := g.store.Find(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return entry, true
}

func (g *GameServer) hub(id string) (*hub, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	h, ok := g.hubs[id]
	return h, ok
}

// drop forgets a session and disconnects its watchers
func (g *GameServer) drop(id string) bool {
	g.mu.Lock()
	h, ok := g.hubs[id]
	delete(g.hubs, id)
	g.mu.Unlock()

	if ok {
		h.close()
	}
	removed := g.store.Remove(id)
	if removed {
		log.Info().Str("session", id).Msg("session removed")
	}
	return removed
}

func statusFor(err error) int {
	switch {
	case patience.Fatal(err):
		return http.StatusGone
	case errors.Is(err, patience.ErrIllegalMove), errors.Is(err, patience.ErrNotInPlay):
		return http.StatusConflict
	case errors.Is(err, patience.ErrUnknownStack):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("could not encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}

func writeParseError(err error, w http.ResponseWriter, r *http.Request) {
	if err == io.EOF {
		w.Header().Add("Content-Type", "text/plain")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Missing body"))
		return
	}
	log.Debug().Err(err).Str("path", r.URL.Path).Msg("bad request body")
	w.Header().Add("Content-Type", "text/plain")
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte("Malformed body"))
}
