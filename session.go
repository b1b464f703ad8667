package patience

import (
	"fmt"
	"maps"

	"github.com/minaorangina/patience/deck"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// State is the play state of a session
// idle -> created, not dealt
// dealing -> cards leaving the talon at game start
// playing -> waiting for the next move
// filling -> composite or auto-fill moves in progress
// won -> every card is on a foundation
// aborted -> an invariant broke; the session must be discarded
type State int

const (
	Idle State = iota
	Dealing
	Playing
	Filling
	Won
	Aborted
)

var stateNames = []string{"idle", "dealing", "playing", "filling", "won", "aborted"}

func (st State) String() string {
	if st < Idle || st > Aborted {
		return fmt.Sprintf("State(%d)", int(st))
	}
	return stateNames[st]
}

func (st State) MarshalText() ([]byte, error) {
	return []byte(st.String()), nil
}

func (st *State) UnmarshalText(b []byte) error {
	for i, name := range stateNames {
		if name == string(b) {
			*st = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", b)
}

const defaultMaxFillSteps = 256

type SessionOpts struct {
	Seed uint64
	Sink EventSink
	// MaxFillSteps bounds the auto-fill loop; 0 uses the default
	MaxFillSteps int
}

// Session is one game in progress. It is not safe for concurrent use.
type Session struct {
	def          *Definition
	layout       *Layout
	seed         uint64
	state        State
	round        int
	moves        int
	history      []Move
	sink         EventSink
	maxFillSteps int
	fillQueue    []*Stack
	total        int
}

// NewSession lays out a game without dealing it
func NewSession(def *Definition, opts SessionOpts) *Session {
	l := &Layout{}
	def.Layout(l)

	s := &Session{
		def:          def,
		layout:       l,
		seed:         opts.Seed,
		sink:         opts.Sink,
		maxFillSteps: opts.MaxFillSteps,
	}
	if s.sink == nil {
		s.sink = discardSink{}
	}
	if s.maxFillSteps <= 0 {
		s.maxFillSteps = defaultMaxFillSteps
	}

	return s
}

// Start shuffles, reorders and deals
func (s *Session) Start() error {
	if s.state != Idle {
		return ErrAlreadyStarted
	}
	if s.layout.Talon == nil {
		return s.abort(fmt.Errorf("%w: %s has no talon", ErrInvariantViolation, s.def.Name))
	}

	shuffled := deck.New(s.def.Decks)
	shuffled.Shuffle(s.seed)

	cards := []deck.Card(shuffled)
	if s.def.Reorder != nil {
		cards = s.def.Reorder(shuffled.Clone())
		if !isPermutation(shuffled, cards) {
			return s.abort(fmt.Errorf("%w: %s reorder is not a permutation of the deck", ErrInvariantViolation, s.def.Name))
		}
	}

	s.layout.Talon.cards = append([]deck.Card(nil), cards...)
	s.total = len(cards)
	s.round = 1
	s.state = Dealing

	s.emit(EventDeal, s.layout.Talon)
	if s.def.Sample != "" {
		s.emit(s.def.Sample, s.layout.Talon)
	}

	if err := s.def.Deal(s); err != nil {
		return s.abort(fmt.Errorf("%w: %s deal: %w", ErrInvariantViolation, s.def.Name, err))
	}
	if err := s.checkCards(); err != nil {
		return s.abort(err)
	}

	s.state = Playing
	log.Info().Int("game", s.def.ID).Uint64("seed", s.seed).Msg("game dealt")

	s.checkWin()
	return nil
}

func isPermutation(a, b []deck.Card) bool {
	return len(a) == len(b) && maps.Equal(lo.CountValues(a), lo.CountValues(b))
}

// checkCards verifies every card is in exactly one stack
func (s *Session) checkCards() error {
	all := lo.FlatMap(s.layout.stacks, func(st *Stack, _ int) []deck.Card { return st.cards })
	if len(all) != s.total || len(lo.Uniq(all)) != s.total {
		return fmt.Errorf("%w: %d cards in play, %d distinct, expected %d",
			ErrInvariantViolation, len(all), len(lo.Uniq(all)), s.total)
	}
	return nil
}

func (s *Session) checkWin() {
	if s.state != Playing {
		return
	}
	onFoundations := lo.SumBy(s.layout.Foundations, func(st *Stack) int { return st.Len() })
	if onFoundations != s.total {
		return
	}

	s.state = Won
	s.emit(EventWin, nil)
	log.Info().Int("game", s.def.ID).Int("moves", s.moves).Msg("game won")
}

func (s *Session) abort(err error) error {
	s.state = Aborted
	s.fillQueue = nil
	s.emit(EventAbort, nil)
	log.Error().Err(err).Int("game", s.def.ID).Uint64("seed", s.seed).Msg("session aborted")
	return err
}

func (s *Session) emit(name string, st *Stack) {
	e := Event{Name: name, Stack: -1}
	if st != nil {
		e.Stack = st.id
	}
	s.sink.Emit(e)
}

// enterState switches state and returns the previous one for leaveState
func (s *Session) enterState(st State) State {
	old := s.state
	s.state = st
	return old
}

func (s *Session) leaveState(old State) {
	if s.state == Aborted {
		return
	}
	s.state = old
}

func (s *Session) Definition() *Definition {
	return s.def
}

func (s *Session) Seed() uint64 {
	return s.seed
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Won() bool {
	return s.state == Won
}

// Moves is the number of player moves and talon deals so far
func (s *Session) Moves() int {
	return s.moves
}

// Round is the current pass through the talon, starting at 1
func (s *Session) Round() int {
	return s.round
}

// History returns the moves played, oldest first
func (s *Session) History() []Move {
	return append([]Move(nil), s.history...)
}

func (s *Session) Talon() *Stack {
	return s.layout.Talon
}

func (s *Session) Waste() *Stack {
	return s.layout.Waste
}

func (s *Session) Rows() []*Stack {
	return s.layout.Rows
}

func (s *Session) Foundations() []*Stack {
	return s.layout.Foundations
}

func (s *Session) Internals() []*Stack {
	return s.layout.Internals
}

func (s *Session) Stacks() []*Stack {
	return s.layout.stacks
}

// Stack looks a stack up by id
func (s *Session) Stack(id int) (*Stack, error) {
	if id < 0 || id >= len(s.layout.stacks) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStack, id)
	}
	return s.layout.stacks[id], nil
}

func (s *Session) owns(st *Stack) bool {
	return st != nil && st.id >= 0 && st.id < len(s.layout.stacks) && s.layout.stacks[st.id] == st
}

// HighlightMatch reports whether two cards should be highlighted as a pair
func (s *Session) HighlightMatch(a, b deck.Card) bool {
	if s.def.Highlight == nil {
		return false
	}
	return s.def.Highlight(a, b)
}

// StackSnapshot is one stack as a player sees it. The talon is face down,
// so only its size is given.
type StackSnapshot struct {
	ID    int         `json:"id"`
	Name  string      `json:"name"`
	Kind  Kind        `json:"kind"`
	Count int         `json:"count"`
	Cards []deck.Card `json:"cards"`
}

// Snapshot is a read-only copy of a session for display and statistics
type Snapshot struct {
	GameID int             `json:"game_id"`
	Game   string          `json:"game"`
	Seed   uint64          `json:"seed"`
	State  State           `json:"state"`
	Moves  int             `json:"moves"`
	Round  int             `json:"round"`
	Stacks []StackSnapshot `json:"stacks"`
}

// Snapshot copies the visible stacks; internal buffers are left out
func (s *Session) Snapshot() Snapshot {
	visible := lo.Filter(s.layout.stacks, func(st *Stack, _ int) bool { return st.kind != InternalStack })
	return Snapshot{
		GameID: s.def.ID,
		Game:   s.def.Name,
		Seed:   s.seed,
		State:  s.state,
		Moves:  s.moves,
		Round:  s.round,
		Stacks: lo.Map(visible, func(st *Stack, _ int) StackSnapshot {
			snap := StackSnapshot{ID: st.id, Name: st.name, Kind: st.kind, Count: st.Len(), Cards: []deck.Card{}}
			if st.kind != TalonStack {
				snap.Cards = st.Cards()
			}
			return snap
		}),
	}
}
