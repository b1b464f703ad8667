package patience

import (
	"fmt"

	"github.com/minaorangina/patience/deck"
	"github.com/rs/zerolog/log"
)

// Move transfers the top N cards of stack From onto stack To
type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
	N    int `json:"n"`
}

func (s *Session) variant(st *Stack) Variant {
	if st.rules.Variant == "" {
		return Variant{}
	}
	return s.def.Variants[st.rules.Variant]
}

// AcceptsCards reports whether to would take cards lifted from from.
// It has no side effects and is safe to call speculatively.
func (s *Session) AcceptsCards(from, to *Stack, cards []deck.Card) bool {
	if v := s.variant(to); v.Accept != nil {
		return v.Accept(s, from, to, cards)
	}
	return DefaultAccepts(to, cards)
}

// CanMove reports whether the cards of from, from index to the top, may be
// moved onto to.
func (s *Session) CanMove(from *Stack, index int, to *Stack) bool {
	if !s.owns(from) || !s.owns(to) || from == to {
		return false
	}
	if from.kind == InternalStack || to.kind == InternalStack {
		return false
	}

	n := from.Len() - index
	if index < 0 || n < 1 {
		return false
	}
	if n > from.rules.MaxMove || n > to.rules.MaxAccept {
		return false
	}

	cards := from.Cards()[index:]
	if !from.rules.IsSequence(cards) {
		return false
	}

	return s.AcceptsCards(from, to, cards)
}

// ExecuteMove moves the top n cards of from onto to. A rejected move
// returns ErrIllegalMove and leaves every stack untouched.
func (s *Session) ExecuteMove(from *Stack, n int, to *Stack) error {
	if err := s.checkInPlay(); err != nil {
		return err
	}
	if !s.owns(from) || !s.owns(to) {
		return ErrUnknownStack
	}
	if n < 1 || n > from.Len() || !s.CanMove(from, from.Len()-n, to) {
		return fmt.Errorf("%w: %d card(s) from %s to %s", ErrIllegalMove, n, from, to)
	}

	moves := []Move{{From: from.id, To: to.id, N: n}}
	if v := s.variant(from); v.Compose != nil {
		if sub := v.Compose(s, from, to, n); len(sub) > 0 {
			moves = sub
		}
	}

	emptied, err := s.apply(moves)
	if err != nil {
		return s.abort(err)
	}

	s.moves++
	s.history = append(s.history, Move{From: from.id, To: to.id, N: n})

	event := EventMove
	if to.kind == FoundationStack {
		event = EventDrop
	}
	s.emit(event, to)
	log.Debug().Int("game", s.def.ID).Str("from", from.name).Str("to", to.name).Int("n", n).
		Int("submoves", len(moves)).Msg("move")

	if err := s.notifyEmptied(emptied); err != nil {
		return s.abort(err)
	}

	s.checkWin()
	return nil
}

// Play is ExecuteMove addressed by stack id and card index
func (s *Session) Play(fromID, index, toID int) error {
	from, err := s.Stack(fromID)
	if err != nil {
		return err
	}
	to, err := s.Stack(toID)
	if err != nil {
		return err
	}
	return s.ExecuteMove(from, from.Len()-index, to)
}

// FillMove is a primitive transfer for Deal and Fill hooks. Acceptance
// rules are not consulted; card counts and MaxCards still are.
func (s *Session) FillMove(from *Stack, n int, to *Stack) error {
	if s.state != Dealing && s.state != Filling {
		return fmt.Errorf("%w: fill move while %s", ErrInvariantViolation, s.state)
	}
	if !s.owns(from) || !s.owns(to) {
		return fmt.Errorf("%w: fill move between foreign stacks", ErrInvariantViolation)
	}

	emptied, err := s.apply([]Move{{From: from.id, To: to.id, N: n}})
	if err != nil {
		return err
	}

	s.emit(EventFill, to)
	if s.state == Filling && s.def.Fill != nil {
		s.fillQueue = append(s.fillQueue, emptied...)
	}
	return nil
}

func (s *Session) checkInPlay() error {
	switch s.state {
	case Playing:
		return nil
	case Aborted:
		return ErrSessionAborted
	}
	return fmt.Errorf("%w: %s", ErrNotInPlay, s.state)
}

// apply runs primitive moves in order. Every move is checked against the
// running stack sizes before any card moves, so either all of them happen
// or none do. Sub-moves of a composite run in the filling state.
// It returns the stacks that the moves left empty.
func (s *Session) apply(moves []Move) ([]*Stack, error) {
	type step struct {
		from, to *Stack
		n        int
	}

	steps := make([]step, 0, len(moves))
	touched := []*Stack{}
	sizes := map[*Stack]int{}
	size := func(st *Stack) int {
		if n, ok := sizes[st]; ok {
			return n
		}
		touched = append(touched, st)
		return st.Len()
	}

	for _, m := range moves {
		from, errFrom := s.Stack(m.From)
		to, errTo := s.Stack(m.To)
		if errFrom != nil || errTo != nil || from == to {
			return nil, fmt.Errorf("%w: bad move %+v", ErrInvariantViolation, m)
		}

		fromSize, toSize := size(from), size(to)
		if m.N < 1 || m.N > fromSize {
			return nil, fmt.Errorf("%w: cannot take %d card(s) from %s holding %d", ErrInvariantViolation, m.N, from, fromSize)
		}
		if limit := to.rules.MaxCards; limit > 0 && toSize+m.N > limit {
			return nil, fmt.Errorf("%w: %s would hold more than %d cards", ErrInvariantViolation, to, limit)
		}

		sizes[from] = fromSize - m.N
		sizes[to] = toSize + m.N
		steps = append(steps, step{from, to, m.N})
	}

	before := map[*Stack]int{}
	for _, st := range touched {
		before[st] = st.Len()
	}

	if len(steps) > 1 {
		old := s.enterState(Filling)
		defer s.leaveState(old)
	}
	for _, st := range steps {
		transfer(st.from, st.to, st.n)
	}

	emptied := []*Stack{}
	for _, st := range touched {
		if before[st] > 0 && st.Empty() {
			emptied = append(emptied, st)
		}
	}
	return emptied, nil
}

func transfer(from, to *Stack, n int) {
	i := len(from.cards) - n
	to.cards = append(to.cards, from.cards[i:]...)
	from.cards = from.cards[:i:i]
}
