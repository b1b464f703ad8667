package patience

import "fmt"

// DealRow deals one card from the talon onto each stack, or onto every
// row when no stacks are given. It returns how many cards were dealt.
func (s *Session) DealRow(stacks ...*Stack) (int, error) {
	if s.state == Aborted {
		return 0, ErrSessionAborted
	}
	if len(stacks) == 0 {
		stacks = s.layout.Rows
	}

	t := s.layout.Talon
	dealt := 0
	for _, st := range stacks {
		if !s.owns(st) {
			return dealt, fmt.Errorf("%w: cannot deal to a foreign stack", ErrInvariantViolation)
		}
		if t.Empty() {
			return dealt, fmt.Errorf("%w: ran out dealing to %s", ErrTalonEmpty, st)
		}
		transfer(t, st, 1)
		dealt++
	}

	return dealt, nil
}

// CanDealCards reports whether the talon can turn a card onto the waste or
// be turned over for another round
func (s *Session) CanDealCards() bool {
	t, w := s.layout.Talon, s.layout.Waste
	if t == nil || w == nil || s.state == Aborted {
		return false
	}
	if !t.Empty() {
		return true
	}
	return !w.Empty() && s.round < t.rules.MaxRounds
}

// DealCards turns the top talon card onto the waste. With the talon empty
// it turns the waste back over into the talon and starts a new round.
func (s *Session) DealCards() (int, error) {
	if s.state == Aborted {
		return 0, ErrSessionAborted
	}
	if !s.CanDealCards() {
		return 0, ErrTalonEmpty
	}

	t, w := s.layout.Talon, s.layout.Waste
	if !t.Empty() {
		transfer(t, w, 1)
		s.emit(EventDeal, w)
		return 1, nil
	}

	n := w.Len()
	for !w.Empty() {
		transfer(w, t, 1)
	}
	s.round++
	s.emit(EventRedeal, t)
	return n, nil
}

// DealTalon is the player's click on the talon. It counts as a move.
func (s *Session) DealTalon() error {
	if err := s.checkInPlay(); err != nil {
		return err
	}
	if _, err := s.DealCards(); err != nil {
		return fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}

	s.moves++
	s.checkWin()
	return nil
}
