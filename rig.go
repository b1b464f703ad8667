package patience

import (
	"fmt"

	"github.com/minaorangina/patience/deck"
	"github.com/samber/lo"
)

// Rig lifts each card out of whichever stack holds it and puts it on top of
// st, in order. The deck stays whole, so a rigged session still passes every
// card check. It sets up positions for tests and puzzles.
func (s *Session) Rig(st *Stack, cards ...deck.Card) error {
	if !s.owns(st) {
		return ErrUnknownStack
	}

	for _, c := range cards {
		from, ok := lo.Find(s.layout.stacks, func(other *Stack) bool { return lo.Contains(other.cards, c) })
		if !ok {
			return fmt.Errorf("%w: %s is not in play", ErrInvariantViolation, c)
		}
		i := lo.IndexOf(from.cards, c)
		from.cards = append(from.cards[:i:i], from.cards[i+1:]...)
		st.cards = append(st.cards, c)
	}

	return nil
}
