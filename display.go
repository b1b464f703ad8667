package patience

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/patience/deck"
	"github.com/samber/lo"
)

// Render writes a plain-text view of a snapshot, one stack per line
func Render(w io.Writer, snap Snapshot) error {
	if _, err := fmt.Fprintf(w, "%s (#%d) seed %d: %s, %d moves\n",
		snap.Game, snap.GameID, snap.Seed, snap.State, snap.Moves); err != nil {
		return err
	}

	for _, st := range snap.Stacks {
		cards := "-"
		if len(st.Cards) > 0 {
			cards = strings.Join(lo.Map(st.Cards, func(c deck.Card, _ int) string { return c.Short() }), " ")
		}
		if st.Kind == TalonStack {
			cards = fmt.Sprintf("[%d]", st.Count)
		}
		if _, err := fmt.Fprintf(w, "%3d %-14s %s\n", st.ID, st.Name, cards); err != nil {
			return err
		}
	}

	return nil
}
