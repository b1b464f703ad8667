package games

import (
	"github.com/minaorangina/patience"
	"github.com/minaorangina/patience/deck"
)

const DialID = 682

// Dial has one foundation per rank, each taking the four cards of that rank
// in alternating colours. The talon may be gone through twice.
func Dial() *patience.Definition {
	return &patience.Definition{
		ID:      DialID,
		Name:    "Dial",
		Type:    patience.OneDeck,
		Decks:   1,
		Redeals: 1,
		Skill:   patience.Luck,
		Layout: func(l *patience.Layout) {
			for rank := deck.Ace; rank <= deck.King; rank++ {
				r := patience.FoundationRules(patience.AnySuit)
				r.Sequence = patience.AlternateColor
				r.BaseRank = rank
				r.Dir = 0
				r.MaxCards = deck.NumSuits
				l.AddFoundation(r)
			}
			l.SetTalon(2)
			l.SetWaste()
		},
		Deal: func(s *patience.Session) error {
			_, err := s.DealCards()
			return err
		},
	}
}
