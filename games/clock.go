package games

import (
	"sort"

	"github.com/minaorangina/patience"
	"github.com/minaorangina/patience/deck"
	"github.com/samber/lo"
)

const (
	ClockID     = 261
	clockScore  = 92000
	clockSample = "grandfathersclock"
)

// clockSuits cycles round the dial, starting with the Two at one o'clock
var clockSuits = []deck.Suit{deck.Spades, deck.Hearts, deck.Clubs, deck.Diamonds}

// isClockCard reports whether c starts one of the twelve foundations
func isClockCard(c deck.Card) bool {
	if c.Rank < deck.Two {
		return false
	}
	return clockSuits[(int(c.Rank)-2)%len(clockSuits)] == c.Suit
}

// GrandfathersClock builds twelve foundations round a dial. Each climbs from
// its starting card until it shows the hour.
func GrandfathersClock() *patience.Definition {
	return &patience.Definition{
		ID:     ClockID,
		Name:   "Grandfather's Clock",
		Type:   patience.OneDeck | patience.Open,
		Decks:  1,
		Skill:  patience.Balanced,
		Layout: clockLayout,
		Reorder: func(cards []deck.Card) []deck.Card {
			clocks := lo.Filter(cards, func(c deck.Card, _ int) bool { return isClockCard(c) })
			rest := lo.Reject(cards, func(c deck.Card, _ int) bool { return isClockCard(c) })
			sort.SliceStable(clocks, func(i, j int) bool { return clocks[i].Rank > clocks[j].Rank })
			return append(clocks, rest...)
		},
		Deal: func(s *patience.Session) error {
			for i := 0; i < 5; i++ {
				if _, err := s.DealRow(); err != nil {
					return err
				}
			}
			_, err := s.DealRow(s.Foundations()...)
			return err
		},
		Hint: patience.HintPolicy{
			DropScore: func(int, *patience.Stack, *patience.Stack, []deck.Card) int { return clockScore },
		},
		Highlight:  rankAdjacent,
		NoAutoDrop: true,
		Sample:     clockSample,
	}
}

func clockLayout(l *patience.Layout) {
	for i := 0; i < 8; i++ {
		l.AddRow(patience.RowRules(patience.RankOnly))
	}
	for i := 0; i < 12; i++ {
		r := patience.FoundationRules(clockSuits[i%len(clockSuits)])
		r.BaseRank = deck.Rank(i + 2)
		r.Mod = deck.NumRanks
		l.AddFoundation(r)
	}
	l.SetTalon(1)
}

// rankAdjacent matches cards one rank apart. The King and the Ace are not
// adjacent.
func rankAdjacent(a, b deck.Card) bool {
	return a.Rank == b.Rank+1 || b.Rank == a.Rank+1
}
