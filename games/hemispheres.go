package games

import (
	"sort"

	"github.com/minaorangina/patience"
	"github.com/minaorangina/patience/deck"
	"github.com/samber/lo"
)

const (
	HemispheresID = 690

	hemisphereVariant = "hemisphere"
	barriers          = 4
	hemisphereRows    = 6
)

// Hemispheres lays two hemispheres of rows round eight foundations. The red
// north builds down, the black south builds up, and a red card stranded in
// the south can change places with a black card in the north.
func Hemispheres() *patience.Definition {
	return &patience.Definition{
		ID:       HemispheresID,
		Name:     "Hemispheres",
		AltNames: []string{"The Four Continents"},
		Type:     patience.TwoDeck,
		Decks:    2,
		Skill:    patience.Balanced,
		Layout:   hemispheresLayout,
		Reorder:  hemispheresReorder,
		Deal: func(s *patience.Session) error {
			if _, err := s.DealRow(s.Foundations()...); err != nil {
				return err
			}
			if _, err := s.DealRow(); err != nil {
				return err
			}
			_, err := s.DealCards()
			return err
		},
		Fill: hemispheresFill,
		Variants: map[string]patience.Variant{
			hemisphereVariant: {
				Accept:  hemisphereAccepts,
				Compose: swapPair,
			},
		},
		Hint: patience.HintPolicy{
			// moving a lone card between rows can loop forever otherwise
			ShallMovePile: func(s *patience.Session, from, to *patience.Stack, _ []deck.Card) bool {
				if from.Kind() == patience.RowStack && to.Kind() == patience.RowStack {
					return from.Len() == 1
				}
				return true
			},
		},
		Highlight: func(a, b deck.Card) bool {
			diff := int(a.Rank) - int(b.Rank)
			return a.Color() == b.Color() && (diff == 1 || diff == -1)
		},
	}
}

func hemispheresLayout(l *patience.Layout) {
	l.AddInternal()

	for i := 0; i < barriers; i++ {
		r := patience.RowRules(patience.RankOnly)
		r.MaxAccept = 0
		l.AddRow(r)
	}
	for _, dir := range []int{-1, 1} {
		for i := 0; i < hemisphereRows; i++ {
			r := patience.RowRules(patience.SameColor)
			r.Dir = dir
			r.Variant = hemisphereVariant
			l.AddRow(r)
		}
	}

	for _, suit := range []deck.Suit{deck.Hearts, deck.Hearts, deck.Diamonds, deck.Diamonds} {
		l.AddFoundation(patience.FoundationRules(suit))
	}
	for _, suit := range []deck.Suit{deck.Clubs, deck.Clubs, deck.Spades, deck.Spades} {
		r := patience.FoundationRules(suit)
		r.BaseRank = deck.King
		r.Dir = -1
		l.AddFoundation(r)
	}

	l.SetTalon(1)
	l.SetWaste()
}

// hemispheresReorder puts the red aces and black kings on top of the talon
// for the foundations, and one black ace and red king of each suit under them
// for the barriers.
func hemispheresReorder(cards []deck.Card) []deck.Card {
	founds := lo.Filter(cards, func(c deck.Card, _ int) bool { return startsFoundation(c) })
	rows := lo.Filter(cards, func(c deck.Card, _ int) bool { return startsBarrier(c) })
	rest := lo.Reject(cards, func(c deck.Card, _ int) bool { return startsFoundation(c) || startsBarrier(c) })

	sort.SliceStable(founds, func(i, j int) bool {
		a, b := founds[i], founds[j]
		if a.Rank != b.Rank {
			return a.Rank > b.Rank
		}
		return a.Suit > b.Suit
	})
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		return a.Suit < b.Suit
	})

	out := make([]deck.Card, 0, len(cards))
	out = append(out, rest...)
	out = append(out, rows...)
	return append(out, founds...)
}

func startsFoundation(c deck.Card) bool {
	return (c.Rank == deck.Ace && c.Color() == deck.Red) || (c.Rank == deck.King && c.Color() == deck.Black)
}

func startsBarrier(c deck.Card) bool {
	return c.Deck == 0 && (c.Rank == deck.Ace || c.Rank == deck.King) && !startsFoundation(c)
}

func northRows(s *patience.Session) []*patience.Stack {
	return s.Rows()[barriers : barriers+hemisphereRows]
}

func southRows(s *patience.Session) []*patience.Stack {
	return s.Rows()[barriers+hemisphereRows:]
}

func inNorth(s *patience.Session, st *patience.Stack) bool {
	return lo.Contains(northRows(s), st)
}

func inSouth(s *patience.Session, st *patience.Stack) bool {
	return lo.Contains(southRows(s), st)
}

// canSwapPair reports whether the single cards on from and to are each in
// the other's hemisphere. The test is symmetric in from and to.
func canSwapPair(s *patience.Session, from, to *patience.Stack) bool {
	if from.Len() != 1 || to.Len() != 1 {
		return false
	}

	var color deck.Color
	switch {
	case inNorth(s, to) && inSouth(s, from):
		color = deck.Red
	case inSouth(s, to) && inNorth(s, from):
		color = deck.Black
	default:
		return false
	}

	moving, _ := from.Top()
	staying, _ := to.Top()
	return moving.Color() == color && staying.Color() != color
}

func hemisphereAccepts(s *patience.Session, from, to *patience.Stack, cards []deck.Card) bool {
	if canSwapPair(s, from, to) {
		return true
	}
	if !patience.DefaultAccepts(to, cards) {
		return false
	}

	fromWaste := from == s.Waste()
	switch {
	case inNorth(s, to):
		return cards[0].Color() == deck.Red && (fromWaste || inNorth(s, from))
	case inSouth(s, to):
		return cards[0].Color() == deck.Black && (fromWaste || inSouth(s, from))
	}
	return false
}

// swapPair exchanges two single cards through the internal buffer
func swapPair(s *patience.Session, from, to *patience.Stack, n int) []patience.Move {
	if !canSwapPair(s, from, to) {
		return nil
	}
	buf := s.Internals()[0]
	return []patience.Move{
		{From: from.ID(), To: buf.ID(), N: n},
		{From: to.ID(), To: from.ID(), N: n},
		{From: buf.ID(), To: to.ID(), N: n},
	}
}

// hemispheresFill refills an emptied hemisphere row from the waste, turning
// a talon card first if the waste is empty
func hemispheresFill(s *patience.Session, st *patience.Stack) error {
	if !st.Empty() || !(inNorth(s, st) || inSouth(s, st)) {
		return nil
	}

	waste := s.Waste()
	if waste.Empty() && s.CanDealCards() {
		if _, err := s.DealCards(); err != nil {
			return err
		}
	}
	if waste.Empty() {
		return nil
	}
	return s.FillMove(waste, 1, st)
}
