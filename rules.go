package patience

import (
	"github.com/minaorangina/patience/deck"
)

// Sequence is the building policy of a stack
type Sequence int

const (
	// RankOnly builds by rank regardless of suit
	RankOnly Sequence = iota
	SameSuit
	AlternateColor
	SameColor
)

const (
	AnySuit deck.Suit = -1
	AnyRank deck.Rank = 0
)

// Rules parametrise what a stack accepts and gives up.
// Dir is the rank step between consecutive cards: 1 builds up, -1 down, 0 same rank.
// Mod wraps ranks round (13 lets a King be followed by an Ace); 0 disables wrapping.
// MaxCards of 0 means unbounded.
type Rules struct {
	Sequence  Sequence
	Suit      deck.Suit
	BaseRank  deck.Rank
	Dir       int
	Mod       int
	MaxMove   int
	MaxAccept int
	MaxCards  int
	MaxRounds int
	// Variant names a per-game override registered on the Definition
	Variant string
}

// FoundationRules builds a same-suit foundation up from the Ace
func FoundationRules(suit deck.Suit) Rules {
	return Rules{
		Sequence:  SameSuit,
		Suit:      suit,
		BaseRank:  deck.Ace,
		Dir:       1,
		MaxMove:   0,
		MaxAccept: 1,
		MaxCards:  deck.NumRanks,
	}
}

// RowRules builds down by the given sequence; an empty row takes any card
func RowRules(seq Sequence) Rules {
	return Rules{
		Sequence:  seq,
		Suit:      AnySuit,
		BaseRank:  AnyRank,
		Dir:       -1,
		MaxMove:   1,
		MaxAccept: 1,
	}
}

func TalonRules(rounds int) Rules {
	return Rules{Suit: AnySuit, MaxRounds: rounds}
}

func WasteRules() Rules {
	return Rules{Suit: AnySuit, MaxMove: 1}
}

func InternalRules() Rules {
	return Rules{Suit: AnySuit}
}

func (r Rules) rankFollows(prev, next deck.Rank) bool {
	if r.Mod > 0 {
		want := ((int(prev)-1+r.Dir)%r.Mod+r.Mod)%r.Mod + 1
		return int(next) == want
	}
	return int(next) == int(prev)+r.Dir
}

// follows reports whether next may sit directly on prev
func (r Rules) follows(prev, next deck.Card) bool {
	if !r.rankFollows(prev.Rank, next.Rank) {
		return false
	}

	switch r.Sequence {
	case SameSuit:
		return prev.Suit == next.Suit
	case AlternateColor:
		return prev.Color() != next.Color()
	case SameColor:
		return prev.Color() == next.Color()
	}

	return true
}

// IsSequence reports whether cards, bottom first, form a run under r
func (r Rules) IsSequence(cards []deck.Card) bool {
	for i := 1; i < len(cards); i++ {
		if !r.follows(cards[i-1], cards[i]) {
			return false
		}
	}
	return true
}

// DefaultAccepts is the acceptance rule every stack uses unless its
// variant overrides it. It never changes the stack.
func DefaultAccepts(to *Stack, cards []deck.Card) bool {
	r := to.rules
	if len(cards) == 0 || len(cards) > r.MaxAccept {
		return false
	}
	if r.MaxCards > 0 && len(to.cards)+len(cards) > r.MaxCards {
		return false
	}
	if r.Suit != AnySuit {
		for _, c := range cards {
			if c.Suit != r.Suit {
				return false
			}
		}
	}

	top, ok := to.Top()
	if !ok {
		if r.BaseRank != AnyRank && cards[0].Rank != r.BaseRank {
			return false
		}
		return r.IsSequence(cards)
	}

	run := make([]deck.Card, 0, len(cards)+1)
	run = append(run, top)
	run = append(run, cards...)
	return r.IsSequence(run)
}
