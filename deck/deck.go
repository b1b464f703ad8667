package deck

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// Deck represents one or more decks of cards.
// The last card is the top of the deck.
type Deck []Card

// New creates n standard decks in deck, suit, rank order
func New(n int) Deck {
	cards := make(Deck, 0, n*CardsPerDeck)
	for d := 0; d < n; d++ {
		for suit := Clubs; suit <= Diamonds; suit++ {
			for rank := Ace; rank <= King; rank++ {
				cards = append(cards, Card{Rank: rank, Suit: suit, Deck: d})
			}
		}
	}
	return cards
}

// NewSeed returns a fresh random seed for Shuffle.
// Seeds stay below 2^53 so they survive a round trip through JSON.
func NewSeed() uint64 {
	return frand.Uint64n(1 << 53)
}

// Shuffle permutes the deck. The same seed always gives the same order.
func (d Deck) Shuffle(seed uint64) {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	rng := frand.NewCustom(key[:], 0, 0)
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Clone returns a copy that can be reordered without touching d
func (d Deck) Clone() []Card {
	out := make([]Card, len(d))
	copy(out, d)
	return out
}
