package deck

import "fmt"

// CardsPerDeck is the number of cards in one standard deck
const CardsPerDeck = NumSuits * NumRanks

// Card represents a playing card.
// Cards are plain values and compare equal when rank, suit and deck match.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
	Deck int  `json:"deck"`
}

// NewCard constructs a card from the first deck.
// It panics if the rank or suit is out of range.
func NewCard(rank Rank, suit Suit) Card {
	return NewDeckCard(rank, suit, 0)
}

// NewDeckCard constructs a card belonging to deck d
func NewDeckCard(rank Rank, suit Suit, d int) Card {
	if !rank.Valid() || !suit.Valid() || d < 0 {
		panic(fmt.Sprintf("card out of range: rank %d suit %d deck %d", rank, suit, d))
	}
	return Card{Rank: rank, Suit: suit, Deck: d}
}

// Color returns the colour of the card's suit
func (c Card) Color() Color {
	return c.Suit.Color()
}

// ID is unique across all decks in play
func (c Card) ID() int {
	return c.Deck*CardsPerDeck + int(c.Suit)*NumRanks + int(c.Rank) - 1
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Short renders the card compactly, e.g. "Q♥"
func (c Card) Short() string {
	return shortRanks[c.Rank-1] + suitSymbols[c.Suit]
}

var (
	shortRanks  = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	suitSymbols = []string{"♣", "♠", "♥", "♦"}
)
