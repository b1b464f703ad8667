package patience

import (
	"testing"

	"github.com/minaorangina/patience/deck"
	"github.com/stretchr/testify/require"
)

// stack ids of testDefinition
const (
	clubsFoundation = 0
	firstRow        = 4
	talonID         = 8
	wasteID         = 9
	internalID      = 10
)

// testDefinition is Klondike-like: four suit foundations, four alternate
// colour rows that move whole runs, a talon with a waste and a buffer
func testDefinition() *Definition {
	return &Definition{
		ID:    1,
		Name:  "Test",
		Decks: 1,
		Skill: Balanced,
		Layout: func(l *Layout) {
			for suit := deck.Clubs; suit <= deck.Diamonds; suit++ {
				l.AddFoundation(FoundationRules(suit))
			}
			for i := 0; i < 4; i++ {
				r := RowRules(AlternateColor)
				r.MaxMove = deck.NumRanks
				r.MaxAccept = deck.NumRanks
				l.AddRow(r)
			}
			l.SetTalon(2)
			l.SetWaste()
			l.AddInternal()
		},
		Deal: func(s *Session) error {
			_, err := s.DealRow()
			return err
		},
	}
}

type recorder struct {
	events []Event
}

func (r *recorder) Emit(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) names() []string {
	names := []string{}
	for _, e := range r.events {
		names = append(names, e.Name)
	}
	return names
}

func startSession(t *testing.T, def *Definition, opts SessionOpts) *Session {
	t.Helper()

	s := NewSession(def, opts)
	require.NoError(t, s.Start())
	return s
}

// clearRows puts every row card back on the talon
func clearRows(t *testing.T, s *Session) {
	t.Helper()

	for _, row := range s.Rows() {
		require.NoError(t, s.Rig(s.Talon(), row.Cards()...))
	}
}

func card(r deck.Rank, suit deck.Suit) deck.Card {
	return deck.NewCard(r, suit)
}

func mustStack(t *testing.T, s *Session, id int) *Stack {
	t.Helper()

	st, err := s.Stack(id)
	require.NoError(t, err)
	return st
}
