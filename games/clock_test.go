package games

import (
	"fmt"
	"testing"

	"github.com/minaorangina/patience"
	"github.com/minaorangina/patience/deck"
	utils "github.com/minaorangina/patience/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func start(t *testing.T, def *patience.Definition, seed uint64) *patience.Session {
	t.Helper()

	s := patience.NewSession(def, patience.SessionOpts{Seed: seed})
	require.NoError(t, s.Start())
	return s
}

func top(t *testing.T, st *patience.Stack) deck.Card {
	t.Helper()

	c, ok := st.Top()
	require.True(t, ok, "%s is empty", st)
	return c
}

func TestClockDeal(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		s := start(t, GrandfathersClock(), seed)

		require.Len(t, s.Rows(), 8)
		for _, row := range s.Rows() {
			assert.Equal(t, 5, row.Len())
		}

		require.Len(t, s.Foundations(), 12)
		for i, f := range s.Foundations() {
			require.Equal(t, 1, f.Len())
			assert.Equal(t, deck.Rank(i+2), top(t, f).Rank, "foundation %d", i)
			assert.Equal(t, clockSuits[i%4], top(t, f).Suit, "foundation %d", i)
		}

		assert.True(t, s.Talon().Empty())
		assert.Equal(t, patience.Playing, s.State())
	}
}

func TestClockReorder(t *testing.T) {
	d := deck.New(1)
	d.Shuffle(17)

	got := GrandfathersClock().Reorder(d.Clone())

	require.Len(t, got, deck.CardsPerDeck)
	assert.ElementsMatch(t, []deck.Card(d), got)
	for i := 0; i < 12; i++ {
		utils.AssertTrue(t, isClockCard(got[i]))
		utils.AssertEqual(t, got[i].Rank, deck.King-deck.Rank(i))
	}
	for _, c := range got[12:] {
		utils.AssertEqual(t, isClockCard(c), false)
	}
}

func TestClockPlay(t *testing.T) {
	s := start(t, GrandfathersClock(), 5)
	row := s.Rows()[0]
	kings := s.Foundations()[11]

	t.Run("the king foundation wraps to the ace", func(t *testing.T) {
		require.NoError(t, s.Rig(row, deck.NewCard(deck.Ace, deck.Diamonds)))
		assert.True(t, s.CanMove(row, row.Len()-1, kings))

		require.NoError(t, s.Rig(row, deck.NewCard(deck.Ace, deck.Hearts)))
		assert.False(t, s.CanMove(row, row.Len()-1, kings))
	})

	t.Run("foundations keep their cards", func(t *testing.T) {
		assert.False(t, s.CanMove(kings, 0, s.Rows()[1]))
	})

	t.Run("rows take one card a rank lower in any suit", func(t *testing.T) {
		other := s.Rows()[1]
		require.NoError(t, s.Rig(row, deck.NewCard(deck.Nine, deck.Clubs)))
		require.NoError(t, s.Rig(other, deck.NewCard(deck.Eight, deck.Spades)))
		assert.True(t, s.CanMove(other, other.Len()-1, row))

		require.NoError(t, s.Rig(other, deck.NewCard(deck.Seven, deck.Diamonds)))
		assert.False(t, s.CanMove(other, other.Len()-2, row))
	})

	t.Run("no automatic drops", func(t *testing.T) {
		require.NoError(t, s.Rig(row, deck.NewCard(deck.Ace, deck.Diamonds)))

		n, err := s.AutoDrop()

		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, deck.NewCard(deck.Ace, deck.Diamonds), top(t, row))
	})

	t.Run("every drop scores the same", func(t *testing.T) {
		h, ok := s.Hint()
		require.True(t, ok)
		assert.Equal(t, clockScore, h.Score)
		assert.Equal(t, kings.ID(), h.Move.To)
	})
}

func TestClockHintsDoNotCycle(t *testing.T) {
	s := start(t, GrandfathersClock(), 5)
	for _, row := range s.Rows() {
		require.NoError(t, s.Rig(s.Talon(), row.Cards()...))
	}
	require.NoError(t, s.Rig(s.Rows()[0], deck.NewCard(deck.Nine, deck.Spades), deck.NewCard(deck.Eight, deck.Diamonds)))
	require.NoError(t, s.Rig(s.Rows()[1], deck.NewCard(deck.Nine, deck.Hearts)))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		key := fmt.Sprint(s.Snapshot().Stacks)
		require.False(t, seen[key], "position repeated after %d hints", i)
		seen[key] = true

		h, ok := s.Hint()
		if !ok {
			break
		}
		require.False(t, h.Deal)
		from, _ := s.Stack(h.Move.From)
		to, _ := s.Stack(h.Move.To)
		require.NoError(t, s.ExecuteMove(from, h.Move.N, to))
	}

	_, ok := s.Hint()
	assert.False(t, ok)
}

func TestRankAdjacent(t *testing.T) {
	tt := []struct {
		a, b deck.Rank
		want bool
	}{
		{deck.Five, deck.Six, true},
		{deck.Six, deck.Five, true},
		{deck.King, deck.Ace, false},
		{deck.Ace, deck.King, false},
		{deck.Queen, deck.King, true},
		{deck.Five, deck.Seven, false},
		{deck.Five, deck.Five, false},
	}

	for _, tc := range tt {
		got := rankAdjacent(deck.NewCard(tc.a, deck.Clubs), deck.NewCard(tc.b, deck.Hearts))
		utils.AssertEqual(t, got, tc.want)
	}
}
