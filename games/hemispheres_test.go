package games

import (
	"testing"

	"github.com/minaorangina/patience"
	"github.com/minaorangina/patience/deck"
	utils "github.com/minaorangina/patience/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHemispheresDeal(t *testing.T) {
	wantFoundations := []deck.Card{
		deck.NewCard(deck.Ace, deck.Hearts), deck.NewCard(deck.Ace, deck.Hearts),
		deck.NewCard(deck.Ace, deck.Diamonds), deck.NewCard(deck.Ace, deck.Diamonds),
		deck.NewCard(deck.King, deck.Clubs), deck.NewCard(deck.King, deck.Clubs),
		deck.NewCard(deck.King, deck.Spades), deck.NewCard(deck.King, deck.Spades),
	}
	wantBarriers := []deck.Card{
		deck.NewCard(deck.King, deck.Diamonds), deck.NewCard(deck.King, deck.Hearts),
		deck.NewCard(deck.Ace, deck.Spades), deck.NewCard(deck.Ace, deck.Clubs),
	}

	for seed := uint64(0); seed < 50; seed++ {
		s := start(t, Hemispheres(), seed)

		require.Len(t, s.Foundations(), 8)
		for i, f := range s.Foundations() {
			require.Equal(t, 1, f.Len())
			c := top(t, f)
			assert.Equal(t, wantFoundations[i].Rank, c.Rank, "seed %d foundation %d", seed, i)
			assert.Equal(t, wantFoundations[i].Suit, c.Suit, "seed %d foundation %d", seed, i)
		}

		require.Len(t, s.Rows(), barriers+2*hemisphereRows)
		for i, row := range s.Rows() {
			require.Equal(t, 1, row.Len())
			if i < barriers {
				assert.Equal(t, []deck.Card{wantBarriers[i]}, row.Cards())
				continue
			}
			assert.False(t, startsFoundation(top(t, row)), "seed %d: %s on %s", seed, top(t, row), row)
		}

		assert.Equal(t, 1, s.Waste().Len())
		assert.Equal(t, 2*deck.CardsPerDeck-8-16-1, s.Talon().Len())
		assert.True(t, s.Internals()[0].Empty())
	}
}

func TestHemispheresReorder(t *testing.T) {
	d := deck.New(2)
	d.Shuffle(3)

	got := hemispheresReorder(d.Clone())

	require.Len(t, got, 2*deck.CardsPerDeck)
	assert.ElementsMatch(t, []deck.Card(d), got)

	tail := got[len(got)-12:]
	for _, c := range tail[:4] {
		utils.AssertTrue(t, startsBarrier(c))
	}
	for _, c := range tail[4:] {
		utils.AssertTrue(t, startsFoundation(c))
	}
	for _, c := range got[:len(got)-12] {
		utils.AssertEqual(t, startsFoundation(c) || startsBarrier(c), false)
	}
}

// hemispheres returns a session whose first north and south rows hold the
// given cards
func hemispheres(t *testing.T, north, south deck.Card) *patience.Session {
	t.Helper()

	s := start(t, Hemispheres(), 4)
	n, so := northRows(s)[0], southRows(s)[0]
	require.NoError(t, s.Rig(s.Talon(), n.Cards()...))
	require.NoError(t, s.Rig(s.Talon(), so.Cards()...))
	require.NoError(t, s.Rig(n, north))
	require.NoError(t, s.Rig(so, south))
	return s
}

func TestHemispheresSwap(t *testing.T) {
	black := deck.NewCard(deck.Seven, deck.Clubs)
	red := deck.NewCard(deck.Nine, deck.Hearts)

	t.Run("a stranded pair changes places", func(t *testing.T) {
		s := hemispheres(t, black, red)
		north, south := northRows(s)[0], southRows(s)[0]

		require.True(t, s.CanMove(south, 0, north))
		require.NoError(t, s.ExecuteMove(south, 1, north))

		assert.Equal(t, []deck.Card{red}, north.Cards())
		assert.Equal(t, []deck.Card{black}, south.Cards())
		assert.True(t, s.Internals()[0].Empty())
		assert.Equal(t, patience.Playing, s.State())
		assert.Equal(t, 1, s.Moves())
		assert.Equal(t, []patience.Move{{From: south.ID(), To: north.ID(), N: 1}}, s.History())
	})

	t.Run("either card may be moved", func(t *testing.T) {
		s := hemispheres(t, black, red)
		north, south := northRows(s)[0], southRows(s)[0]

		require.NoError(t, s.ExecuteMove(north, 1, south))

		assert.Equal(t, []deck.Card{red}, north.Cards())
		assert.Equal(t, []deck.Card{black}, south.Cards())
	})

	t.Run("cards already home stay", func(t *testing.T) {
		s := hemispheres(t, deck.NewCard(deck.Seven, deck.Hearts), red)
		north, south := northRows(s)[0], southRows(s)[0]
		before := s.Snapshot()

		assert.ErrorIs(t, s.ExecuteMove(south, 1, north), patience.ErrIllegalMove)
		assert.Equal(t, before, s.Snapshot())
	})

	t.Run("only single cards swap", func(t *testing.T) {
		s := hemispheres(t, black, red)
		north, south := northRows(s)[0], southRows(s)[0]
		require.NoError(t, s.Rig(south, deck.NewCard(deck.Ten, deck.Hearts)))

		assert.False(t, canSwapPair(s, south, north))
		assert.False(t, s.CanMove(south, 1, north))
	})
}

func TestHemisphereAccepts(t *testing.T) {
	s := hemispheres(t, deck.NewCard(deck.Nine, deck.Hearts), deck.NewCard(deck.Seven, deck.Clubs))
	north, south := northRows(s)[0], southRows(s)[0]
	waste := s.Waste()

	tt := []struct {
		name     string
		from, to *patience.Stack
		card     deck.Card
		want     bool
	}{
		{"north builds down in red from the waste", waste, north, deck.NewCard(deck.Eight, deck.Diamonds), true},
		{"north refuses black", waste, north, deck.NewCard(deck.Eight, deck.Spades), false},
		{"north refuses building up", waste, north, deck.NewCard(deck.Ten, deck.Diamonds), false},
		{"north takes from the north", northRows(s)[1], north, deck.NewCard(deck.Eight, deck.Hearts), true},
		{"north refuses the south", southRows(s)[1], north, deck.NewCard(deck.Eight, deck.Hearts), false},
		{"south builds up in black from the waste", waste, south, deck.NewCard(deck.Eight, deck.Spades), true},
		{"south refuses red", waste, south, deck.NewCard(deck.Eight, deck.Hearts), false},
		{"south takes from the south", southRows(s)[1], south, deck.NewCard(deck.Eight, deck.Clubs), true},
		{"barriers take nothing", waste, s.Rows()[0], deck.NewCard(deck.Queen, deck.Diamonds), false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, s.Rig(tc.from, tc.card))

			assert.Equal(t, tc.want, s.CanMove(tc.from, tc.from.Len()-1, tc.to))
			require.NoError(t, s.Rig(s.Talon(), tc.card))
		})
	}
}

func TestHemispheresFill(t *testing.T) {
	t.Run("an emptied row takes the waste card", func(t *testing.T) {
		s := hemispheres(t, deck.NewCard(deck.Two, deck.Hearts), deck.NewCard(deck.Seven, deck.Clubs))
		north := northRows(s)[0]
		hearts := s.Foundations()[0]
		want, ok := s.Waste().Top()
		if !ok {
			want = top(t, s.Talon())
		}

		require.NoError(t, s.ExecuteMove(north, 1, hearts))

		assert.Equal(t, []deck.Card{want}, north.Cards())
		assert.Equal(t, 2, hearts.Len())
		assert.Equal(t, patience.Playing, s.State())
	})

	t.Run("an empty waste is dealt to first", func(t *testing.T) {
		s := hemispheres(t, deck.NewCard(deck.Two, deck.Hearts), deck.NewCard(deck.Seven, deck.Clubs))
		north := northRows(s)[0]
		require.NoError(t, s.Rig(s.Talon(), s.Waste().Cards()...))
		want := top(t, s.Talon())
		talon := s.Talon().Len()

		require.NoError(t, s.ExecuteMove(north, 1, s.Foundations()[0]))

		assert.Equal(t, []deck.Card{want}, north.Cards())
		assert.Equal(t, talon-1, s.Talon().Len())
		assert.True(t, s.Waste().Empty())
	})

	t.Run("nothing left to fill with", func(t *testing.T) {
		s := hemispheres(t, deck.NewCard(deck.Two, deck.Hearts), deck.NewCard(deck.Seven, deck.Clubs))
		north := northRows(s)[0]
		barrier := s.Rows()[0]
		require.NoError(t, s.Rig(barrier, s.Talon().Cards()...))
		require.NoError(t, s.Rig(barrier, s.Waste().Cards()...))

		require.NoError(t, s.ExecuteMove(north, 1, s.Foundations()[0]))

		assert.True(t, north.Empty())
		assert.Equal(t, patience.Playing, s.State())
	})

	t.Run("barriers are not refilled", func(t *testing.T) {
		s := start(t, Hemispheres(), 4)
		barrier := s.Rows()[2]
		require.Equal(t, deck.NewCard(deck.Ace, deck.Spades), top(t, barrier))
		require.NoError(t, s.Rig(s.Foundations()[6], deck.NewCard(deck.Two, deck.Spades)))
		waste := s.Waste().Len()

		require.NoError(t, s.ExecuteMove(barrier, 1, s.Foundations()[6]))

		assert.True(t, barrier.Empty())
		assert.Equal(t, waste, s.Waste().Len())
	})
}

func TestHemispheresHint(t *testing.T) {
	s := hemispheres(t, deck.NewCard(deck.Nine, deck.Hearts), deck.NewCard(deck.Seven, deck.Clubs))
	north := northRows(s)[0]
	other := northRows(s)[1]
	policy := Hemispheres().Hint.ShallMovePile

	require.NoError(t, s.Rig(s.Talon(), other.Cards()...))
	require.NoError(t, s.Rig(other, deck.NewCard(deck.Eight, deck.Hearts)))
	utils.AssertTrue(t, policy(s, other, north, other.Cards()))

	require.NoError(t, s.Rig(other, deck.NewCard(deck.Seven, deck.Hearts)))
	utils.AssertEqual(t, policy(s, other, north, other.Cards()[1:]), false)
	utils.AssertTrue(t, policy(s, s.Waste(), north, s.Waste().Cards()))
}

func TestHemispheresHighlight(t *testing.T) {
	match := Hemispheres().Highlight

	utils.AssertTrue(t, match(deck.NewCard(deck.Five, deck.Hearts), deck.NewCard(deck.Six, deck.Diamonds)))
	utils.AssertEqual(t, match(deck.NewCard(deck.Five, deck.Hearts), deck.NewCard(deck.Six, deck.Clubs)), false)
	utils.AssertEqual(t, match(deck.NewCard(deck.King, deck.Spades), deck.NewCard(deck.Ace, deck.Clubs)), false)
}
