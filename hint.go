package patience

import (
	"github.com/minaorangina/patience/deck"
	"github.com/samber/lo"
)

const (
	dropScore  = 90000
	wasteScore = 50000
	rowScore   = 40000
	emptyBonus = 1000
	emptyCost  = 5000
	dealScore  = 1
)

// Hint is a suggested move, or a talon deal when Deal is set
type Hint struct {
	Move  Move `json:"move"`
	Deal  bool `json:"deal"`
	Score int  `json:"score"`
}

// dropStacks are the stacks a player may take cards from
func (s *Session) dropStacks() []*Stack {
	stacks := append([]*Stack{}, s.layout.Rows...)
	if s.layout.Waste != nil {
		stacks = append(stacks, s.layout.Waste)
	}
	return stacks
}

// targets lists candidate destinations in the definition's preference order
func (s *Session) targets() []*Stack {
	out := []*Stack{}
	for _, kind := range s.def.preference() {
		out = append(out, lo.Filter(s.layout.stacks, func(st *Stack, _ int) bool { return st.kind == kind })...)
	}
	return out
}

// shallMovePile skips moves that only shuffle a whole pile onto an empty
// stack of the same kind, and moves the player could undo straight away
func (s *Session) shallMovePile(from, to *Stack, cards []deck.Card) bool {
	if to.Empty() && len(cards) == from.Len() && from.kind == to.kind {
		return false
	}
	if s.movesBack(from, to, cards) {
		return false
	}
	if p := s.def.Hint.ShallMovePile; p != nil {
		return p(s, from, to, cards)
	}
	return true
}

// movesBack reports whether the cards left on from would take cards back
// from to once they had moved there
func (s *Session) movesBack(from, to *Stack, cards []deck.Card) bool {
	rest := from.Len() - len(cards)
	if rest == 0 || len(cards) > to.rules.MaxMove {
		return false
	}

	left := *from
	left.cards = from.cards[:rest:rest]
	return s.AcceptsCards(to, &left, cards)
}

// composed reports whether the move runs as the variant's sub-moves
// rather than a plain transfer
func (s *Session) composed(from, to *Stack, n int) bool {
	v := s.variant(from)
	return v.Compose != nil && len(v.Compose(s, from, to, n)) > 0
}

func (s *Session) score(from, to *Stack, cards []deck.Card) int {
	clears := len(cards) == from.Len() && !s.composed(from, to, len(cards))

	if to.kind == FoundationStack {
		score := dropScore
		if clears {
			score += emptyBonus
		}
		if p := s.def.Hint.DropScore; p != nil {
			score = p(score, from, to, cards)
		}
		return score
	}

	score := rowScore
	if from.kind == WasteStack {
		score = wasteScore
	}
	if clears {
		score += emptyBonus
	}
	if to.Empty() {
		score -= emptyCost
	}
	return score
}

// Hint suggests the best scoring move. It does not change the session.
// The second result is false when nothing beats doing nothing.
func (s *Session) Hint() (Hint, bool) {
	if s.state != Playing {
		return Hint{}, false
	}

	var best Hint
	for _, from := range s.dropStacks() {
		for index := from.Len() - 1; index >= 0; index-- {
			n := from.Len() - index
			if n > from.rules.MaxMove {
				break
			}
			cards := from.Cards()[index:]

			for _, to := range s.targets() {
				if !s.CanMove(from, index, to) || !s.shallMovePile(from, to, cards) {
					continue
				}
				if score := s.score(from, to, cards); score > best.Score {
					best = Hint{Move: Move{From: from.id, To: to.id, N: n}, Score: score}
				}
			}
		}
	}

	if best.Score == 0 && s.CanDealCards() {
		best = Hint{Deal: true, Score: dealScore}
	}

	return best, best.Score > 0
}

// AutoDrop plays cards from the drop stacks to the foundations until none
// fit, trying foundations in the definition's preference order. Games
// that set NoAutoDrop are left alone.
func (s *Session) AutoDrop() (int, error) {
	if s.def.NoAutoDrop {
		return 0, nil
	}
	if err := s.checkInPlay(); err != nil {
		return 0, err
	}

	foundations := lo.Filter(s.targets(), func(st *Stack, _ int) bool { return st.kind == FoundationStack })

	dropped := 0
	for s.state == Playing {
		moved := false
		for _, from := range s.dropStacks() {
			if from.Empty() {
				continue
			}
			to, ok := lo.Find(foundations, func(f *Stack) bool {
				return s.CanMove(from, from.Len()-1, f)
			})
			if !ok {
				continue
			}
			if err := s.ExecuteMove(from, 1, to); err != nil {
				return dropped, err
			}
			dropped++
			moved = true
			break
		}
		if !moved {
			break
		}
	}

	return dropped, nil
}
