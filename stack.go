package patience

import (
	"fmt"

	"github.com/minaorangina/patience/deck"
)

// Kind is the role a stack plays in a layout
type Kind int

const (
	TalonStack Kind = iota
	WasteStack
	FoundationStack
	RowStack
	InternalStack
)

var kindNames = []string{"talon", "waste", "foundation", "row", "internal"}

func (k Kind) String() string {
	if k < TalonStack || k > InternalStack {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown stack kind %q", b)
}

// Stack is an ordered pile of cards. The last card is the top.
// Only the session that owns a stack changes its contents.
type Stack struct {
	id    int
	name  string
	kind  Kind
	rules Rules
	cards []deck.Card
}

func (s *Stack) ID() int {
	return s.id
}

func (s *Stack) Name() string {
	return s.name
}

func (s *Stack) Kind() Kind {
	return s.kind
}

func (s *Stack) Rules() Rules {
	return s.rules
}

func (s *Stack) Len() int {
	return len(s.cards)
}

func (s *Stack) Empty() bool {
	return len(s.cards) == 0
}

// Top returns the top card, if there is one
func (s *Stack) Top() (deck.Card, bool) {
	if len(s.cards) == 0 {
		return deck.Card{}, false
	}
	return s.cards[len(s.cards)-1], true
}

// Cards returns a copy of the stack's contents, bottom first
func (s *Stack) Cards() []deck.Card {
	out := make([]deck.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

func (s *Stack) String() string {
	return s.name
}

// Layout collects the stacks of a game while it is being created.
// Stack IDs are assigned in creation order.
type Layout struct {
	Talon       *Stack
	Waste       *Stack
	Foundations []*Stack
	Rows        []*Stack
	Internals   []*Stack

	stacks []*Stack
}

func (l *Layout) add(kind Kind, name string, r Rules) *Stack {
	s := &Stack{id: len(l.stacks), name: name, kind: kind, rules: r}
	l.stacks = append(l.stacks, s)
	return s
}

// AddFoundation appends a foundation
func (l *Layout) AddFoundation(r Rules) *Stack {
	s := l.add(FoundationStack, fmt.Sprintf("foundation %d", len(l.Foundations)), r)
	l.Foundations = append(l.Foundations, s)
	return s
}

// AddRow appends a row
func (l *Layout) AddRow(r Rules) *Stack {
	s := l.add(RowStack, fmt.Sprintf("row %d", len(l.Rows)), r)
	l.Rows = append(l.Rows, s)
	return s
}

// AddInternal appends a hidden buffer stack for composite moves
func (l *Layout) AddInternal() *Stack {
	s := l.add(InternalStack, fmt.Sprintf("internal %d", len(l.Internals)), InternalRules())
	l.Internals = append(l.Internals, s)
	return s
}

// SetTalon creates the talon. rounds is the number of passes through the deck.
func (l *Layout) SetTalon(rounds int) *Stack {
	l.Talon = l.add(TalonStack, "talon", TalonRules(rounds))
	return l.Talon
}

// SetWaste creates the waste stack fed by the talon
func (l *Layout) SetWaste() *Stack {
	l.Waste = l.add(WasteStack, "waste", WasteRules())
	return l.Waste
}

// Stacks returns every stack in creation order
func (l *Layout) Stacks() []*Stack {
	return l.stacks
}
