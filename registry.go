package patience

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/minaorangina/patience/deck"
	"github.com/samber/lo"
)

// GameType classifies a game. Values combine as flags.
type GameType int

const (
	OneDeck GameType = 1 << iota
	TwoDeck
	Open
)

func (t GameType) String() string {
	parts := []string{}
	if t&OneDeck != 0 {
		parts = append(parts, "1 deck")
	}
	if t&TwoDeck != 0 {
		parts = append(parts, "2 decks")
	}
	if t&Open != 0 {
		parts = append(parts, "open")
	}
	return strings.Join(parts, ", ")
}

// SkillLevel is how much a game depends on play rather than the deal
type SkillLevel int

const (
	Luck SkillLevel = iota + 1
	MostlyLuck
	Balanced
	MostlySkill
	Skill
)

var skillNames = []string{"luck only", "mostly luck", "balanced", "mostly skill", "skill only"}

func (l SkillLevel) String() string {
	if l < Luck || l > Skill {
		return "unknown"
	}
	return skillNames[l-1]
}

// AcceptFunc replaces the default acceptance rule of a stack
type AcceptFunc func(s *Session, from, to *Stack, cards []deck.Card) bool

// ComposeFunc expands a move into primitive sub-moves. Returning nil keeps
// the plain transfer.
type ComposeFunc func(s *Session, from, to *Stack, n int) []Move

// Variant is a per-game override attached to stacks through Rules.Variant
type Variant struct {
	Accept  AcceptFunc
	Compose ComposeFunc
}

// HintPolicy lets a game adjust the hint advisor
type HintPolicy struct {
	// ShallMovePile further restricts candidate moves
	ShallMovePile func(s *Session, from, to *Stack, cards []deck.Card) bool
	// DropScore rescores moves onto a foundation
	DropScore func(score int, from, to *Stack, cards []deck.Card) int
}

// Definition describes one game. It is immutable once registered.
type Definition struct {
	ID       int
	Name     string
	AltNames []string
	Type     GameType
	Decks    int
	Redeals  int
	Skill    SkillLevel

	// Layout creates the stacks
	Layout func(l *Layout)
	// Reorder runs after the shuffle and must return a permutation of its input.
	// The last card is dealt first.
	Reorder func(cards []deck.Card) []deck.Card
	// Deal moves cards out of the talon at the start of a game
	Deal func(s *Session) error
	// Fill replenishes a stack that a move emptied
	Fill func(s *Session, st *Stack) error

	Variants  map[string]Variant
	Hint      HintPolicy
	Highlight func(a, b deck.Card) bool
	// NoAutoDrop disables automatic play to the foundations
	NoAutoDrop bool
	// Preference orders the target kinds tried by hints and auto-drop
	Preference []Kind
	// Sample is emitted as an event when a game starts
	Sample string
}

var defaultPreference = []Kind{FoundationStack, RowStack}

func (d *Definition) preference() []Kind {
	if len(d.Preference) == 0 {
		return defaultPreference
	}
	return d.Preference
}

func (d *Definition) validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}
	if d.ID <= 0 {
		return fmt.Errorf("%w: id %d", ErrInvalidDefinition, d.ID)
	}
	if d.Name == "" {
		return fmt.Errorf("%w: game %d has no name", ErrInvalidDefinition, d.ID)
	}
	if d.Decks < 1 {
		return fmt.Errorf("%w: %s needs at least one deck", ErrInvalidDefinition, d.Name)
	}
	if d.Layout == nil || d.Deal == nil {
		return fmt.Errorf("%w: %s needs a layout and a deal", ErrInvalidDefinition, d.Name)
	}

	l := &Layout{}
	d.Layout(l)
	if l.Talon == nil {
		return fmt.Errorf("%w: %s has no talon", ErrInvalidDefinition, d.Name)
	}
	for _, st := range l.stacks {
		if st.rules.Variant == "" {
			continue
		}
		if _, ok := d.Variants[st.rules.Variant]; !ok {
			return fmt.Errorf("%w: %s uses unknown variant %q on %s", ErrInvalidDefinition, d.Name, st.rules.Variant, st.name)
		}
	}

	return nil
}

// Registry maps game ids to definitions. Build one at startup and pass it
// to whatever creates sessions.
type Registry struct {
	mu   sync.RWMutex
	defs map[int]*Definition
}

func NewRegistry() *Registry {
	return &Registry{defs: map[int]*Definition{}}
}

// Register adds a definition. Ids and names (including alternative names) must be unique.
func (r *Registry) Register(d *Definition) error {
	if err := d.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[d.ID]; exists {
		return fmt.Errorf("%w: id %d", ErrDuplicateGame, d.ID)
	}
	for _, name := range append([]string{d.Name}, d.AltNames...) {
		if existing := r.findByName(name); existing != nil {
			return fmt.Errorf("%w: %q clashes with game %d", ErrDuplicateGame, name, existing.ID)
		}
	}

	r.defs[d.ID] = d
	return nil
}

// Find looks a definition up by id
func (r *Registry) Find(id int) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.defs[id]
	return d, ok
}

// FindByName matches the name or an alternative name, ignoring case
func (r *Registry) FindByName(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d := r.findByName(name)
	return d, d != nil
}

func (r *Registry) findByName(name string) *Definition {
	for _, d := range r.defs {
		if strings.EqualFold(d.Name, name) {
			return d
		}
		if lo.ContainsBy(d.AltNames, func(alt string) bool { return strings.EqualFold(alt, name) }) {
			return d
		}
	}
	return nil
}

// Definitions returns every definition ordered by id
func (r *Registry) Definitions() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := lo.Values(r.defs)
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// NewSession creates and deals a game. A deal that breaks an invariant
// returns the error and no session.
func (r *Registry) NewSession(id int, opts SessionOpts) (*Session, error) {
	d, ok := r.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGame, id)
	}

	s := NewSession(d, opts)
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}
