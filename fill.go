package patience

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// notifyEmptied queues emptied stacks for the definition's Fill hook and,
// unless a fill is already running, drains the queue. Stacks emptied while
// filling join the queue rather than recursing.
func (s *Session) notifyEmptied(stacks []*Stack) error {
	if s.def.Fill == nil || len(stacks) == 0 {
		return nil
	}

	s.fillQueue = append(s.fillQueue, stacks...)
	if s.state == Filling {
		return nil
	}

	old := s.enterState(Filling)
	defer s.leaveState(old)

	for steps := 0; len(s.fillQueue) > 0; steps++ {
		if steps >= s.maxFillSteps {
			s.fillQueue = nil
			return fmt.Errorf("%w: %s still filling after %d steps", ErrReentrancyOverflow, s.def.Name, steps)
		}

		st := s.fillQueue[0]
		s.fillQueue = s.fillQueue[1:]

		if err := s.def.Fill(s, st); err != nil {
			s.fillQueue = nil
			if errors.Is(err, ErrInvariantViolation) {
				return err
			}
			return fmt.Errorf("%w: filling %s: %w", ErrInvariantViolation, st, err)
		}
		log.Debug().Int("game", s.def.ID).Str("stack", st.name).Int("step", steps).Msg("fill")
	}

	return nil
}
