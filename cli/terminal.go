package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/minaorangina/patience"
	"github.com/rs/zerolog/log"
)

var ErrBadCommand = errors.New("bad command")

const (
	helpText   = "commands: m <from> <index> <to>, d (deal), h (hint), a (autodrop), s (show), ? (help), q (quit)\n"
	promptText = "> "
	wonText    = "You won in %d moves 🎉\n"
	noHintText = "No moves left\n"
	byeText    = "Bye\n"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// Terminal plays one session over a line-based text connection
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out}
}

// Play reads commands until the game is won, the player quits or the
// input runs out. Mistakes are reported and play goes on; only an
// aborted session ends play with an error.
func (t *Terminal) Play(s *patience.Session) error {
	reader := bufio.NewScanner(t.In)

	t.show(s)
	SendText(t.Out, helpText)

	for !s.Won() {
		SendText(t.Out, promptText)
		if !reader.Scan() {
			return reader.Err()
		}

		fields := strings.Fields(reader.Text())
		if len(fields) == 0 {
			continue
		}

		quit, err := t.run(s, fields)
		if err != nil {
			if patience.Fatal(err) {
				return err
			}
			log.Debug().Err(err).Str("input", reader.Text()).Msg("rejected command")
			SendText(t.Out, "%s\n", err)
			continue
		}
		if quit {
			SendText(t.Out, byeText)
			return nil
		}
	}

	SendText(t.Out, wonText, s.Moves())
	return nil
}

func (t *Terminal) run(s *patience.Session, fields []string) (bool, error) {
	switch fields[0] {
	case "q", "quit":
		return true, nil

	case "?", "help":
		SendText(t.Out, helpText)

	case "s", "show":
		t.show(s)

	case "h", "hint":
		t.hint(s)

	case "d", "deal":
		if err := s.DealTalon(); err != nil {
			return false, err
		}
		t.show(s)

	case "a", "autodrop":
		n, err := s.AutoDrop()
		if err != nil {
			return false, err
		}
		SendText(t.Out, "Dropped %d card(s)\n", n)
		t.show(s)

	case "m", "move":
		args, err := parseInts(fields[1:], 3)
		if err != nil {
			return false, err
		}
		if err := s.Play(args[0], args[1], args[2]); err != nil {
			return false, err
		}
		t.show(s)

	default:
		return false, fmt.Errorf("%w: %q", ErrBadCommand, fields[0])
	}

	return false, nil
}

func (t *Terminal) show(s *patience.Session) {
	if err := patience.Render(t.Out, s.Snapshot()); err != nil {
		log.Warn().Err(err).Msg("could not render")
	}
}

func (t *Terminal) hint(s *patience.Session) {
	h, ok := s.Hint()
	if !ok {
		SendText(t.Out, noHintText)
		return
	}
	if h.Deal {
		SendText(t.Out, "Deal from the talon\n")
		return
	}

	from, _ := s.Stack(h.Move.From)
	to, _ := s.Stack(h.Move.To)
	SendText(t.Out, "Move %d card(s) from %s to %s: m %d %d %d\n",
		h.Move.N, from.Name(), to.Name(), h.Move.From, from.Len()-h.Move.N, h.Move.To)
}

func parseInts(fields []string, n int) ([]int, error) {
	if len(fields) != n {
		return nil, fmt.Errorf("%w: expected %d numbers, got %d", ErrBadCommand, n, len(fields))
	}

	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrBadCommand, f)
		}
		out[i] = v
	}
	return out, nil
}
