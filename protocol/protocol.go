package protocol

import "fmt"

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	Snapshot
	Move
	Deal
	Hint
	AutoDrop
	// sent by the server only
	Event
	Error
)

var cmdNames = []string{
	"Null",
	"Snapshot",
	"Move",
	"Deal",
	"Hint",
	"AutoDrop",
	"Event",
	"Error",
}

func (c Cmd) String() string {
	if c < Null || int(c) >= len(cmdNames) {
		return fmt.Sprintf("Cmd(%d)", int(c))
	}
	return cmdNames[c]
}
