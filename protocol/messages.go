package protocol

import "github.com/minaorangina/patience"

// InboundMessage is a message from a player to a session
type InboundMessage struct {
	Command Cmd `json:"command"`
	// Move only
	From  int `json:"from"`
	Index int `json:"index"`
	To    int `json:"to"`
}

// OutboundMessage is a message from a session to its players
type OutboundMessage struct {
	Command   Cmd                `json:"command"`
	SessionID string             `json:"sessionID"`
	Snapshot  *patience.Snapshot `json:"snapshot,omitempty"`
	Event     *patience.Event    `json:"event,omitempty"`
	Hint      *patience.Hint     `json:"hint,omitempty"`
	Dropped   int                `json:"dropped,omitempty"`
	Error     string             `json:"error,omitempty"`
}
