package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/minaorangina/patience"
	"github.com/minaorangina/patience/protocol"
	"github.com/minaorangina/patience/store"
	"github.com/rs/zerolog/log"
)

// HandleWS streams a session's events and snapshots and takes commands
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session_id")
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("missing session ID"))
		return
	}

	entry, err := g.store.Find(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	h, ok := g.hub(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w '%s'", store.ErrUnknownSessionID, id))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("could not upgrade to websocket")
		return
	}

	c := newClient(conn)
	if !h.register(c) {
		conn.Close()
		return
	}
	go c.writePump()
	log.Debug().Str("session", id).Msg("client connected")

	h.sendTo(c, protocol.OutboundMessage{Command: protocol.Snapshot, Snapshot: ptr(entry.Snapshot())})

	c.readPump(func(data []byte) {
		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendTo(c, protocol.OutboundMessage{Command: protocol.Error, Error: "malformed message"})
			return
		}
		g.handleInbound(h, c, entry, msg)
	})

	h.unregister(c)
	log.Debug().Str("session", id).Msg("client disconnected")
}

// handleInbound runs a command. Changes are broadcast to every client of
// the session; hints and errors go to the sender only.
func (g *GameServer) handleInbound(h *hub, c *client, entry *store.Entry, msg protocol.InboundMessage) {
	var reply protocol.OutboundMessage
	broadcast := false

	err := entry.Do(func(s *patience.Session) error {
		switch msg.Command {
		case protocol.Snapshot:
			reply = protocol.OutboundMessage{Command: protocol.Snapshot, Snapshot: ptr(s.Snapshot())}

		case protocol.Move:
			if err := s.Play(msg.From, msg.Index, msg.To); err != nil {
				return err
			}
			reply = protocol.OutboundMessage{Command: protocol.Snapshot, Snapshot: ptr(s.Snapshot())}
			broadcast = true

		case protocol.Deal:
			if err := s.DealTalon(); err != nil {
				return err
			}
			reply = protocol.OutboundMessage{Command: protocol.Snapshot, Snapshot: ptr(s.Snapshot())}
			broadcast = true

		case protocol.AutoDrop:
			n, err := s.AutoDrop()
			if err != nil {
				return err
			}
			reply = protocol.OutboundMessage{Command: protocol.AutoDrop, Dropped: n, Snapshot: ptr(s.Snapshot())}
			broadcast = true

		case protocol.Hint:
			reply = protocol.OutboundMessage{Command: protocol.Hint}
			if hint, ok := s.Hint(); ok {
				reply.Hint = &hint
			}

		default:
			return fmt.Errorf("unknown command %s", msg.Command)
		}
		return nil
	})

	if err != nil {
		h.sendTo(c, protocol.OutboundMessage{Command: protocol.Error, Error: err.Error()})
		if patience.Fatal(err) {
			g.drop(entry.ID)
		}
		return
	}

	if broadcast {
		h.send(reply)
		return
	}
	h.sendTo(c, reply)
}

func ptr[T any](v T) *T {
	return &v
}
