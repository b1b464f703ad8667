package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/patience"
	"github.com/minaorangina/patience/deck"
	"github.com/minaorangina/patience/games"
	utils "github.com/minaorangina/patience/internal"
	"github.com/minaorangina/patience/store"
	"github.com/stretchr/testify/require"
)

const brokenID = 9999

// brokenGame accepts any move between its two rows, then composes it into
// a transfer that cannot happen
func brokenGame() *patience.Definition {
	return &patience.Definition{
		ID:    brokenID,
		Name:  "Broken",
		Decks: 1,
		Layout: func(l *patience.Layout) {
			for i := 0; i < 2; i++ {
				r := patience.RowRules(patience.RankOnly)
				r.Variant = "broken"
				l.AddRow(r)
			}
			l.SetTalon(1)
		},
		Deal: func(s *patience.Session) error {
			_, err := s.DealRow()
			return err
		},
		Variants: map[string]patience.Variant{
			"broken": {
				Accept: func(*patience.Session, *patience.Stack, *patience.Stack, []deck.Card) bool { return true },
				Compose: func(s *patience.Session, from, to *patience.Stack, n int) []patience.Move {
					return []patience.Move{{From: from.ID(), To: to.ID(), N: 99}}
				},
			},
		},
	}
}

func newTestServer(t *testing.T, limit int) *GameServer {
	t.Helper()

	r, err := games.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, r.Register(brokenGame()))

	return NewServer(ServerOpts{
		Registry:     r,
		Store:        store.NewInMemorySessionStore(limit),
		DefaultGame:  games.ClockID,
		MaxFillSteps: 64,
	})
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewBuffer(body)
	}
	request := httptest.NewRequest(method, path, reader)
	response := httptest.NewRecorder()
	h.ServeHTTP(response, request)
	return response
}

func decode[T any](t *testing.T, response *httptest.ResponseRecorder) T {
	t.Helper()

	var got T
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &got), response.Body.String())
	return got
}

// newSession deals a game and returns its id and first snapshot
func newSession(t *testing.T, h http.Handler, gameID int, seed uint64) (string, patience.Snapshot) {
	t.Helper()

	response := do(t, h, http.MethodPost, "/new", mustMakeJson(t, NewSessionReq{GameID: gameID, Seed: &seed}))
	require.Equal(t, http.StatusCreated, response.Code, response.Body.String())

	res := decode[NewSessionRes](t, response)
	return res.SessionID, res.Snapshot
}

func stackOf(snap patience.Snapshot, kind patience.Kind) patience.StackSnapshot {
	for _, st := range snap.Stacks {
		if st.Kind == kind {
			return st
		}
	}
	return patience.StackSnapshot{}
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		code := 0
		var body []byte
		if resp != nil {
			code = resp.StatusCode
			body, _ = io.ReadAll(resp.Body)
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %s, %v", url, code, body, err)
	}

	return ws
}

func makeWSUrl(serverURL, sessionID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?session_id=" + sessionID
}
