package live

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Dosada05/volley-coach/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(testLogger())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

// addClient registers a connectionless client, enough to observe the room traffic.
func addClient(t *testing.T, hub *Hub, room string) *Client {
	t.Helper()
	c := &Client{hub: hub, send: make(chan []byte, sendBuffer), room: room}
	hub.register <- c
	waitFor(t, func() bool { return hub.RoomSize(room) > 0 })
	return c
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data, ok := <-c.send:
		if !ok {
			t.Fatal("send channel closed")
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
	return Message{}
}

func TestNotifyMatchReachesOnlyItsRoom(t *testing.T) {
	hub := startHub(t)
	watcher := addClient(t, hub, MatchRoom("m1"))
	other := addClient(t, hub, MatchRoom("m2"))

	hub.NotifyMatch(MatchUpdated, &models.Match{ID: "m1", Opponent: "Rivales"})

	msg := receive(t, watcher)
	if msg.Type != MatchUpdated || msg.RoomID != "match_m1" {
		t.Errorf("unexpected message %+v", msg)
	}
	payload, _ := msg.Payload.(map[string]interface{})
	if payload["opponent"] != "Rivales" {
		t.Errorf("payload = %v", msg.Payload)
	}

	select {
	case data := <-other.send:
		t.Errorf("client in another room received %s", data)
	default:
	}
}

func TestUnregisterClosesClient(t *testing.T) {
	hub := startHub(t)
	room := MatchRoom("m1")
	c := addClient(t, hub, room)

	hub.unregister <- c
	waitFor(t, func() bool { return hub.RoomSize(room) == 0 })

	if _, ok := <-c.send; ok {
		t.Error("send channel still open after unregister")
	}

	// Broadcasting to an empty room is a no-op.
	hub.NotifyMatch(MatchDeleted, &models.Match{ID: "m1"})
}

func TestRunClosesClientsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(testLogger())
	go hub.Run(ctx)

	c := &Client{hub: hub, send: make(chan []byte, 1), room: "match_x"}
	hub.register <- c
	cancel()

	select {
	case <-hub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	if _, ok := <-c.send; ok {
		t.Error("client left open after shutdown")
	}
}
