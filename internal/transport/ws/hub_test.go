package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 200 * time.Millisecond

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	return hub
}

func connect(t *testing.T, hub *Hub) *Client {
	t.Helper()
	client := NewClient(hub, nil)
	select {
	case hub.register <- client:
	case <-time.After(testTimeout):
		t.Fatal("hub did not accept registration")
	}
	return client
}

// receive reads one raw frame from the client's send buffer.
func receive(t *testing.T, c *Client) ([]byte, bool) {
	t.Helper()
	select {
	case data, ok := <-c.send:
		return data, ok
	case <-time.After(testTimeout):
		return nil, false
	}
}

func mustEvent(t *testing.T, data []byte) Event {
	t.Helper()
	var evt Event
	require.NoError(t, json.Unmarshal(data, &evt))
	return evt
}

func TestJoinThenBroadcastDeliversOnce(t *testing.T) {
	hub := startHub(t)
	client := connect(t, hub)

	room := RoomKey(uuid.New(), uuid.New())
	client.Join(room)

	evt, err := NewEvent(EventTypeNewMessage, map[string]string{"text": "hi"})
	require.NoError(t, err)
	hub.BroadcastToRoom(room, evt)

	data, ok := receive(t, client)
	require.True(t, ok, "expected one event")
	got := mustEvent(t, data)
	assert.Equal(t, EventTypeNewMessage, got.Type)
	assert.JSONEq(t, `{"text":"hi"}`, string(got.Payload))

	// Exactly one delivery.
	select {
	case extra := <-client.send:
		t.Fatalf("unexpected second delivery: %s", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastSkipsOtherRooms(t *testing.T) {
	hub := startHub(t)
	joined := connect(t, hub)
	bystander := connect(t, hub)

	room := RoomKey(uuid.New(), uuid.New())
	joined.Join(room)

	evt, err := NewEvent(EventTypeNewMessage, map[string]string{"text": "hi"})
	require.NoError(t, err)
	hub.BroadcastToRoom(room, evt)

	_, ok := receive(t, joined)
	assert.True(t, ok)

	select {
	case data := <-bystander.send:
		t.Fatalf("bystander received %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	hub := startHub(t)
	client := connect(t, hub)

	room := RoomKey(uuid.New(), uuid.New())
	client.Join(room)
	client.Join(room)

	evt, err := NewEvent(EventTypeNewMessage, map[string]string{"text": "hi"})
	require.NoError(t, err)
	hub.BroadcastToRoom(room, evt)

	_, ok := receive(t, client)
	require.True(t, ok)

	select {
	case <-client.send:
		t.Fatal("duplicate join caused duplicate delivery")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDisconnectLeavesAllRooms(t *testing.T) {
	hub := startHub(t)
	client := connect(t, hub)

	roomA := RoomKey(uuid.New(), uuid.New())
	roomB := RoomKey(uuid.New(), uuid.New())
	client.Join(roomA)
	client.Join(roomB)

	select {
	case hub.unregister <- client:
	case <-time.After(testTimeout):
		t.Fatal("hub did not accept unregistration")
	}
	waitDropped(t, client)

	evt, err := NewEvent(EventTypeNewMessage, map[string]string{"text": "hi"})
	require.NoError(t, err)
	hub.BroadcastToRoom(roomA, evt)
	hub.BroadcastToRoom(roomB, evt)

	select {
	case data := <-client.send:
		t.Fatalf("dropped client received %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

// waitDropped blocks until the hub has signalled the client's shutdown.
func waitDropped(t *testing.T, c *Client) {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(testTimeout):
		t.Fatal("hub did not drop the client")
	}
}

func TestSlowClientDropKeepsLateEventsSafe(t *testing.T) {
	hub := startHub(t)
	client := connect(t, hub)

	room := RoomKey(uuid.New(), uuid.New())
	client.Join(room)

	// Never drain client.send, so the buffer overflows and the hub drops
	// the client mid-stream.
	evt, err := NewEvent(EventTypeNewMessage, map[string]string{"text": "flood"})
	require.NoError(t, err)
	for i := 0; i < sendBufSize+5; i++ {
		hub.BroadcastToRoom(room, evt)
	}
	waitDropped(t, client)

	// The read goroutine may still be live and replying; queueing a pong
	// or an error against the dropped client must not panic.
	client.handleEvent(&Event{Type: EventTypePing})
	client.handleEvent(&Event{Type: "presence"})

	// Once dropped, broadcasts no longer reach the client.
	drained := 0
	for {
		select {
		case <-client.send:
			drained++
			continue
		default:
		}
		break
	}
	assert.LessOrEqual(t, drained, sendBufSize)
}

func TestBroadcastToEmptyRoomIsNotAnError(t *testing.T) {
	hub := startHub(t)
	connect(t, hub)

	evt, err := NewEvent(EventTypeNewMessage, map[string]string{"text": "hi"})
	require.NoError(t, err)
	hub.BroadcastToRoom("no-such-room", evt)

	// Nothing to assert beyond "does not panic or deliver".
	time.Sleep(50 * time.Millisecond)
}

func TestBroadcastGlobalReachesEveryClient(t *testing.T) {
	hub := startHub(t)
	first := connect(t, hub)
	second := connect(t, hub)

	evt, err := NewEvent(EventTypeLoginSuccess, LoginSuccessPayload{UserID: uuid.New()})
	require.NoError(t, err)
	hub.BroadcastGlobal(evt)

	for _, c := range []*Client{first, second} {
		data, ok := receive(t, c)
		require.True(t, ok)
		got := mustEvent(t, data)
		assert.Equal(t, EventTypeLoginSuccess, got.Type)
	}
}

func TestJoinRoomEventRequiresBothIDs(t *testing.T) {
	hub := startHub(t)
	client := connect(t, hub)

	payload, _ := json.Marshal(JoinRoomPayload{UserID: uuid.New()})
	client.handleEvent(&Event{Type: EventTypeJoinRoom, Payload: payload})

	data, ok := receive(t, client)
	require.True(t, ok)
	got := mustEvent(t, data)
	assert.Equal(t, EventTypeError, got.Type)

	var errPayload ErrorPayload
	require.NoError(t, json.Unmarshal(got.Payload, &errPayload))
	assert.Equal(t, "INVALID_PAYLOAD", errPayload.Code)
}

func TestJoinRoomEventSubscribesConnection(t *testing.T) {
	hub := startHub(t)
	client := connect(t, hub)

	a, b := uuid.New(), uuid.New()
	payload, _ := json.Marshal(JoinRoomPayload{UserID: a, OtherUserID: b})
	client.handleEvent(&Event{Type: EventTypeJoinRoom, Payload: payload})

	assert.True(t, client.InRoom(RoomKey(a, b)))
	assert.True(t, client.InRoom(RoomKey(b, a)), "peer computes the same room")
}

func TestUnknownEventReturnsError(t *testing.T) {
	hub := startHub(t)
	client := connect(t, hub)

	client.handleEvent(&Event{Type: "presence"})

	data, ok := receive(t, client)
	require.True(t, ok)
	got := mustEvent(t, data)
	assert.Equal(t, EventTypeError, got.Type)
}

func TestPingPong(t *testing.T) {
	hub := startHub(t)
	client := connect(t, hub)

	client.handleEvent(&Event{Type: EventTypePing})

	data, ok := receive(t, client)
	require.True(t, ok)
	got := mustEvent(t, data)
	assert.Equal(t, EventTypePong, got.Type)
}
