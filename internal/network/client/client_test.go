package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/MJDaws0n/Tetris/internal/protocol"
)

var upgrader = websocket.Upgrader{}

func echoHandler(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			break
		}
		_ = c.WriteMessage(mt, message)
	}
}

func wsURL(s *httptest.Server) string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func TestClient_ConnectAndSend(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(echoHandler))
	defer s.Close()

	client := NewClient(wsURL(s))
	require.NoError(t, client.Connect())
	defer client.Close()
	assert.True(t, client.IsConnected())

	require.NoError(t, client.JoinRoom("Alice", "abcdef"))

	msg, err := client.ReceiveWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgJoinRoom, msg.Type)
	assert.Equal(t, "Alice", gjson.GetBytes(msg.Payload, "name").String())
	assert.Equal(t, "abcdef", gjson.GetBytes(msg.Payload, "roomCode").String())
}

func TestClient_ActionsProduceFlatFrames(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(echoHandler))
	defer s.Close()

	client := NewClient(wsURL(s))
	require.NoError(t, client.Connect())
	defer client.Close()

	require.NoError(t, client.LineClear(3, 900))
	require.NoError(t, client.Eliminated(0))
	require.NoError(t, client.SubmitScore("sid", "Bob", 800, 4, true))

	msg, err := client.ReceiveWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgLineClear, msg.Type)
	assert.Equal(t, int64(3), gjson.GetBytes(msg.Payload, "lines").Int())
	assert.Equal(t, int64(900), gjson.GetBytes(msg.Payload, "score").Int())

	msg, err = client.ReceiveWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgPlayerEliminated, msg.Type)
	assert.True(t, gjson.GetBytes(msg.Payload, "score").Exists(), "a zero score is still sent")

	msg, err = client.ReceiveWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgSubmitScore, msg.Type)
	assert.True(t, gjson.GetBytes(msg.Payload, "hardMode").Bool())
}

func TestClient_CloseStopsEverything(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(echoHandler))
	defer s.Close()

	client := NewClient(wsURL(s))
	closed := make(chan struct{})
	client.OnClose = func() { close(closed) }
	require.NoError(t, client.Connect())

	client.Close()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("OnClose was not called")
	}
	assert.False(t, client.IsConnected())
	assert.ErrorIs(t, client.Sync(), ErrClosed)

	_, err := client.Receive()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestClient_ReceiveTimeout(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(echoHandler))
	defer s.Close()

	client := NewClient(wsURL(s))
	require.NoError(t, client.Connect())
	defer client.Close()

	_, err := client.ReceiveWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_ReconnectsAfterServerDrop(t *testing.T) {
	t.Parallel()

	var conns atomic.Int32
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if conns.Add(1) == 1 {
			c, err := upgrader.Upgrade(w, r, nil)
			if err == nil {
				_ = c.Close()
			}
			return
		}
		echoHandler(w, r)
	}))
	defer s.Close()

	client := NewClient(wsURL(s))
	reconnected := make(chan struct{})
	var attempts atomic.Int32
	client.OnReconnecting = func(int, int) { attempts.Add(1) }
	client.OnReconnect = func() { close(reconnected) }
	require.NoError(t, client.Connect())
	defer client.Close()

	select {
	case <-reconnected:
	case <-time.After(5 * time.Second):
		t.Fatal("client did not reconnect")
	}
	assert.GreaterOrEqual(t, attempts.Load(), int32(1))
	assert.True(t, client.IsConnected())

	require.NoError(t, client.Sync())
	msg, err := client.ReceiveWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgSync, msg.Type)
}

func TestClient_NoReconnectWhenDisabled(t *testing.T) {
	t.Parallel()

	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err == nil {
			_ = c.Close()
		}
	}))
	defer s.Close()

	client := NewClient(wsURL(s))
	client.SetAutoReconnect(false)
	closed := make(chan struct{})
	client.OnClose = func() { close(closed) }
	require.NoError(t, client.Connect())

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("OnClose was not called")
	}
	assert.False(t, client.IsReconnecting())
}
