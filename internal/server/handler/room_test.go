package handler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MJDaws0n/Tetris/internal/protocol"
	"github.com/MJDaws0n/Tetris/internal/testutil"
)

// createRoom makes c1 host a room and returns its code.
func createRoom(t *testing.T, f *fixture, host *testutil.SimpleClient, name string) string {
	t.Helper()
	f.send(t, host, fmt.Sprintf(`{"type":"create_room","name":%q}`, name))
	created := host.MessagesOfType(protocol.MsgRoomCreated)
	require.Len(t, created, 1)
	return field(created[0], "roomCode").String()
}

func TestHandle_CreateRoom(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	host := testutil.NewSimpleClient("h")

	code := createRoom(t, f, host, "  Al ice ")

	msg := host.LastMessage()
	assert.Len(t, code, 6)
	assert.Equal(t, int64(1), field(msg, "playerId").Int())
	assert.True(t, field(msg, "isHost").Bool())
	assert.Equal(t, "Alice", field(msg, "players.0.name").String())
	assert.Equal(t, "#ff453a", field(msg, "players.0.color").String())
	assert.Equal(t, code, host.GetRoom())
}

func TestHandle_CreateRoomInvalidName(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	c := testutil.NewSimpleClient("c")

	for _, name := range []string{"", "   ", strings.Repeat("x", 21)} {
		c.Reset()
		f.send(t, c, fmt.Sprintf(`{"type":"create_room","name":%q}`, name))
		last := c.LastMessage()
		require.NotNil(t, last)
		assert.Equal(t, int64(protocol.ErrCodeInvalidName), field(last, "code").Int(), "name %q", name)
	}
	assert.Zero(t, f.rm.RoomCount())
}

func TestHandle_CreateRoomTwice(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	host := testutil.NewSimpleClient("h")
	createRoom(t, f, host, "Alice")

	f.send(t, host, `{"type":"create_room","name":"Alice"}`)

	assert.Equal(t, int64(protocol.ErrCodeAlreadyInRoom), field(host.LastMessage(), "code").Int())
	assert.Equal(t, 1, f.rm.RoomCount())
}

func TestHandle_MaintenanceBlocksRooms(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.server.ExpectedCalls = nil
	f.server.On("IsMaintenanceMode").Return(true)
	c := testutil.NewSimpleClient("c")

	f.send(t, c, `{"type":"create_room","name":"Alice"}`)
	f.send(t, c, `{"type":"join_room","name":"Alice","roomCode":"ABCDEF"}`)

	for _, m := range c.Received() {
		assert.Equal(t, int64(protocol.ErrCodeServerMaintenance), field(m, "code").Int())
	}
	assert.Len(t, c.Received(), 2)
}

func TestHandle_JoinRoom(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	host := testutil.NewSimpleClient("h")
	guest := testutil.NewSimpleClient("g")
	code := createRoom(t, f, host, "Alice")
	host.Reset()

	f.send(t, guest, fmt.Sprintf(`{"type":"join_room","name":"Bob","roomCode":%q}`, strings.ToLower(code)))

	joined := guest.LastMessage()
	require.NotNil(t, joined)
	assert.Equal(t, protocol.MsgRoomJoined, joined.Type)
	assert.Equal(t, code, field(joined, "roomCode").String())
	assert.Equal(t, int64(2), field(joined, "playerId").Int())
	assert.False(t, field(joined, "isHost").Bool())
	assert.Len(t, field(joined, "players").Array(), 2)

	notice := host.LastMessage()
	require.NotNil(t, notice)
	assert.Equal(t, protocol.MsgPlayerJoined, notice.Type)
	assert.Equal(t, "Bob", field(notice, "player.name").String())
	assert.Len(t, field(notice, "players").Array(), 2)
	assert.Empty(t, guest.MessagesOfType(protocol.MsgPlayerJoined), "joiner is not told about itself")
}

func TestHandle_JoinRoomErrors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	host := testutil.NewSimpleClient("h")
	code := createRoom(t, f, host, "Alice")

	c := testutil.NewSimpleClient("x")
	f.send(t, c, `{"type":"join_room","name":"Bob","roomCode":"NOPE99"}`)
	assert.Equal(t, int64(protocol.ErrCodeRoomNotFound), field(c.LastMessage(), "code").Int())

	f.send(t, c, fmt.Sprintf(`{"type":"join_room","name":"ALICE","roomCode":%q}`, code))
	assert.Equal(t, int64(protocol.ErrCodeNameTaken), field(c.LastMessage(), "code").Int())

	for i := 2; i <= 8; i++ {
		p := testutil.NewSimpleClient(fmt.Sprintf("p%d", i))
		f.send(t, p, fmt.Sprintf(`{"type":"join_room","name":"P%d","roomCode":%q}`, i, code))
		require.Equal(t, protocol.MsgRoomJoined, p.LastMessage().Type)
	}
	f.send(t, c, fmt.Sprintf(`{"type":"join_room","name":"Ninth","roomCode":%q}`, code))
	assert.Equal(t, int64(protocol.ErrCodeRoomFull), field(c.LastMessage(), "code").Int())
}

func TestHandle_JoinRoomInProgress(t *testing.T) {
	t.Parallel()
	f, code, _ := startedMatch(t, 2)
	late := testutil.NewSimpleClient("late")

	f.send(t, late, fmt.Sprintf(`{"type":"join_room","name":"Late","roomCode":%q}`, code))

	assert.Equal(t, int64(protocol.ErrCodeGameStarted), field(late.LastMessage(), "code").Int())
}

func TestHandle_LeaveRoomTransfersHost(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	host := testutil.NewSimpleClient("h")
	guest := testutil.NewSimpleClient("g")
	code := createRoom(t, f, host, "Alice")
	f.send(t, guest, fmt.Sprintf(`{"type":"join_room","name":"Bob","roomCode":%q}`, code))
	guest.Reset()

	f.send(t, host, `{"type":"leave_room"}`)

	left := guest.LastMessage()
	require.NotNil(t, left)
	assert.Equal(t, protocol.MsgPlayerLeft, left.Type)
	assert.Equal(t, int64(1), field(left, "playerId").Int())
	assert.Equal(t, int64(2), field(left, "newHostId").Int())
	assert.Len(t, field(left, "players").Array(), 1)
	assert.Empty(t, host.GetRoom())
	assert.Empty(t, host.MessagesOfType(protocol.MsgPlayerLeft))
}

func TestHandle_LeaveLastPlayerDeletesRoom(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	host := testutil.NewSimpleClient("h")
	createRoom(t, f, host, "Alice")
	host.Reset()

	f.send(t, host, `{"type":"leave_room"}`)

	assert.Empty(t, host.Received())
	assert.Zero(t, f.rm.RoomCount())
}

func TestHandle_LeaveWithoutRoom(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	c := testutil.NewSimpleClient("c")

	f.send(t, c, `{"type":"leave_room"}`)

	assert.Equal(t, int64(protocol.ErrCodeNotInRoom), field(c.LastMessage(), "code").Int())
}

func TestHandleDisconnect(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	host := testutil.NewSimpleClient("h")
	guest := testutil.NewSimpleClient("g")
	code := createRoom(t, f, host, "Alice")
	f.send(t, guest, fmt.Sprintf(`{"type":"join_room","name":"Bob","roomCode":%q}`, code))
	host.Reset()

	f.h.HandleDisconnect(guest)
	f.h.HandleDisconnect(testutil.NewSimpleClient("stranger"))

	left := host.LastMessage()
	require.NotNil(t, left)
	assert.Equal(t, protocol.MsgPlayerLeft, left.Type)
	assert.Equal(t, int64(2), field(left, "playerId").Int())
	assert.False(t, field(left, "newHostId").Exists())
	f.server.AssertNotCalled(t, "Broadcast", mock.Anything)
}
