package room

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJDaws0n/Tetris/internal/apperrors"
	"github.com/MJDaws0n/Tetris/internal/testutil"
)

func TestRoomManager_CreateAndJoin(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(2 * time.Hour)
	host := testutil.NewSimpleClient("h")
	guest := testutil.NewSimpleClient("g")

	room, hostInfo, err := rm.CreateRoom(host, "Alice")
	require.NoError(t, err)
	assert.Len(t, room.Code, roomCodeLength)
	assert.Equal(t, room.Code, host.GetRoom())
	assert.True(t, hostInfo.IsHost)
	assert.Equal(t, 1, hostInfo.ID)

	joined, guestInfo, err := rm.JoinRoom(guest, room.Code, "Bob")
	require.NoError(t, err)
	assert.Same(t, room, joined)
	assert.Equal(t, 2, guestInfo.ID)
	assert.False(t, guestInfo.IsHost)
	assert.Equal(t, room.Code, guest.GetRoom())

	assert.Same(t, room, rm.GetRoom(room.Code))
	assert.Same(t, room, rm.GetRoomByClient("g"))
	assert.Equal(t, 1, rm.RoomCount())
}

func TestRoomManager_JoinErrors(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(2 * time.Hour)
	host := testutil.NewSimpleClient("h")
	room, _, err := rm.CreateRoom(host, "Alice")
	require.NoError(t, err)

	_, _, err = rm.JoinRoom(testutil.NewSimpleClient("x"), "ZZZZZZ", "Bob")
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)

	_, _, err = rm.JoinRoom(testutil.NewSimpleClient("y"), room.Code, "alice")
	assert.ErrorIs(t, err, apperrors.ErrNameTaken)
	assert.Nil(t, rm.GetRoomByClient("y"))

	_, _, err = rm.JoinRoom(host, room.Code, "Other")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInRoom)

	_, _, err = rm.CreateRoom(host, "Again")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInRoom)
}

func TestRoomManager_JoinPlayingRoom(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(2 * time.Hour)
	room, _, err := rm.CreateRoom(testutil.NewSimpleClient("h"), "Alice")
	require.NoError(t, err)
	_, _, err = rm.JoinRoom(testutil.NewSimpleClient("g"), room.Code, "Bob")
	require.NoError(t, err)
	_, err = room.StartMatch("h", false)
	require.NoError(t, err)
	assert.Equal(t, 1, rm.GetActiveGamesCount())

	_, _, err = rm.JoinRoom(testutil.NewSimpleClient("late"), room.Code, "Carol")
	var gameErr *apperrors.GameError
	require.True(t, errors.As(err, &gameErr))
	assert.Equal(t, apperrors.ErrGameStarted.Code, gameErr.Code)
}

func TestRoomManager_LeaveRoom(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(2 * time.Hour)
	host := testutil.NewSimpleClient("h")
	guest := testutil.NewSimpleClient("g")
	room, _, err := rm.CreateRoom(host, "Alice")
	require.NoError(t, err)
	_, _, err = rm.JoinRoom(guest, room.Code, "Bob")
	require.NoError(t, err)

	left, res, err := rm.LeaveRoom(host)
	require.NoError(t, err)
	assert.Same(t, room, left)
	require.NotNil(t, res.NewHostID)
	assert.Equal(t, 2, *res.NewHostID)
	assert.Empty(t, host.GetRoom())
	assert.Nil(t, rm.GetRoomByClient("h"))

	_, _, err = rm.LeaveRoom(host)
	assert.ErrorIs(t, err, apperrors.ErrNotInRoom)

	_, res, err = rm.LeaveRoom(guest)
	require.NoError(t, err)
	assert.True(t, res.Empty)
	assert.Nil(t, rm.GetRoom(room.Code))
	assert.Zero(t, rm.RoomCount())
}

func TestRoomManager_GenerateCodeNeverCollides(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(2 * time.Hour)
	live := make(map[string]bool)
	for i := range 200 {
		room, _, err := rm.CreateRoom(testutil.NewSimpleClient(fmt.Sprintf("seed-%d", i)), "Seed")
		require.NoError(t, err)
		live[room.Code] = true
	}

	for i := range 1000 {
		code := rm.GenerateCode()
		require.Len(t, code, roomCodeLength)
		for _, c := range code {
			require.True(t, strings.ContainsRune(roomCodeChars, c), "unexpected symbol %q", c)
		}
		require.False(t, live[code], "generated live code %s", code)

		live[code] = true
		rm.AddRoomForTest(NewRoom(code, testutil.NewSimpleClient(fmt.Sprintf("gen-%d", i)), "Gen"))
	}
}

func TestRoomCodeAlphabet(t *testing.T) {
	t.Parallel()

	assert.Len(t, roomCodeChars, 32)
	assert.NotContains(t, roomCodeChars, "I")
	assert.NotContains(t, roomCodeChars, "O")
	assert.NotContains(t, roomCodeChars, "0")
	assert.NotContains(t, roomCodeChars, "1")
}

func TestRoomManager_CleanupOnlyEmptyIdleRooms(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(2 * time.Hour)

	occupied, _, err := rm.CreateRoom(testutil.NewSimpleClient("h"), "Alice")
	require.NoError(t, err)

	emptyRoom := NewRoom("EMPTY2", testutil.NewSimpleClient("e"), "Eve")
	_, removed := emptyRoom.RemovePlayer("e")
	require.True(t, removed)
	rm.AddRoomForTest(emptyRoom)

	now := time.Now()
	assert.Zero(t, rm.Cleanup(context.Background(), now.Add(time.Hour)))
	assert.NotNil(t, rm.GetRoom("EMPTY2"))

	assert.Equal(t, 1, rm.Cleanup(context.Background(), now.Add(3*time.Hour)))
	assert.Nil(t, rm.GetRoom("EMPTY2"))
	assert.NotNil(t, rm.GetRoom(occupied.Code), "rooms with players are never swept")
}

func TestRoomManager_CleanupRunsSweepers(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(2 * time.Hour)
	calls := 0
	rm.RegisterSweeper("sessions", func(_ context.Context, _ time.Time) (int, error) {
		calls++
		return 3, nil
	})
	rm.RegisterSweeper("broken", func(_ context.Context, _ time.Time) (int, error) {
		return 0, errors.New("boom")
	})

	rm.Cleanup(context.Background(), time.Now())
	assert.Equal(t, 1, calls)
}

func TestRoomManager_StartCleanupStopsOnCancel(t *testing.T) {
	t.Parallel()

	rm := NewRoomManager(time.Nanosecond)
	swept := make(chan struct{}, 1)
	rm.RegisterSweeper("signal", func(_ context.Context, _ time.Time) (int, error) {
		select {
		case swept <- struct{}{}:
		default:
		}
		return 0, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rm.StartCleanup(ctx, 5*time.Millisecond)

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup loop did not run")
	}
}
