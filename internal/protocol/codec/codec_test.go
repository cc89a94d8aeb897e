package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/MJDaws0n/Tetris/internal/protocol"
)

func TestNewMessage_FlatEnvelope(t *testing.T) {
	t.Parallel()

	msg, err := NewMessage(protocol.MsgRoomCreated, protocol.RoomJoinedPayload{
		RoomCode: "ABC234",
		PlayerID: 1,
		IsHost:   true,
	})
	require.NoError(t, err)

	data, err := Encode(msg)
	require.NoError(t, err)

	assert.Equal(t, "room_created", gjson.GetBytes(data, "type").String())
	assert.Equal(t, "ABC234", gjson.GetBytes(data, "roomCode").String())
	assert.Equal(t, int64(1), gjson.GetBytes(data, "playerId").Int())
	assert.True(t, gjson.GetBytes(data, "isHost").Bool())
}

func TestNewMessage_NilPayload(t *testing.T) {
	t.Parallel()

	msg := MustNewMessage(protocol.MsgSync, nil)
	data, err := Encode(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"sync"}`, string(data))
}

func TestNewMessage_RejectsNonObject(t *testing.T) {
	t.Parallel()

	_, err := NewMessage(protocol.MsgScores, []int{1, 2})
	assert.Error(t, err)
}

func TestNewInlineError_HasNoType(t *testing.T) {
	t.Parallel()

	data, err := Encode(NewInlineError(protocol.TextUnknownType))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Unknown message type"}`, string(data))
}

func TestNewErrorMessage(t *testing.T) {
	t.Parallel()

	data, err := Encode(NewErrorMessage(protocol.ErrCodeRoomFull))
	require.NoError(t, err)
	assert.Equal(t, "error", gjson.GetBytes(data, "type").String())
	assert.Equal(t, int64(protocol.ErrCodeRoomFull), gjson.GetBytes(data, "code").Int())
	assert.Equal(t, "Room is full", gjson.GetBytes(data, "message").String())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantType protocol.MessageType
		wantErr  bool
	}{
		{"join room", `{"type":"join_room","name":"bob","roomCode":"abc234"}`, protocol.MsgJoinRoom, false},
		{"missing type", `{"name":"bob"}`, "", false},
		{"numeric type", `{"type":5}`, "", false},
		{"not json", `{type:`, "", true},
		{"array", `[1,2,3]`, "", true},
		{"string", `"sync"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msg, err := Decode([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, msg.Type)
			PutMessage(msg)
		})
	}
}

func TestParsePayload(t *testing.T) {
	t.Parallel()

	msg, err := Decode([]byte(`{"type":"line_clear","lines":2,"score":400}`))
	require.NoError(t, err)

	payload, err := ParsePayload[protocol.LineClearPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.Lines)
	assert.Equal(t, 400, payload.Score)
}

func TestParsePayload_OptionalFields(t *testing.T) {
	t.Parallel()

	msg, err := Decode([]byte(`{"type":"update_score","lines":3}`))
	require.NoError(t, err)

	payload, err := ParsePayload[protocol.UpdateScorePayload](msg)
	require.NoError(t, err)
	assert.Nil(t, payload.Score)
	require.NotNil(t, payload.Lines)
	assert.Equal(t, 3, *payload.Lines)
}

func TestParsePayload_ValidationFails(t *testing.T) {
	t.Parallel()

	msg, err := Decode([]byte(`{"type":"line_clear","lines":-1,"score":0}`))
	require.NoError(t, err)

	_, err = ParsePayload[protocol.LineClearPayload](msg)
	assert.Error(t, err)
}

func TestParsePayload_WrongFieldType(t *testing.T) {
	t.Parallel()

	msg, err := Decode([]byte(`{"type":"submit_score","score":"lots"}`))
	require.NoError(t, err)

	_, err = ParsePayload[protocol.SubmitScorePayload](msg)
	assert.Error(t, err)
}

func TestMessagePool_GetPut(t *testing.T) {
	t.Parallel()

	msg := GetMessage()
	assert.NotNil(t, msg)

	msg.Type = "test"
	msg.Payload = []byte("data")
	PutMessage(msg)

	msg2 := GetMessage()
	assert.NotNil(t, msg2)
	assert.Empty(t, msg2.Type)
	assert.Nil(t, msg2.Payload)
}

func TestMessagePool_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutMessage(nil)
	})
}
