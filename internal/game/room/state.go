package room

// RoomState 房间状态，只会单向推进 Lobby → Playing → Finished
type RoomState int

const (
	RoomStateLobby RoomState = iota
	RoomStatePlaying
	RoomStateFinished
)

func (s RoomState) String() string {
	switch s {
	case RoomStateLobby:
		return "lobby"
	case RoomStatePlaying:
		return "playing"
	case RoomStateFinished:
		return "finished"
	default:
		return "unknown"
	}
}
