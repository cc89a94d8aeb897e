package apperrors

import (
	"errors"

	"github.com/MJDaws0n/Tetris/internal/protocol"
)

// GameError 游戏错误（房间与注册表共享），Code 对应 protocol.ErrCode*
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrRoomNotFound     = newError(protocol.ErrCodeRoomNotFound)
	ErrRoomFull         = newError(protocol.ErrCodeRoomFull)
	ErrGameStarted      = newError(protocol.ErrCodeGameStarted)
	ErrNameTaken        = newError(protocol.ErrCodeNameTaken)
	ErrNotHost          = newError(protocol.ErrCodeNotHost)
	ErrNotEnoughPlayers = newError(protocol.ErrCodeNotEnoughPlayers)
	ErrNotInRoom        = newError(protocol.ErrCodeNotInRoom)
	ErrAlreadyInRoom    = newError(protocol.ErrCodeAlreadyInRoom)
	ErrGameNotStarted   = newError(protocol.ErrCodeGameNotStarted)
	ErrPlayerEliminated = newError(protocol.ErrCodePlayerEliminated)
	ErrGameFinished     = newError(protocol.ErrCodeGameFinished)
	ErrInvalidName      = newError(protocol.ErrCodeInvalidName)
)

// Code 提取错误码，非 GameError 返回 ErrCodeUnknown
func Code(err error) int {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return protocol.ErrCodeUnknown
}
