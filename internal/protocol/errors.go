package protocol

// 错误码
const (
	ErrCodeUnknown     = 1000
	ErrCodeInvalidMsg  = 1001
	ErrCodeRateLimit   = 1002 // 速率限制
	ErrCodeInvalidName = 1003

	ErrCodeRoomNotFound     = 2001
	ErrCodeRoomFull         = 2002
	ErrCodeNotInRoom        = 2003
	ErrCodeGameStarted      = 2004 // 对战已开始
	ErrCodeNameTaken        = 2005
	ErrCodeAlreadyInRoom    = 2006
	ErrCodeNotHost          = 2007
	ErrCodeNotEnoughPlayers = 2008

	ErrCodeGameNotStarted   = 3001
	ErrCodePlayerEliminated = 3002
	ErrCodeGameFinished     = 3003

	// 防作弊
	ErrCodeSecurityViolation  = 4001
	ErrCodeTooFast            = 4002
	ErrCodeImpossibleLineRate = 4003
	ErrCodeScoreMismatch      = 4004

	ErrCodeStorage           = 5001
	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:            "Unknown error",
	ErrCodeInvalidMsg:         "Invalid message payload",
	ErrCodeRateLimit:          "Too many requests, slow down",
	ErrCodeInvalidName:        "Name must be 1-20 characters",
	ErrCodeRoomNotFound:       "Room not found",
	ErrCodeRoomFull:           "Room is full",
	ErrCodeNotInRoom:          "You are not in a room",
	ErrCodeGameStarted:        "Game already in progress",
	ErrCodeNameTaken:          "Name already taken in this room",
	ErrCodeAlreadyInRoom:      "You are already in a room",
	ErrCodeNotHost:            "Only the host can start the game",
	ErrCodeNotEnoughPlayers:   "Need at least 2 players to start",
	ErrCodeGameNotStarted:     "Game has not started",
	ErrCodePlayerEliminated:   "You have been eliminated",
	ErrCodeGameFinished:       "Game is already over",
	ErrCodeSecurityViolation:  "Invalid session",
	ErrCodeTooFast:            "Submission too fast",
	ErrCodeImpossibleLineRate: "Impossible line clear rate",
	ErrCodeScoreMismatch:      "Score does not match lines cleared",
	ErrCodeStorage:            "Leaderboard unavailable",
	ErrCodeServerMaintenance:  "Server is under maintenance",
}
