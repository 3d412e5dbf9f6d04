package apperrors

// 错误码
const (
	CodeRoomNotFound = iota + 1001
	CodeGameStarted
	CodeEmptyTeam
	CodeInsufficientCards
	CodeStoreUnavailable
	CodeInvalidTransition
	CodeNotInRoom
)

// GameError 游戏错误（会话和存储共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound      = &GameError{Code: CodeRoomNotFound, Message: "room not found"}
	ErrGameStarted       = &GameError{Code: CodeGameStarted, Message: "game already started"}
	ErrEmptyTeam         = &GameError{Code: CodeEmptyTeam, Message: "team has no players"}
	ErrInsufficientCards = &GameError{Code: CodeInsufficientCards, Message: "not enough cards loaded"}
	ErrStoreUnavailable  = &GameError{Code: CodeStoreUnavailable, Message: "room store unavailable"}
	ErrInvalidTransition = &GameError{Code: CodeInvalidTransition, Message: "illegal status transition"}
	ErrNotInRoom         = &GameError{Code: CodeNotInRoom, Message: "not in a room"}
)
