// room/errors.go
package room

import (
	"errors"
)

// 房间操作的错误定义，调用方都可以在纠正输入或重新加载后重试
var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomExists            = errors.New("room id already taken")
	ErrRoomFull              = errors.New("room full")
	ErrPlayerNotFound        = errors.New("player not found in room")
	ErrInsufficientPlayers   = errors.New("need 2 players")
	ErrGameAlreadyStarted    = errors.New("game already started")
	ErrNotYourTurn           = errors.New("not your turn")
	ErrInvalidNumber         = errors.New("number out of range for board")
	ErrPendingProposalExists = errors.New("pending number exists")
	ErrNoPendingProposal     = errors.New("no pending number")
	ErrGameNotStarted        = errors.New("game has not started yet")
	ErrInvalidStrikeType     = errors.New("strike type must be row or column")
	ErrNoValidBingo          = errors.New("not a valid bingo")

	// ErrVersionConflict 由仓储在版本号不匹配时返回，状态机会重试
	ErrVersionConflict = errors.New("room version conflict")
	// ErrConflict 在重试次数耗尽后向调用方暴露
	ErrConflict = errors.New("room was modified concurrently, retry")
)
