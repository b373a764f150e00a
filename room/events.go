// room/events.go
package room

import (
	"github.com/wfunc/bingoserver/game"
)

// 广播事件名，与客户端约定的协议保持一致
const (
	EventPlayerJoined      = "playerJoined"
	EventGameStarted       = "gameStarted"
	EventOpponentProposed  = "opponentProposed"
	EventProposalConfirmed = "proposalConfirmed"
	EventPlayerStruck      = "playerStruck"
	EventGameOver          = "gameOver"
	EventPlayerRejoined    = "playerRejoined"
	EventPlayerLeft        = "playerLeft"
)

// PlayerJoinedEvent 有玩家加入房间
type PlayerJoinedEvent struct {
	Players []*game.Player `json:"players"`
}

// PlayerStrikesView 开局广播里只带划线信息的玩家投影
type PlayerStrikesView struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Strikes game.Strikes `json:"strikes"`
}

// GameStartedEvent 游戏开始
type GameStartedEvent struct {
	CalledNumbers []int               `json:"calledNumbers"`
	Turn          string              `json:"turn"`
	Players       []PlayerStrikesView `json:"players"`
}

// OpponentProposedEvent 有玩家提议了一个数字
type OpponentProposedEvent struct {
	Number int    `json:"number"`
	By     string `json:"by"`
}

// PlayerMarkedView 确认广播里只带标记盘的玩家投影
type PlayerMarkedView struct {
	ID     string   `json:"id"`
	Marked [][]bool `json:"marked"`
}

// ProposalConfirmedEvent 提议被确认，数字在两块棋盘上生效
type ProposalConfirmedEvent struct {
	Number        int                `json:"number"`
	By            string             `json:"by"`
	CalledNumbers []int              `json:"calledNumbers"`
	Turn          string             `json:"turn"`
	Players       []PlayerMarkedView `json:"players"`
}

// PlayerStruckView 划线广播里的完整玩家投影
type PlayerStruckView struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Marked    [][]bool       `json:"marked"`
	Strikes   game.Strikes   `json:"strikes"`
	BingoWord game.BingoWord `json:"bingoWord"`
	BoardType game.BoardType `json:"boardType"`
}

// PlayerStruckEvent 有玩家成功划掉一行或一列
type PlayerStruckEvent struct {
	RoomID            string             `json:"roomId"`
	Players           []PlayerStruckView `json:"players"`
	Turn              string             `json:"turn"`
	StrikeType        StrikeType         `json:"strikeType"`
	StrikeIndex       int                `json:"strikeIndex"`
	StrikedBy         string             `json:"strikedBy"`
	StruckBingoLetter string             `json:"struckBingoLetter"`
	HasBingo          bool               `json:"hasBingo"`
}

// GameOverEvent 对局结束
// callBingo 路径只填 Winner，划线获胜时附带名字和原因
type GameOverEvent struct {
	Winner     string `json:"winner"`
	WinnerName string `json:"winnerName,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// PlayerRejoinedEvent 掉线玩家重新接入房间
type PlayerRejoinedEvent struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

// PlayerLeftEvent 玩家离开房间
type PlayerLeftEvent struct {
	PlayerID string `json:"playerId"`
}
