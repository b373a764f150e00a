// room/views.go
package room

import (
	"time"

	"github.com/wfunc/bingoserver/game"
)

// RoomView GetRoomState 返回的房间投影
type RoomView struct {
	RoomID          string           `json:"roomId"`
	Started         bool             `json:"started"`
	BoardType       game.BoardType   `json:"boardType"`
	Players         []*game.Player   `json:"players"`
	Turn            string           `json:"turn"`
	CalledNumbers   []int            `json:"calledNumbers"`
	PendingProposal *PendingProposal `json:"pendingProposal"`
	GameStatus      Status           `json:"gameStatus"`
	Winner          string           `json:"winner,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func newRoomView(r *Room) RoomView {
	return RoomView{
		RoomID:          r.RoomID,
		Started:         r.Started,
		BoardType:       r.BoardType,
		Players:         r.Players,
		Turn:            r.Turn,
		CalledNumbers:   r.CalledNumbers,
		PendingProposal: r.PendingProposal(),
		GameStatus:      r.GameStatus,
		Winner:          r.Winner,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// RoomStateView 房间状态加请求者视角
type RoomStateView struct {
	Room          RoomView     `json:"room"`
	CurrentPlayer *game.Player `json:"currentPlayer"`
	PlayerCount   int          `json:"playerCount"`
	CanStart      bool         `json:"canStart"`
}

// PlayerNameView 只含ID和名字的玩家投影
type PlayerNameView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomInfoView 房间的公开信息
type RoomInfoView struct {
	RoomID      string           `json:"roomId"`
	BoardType   game.BoardType   `json:"boardType"`
	PlayerCount int              `json:"playerCount"`
	Started     bool             `json:"started"`
	CanJoin     bool             `json:"canJoin"`
	Players     []PlayerNameView `json:"players"`
}
