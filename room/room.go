// room/room.go
package room

import (
	"math/rand"
	"time"

	"github.com/wfunc/bingoserver/game"
)

// Status 表示房间的业务状态
type Status string

const (
	StatusPending   Status = "pending"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// MaxPlayers 每个房间固定两名玩家
const MaxPlayers = 2

// RoomIDLength 房间短码长度
const RoomIDLength = 8

// Room 是一局比赛的核心结构，作为整体文档持久化
// 所有变更都在 Clone 出来的快照上进行，通过版本号 CAS 提交
type Room struct {
	RoomID        string         `json:"roomId"`
	BoardType     game.BoardType `json:"boardType"`
	Players       []*game.Player `json:"players"`
	Turn          string         `json:"turn"`
	PendingNumber int            `json:"pendingNumber"` // 0 表示没有待确认数字
	PendingBy     string         `json:"pendingBy"`
	CalledNumbers []int          `json:"calledNumbers"`
	Started       bool           `json:"started"`
	GameStatus    Status         `json:"gameStatus"`
	Winner        string         `json:"winner"`
	Version       int64          `json:"version"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Clone 返回房间的深拷贝，用于写前快照
func (r *Room) Clone() *Room {
	cp := *r

	cp.Players = make([]*game.Player, len(r.Players))
	for i, p := range r.Players {
		cp.Players[i] = p.Clone()
	}

	cp.CalledNumbers = append([]int(nil), r.CalledNumbers...)
	return &cp
}

// Player 按ID查找房间内的玩家
func (r *Room) Player(playerID string) (*game.Player, bool) {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return nil, false
}

// HasCalled 检查某个数字是否已经叫过
func (r *Room) HasCalled(n int) bool {
	for _, called := range r.CalledNumbers {
		if called == n {
			return true
		}
	}
	return false
}

// CanStart 两名玩家到齐且尚未开始时可以开局
func (r *Room) CanStart() bool {
	return len(r.Players) == MaxPlayers && !r.Started
}

// CanJoin 人未满且尚未开始时可以加入
func (r *Room) CanJoin() bool {
	return len(r.Players) < MaxPlayers && !r.Started
}

// PendingProposal 当前待确认的提议，没有时返回 nil
func (r *Room) PendingProposal() *PendingProposal {
	if r.PendingNumber == 0 || r.PendingBy == "" {
		return nil
	}
	return &PendingProposal{Number: r.PendingNumber, By: r.PendingBy}
}

// PendingProposal 待确认的叫号提议
type PendingProposal struct {
	Number int    `json:"number"`
	By     string `json:"by"`
}

// 房间短码字符集，去掉了易混淆的 I/O/0/1
const roomIDLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewRoomID 生成一个8位的房间短码
func NewRoomID() string {
	b := make([]byte, RoomIDLength)
	for i := range b {
		b[i] = roomIDLetters[rand.Intn(len(roomIDLetters))]
	}
	return string(b)
}
