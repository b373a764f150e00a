// game/player.go
package game

import (
	"github.com/google/uuid"
)

// Strikes 记录玩家已划掉的行和列
// rows 固定5个，columns 随棋盘规格为5或10个
type Strikes struct {
	Rows    []bool `json:"rows"`
	Columns []bool `json:"columns"`
}

// Player 玩家数据，属于某个房间
// 只能通过 NewPlayer 构造，保证 marked/strikes/bingoWord 总是完整初始化
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BoardType BoardType `json:"boardType"`
	Board     [][]int   `json:"board"`
	Marked    [][]bool  `json:"marked"`
	Strikes   Strikes   `json:"strikes"`
	BingoWord BingoWord `json:"bingoWord"`
}

// NewPlayer 创建一个新玩家并为其生成随机棋盘
func NewPlayer(name string, t BoardType) (*Player, error) {
	board, err := Generate(t)
	if err != nil {
		return nil, err
	}

	marked := make([][]bool, len(board))
	for r := range board {
		marked[r] = make([]bool, len(board[r]))
	}

	return &Player{
		ID:        uuid.New().String(),
		Name:      name,
		BoardType: t,
		Board:     board,
		Marked:    marked,
		Strikes: Strikes{
			Rows:    make([]bool, BoardRows),
			Columns: make([]bool, t.Columns()),
		},
	}, nil
}

// MarkNumber 把棋盘上所有等于 n 的格子标记为已叫号
// 数字不在棋盘上时什么都不做，重复标记也是幂等的
func (p *Player) MarkNumber(n int) {
	for r := range p.Board {
		for c := range p.Board[r] {
			if p.Board[r][c] == n {
				p.Marked[r][c] = true
			}
		}
	}
}

// Clone 返回玩家的深拷贝
func (p *Player) Clone() *Player {
	cp := *p

	cp.Board = make([][]int, len(p.Board))
	for r := range p.Board {
		cp.Board[r] = append([]int(nil), p.Board[r]...)
	}

	cp.Marked = make([][]bool, len(p.Marked))
	for r := range p.Marked {
		cp.Marked[r] = append([]bool(nil), p.Marked[r]...)
	}

	cp.Strikes = Strikes{
		Rows:    append([]bool(nil), p.Strikes.Rows...),
		Columns: append([]bool(nil), p.Strikes.Columns...),
	}

	return &cp
}
