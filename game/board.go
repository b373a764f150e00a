// game/board.go
package game

import (
	"errors"
	"math/rand"
)

// BoardType 表示棋盘规格
type BoardType string

const (
	Board5x5  BoardType = "5x5"
	Board5x10 BoardType = "5x10"
)

// BoardRows 所有棋盘都是5行
const BoardRows = 5

// ErrInvalidBoardType is returned for board types other than 5x5 and 5x10.
var ErrInvalidBoardType = errors.New("invalid board type")

// Valid 检查棋盘规格是否受支持
func (t BoardType) Valid() bool {
	return t == Board5x5 || t == Board5x10
}

// Columns 返回列数
func (t BoardType) Columns() int {
	if t == Board5x10 {
		return 10
	}
	return 5
}

// Max 返回棋盘上最大的数字（也是格子总数）
func (t BoardType) Max() int {
	return BoardRows * t.Columns()
}

// Generate 生成一个随机棋盘：1..max 的均匀排列，切成5行
// 保证整个棋盘没有重复数字
func Generate(t BoardType) ([][]int, error) {
	if !t.Valid() {
		return nil, ErrInvalidBoardType
	}

	max := t.Max()
	nums := make([]int, max)
	for i := range nums {
		nums[i] = i + 1
	}
	rand.Shuffle(len(nums), func(i, j int) {
		nums[i], nums[j] = nums[j], nums[i]
	})

	cols := t.Columns()
	board := make([][]int, BoardRows)
	for r := 0; r < BoardRows; r++ {
		board[r] = nums[r*cols : (r+1)*cols]
	}
	return board, nil
}
