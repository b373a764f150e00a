// game/strike.go
package game

import (
	"errors"
)

// 划线前置条件错误
var (
	ErrInvalidIndex   = errors.New("invalid strike index")
	ErrAlreadyStruck  = errors.New("line is already struck")
	ErrLineIncomplete = errors.New("line is not complete, all numbers must be marked before striking")
)

// ValidateRowStrike 检查玩家能否划掉某一行
// 行号越界、已划过、或该行没有全部标记时返回对应错误
func ValidateRowStrike(p *Player, row int) error {
	if row < 0 || row >= len(p.Marked) {
		return ErrInvalidIndex
	}
	if p.Strikes.Rows[row] {
		return ErrAlreadyStruck
	}
	if !RowComplete(p.Marked, row) {
		return ErrLineIncomplete
	}
	return nil
}

// ValidateColumnStrike 检查玩家能否划掉某一列，列数上限随棋盘规格为5或10
func ValidateColumnStrike(p *Player, col int) error {
	if col < 0 || col >= p.BoardType.Columns() {
		return ErrInvalidIndex
	}
	if p.Strikes.Columns[col] {
		return ErrAlreadyStruck
	}
	if !ColumnComplete(p.Marked, col) {
		return ErrLineIncomplete
	}
	return nil
}
