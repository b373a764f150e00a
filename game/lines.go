// game/lines.go
package game

// 纯函数库：判断哪些行/列/对角线已全部标记，以及两种独立的获胜判定

// RowComplete 检查某一行是否全部标记
func RowComplete(marked [][]bool, row int) bool {
	for _, cell := range marked[row] {
		if !cell {
			return false
		}
	}
	return true
}

// ColumnComplete 检查某一列是否全部标记
func ColumnComplete(marked [][]bool, col int) bool {
	for _, row := range marked {
		if !row[col] {
			return false
		}
	}
	return true
}

// CompletedLines 统计玩家已完成的线数：
// 已划掉的行列 + 未划掉但已全部标记的行列，5x5棋盘再加上两条对角线
// 对角线不作为划线记录，永远按实时标记计算
func CompletedLines(p *Player) int {
	lines := 0

	for _, struck := range p.Strikes.Rows {
		if struck {
			lines++
		}
	}
	for _, struck := range p.Strikes.Columns {
		if struck {
			lines++
		}
	}

	for r := range p.Marked {
		if !p.Strikes.Rows[r] && RowComplete(p.Marked, r) {
			lines++
		}
	}
	for c := 0; c < p.BoardType.Columns(); c++ {
		if !p.Strikes.Columns[c] && ColumnComplete(p.Marked, c) {
			lines++
		}
	}

	if p.BoardType == Board5x5 {
		mainDiag, antiDiag := true, true
		for i := 0; i < BoardRows; i++ {
			if !p.Marked[i][i] {
				mainDiag = false
			}
			if !p.Marked[i][BoardRows-1-i] {
				antiDiag = false
			}
		}
		if mainDiag {
			lines++
		}
		if antiDiag {
			lines++
		}
	}

	return lines
}

// BingoWithStrikes 划线驱动的获胜判定：
// 完成线数达到5，或者 BINGO 五个字母全部点亮，二者满足其一即获胜
func BingoWithStrikes(p *Player) bool {
	return CompletedLines(p) >= 5 || p.BingoWord.Complete()
}

// MarkedBingo 旧式获胜判定，只看标记，不看划线：
// 任意一行、一列或两条对角线全部标记即算 bingo
// 注意反对角线按 row[len(row)-1-i] 取格，5x10棋盘上走的是第9..5列，
// 与行宽无关的对角线定义在宽棋盘上并不对称，这里原样保留
func MarkedBingo(marked [][]bool) bool {
	for r := range marked {
		if RowComplete(marked, r) {
			return true
		}
	}

	for c := range marked[0] {
		if ColumnComplete(marked, c) {
			return true
		}
	}

	mainDiag, antiDiag := true, true
	for i, row := range marked {
		if !row[i] {
			mainDiag = false
		}
		if !row[len(row)-1-i] {
			antiDiag = false
		}
	}
	return mainDiag || antiDiag
}
