package game

import (
	"testing"
)

func TestCompletedLines_MixedStrikesAndMarks(t *testing.T) {
	p := newStrikePlayer(t, Board5x5)

	// Two struck rows, one struck column.
	p.Strikes.Rows[0] = true
	p.Strikes.Rows[1] = true
	p.Strikes.Columns[2] = true

	// One fully marked but unstruck row.
	markRow(p, 3)

	if got := CompletedLines(p); got != 4 {
		t.Errorf("CompletedLines = %d, want 4", got)
	}

	// Striking the marked row must not double count it.
	p.Strikes.Rows[3] = true
	if got := CompletedLines(p); got != 4 {
		t.Errorf("CompletedLines after striking marked row = %d, want 4", got)
	}
}

func TestCompletedLines_Diagonals5x5Only(t *testing.T) {
	p := newStrikePlayer(t, Board5x5)
	for i := 0; i < BoardRows; i++ {
		p.Marked[i][i] = true
		p.Marked[i][BoardRows-1-i] = true
	}
	if got := CompletedLines(p); got != 2 {
		t.Errorf("Both diagonals on 5x5 = %d lines, want 2", got)
	}

	// 宽棋盘不计对角线
	wide := newStrikePlayer(t, Board5x10)
	for i := 0; i < BoardRows; i++ {
		wide.Marked[i][i] = true
		wide.Marked[i][len(wide.Marked[i])-1-i] = true
	}
	if got := CompletedLines(wide); got != 0 {
		t.Errorf("Diagonal marks on 5x10 = %d lines, want 0", got)
	}
}

func TestBingoWithStrikes_FiveRowStrikes(t *testing.T) {
	p := newStrikePlayer(t, Board5x5)
	for r := 0; r < BoardRows; r++ {
		p.Strikes.Rows[r] = true
	}
	// No diagonals marked at all, strikes alone are enough.
	if !BingoWithStrikes(p) {
		t.Error("Five struck rows should win")
	}
}

func TestBingoWithStrikes_WordCompletion(t *testing.T) {
	p := newStrikePlayer(t, Board5x5)
	for i := 0; i < 5; i++ {
		p.BingoWord.Advance()
	}
	// Fewer than 5 completed lines, the word alone wins.
	p.Strikes.Rows[0] = true
	if !BingoWithStrikes(p) {
		t.Error("Complete bingo word should win with fewer than 5 lines")
	}
}

func TestBingoWithStrikes_NotYet(t *testing.T) {
	p := newStrikePlayer(t, Board5x5)
	p.Strikes.Rows[0] = true
	p.Strikes.Columns[1] = true
	p.BingoWord.Advance()
	p.BingoWord.Advance()
	if BingoWithStrikes(p) {
		t.Error("Two lines and two letters should not win")
	}
}

func TestMarkedBingo_RowColumnDiagonal(t *testing.T) {
	p := newStrikePlayer(t, Board5x5)
	if MarkedBingo(p.Marked) {
		t.Error("Empty board should not bingo")
	}

	markRow(p, 4)
	if !MarkedBingo(p.Marked) {
		t.Error("Fully marked row should bingo")
	}

	p = newStrikePlayer(t, Board5x5)
	markColumn(p, 0)
	if !MarkedBingo(p.Marked) {
		t.Error("Fully marked column should bingo")
	}

	p = newStrikePlayer(t, Board5x5)
	for i := 0; i < BoardRows; i++ {
		p.Marked[i][i] = true
	}
	if !MarkedBingo(p.Marked) {
		t.Error("Main diagonal should bingo")
	}
}

func TestMarkedBingoWideBoardAntiDiagonal(t *testing.T) {
	// 5x10 上反对角线取的是 row[len(row)-1-i]，即第9..5列
	p := newStrikePlayer(t, Board5x10)
	for i := 0; i < BoardRows; i++ {
		p.Marked[i][len(p.Marked[i])-1-i] = true
	}
	if !MarkedBingo(p.Marked) {
		t.Error("Anti-diagonal cells 9..5 should bingo on a 5x10 board")
	}

	// 主对角线仍然取 row[i]，只覆盖前5列
	p = newStrikePlayer(t, Board5x10)
	for i := 0; i < BoardRows; i++ {
		p.Marked[i][i] = true
	}
	if !MarkedBingo(p.Marked) {
		t.Error("Main diagonal cells 0..4 should bingo on a 5x10 board")
	}
}
