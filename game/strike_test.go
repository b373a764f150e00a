package game

import (
	"testing"
)

// markRow marks every cell of a row.
func markRow(p *Player, row int) {
	for c := range p.Marked[row] {
		p.Marked[row][c] = true
	}
}

// markColumn marks every cell of a column.
func markColumn(p *Player, col int) {
	for r := range p.Marked {
		p.Marked[r][col] = true
	}
}

func newStrikePlayer(t *testing.T, boardType BoardType) *Player {
	t.Helper()
	p, err := NewPlayer("tester", boardType)
	if err != nil {
		t.Fatalf("NewPlayer returned error: %v", err)
	}
	return p
}

func TestValidateRowStrike(t *testing.T) {
	p := newStrikePlayer(t, Board5x5)

	if err := ValidateRowStrike(p, -1); err != ErrInvalidIndex {
		t.Errorf("Negative index: got %v, want ErrInvalidIndex", err)
	}
	if err := ValidateRowStrike(p, 5); err != ErrInvalidIndex {
		t.Errorf("Index 5: got %v, want ErrInvalidIndex", err)
	}

	if err := ValidateRowStrike(p, 1); err != ErrLineIncomplete {
		t.Errorf("Unmarked row: got %v, want ErrLineIncomplete", err)
	}

	// Partially marked is still incomplete.
	p.Marked[1][0] = true
	if err := ValidateRowStrike(p, 1); err != ErrLineIncomplete {
		t.Errorf("Partial row: got %v, want ErrLineIncomplete", err)
	}

	markRow(p, 1)
	if err := ValidateRowStrike(p, 1); err != nil {
		t.Errorf("Complete row: got %v, want nil", err)
	}

	p.Strikes.Rows[1] = true
	if err := ValidateRowStrike(p, 1); err != ErrAlreadyStruck {
		t.Errorf("Struck row: got %v, want ErrAlreadyStruck", err)
	}
}

func TestValidateColumnStrike(t *testing.T) {
	narrow := newStrikePlayer(t, Board5x5)
	wide := newStrikePlayer(t, Board5x10)

	// 列上限随棋盘规格变化
	if err := ValidateColumnStrike(narrow, 5); err != ErrInvalidIndex {
		t.Errorf("Column 5 on 5x5: got %v, want ErrInvalidIndex", err)
	}
	if err := ValidateColumnStrike(wide, 9); err != ErrLineIncomplete {
		t.Errorf("Column 9 on 5x10 should be in range, got %v", err)
	}
	if err := ValidateColumnStrike(wide, 10); err != ErrInvalidIndex {
		t.Errorf("Column 10 on 5x10: got %v, want ErrInvalidIndex", err)
	}

	markColumn(wide, 7)
	if err := ValidateColumnStrike(wide, 7); err != nil {
		t.Errorf("Complete column: got %v, want nil", err)
	}

	wide.Strikes.Columns[7] = true
	if err := ValidateColumnStrike(wide, 7); err != ErrAlreadyStruck {
		t.Errorf("Struck column: got %v, want ErrAlreadyStruck", err)
	}
}
