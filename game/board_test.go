package game

import (
	"testing"
)

func TestGenerate_Permutation(t *testing.T) {
	cases := []struct {
		boardType BoardType
		cols      int
		max       int
	}{
		{Board5x5, 5, 25},
		{Board5x10, 10, 50},
	}

	for _, tc := range cases {
		board, err := Generate(tc.boardType)
		if err != nil {
			t.Fatalf("Generate(%s) returned error: %v", tc.boardType, err)
		}

		if len(board) != BoardRows {
			t.Fatalf("Expected %d rows for %s, got %d", BoardRows, tc.boardType, len(board))
		}

		seen := make(map[int]bool)
		for r, row := range board {
			if len(row) != tc.cols {
				t.Fatalf("Expected %d columns in row %d for %s, got %d", tc.cols, r, tc.boardType, len(row))
			}
			for _, n := range row {
				if n < 1 || n > tc.max {
					t.Errorf("Value %d out of range 1..%d for %s", n, tc.max, tc.boardType)
				}
				if seen[n] {
					t.Errorf("Duplicate value %d on %s board", n, tc.boardType)
				}
				seen[n] = true
			}
		}

		if len(seen) != tc.max {
			t.Errorf("Expected %d distinct values for %s, got %d", tc.max, tc.boardType, len(seen))
		}
	}
}

func TestGenerate_InvalidBoardType(t *testing.T) {
	if _, err := Generate(BoardType("6x6")); err != ErrInvalidBoardType {
		t.Errorf("Expected ErrInvalidBoardType, got %v", err)
	}
}

func TestNewPlayer_Initialized(t *testing.T) {
	p, err := NewPlayer("tester", Board5x10)
	if err != nil {
		t.Fatalf("NewPlayer returned error: %v", err)
	}

	if p.ID == "" {
		t.Error("Player ID should not be empty")
	}

	if len(p.Marked) != BoardRows {
		t.Fatalf("Expected %d marked rows, got %d", BoardRows, len(p.Marked))
	}
	for r, row := range p.Marked {
		if len(row) != len(p.Board[r]) {
			t.Errorf("Marked row %d shape mismatch: %d vs %d", r, len(row), len(p.Board[r]))
		}
		for c, cell := range row {
			if cell {
				t.Errorf("Marked[%d][%d] should start false", r, c)
			}
		}
	}

	if len(p.Strikes.Rows) != BoardRows {
		t.Errorf("Expected 5 row strikes, got %d", len(p.Strikes.Rows))
	}
	if len(p.Strikes.Columns) != 10 {
		t.Errorf("Expected 10 column strikes for 5x10, got %d", len(p.Strikes.Columns))
	}
	if p.BingoWord.Complete() {
		t.Error("BingoWord should start empty")
	}
}

func TestPlayer_MarkNumber(t *testing.T) {
	p, err := NewPlayer("tester", Board5x5)
	if err != nil {
		t.Fatalf("NewPlayer returned error: %v", err)
	}

	target := p.Board[2][3]
	p.MarkNumber(target)
	if !p.Marked[2][3] {
		t.Errorf("MarkNumber(%d) did not mark the matching cell", target)
	}

	// Marking again is a no-op re-assertion.
	p.MarkNumber(target)
	if !p.Marked[2][3] {
		t.Error("Repeated MarkNumber should keep the cell marked")
	}

	// A number outside the board marks nothing.
	p.MarkNumber(26)
	for r, row := range p.Marked {
		for c, cell := range row {
			if cell && !(r == 2 && c == 3) {
				t.Errorf("Unexpected mark at [%d][%d]", r, c)
			}
		}
	}
}

func TestPlayer_CloneIsolation(t *testing.T) {
	p, err := NewPlayer("tester", Board5x5)
	if err != nil {
		t.Fatalf("NewPlayer returned error: %v", err)
	}

	cp := p.Clone()
	cp.Marked[0][0] = true
	cp.Strikes.Rows[0] = true
	cp.BingoWord.Advance()

	if p.Marked[0][0] {
		t.Error("Clone should not share marked grid")
	}
	if p.Strikes.Rows[0] {
		t.Error("Clone should not share strikes")
	}
	if p.BingoWord.B {
		t.Error("Clone should not share bingo word")
	}
}
