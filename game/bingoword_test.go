package game

import (
	"testing"
)

func TestBingoWord_AdvanceOrder(t *testing.T) {
	var w BingoWord

	for i, want := range BingoLetters {
		letter, ok := w.Advance()
		if !ok {
			t.Fatalf("Advance #%d should strike a letter", i+1)
		}
		if letter != want {
			t.Errorf("Advance #%d struck %q, want %q", i+1, letter, want)
		}
		if w.Progress() != i+1 {
			t.Errorf("Progress after %d advances = %d", i+1, w.Progress())
		}
	}

	if !w.Complete() {
		t.Error("Word should be complete after 5 advances")
	}

	// 第六次是幂等空操作
	letter, ok := w.Advance()
	if ok || letter != "" {
		t.Errorf("6th Advance should be a no-op, got (%q, %v)", letter, ok)
	}
	if !w.Complete() {
		t.Error("No-op advance must not revert letters")
	}
}
