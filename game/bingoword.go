// game/bingoword.go
package game

// BingoWord 是次要进度条：每次有效划线按 B→I→N→G→O 的固定顺序点亮一个字母
// 全部点亮是独立于完成线数的另一条获胜路径
type BingoWord struct {
	B bool `json:"B"`
	I bool `json:"I"`
	N bool `json:"N"`
	G bool `json:"G"`
	O bool `json:"O"`
}

// BingoLetters 字母的固定点亮顺序
var BingoLetters = [5]string{"B", "I", "N", "G", "O"}

func (w *BingoWord) slots() [5]*bool {
	return [5]*bool{&w.B, &w.I, &w.N, &w.G, &w.O}
}

// Advance 点亮第一个未点亮的字母，返回该字母
// 所有字母都已点亮时返回 ("", false)，不做任何修改
func (w *BingoWord) Advance() (string, bool) {
	for i, slot := range w.slots() {
		if !*slot {
			*slot = true
			return BingoLetters[i], true
		}
	}
	return "", false
}

// Complete 检查五个字母是否全部点亮
func (w *BingoWord) Complete() bool {
	return w.B && w.I && w.N && w.G && w.O
}

// Progress 返回已点亮的字母数
func (w *BingoWord) Progress() int {
	count := 0
	for _, slot := range w.slots() {
		if *slot {
			count++
		}
	}
	return count
}
