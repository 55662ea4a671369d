// Package score keeps the ranked top score list and its SQLite persistence.
package score

// MaxEntries is the number of scores the board keeps.
const MaxEntries = 5

// Board is an ordered top score list: descending, at most MaxEntries long.
type Board struct {
	scores []int
}

// NewBoard creates a Board seeded with the given scores. The seed is
// sorted and trimmed, so a store that returns unsorted or overlong data
// still yields a valid board.
func NewBoard(seed []int) *Board {
	b := &Board{}
	for _, s := range seed {
		b.Submit(s)
	}
	return b
}

// Submit inserts a score at its rank. Scores beyond MaxEntries fall off
// the bottom.
func (b *Board) Submit(score int) {
	pos := len(b.scores)
	for i, s := range b.scores {
		if score > s {
			pos = i
			break
		}
	}

	b.scores = append(b.scores, 0)
	copy(b.scores[pos+1:], b.scores[pos:])
	b.scores[pos] = score

	if len(b.scores) > MaxEntries {
		b.scores = b.scores[:MaxEntries]
	}
}

// Top returns a copy of the board, best first.
func (b *Board) Top() []int {
	return append([]int(nil), b.scores...)
}

// Best returns the highest score, or 0 for an empty board.
func (b *Board) Best() int {
	if len(b.scores) == 0 {
		return 0
	}
	return b.scores[0]
}
