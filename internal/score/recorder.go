package score

import (
	"log"
	"sync"
)

// Recorder is the game's score sink: an in-memory Board backed by the
// SQLite repository. Store failures are logged and swallowed; the board
// degrades to memory-only rather than ever blocking gameplay.
type Recorder struct {
	mu    sync.Mutex
	board *Board
	repo  *ScoreRepository // nil when persistence is unavailable
}

// NewRecorder creates a Recorder seeded from the repository. A nil
// repository or a failing read yields an empty board.
func NewRecorder(repo *ScoreRepository) *Recorder {
	var seed []int
	if repo != nil {
		top, err := repo.Top(MaxEntries)
		if err != nil {
			log.Printf("Failed to load scores, starting empty: %v", err)
		} else {
			seed = top
		}
	}

	return &Recorder{
		board: NewBoard(seed),
		repo:  repo,
	}
}

// Submit records a finished run's score on the board and persists it.
func (r *Recorder) Submit(value int) {
	r.mu.Lock()
	r.board.Submit(value)
	r.mu.Unlock()

	if r.repo != nil {
		if err := r.repo.Add(value); err != nil {
			log.Printf("Failed to persist score %d: %v", value, err)
		}
	}
}

// Top returns the current board, best first.
func (r *Recorder) Top() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board.Top()
}

// Best returns the highest score on the board.
func (r *Recorder) Best() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board.Best()
}
