package composer

import "sync"

// NoteBudget is the note ceiling shared by every track of one generation.
type NoteBudget struct {
	mu        sync.Mutex
	limit     int
	used      int
	exhausted bool
}

func NewNoteBudget(limit int) *NoteBudget {
	return &NoteBudget{limit: limit}
}

// Take reserves one note. It returns false once the ceiling is reached.
func (b *NoteBudget) Take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.used >= b.limit {
		b.exhausted = true
		return false
	}
	b.used++
	return true
}

// Release returns n notes taken by a track that was dropped. Tracks render one
// after another, so any refusal seen before those notes were taken was theirs.
func (b *NoteBudget) Release(n int) {
	if n <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.used = max(b.used-n, 0)
	b.exhausted = false
}

// Used is the number of notes emitted so far.
func (b *NoteBudget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

// Exhausted reports whether a note was refused.
func (b *NoteBudget) Exhausted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.exhausted
}
