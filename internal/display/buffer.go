package display

// SampleBuffer is a fixed-capacity ring. Record overwrites the oldest slot
// once the buffer has wrapped; unwritten slots hold the zero value.
type SampleBuffer[T any] struct {
	slots  []T
	cursor int
}

// NewSampleBuffer creates a zeroed ring with the given capacity
func NewSampleBuffer[T any](capacity int) *SampleBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &SampleBuffer[T]{slots: make([]T, capacity)}
}

// Record stores v at the cursor and advances it modulo the capacity
func (b *SampleBuffer[T]) Record(v T) {
	b.slots[b.cursor] = v
	b.cursor = (b.cursor + 1) % len(b.slots)
}

// Values returns a copy of every slot in storage order
func (b *SampleBuffer[T]) Values() []T {
	out := make([]T, len(b.slots))
	copy(out, b.slots)
	return out
}

// Cursor is the slot the next Record writes to
func (b *SampleBuffer[T]) Cursor() int { return b.cursor }

// Cap returns the fixed capacity
func (b *SampleBuffer[T]) Cap() int { return len(b.slots) }

// Reset zeroes every slot and rewinds the cursor
func (b *SampleBuffer[T]) Reset() {
	clear(b.slots)
	b.cursor = 0
}

// HistoryBuffer is a fixed-length shift register ordered newest first
type HistoryBuffer[T any] struct {
	slots []T
}

// NewHistoryBuffer creates a history of exactly n zero values
func NewHistoryBuffer[T any](n int) *HistoryBuffer[T] {
	if n < 1 {
		n = 1
	}
	return &HistoryBuffer[T]{slots: make([]T, n)}
}

// Push inserts v at slot 0 and drops the oldest slot
func (h *HistoryBuffer[T]) Push(v T) {
	copy(h.slots[1:], h.slots[:len(h.slots)-1])
	h.slots[0] = v
}

// At returns slot i; 0 is the most recent push
func (h *HistoryBuffer[T]) At(i int) T { return h.slots[i] }
