package ui

// History keeps the most recent values of a reading in a fixed ring.
type History struct {
	buf  []float64
	next int
	full bool
}

// NewHistory returns a history holding up to n values.
func NewHistory(n int) *History {
	if n < 1 {
		n = 1
	}
	return &History{buf: make([]float64, n)}
}

// Push appends v, evicting the oldest value once full.
func (h *History) Push(v float64) {
	h.buf[h.next] = v
	h.next++
	if h.next == len(h.buf) {
		h.next = 0
		h.full = true
	}
}

// Len returns the number of stored values.
func (h *History) Len() int {
	if h.full {
		return len(h.buf)
	}
	return h.next
}

// Values returns the stored values from oldest to newest.
func (h *History) Values() []float64 {
	if !h.full {
		return append([]float64(nil), h.buf[:h.next]...)
	}
	out := make([]float64, 0, len(h.buf))
	out = append(out, h.buf[h.next:]...)
	return append(out, h.buf[:h.next]...)
}

// Clear drops every value.
func (h *History) Clear() {
	h.next = 0
	h.full = false
}
