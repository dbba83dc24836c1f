package undo

// Stack is a fixed-capacity LIFO backed by a ring buffer. It is not safe for
// concurrent use; callers serialize access.
type Stack struct {
	buf  []Entry
	head int // index of the next write
	size int
}

// NewStack returns an empty stack. A non-positive capacity falls back to
// DefaultCapacity.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{buf: make([]Entry, capacity)}
}

func (s *Stack) Cap() int { return len(s.buf) }
func (s *Stack) Len() int { return s.size }

// Push adds e on top, evicting the oldest entry when full.
func (s *Stack) Push(e Entry) {
	s.buf[s.head] = e
	s.head = (s.head + 1) % len(s.buf)
	if s.size < len(s.buf) {
		s.size++
	}
}

// Pop removes and returns the newest entry.
func (s *Stack) Pop() (Entry, bool) {
	if s.size == 0 {
		return Entry{}, false
	}
	s.head = (s.head - 1 + len(s.buf)) % len(s.buf)
	e := s.buf[s.head]
	s.buf[s.head] = Entry{}
	s.size--
	return e, true
}

// Peek returns the newest entry without removing it.
func (s *Stack) Peek() (Entry, bool) {
	if s.size == 0 {
		return Entry{}, false
	}
	return s.buf[(s.head-1+len(s.buf))%len(s.buf)], true
}

// Remove deletes the newest entry equal to e and keeps the order of the rest.
func (s *Stack) Remove(e Entry) bool {
	entries := s.Entries()
	at := -1
	for i, candidate := range entries {
		if candidate.Equal(e) {
			at = i
			break
		}
	}
	if at < 0 {
		return false
	}

	clear(s.buf)
	s.head, s.size = 0, 0
	for i := len(entries) - 1; i >= 0; i-- {
		if i != at {
			s.Push(entries[i])
		}
	}
	return true
}

// Entries returns the stored entries newest first.
func (s *Stack) Entries() []Entry {
	out := make([]Entry, 0, s.size)
	for i := 1; i <= s.size; i++ {
		out = append(out, s.buf[(s.head-i+len(s.buf))%len(s.buf)])
	}
	return out
}
