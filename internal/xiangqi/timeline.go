package xiangqi

// Timeline is an append-only history with a movable head. Writing after a
// rewind discards everything past the head; branches are not kept.
type Timeline[T any] struct {
	entries []T
	head    int
}

func NewTimeline[T any](initial ...T) *Timeline[T] {
	t := &Timeline[T]{head: -1}
	for _, v := range initial {
		t.AddNext(v)
	}
	return t
}

// AddNext stores v at head+1 and moves the head onto it.
func (t *Timeline[T]) AddNext(v T) {
	t.entries = append(t.entries[:t.head+1], v)
	t.head++
}

func (t *Timeline[T]) Current() (T, bool) {
	return t.At(t.head)
}

func (t *Timeline[T]) At(i int) (T, bool) {
	if i < 0 || i >= len(t.entries) {
		var zero T
		return zero, false
	}
	return t.entries[i], true
}

// HeadIndex is -1 for an empty timeline or one rewound before its first entry.
func (t *Timeline[T]) HeadIndex() int { return t.head }

// Len counts every stored entry, including those past the head.
func (t *Timeline[T]) Len() int { return len(t.entries) }

// SetHead moves the head within [-1, Len()-1].
func (t *Timeline[T]) SetHead(i int) bool {
	if i < -1 || i >= len(t.entries) {
		return false
	}
	t.head = i
	return true
}

// IsUpToDate reports whether the head sits on the newest entry.
func (t *Timeline[T]) IsUpToDate() bool { return t.head == len(t.entries)-1 }

// History returns entries up to and including the head.
func (t *Timeline[T]) History() []T {
	out := make([]T, t.head+1)
	copy(out, t.entries[:t.head+1])
	return out
}
