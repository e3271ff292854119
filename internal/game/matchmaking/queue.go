// Package matchmaking provides the FIFO queue of connections waiting
// to be paired into a match.
package matchmaking

// Queue is an ordered sequence of handles awaiting pairing. A handle
// appears at most once. The arena loop is the sole mutator, so Queue
// needs no locking of its own.
type Queue struct {
	handles []string
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends the handle to the tail of the queue.
//
// Postcondition: Returns false (and leaves the queue unchanged) if the
// handle is already queued.
func (q *Queue) Enqueue(handle string) bool {
	if q.Contains(handle) {
		return false
	}
	q.handles = append(q.handles, handle)
	return true
}

// Remove deletes the handle from wherever it sits, preserving the
// relative order of the remainder.
//
// Postcondition: Returns true if the handle was present; removing an
// absent handle is a no-op.
func (q *Queue) Remove(handle string) bool {
	for i, h := range q.handles {
		if h == handle {
			q.handles = append(q.handles[:i], q.handles[i+1:]...)
			return true
		}
	}
	return false
}

// PopPair removes and returns the two oldest handles together.
//
// Postcondition: Returns ("", "", false) and leaves the queue unchanged
// when fewer than two handles are queued.
func (q *Queue) PopPair() (first, second string, ok bool) {
	if len(q.handles) < 2 {
		return "", "", false
	}
	first, second = q.handles[0], q.handles[1]
	q.handles = q.handles[2:]
	return first, second, true
}

// Contains reports whether the handle is currently queued.
func (q *Queue) Contains(handle string) bool {
	for _, h := range q.handles {
		if h == handle {
			return true
		}
	}
	return false
}

// Len returns the number of queued handles.
func (q *Queue) Len() int {
	return len(q.handles)
}
