package domain

// Queue is the ordered list of tracks of a voice session.
// The head of the queue is the current track.
//
// Queue is not safe for concurrent use; it is only mutated while the owning
// guild's lock is held.
type Queue struct {
	tracks []*Track
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Len returns the number of tracks, including the current one.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if there is no current track.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// Current returns the head of the queue, or nil if the queue is empty.
func (q *Queue) Current() *Track {
	if len(q.tracks) == 0 {
		return nil
	}
	return q.tracks[0]
}

// Append adds tracks to the tail and reports whether the queue was empty before.
func (q *Queue) Append(tracks ...*Track) bool {
	wasEmpty := len(q.tracks) == 0
	q.tracks = append(q.tracks, tracks...)
	return wasEmpty
}

// Pop removes and returns the head of the queue, or nil if the queue is empty.
func (q *Queue) Pop() *Track {
	if len(q.tracks) == 0 {
		return nil
	}
	head := q.tracks[0]
	q.tracks[0] = nil
	q.tracks = q.tracks[1:]
	return head
}

// Upcoming returns the tracks after the current one.
func (q *Queue) Upcoming() []*Track {
	if len(q.tracks) <= 1 {
		return nil
	}
	upcoming := make([]*Track, len(q.tracks)-1)
	copy(upcoming, q.tracks[1:])
	return upcoming
}

// List returns every track, current first.
func (q *Queue) List() []*Track {
	list := make([]*Track, len(q.tracks))
	copy(list, q.tracks)
	return list
}

// Clear drops every track, including the current one.
func (q *Queue) Clear() {
	q.tracks = nil
}

// Clone returns a deep copy of the queue.
func (q *Queue) Clone() *Queue {
	c := &Queue{tracks: make([]*Track, len(q.tracks))}
	for i, t := range q.tracks {
		c.tracks[i] = t.Clone()
	}
	return c
}
