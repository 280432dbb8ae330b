package falldown

// Line is a row of segments generated together. All segments share the
// line's y and moving flag; they are kept in left-to-right order.
type Line struct {
	y        float64
	moving   bool
	segments []*Segment
}

func newLine(y float64, moving bool) *Line {
	return &Line{y: y, moving: moving}
}

// Add appends a segment to the right end of the line.
func (l *Line) Add(s *Segment) {
	l.segments = append(l.segments, s)
}

// Y returns the line's vertical world coordinate.
func (l *Line) Y() float64 { return l.y }

// Moving reports whether the line's segments oscillate.
func (l *Line) Moving() bool { return l.moving }

// Segments returns the line's segments. The slice must not be modified.
func (l *Line) Segments() []*Segment { return l.segments }

// Len returns the number of segments.
func (l *Line) Len() int { return len(l.segments) }

func (l *Line) advance(dt float64) {
	for _, s := range l.segments {
		s.Advance(dt)
	}
}

// remove deletes the segment at index, reporting whether it existed.
func (l *Line) remove(index int) bool {
	if index < 0 || index >= len(l.segments) {
		return false
	}
	l.segments = append(l.segments[:index], l.segments[index+1:]...)
	return true
}
