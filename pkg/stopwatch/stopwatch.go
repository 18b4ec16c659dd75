package stopwatch

import (
	"errors"
	"time"
)

var ErrNoTic = errors.New("stopwatch: toc without a matching tic")

// Stopwatch marks nest: Tic Tic Toc Toc returns the inner interval first and
// the outer one second. Each Toc is matched with the most recent unmatched Tic.
type Stopwatch struct {
	marks []time.Time
	now   func() time.Time
}

func New() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// Tic pushes the current time.
func (s *Stopwatch) Tic() {
	s.marks = append(s.marks, s.now())
}

// Toc pops the most recent mark and returns the time elapsed since it. With
// no mark pending it returns zero and ErrNoTic.
func (s *Stopwatch) Toc() (time.Duration, error) {
	if len(s.marks) == 0 {
		return 0, ErrNoTic
	}
	last := len(s.marks) - 1
	start := s.marks[last]
	s.marks = s.marks[:last]
	return s.now().Sub(start), nil
}

// TocSeconds is Toc as a plain number of seconds.
func (s *Stopwatch) TocSeconds() (float64, error) {
	d, err := s.Toc()
	return d.Seconds(), err
}

func (s *Stopwatch) Pending() int { return len(s.marks) }
