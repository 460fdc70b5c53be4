// Package session tracks one continuous pass through a due-set: running
// correct/incorrect/remaining counters and the completion transition.
package session

import (
	"errors"

	"github.com/revisehq/revise/internal/domain"
)

// ErrAlreadyComplete is returned by Record once every card in the session
// has been answered.
var ErrAlreadyComplete = errors.New("session already complete")

// ErrNotStarted is returned by Record before Start has been called.
var ErrNotStarted = errors.New("session not started")

// State of a study session.
type State int

const (
	Idle State = iota
	InProgress
	Complete
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Complete:
		return "complete"
	default:
		return "idle"
	}
}

// Session accumulates outcomes for one study session. It holds the invariant
// Correct + Incorrect + Remaining == Total at every point.
type Session struct {
	state     State
	total     int
	remaining int
	correct   int
	incorrect int
}

// Start begins a session over a due-set of the given size. A zero-sized
// due-set completes immediately.
func (s *Session) Start(total int) {
	s.state = InProgress
	s.total = total
	s.remaining = total
	s.correct = 0
	s.incorrect = 0
	if s.remaining == 0 {
		s.state = Complete
	}
}

// Record counts one answered card. Ratings above hard count as correct.
// Each Record call is paired with an ApplyOutcome on the same card by the
// caller before the next card is presented.
func (s *Session) Record(rating domain.Rating) error {
	switch s.state {
	case Idle:
		return ErrNotStarted
	case Complete:
		return ErrAlreadyComplete
	}

	if rating > domain.Hard {
		s.correct++
	} else {
		s.incorrect++
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		s.state = Complete
	}
	return nil
}

func (s *Session) State() State   { return s.state }
func (s *Session) Total() int     { return s.total }
func (s *Session) Remaining() int { return s.remaining }
func (s *Session) Correct() int   { return s.correct }
func (s *Session) Incorrect() int { return s.incorrect }
