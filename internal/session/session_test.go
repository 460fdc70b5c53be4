package session

import (
	"errors"
	"testing"

	"github.com/revisehq/revise/internal/domain"
)

func TestSessionLifecycle(t *testing.T) {
	t.Run("starts in progress with full counters", func(t *testing.T) {
		var s Session
		s.Start(3)
		if s.State() != InProgress {
			t.Errorf("Expected state InProgress, got %v", s.State())
		}
		if s.Total() != 3 || s.Remaining() != 3 || s.Correct() != 0 || s.Incorrect() != 0 {
			t.Errorf("Unexpected counters after start: total=%d remaining=%d correct=%d incorrect=%d",
				s.Total(), s.Remaining(), s.Correct(), s.Incorrect())
		}
	})

	t.Run("empty due set completes immediately", func(t *testing.T) {
		var s Session
		s.Start(0)
		if s.State() != Complete {
			t.Errorf("Expected state Complete for an empty due set, got %v", s.State())
		}
	})

	t.Run("record before start is rejected", func(t *testing.T) {
		var s Session
		if err := s.Record(domain.Good); !errors.Is(err, ErrNotStarted) {
			t.Errorf("Expected ErrNotStarted, got %v", err)
		}
	})

	t.Run("completes when all cards are answered", func(t *testing.T) {
		var s Session
		s.Start(2)
		if err := s.Record(domain.Good); err != nil {
			t.Fatalf("Record returned an unexpected error: %v", err)
		}
		if s.State() != InProgress {
			t.Errorf("Expected state InProgress after one of two answers, got %v", s.State())
		}
		if err := s.Record(domain.Hard); err != nil {
			t.Fatalf("Record returned an unexpected error: %v", err)
		}
		if s.State() != Complete {
			t.Errorf("Expected state Complete, got %v", s.State())
		}
		if s.Correct() != 1 || s.Incorrect() != 1 {
			t.Errorf("Expected 1 correct and 1 incorrect, got %d and %d", s.Correct(), s.Incorrect())
		}
	})

	t.Run("record after completion is rejected", func(t *testing.T) {
		var s Session
		s.Start(1)
		if err := s.Record(domain.Easy); err != nil {
			t.Fatalf("Record returned an unexpected error: %v", err)
		}
		if err := s.Record(domain.Easy); !errors.Is(err, ErrAlreadyComplete) {
			t.Errorf("Expected ErrAlreadyComplete, got %v", err)
		}
	})
}

func TestSessionTotalsInvariant(t *testing.T) {
	ratings := []domain.Rating{domain.Good, domain.Hard, domain.Easy, domain.Hard, domain.Good}

	var s Session
	s.Start(len(ratings))
	for i, r := range ratings {
		if sum := s.Correct() + s.Incorrect() + s.Remaining(); sum != s.Total() {
			t.Fatalf("Invariant broken before answer %d: correct+incorrect+remaining = %d, total = %d", i, sum, s.Total())
		}
		if err := s.Record(r); err != nil {
			t.Fatalf("Record returned an unexpected error: %v", err)
		}
	}
	if sum := s.Correct() + s.Incorrect() + s.Remaining(); sum != s.Total() {
		t.Errorf("Invariant broken after session: correct+incorrect+remaining = %d, total = %d", sum, s.Total())
	}
	if s.Correct() != 3 || s.Incorrect() != 2 {
		t.Errorf("Expected 3 correct and 2 incorrect, got %d and %d", s.Correct(), s.Incorrect())
	}
}
