package domain

// Rating is the user's self-assessed recall quality for one answer.
type Rating int

const (
	Hard Rating = 1
	Good Rating = 2
	Easy Rating = 3
)

// Valid reports whether the rating is one of the three recognized values.
func (r Rating) Valid() bool {
	return r >= Hard && r <= Easy
}

// Performance maps a rating onto the canonical 0-100 success scale used by
// review events and all aggregation. Unrecognized ratings score like Hard,
// matching the scheduler's fail-soft handling.
func (r Rating) Performance() int {
	switch r {
	case Good:
		return 50
	case Easy:
		return 100
	default:
		return 0
	}
}

func (r Rating) String() string {
	switch r {
	case Hard:
		return "hard"
	case Good:
		return "good"
	case Easy:
		return "easy"
	default:
		return "unknown"
	}
}
