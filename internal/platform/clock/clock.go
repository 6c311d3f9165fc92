package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall time. Calendar-day logic depends on the
// location, so unlike storage timestamps it is not normalized to UTC here.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
