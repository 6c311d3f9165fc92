package domain_test

import (
	"testing"
	"time"

	"miftah/internal/modules/session/domain"
)

func TestDurationMinutesRoundsAndFloors(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 29, 0, 30, 0, 0, time.UTC)
	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 1},
		{29 * time.Second, 1},
		{90 * time.Second, 2},
		{14*time.Minute + 29*time.Second, 14},
		{-5 * time.Minute, 1},
	}
	for _, tc := range cases {
		if got := domain.DurationMinutes(start, start.Add(tc.elapsed)); got != tc.want {
			t.Fatalf("elapsed %s: expected %d, got %d", tc.elapsed, tc.want, got)
		}
	}
}

func TestVersesReadNeverNegative(t *testing.T) {
	t.Parallel()
	if got := domain.VersesRead(5, 5); got != 1 {
		t.Fatalf("single ayah should count once, got %d", got)
	}
	if got := domain.VersesRead(10, 3); got != 0 {
		t.Fatalf("backwards range should be 0, got %d", got)
	}
}
