package domain_test

import (
	"testing"
	"time"

	"ritualcoach/internal/modules/progress/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.Add(9 * time.Hour)
}

func TestStreakScenario(t *testing.T) {
	t.Parallel()
	s := domain.Streak{}

	s, changed := s.Advance(day("2024-01-01"))
	if !changed || s != (domain.Streak{Current: 1, Longest: 1, LastCompletionDate: "2024-01-01"}) {
		t.Fatalf("first completion: got %+v changed=%t", s, changed)
	}
	s, _ = s.Advance(day("2024-01-02"))
	if s != (domain.Streak{Current: 2, Longest: 2, LastCompletionDate: "2024-01-02"}) {
		t.Fatalf("consecutive completion: got %+v", s)
	}
	s, _ = s.Advance(day("2024-01-05"))
	if s != (domain.Streak{Current: 1, Longest: 2, LastCompletionDate: "2024-01-05"}) {
		t.Fatalf("broken streak: got %+v", s)
	}
}

func TestStreakSameDayIsIdempotent(t *testing.T) {
	t.Parallel()
	s := domain.Streak{Current: 3, Longest: 5, LastCompletionDate: "2024-02-10"}
	next, changed := s.Advance(day("2024-02-10"))
	if changed || next != s {
		t.Fatalf("same-day completion must not change streak, got %+v", next)
	}
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	t.Parallel()
	s := domain.Streak{Current: 4, Longest: 4, LastCompletionDate: "2024-02-29"}
	next, _ := s.Advance(day("2024-03-01"))
	if next.Current != 5 || next.Longest != 5 {
		t.Fatalf("expected streak to continue across leap-day boundary, got %+v", next)
	}
}

func TestStreakLongestNeverBelowCurrent(t *testing.T) {
	t.Parallel()
	s := domain.Streak{}
	start := day("2024-01-01")
	gaps := []int{1, 1, 3, 1, 1, 1, 1, 2, 1, 5, 1, 1}
	at := start
	for i, gap := range gaps {
		at = at.AddDate(0, 0, gap)
		s, _ = s.Advance(at)
		if s.Longest < s.Current {
			t.Fatalf("step %d: longest %d < current %d", i, s.Longest, s.Current)
		}
	}
	if s.Longest != 5 {
		t.Fatalf("expected longest run of 5, got %d", s.Longest)
	}
}
