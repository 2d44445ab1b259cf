package domain_test

import (
	"errors"
	"testing"

	"ritualcoach/internal/modules/progress/domain"
	apperrors "ritualcoach/internal/platform/errors"
)

func TestDailyStateAddRemoveStep(t *testing.T) {
	t.Parallel()
	state := domain.NewDailyRitualState("2024-01-01")
	if !state.AddStep("a") {
		t.Fatalf("first add should report a change")
	}
	if state.AddStep("a") {
		t.Fatalf("second add must be a no-op")
	}
	if len(state.CompletedSteps) != 1 {
		t.Fatalf("expected one step, got %v", state.CompletedSteps)
	}
	if !state.RemoveStep("a") || state.RemoveStep("a") {
		t.Fatalf("remove should report a change exactly once")
	}
	if state.CompletedSteps == nil {
		t.Fatalf("completed steps must stay non-nil")
	}
}

func TestMonthlyStatsGuardsZeroDays(t *testing.T) {
	t.Parallel()
	if got := domain.NewMonthlyStats(0, 0); got.CompletionRate != 0 {
		t.Fatalf("expected zero rate, got %v", got.CompletionRate)
	}
	if got := domain.NewMonthlyStats(3, 12); got.CompletionRate != 25 {
		t.Fatalf("expected 25%%, got %v", got.CompletionRate)
	}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()
	base := domain.Profile{
		UserID:          "u-1",
		Tradition:       domain.TraditionAndhraSmarta,
		Region:          domain.RegionSouth,
		Language:        domain.LanguageTelugu,
		DailyTime:       "06:30",
		DurationMinutes: 30,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("profile should be valid: %v", err)
	}
	mutations := map[string]func(p *domain.Profile){
		"tradition": func(p *domain.Profile) { p.Tradition = "shaiva" },
		"region":    func(p *domain.Profile) { p.Region = "east" },
		"language":  func(p *domain.Profile) { p.Language = "fr" },
		"time":      func(p *domain.Profile) { p.DailyTime = "6am" },
		"duration":  func(p *domain.Profile) { p.DurationMinutes = 0 },
		"user":      func(p *domain.Profile) { p.UserID = " " },
	}
	for name, mutate := range mutations {
		p := base
		mutate(&p)
		if err := p.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestCodecRoundTripAndFailures(t *testing.T) {
	t.Parallel()
	raw, err := domain.Encode(domain.KindStreak, domain.Streak{Current: 2, Longest: 3, LastCompletionDate: "2024-01-02"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := domain.Decode[domain.Streak](raw, domain.KindStreak)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Current != 2 || got.Longest != 3 {
		t.Fatalf("unexpected streak %+v", got)
	}

	if _, err := domain.Decode[domain.Streak](raw, domain.KindProfile); !errors.Is(err, apperrors.ErrMalformedRecord) {
		t.Fatalf("kind mismatch should be malformed, got %v", err)
	}
	if _, err := domain.Decode[domain.Streak]([]byte("{not json"), domain.KindStreak); !errors.Is(err, apperrors.ErrMalformedRecord) {
		t.Fatalf("broken json should be malformed, got %v", err)
	}
	future := []byte(`{"schema_version":9,"kind":"streak","record":{}}`)
	if _, err := domain.Decode[domain.Streak](future, domain.KindStreak); !errors.Is(err, apperrors.ErrUnsupportedSchema) {
		t.Fatalf("future schema should be unsupported, got %v", err)
	}
	legacy := []byte(`{"current":1,"longest":1}`)
	if _, err := domain.Decode[domain.Streak](legacy, domain.KindStreak); !errors.Is(err, apperrors.ErrUnsupportedSchema) {
		t.Fatalf("untagged record should be rejected, got %v", err)
	}
}
