package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"ritualcoach/internal/modules/progress/domain"
	progressout "ritualcoach/internal/modules/progress/port/out"
	"ritualcoach/internal/platform/clock"
	apperrors "ritualcoach/internal/platform/errors"
)

// ProgressService owns the serialized profile, daily and streak records and
// derives the weekly and monthly views from them.
type ProgressService struct {
	clock  clock.Clock
	loc    *time.Location
	store  progressout.KVStore
	logger *zap.Logger
}

func NewProgressService(clk clock.Clock, loc *time.Location, store progressout.KVStore, logger *zap.Logger) *ProgressService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{clock: clk, loc: loc, store: store, logger: logger}
}

// Now returns the current instant in the configured time zone.
func (s *ProgressService) Now() time.Time {
	return s.clock.Now().In(s.loc)
}

func (s *ProgressService) Today() string {
	return s.Now().Format(clock.DateLayout)
}

func (s *ProgressService) SaveProfile(ctx context.Context, profile domain.Profile) error {
	return s.put(ctx, domain.ProfileKey, domain.KindProfile, profile)
}

func (s *ProgressService) GetProfile(ctx context.Context) (domain.Profile, bool, error) {
	return load[domain.Profile](ctx, s.store, domain.ProfileKey, domain.KindProfile)
}

func (s *ProgressService) SaveDailyProgress(ctx context.Context, state domain.DailyRitualState) error {
	if _, err := time.Parse(clock.DateLayout, state.Date); err != nil {
		return fmt.Errorf("%w: date %q", apperrors.ErrInvalidInput, state.Date)
	}
	if state.CompletedSteps == nil {
		state.CompletedSteps = []string{}
	}
	return s.put(ctx, domain.ProgressKey(state.Date), domain.KindDailyProgress, state)
}

func (s *ProgressService) GetDailyProgress(ctx context.Context, date string) (domain.DailyRitualState, bool, error) {
	state, found, err := load[domain.DailyRitualState](ctx, s.store, domain.ProgressKey(date), domain.KindDailyProgress)
	if err != nil || !found {
		return domain.DailyRitualState{}, found, err
	}
	if state.CompletedSteps == nil {
		state.CompletedSteps = []string{}
	}
	return state, true, nil
}

func (s *ProgressService) GetTodaysProgress(ctx context.Context) (domain.DailyRitualState, bool, error) {
	return s.GetDailyProgress(ctx, s.Today())
}

// MarkStepCompleted adds stepID to the day's record, creating the record when
// needed. An empty date means today. Repeated calls leave the record as is.
func (s *ProgressService) MarkStepCompleted(ctx context.Context, stepID, date string) (domain.DailyRitualState, error) {
	if strings.TrimSpace(stepID) == "" {
		return domain.DailyRitualState{}, fmt.Errorf("%w: step id is required", apperrors.ErrInvalidInput)
	}
	state, err := s.dayOrEmpty(ctx, s.resolveDate(date))
	if err != nil {
		return domain.DailyRitualState{}, err
	}
	if !state.AddStep(stepID) {
		return state, nil
	}
	if err := s.SaveDailyProgress(ctx, state); err != nil {
		return domain.DailyRitualState{}, err
	}
	s.logger.Debug("step completed", zap.String("date", state.Date), zap.String("step", stepID))
	return state, nil
}

// MarkStepIncomplete removes stepID and clears the day's completed flag. It
// does nothing when the day has no record.
func (s *ProgressService) MarkStepIncomplete(ctx context.Context, stepID, date string) (domain.DailyRitualState, bool, error) {
	target := s.resolveDate(date)
	state, found, err := s.GetDailyProgress(ctx, target)
	if err != nil {
		return domain.DailyRitualState{}, false, err
	}
	if !found {
		return domain.NewDailyRitualState(target), false, nil
	}
	state.RemoveStep(stepID)
	state.IsCompleted = false
	if err := s.SaveDailyProgress(ctx, state); err != nil {
		return domain.DailyRitualState{}, false, err
	}
	s.logger.Debug("step reopened", zap.String("date", target), zap.String("step", stepID))
	return state, true, nil
}

// MarkRitualCompleted closes today's record and advances the streak. A
// non-positive duration is not recorded.
func (s *ProgressService) MarkRitualCompleted(ctx context.Context, totalSteps, durationMin int) (domain.DailyRitualState, domain.Streak, error) {
	state, err := s.dayOrEmpty(ctx, s.Today())
	if err != nil {
		return domain.DailyRitualState{}, domain.Streak{}, err
	}
	state.IsCompleted = true
	state.EndTime = domain.Millis(s.clock.Now())
	if totalSteps > 0 {
		state.TotalSteps = totalSteps
	}
	if durationMin > 0 {
		d := durationMin
		state.TotalDuration = &d
	}
	if err := s.SaveDailyProgress(ctx, state); err != nil {
		return domain.DailyRitualState{}, domain.Streak{}, err
	}
	streak, err := s.UpdateStreak(ctx)
	if err != nil {
		return domain.DailyRitualState{}, domain.Streak{}, err
	}
	s.logger.Info("ritual completed",
		zap.String("date", state.Date),
		zap.Int("steps", totalSteps),
		zap.Int("streak", streak.Current),
	)
	return state, streak, nil
}

func (s *ProgressService) StartRitual(ctx context.Context) (domain.DailyRitualState, error) {
	state, err := s.dayOrEmpty(ctx, s.Today())
	if err != nil {
		return domain.DailyRitualState{}, err
	}
	state.StartTime = domain.Millis(s.clock.Now())
	if err := s.SaveDailyProgress(ctx, state); err != nil {
		return domain.DailyRitualState{}, err
	}
	s.logger.Debug("ritual started", zap.String("date", state.Date))
	return state, nil
}

func (s *ProgressService) UpdateStreak(ctx context.Context) (domain.Streak, error) {
	current, err := s.GetStreak(ctx)
	if err != nil {
		return domain.Streak{}, err
	}
	next, changed := current.Advance(s.Now())
	if !changed {
		return current, nil
	}
	if err := s.put(ctx, domain.StreakKey, domain.KindStreak, next); err != nil {
		return domain.Streak{}, err
	}
	return next, nil
}

// GetStreak returns the stored streak or the zero streak when none exists.
func (s *ProgressService) GetStreak(ctx context.Context) (domain.Streak, error) {
	streak, _, err := load[domain.Streak](ctx, s.store, domain.StreakKey, domain.KindStreak)
	if err != nil {
		return domain.Streak{}, err
	}
	return streak, nil
}

// GetWeeklyProgress returns the seven days ending today, oldest first, with
// empty placeholders for days without a record.
func (s *ProgressService) GetWeeklyProgress(ctx context.Context) ([]domain.DailyRitualState, error) {
	today := s.Now()
	out := make([]domain.DailyRitualState, 0, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(clock.DateLayout)
		state, found, err := s.GetDailyProgress(ctx, date)
		if err != nil {
			return nil, err
		}
		if !found {
			state = domain.NewDailyRitualState(date)
		}
		out = append(out, state)
	}
	return out, nil
}

func (s *ProgressService) GetMonthlyStats(ctx context.Context) (domain.MonthlyStats, error) {
	today := s.Now()
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc)
	totalDays := today.Day()
	completed := 0
	for i := 0; i < totalDays; i++ {
		state, found, err := s.GetDailyProgress(ctx, first.AddDate(0, 0, i).Format(clock.DateLayout))
		if err != nil {
			return domain.MonthlyStats{}, err
		}
		if found && state.IsCompleted {
			completed++
		}
	}
	return domain.NewMonthlyStats(completed, totalDays), nil
}

// ClearAllProgress removes every key owned by the progress store and reports
// how many were deleted.
func (s *ProgressService) ClearAllProgress(ctx context.Context) (int, error) {
	seen := map[string]struct{}{}
	for _, prefix := range domain.KeyPrefixes {
		keys, err := s.store.ListKeys(ctx, prefix)
		if err != nil {
			return 0, fmt.Errorf("list %s keys: %w", prefix, err)
		}
		for _, key := range keys {
			if _, ok := seen[key]; ok {
				continue
			}
			if err := s.store.Remove(ctx, key); err != nil {
				return len(seen), fmt.Errorf("remove %s: %w", key, err)
			}
			seen[key] = struct{}{}
		}
	}
	s.logger.Info("progress cleared", zap.Int("keys", len(seen)))
	return len(seen), nil
}

// ExportProgress dumps every namespaced entry as one indented JSON object.
// Entries that are not valid JSON are exported as strings.
func (s *ProgressService) ExportProgress(ctx context.Context) ([]byte, error) {
	keys, err := s.store.ListKeys(ctx, domain.Namespace)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	sort.Strings(keys)
	data := make(map[string]json.RawMessage, len(keys))
	for _, key := range keys {
		value, found, err := s.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if !found {
			continue
		}
		if !json.Valid(value) {
			quoted, err := json.Marshal(string(value))
			if err != nil {
				return nil, fmt.Errorf("quote %s: %w", key, err)
			}
			value = quoted
		}
		data[key] = value
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return out, nil
}

func (s *ProgressService) resolveDate(date string) string {
	if strings.TrimSpace(date) == "" {
		return s.Today()
	}
	return date
}

func (s *ProgressService) dayOrEmpty(ctx context.Context, date string) (domain.DailyRitualState, error) {
	state, found, err := s.GetDailyProgress(ctx, date)
	if err != nil {
		return domain.DailyRitualState{}, err
	}
	if !found {
		return domain.NewDailyRitualState(date), nil
	}
	return state, nil
}

func (s *ProgressService) put(ctx context.Context, key string, kind domain.Kind, record any) error {
	raw, err := domain.Encode(kind, record)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func load[T any](ctx context.Context, store progressout.KVStore, key string, kind domain.Kind) (T, bool, error) {
	var zero T
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return zero, false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return zero, false, nil
	}
	record, err := domain.Decode[T](raw, kind)
	if err != nil {
		return zero, false, fmt.Errorf("%s: %w", key, err)
	}
	return record, true, nil
}
