package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	Namespace         = "ritual-coach-"
	ProfileKey        = Namespace + "profile"
	ProgressPrefix    = Namespace + "progress"
	StreakKey         = Namespace + "streak"
	LastCompletionKey = Namespace + "last-completion"
)

// KeyPrefixes lists every key family owned by the progress store.
var KeyPrefixes = []string{ProfileKey, ProgressPrefix, StreakKey, LastCompletionKey}

func ProgressKey(date string) string {
	return ProgressPrefix + "-" + date
}

type Tradition string

const (
	TraditionAndhraSmarta Tradition = "andhra_smarta"
	TraditionVaishnava    Tradition = "vaishnava"
)

type Region string

const (
	RegionSouth Region = "south"
	RegionNorth Region = "north"
)

type Language string

const (
	LanguageTelugu  Language = "te"
	LanguageHindi   Language = "hi"
	LanguageEnglish Language = "en"
)

type Profile struct {
	UserID          string    `json:"user_id"`
	Tradition       Tradition `json:"tradition"`
	Region          Region    `json:"region"`
	Language        Language  `json:"language_pref"`
	DailyTime       string    `json:"daily_time"`
	DurationMinutes int       `json:"duration_minutes"`
	DietaryRules    string    `json:"dietary_rules"`
	KidMode         bool      `json:"kid_mode"`
}

func (p Profile) Validate() error {
	switch p.Tradition {
	case TraditionAndhraSmarta, TraditionVaishnava:
	default:
		return fmt.Errorf("unsupported tradition %q", string(p.Tradition))
	}
	switch p.Region {
	case RegionSouth, RegionNorth:
	default:
		return fmt.Errorf("unsupported region %q", string(p.Region))
	}
	switch p.Language {
	case LanguageTelugu, LanguageHindi, LanguageEnglish:
	default:
		return fmt.Errorf("unsupported language %q", string(p.Language))
	}
	if _, err := time.Parse("15:04", p.DailyTime); err != nil {
		return fmt.Errorf("daily time must be HH:MM, got %q", p.DailyTime)
	}
	if p.DurationMinutes <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	return nil
}

// DailyRitualState is the per-day record. Timestamps are milliseconds since
// the Unix epoch.
type DailyRitualState struct {
	Date           string   `json:"date"`
	CompletedSteps []string `json:"completed_steps"`
	IsCompleted    bool     `json:"is_completed"`
	StartTime      *int64   `json:"start_time,omitempty"`
	EndTime        *int64   `json:"end_time,omitempty"`
	TotalDuration  *int     `json:"total_duration,omitempty"`
	TotalSteps     int      `json:"total_steps,omitempty"`
}

func NewDailyRitualState(date string) DailyRitualState {
	return DailyRitualState{Date: date, CompletedSteps: []string{}}
}

func (d DailyRitualState) HasStep(stepID string) bool {
	return slices.Contains(d.CompletedSteps, stepID)
}

// AddStep appends stepID unless it is already present.
func (d *DailyRitualState) AddStep(stepID string) bool {
	if d.HasStep(stepID) {
		return false
	}
	d.CompletedSteps = append(d.CompletedSteps, stepID)
	return true
}

func (d *DailyRitualState) RemoveStep(stepID string) bool {
	before := len(d.CompletedSteps)
	d.CompletedSteps = slices.DeleteFunc(d.CompletedSteps, func(id string) bool { return id == stepID })
	if d.CompletedSteps == nil {
		d.CompletedSteps = []string{}
	}
	return len(d.CompletedSteps) != before
}

func Millis(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}

type MonthlyStats struct {
	CompletedDays  int     `json:"completed_days"`
	TotalDays      int     `json:"total_days"`
	CompletionRate float64 `json:"completion_rate"`
}

func NewMonthlyStats(completed, total int) MonthlyStats {
	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total) * 100
	}
	return MonthlyStats{CompletedDays: completed, TotalDays: total, CompletionRate: rate}
}
