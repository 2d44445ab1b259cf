package out

import (
	"context"

	progressin "ritualcoach/internal/modules/progress/port/in"
	"ritualcoach/internal/modules/reminder/domain"
)

// ProgressStatus reads the profile, today's record and the streak from the
// progress module.
type ProgressStatus struct {
	progress progressin.Usecase
}

func NewProgressStatus(progress progressin.Usecase) *ProgressStatus {
	return &ProgressStatus{progress: progress}
}

func (p *ProgressStatus) Status(ctx context.Context) (domain.Status, bool, error) {
	profile, found, err := p.progress.GetProfile(ctx)
	if err != nil || !found {
		return domain.Status{}, found, err
	}
	day, _, err := p.progress.TodaysProgress(ctx)
	if err != nil {
		return domain.Status{}, false, err
	}
	streak, err := p.progress.Streak(ctx)
	if err != nil {
		return domain.Status{}, false, err
	}
	return domain.Status{
		Date:            day.Date,
		Tradition:       profile.Tradition,
		DailyTime:       profile.DailyTime,
		DurationMinutes: profile.DurationMinutes,
		CompletedSteps:  len(day.CompletedSteps),
		IsCompleted:     day.IsCompleted,
		StreakCurrent:   streak.Current,
		StreakLongest:   streak.Longest,
	}, true, nil
}
