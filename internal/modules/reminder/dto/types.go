package dto

import "time"

type ScheduleOutput struct {
	DailyTime string
	CronSpec  string
	TimeZone  string
	NextRun   time.Time
}

type ReminderOutput struct {
	Date    string
	Message string
	Done    bool
	Streak  int
}
