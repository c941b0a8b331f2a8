package domain

import (
	"fmt"
	"sort"
	"time"
)

type ScheduleKind string

const (
	ScheduleMeal       ScheduleKind = "meal"
	ScheduleSupplement ScheduleKind = "supplement"
)

// ScheduleItem is one entry of the day's schedule. Detail is the food list
// summary for meals and "<dosage> <unit>" for supplements.
type ScheduleItem struct {
	Kind          ScheduleKind `json:"kind"`
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	ScheduledTime string       `json:"scheduledTime"`
	Completed     bool         `json:"completed"`
	Detail        string       `json:"detail"`
}

type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type CompletionSummary struct {
	Habits      Progress `json:"habits"`
	Meals       Progress `json:"meals"`
	Supplements Progress `json:"supplements"`
}

type RecoveryStats struct {
	TotalSoberDays int `json:"totalSoberDays"`
	LongestStreak  int `json:"longestStreak"`
	ActiveCount    int `json:"activeAddictions"`
}

func TotalSoberDays(addictions []Addiction) int {
	total := 0
	for _, a := range addictions {
		total += a.DaysSober
	}
	return total
}

func LongestSoberStreak(addictions []Addiction) int {
	longest := 0
	for _, a := range addictions {
		if a.DaysSober > longest {
			longest = a.DaysSober
		}
	}
	return longest
}

func ActiveAddictions(addictions []Addiction) []Addiction {
	var out []Addiction
	for _, a := range addictions {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}

func AddictionsByType(addictions []Addiction, t AddictionType) []Addiction {
	var out []Addiction
	for _, a := range addictions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

// TodaySchedule merges the meals and supplements planned for date and sorts
// them by time of day. The string comparison is valid because times are
// zero-padded 24h "HH:MM".
func TodaySchedule(meals []MealPrep, supplements []Supplement, date string) []ScheduleItem {
	items := make([]ScheduleItem, 0)
	for _, m := range meals {
		if m.ScheduledDate != date {
			continue
		}
		items = append(items, ScheduleItem{
			Kind:          ScheduleMeal,
			ID:            m.ID,
			Name:          m.Name,
			ScheduledTime: m.ScheduledTime,
			Completed:     m.Completed,
			Detail:        fmt.Sprintf("%d foods · %.0f kcal", len(m.Foods), m.Calories),
		})
	}
	for _, s := range supplements {
		if s.ScheduledDate != date {
			continue
		}
		items = append(items, ScheduleItem{
			Kind:          ScheduleSupplement,
			ID:            s.ID,
			Name:          s.Name,
			ScheduledTime: s.ScheduledTime,
			Completed:     s.Completed,
			Detail:        s.Dosage + " " + s.Unit,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ScheduledTime < items[j].ScheduledTime
	})
	return items
}

func Summarize(habits []Habit, meals []MealPrep, supplements []Supplement) CompletionSummary {
	var s CompletionSummary
	s.Habits.Total = len(habits)
	for _, h := range habits {
		if h.Completed {
			s.Habits.Completed++
		}
	}
	s.Meals.Total = len(meals)
	for _, m := range meals {
		if m.Completed {
			s.Meals.Completed++
		}
	}
	s.Supplements.Total = len(supplements)
	for _, sp := range supplements {
		if sp.Completed {
			s.Supplements.Completed++
		}
	}
	return s
}

func Recovery(addictions []Addiction) RecoveryStats {
	return RecoveryStats{
		TotalSoberDays: TotalSoberDays(addictions),
		LongestStreak:  LongestSoberStreak(addictions),
		ActiveCount:    len(ActiveAddictions(addictions)),
	}
}

func RemindersByType(reminders []Reminder, t ReminderType) []Reminder {
	var out []Reminder
	for _, r := range reminders {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

func ActiveReminders(reminders []Reminder) []Reminder {
	var out []Reminder
	for _, r := range reminders {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out
}

func DueReminders(reminders []Reminder, now time.Time) []Reminder {
	var out []Reminder
	for _, r := range reminders {
		if r.IsDue(now) {
			out = append(out, r)
		}
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
