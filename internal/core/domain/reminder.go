package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrReminderNotFound    = errors.New("reminder not found")
	ErrReminderTitleEmpty  = errors.New("reminder title cannot be empty")
	ErrInvalidReminderType = errors.New("invalid reminder type")
	ErrInvalidWeekdays     = errors.New("invalid weekdays (must be 0-6)")
	ErrRecurringNoDays     = errors.New("recurring reminder needs at least one weekday")
	ErrOneTimeNoDate       = errors.New("one-time reminder needs a scheduled date")
)

type ReminderType string

const (
	ReminderHabit      ReminderType = "habit"
	ReminderMeal       ReminderType = "meal"
	ReminderSupplement ReminderType = "supplement"
	ReminderAddiction  ReminderType = "addiction"
	ReminderWater      ReminderType = "water"
	ReminderExercise   ReminderType = "exercise"
	ReminderMedication ReminderType = "medication"
	ReminderCustom     ReminderType = "custom"
)

func (t ReminderType) Valid() bool {
	switch t {
	case ReminderHabit, ReminderMeal, ReminderSupplement, ReminderAddiction,
		ReminderWater, ReminderExercise, ReminderMedication, ReminderCustom:
		return true
	}
	return false
}

// Reminder is either one-time (ScheduledDate set) or recurring on
// RecurringDays (0 = Sunday), told apart by IsRecurring.
type Reminder struct {
	ID            string       `json:"id"`
	Type          ReminderType `json:"type"`
	Title         string       `json:"title"`
	Message       string       `json:"message"`
	ScheduledTime string       `json:"scheduledTime"`
	ScheduledDate string       `json:"scheduledDate,omitempty"`
	IsRecurring   bool         `json:"isRecurring"`
	RecurringDays []int        `json:"recurringDays,omitempty"`
	IsActive      bool         `json:"isActive"`
	CreatedAt     time.Time    `json:"createdAt"`
	LastTriggered *time.Time   `json:"lastTriggered,omitempty"`
	LastCompleted *time.Time   `json:"lastCompleted,omitempty"`
}

func (r Reminder) GetID() string { return r.ID }

func (r Reminder) Clone() Reminder {
	if r.RecurringDays != nil {
		days := make([]int, len(r.RecurringDays))
		copy(days, r.RecurringDays)
		r.RecurringDays = days
	}
	r.LastTriggered = clonePtr(r.LastTriggered)
	r.LastCompleted = clonePtr(r.LastCompleted)
	return r
}

// IsDue reports whether the reminder should fire at now: it is active,
// scheduled for now's day, its time has passed and it has not fired that day.
// now is interpreted in its own location.
func (r Reminder) IsDue(now time.Time) bool {
	if !r.IsActive {
		return false
	}

	today := now.Format(DateLayout)
	if r.IsRecurring {
		weekday := int(now.Weekday())
		found := false
		for _, d := range r.RecurringDays {
			if d == weekday {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	} else if r.ScheduledDate != today {
		return false
	}

	if r.ScheduledTime > now.Format(TimeLayout) {
		return false
	}

	if r.LastTriggered != nil && r.LastTriggered.In(now.Location()).Format(DateLayout) == today {
		return false
	}
	return true
}

func normalizeWeekdays(days []int) []int {
	if len(days) == 0 {
		return nil
	}

	uniqueMap := make(map[int]bool)
	var uniqueDays []int
	for _, d := range days {
		if !uniqueMap[d] {
			uniqueMap[d] = true
			uniqueDays = append(uniqueDays, d)
		}
	}

	sort.Ints(uniqueDays)
	return uniqueDays
}

func validateWeekdays(days []int) error {
	for _, day := range days {
		if day < 0 || day > 6 {
			return ErrInvalidWeekdays
		}
	}
	return nil
}

type ReminderDraft struct {
	Type          ReminderType `json:"type"`
	Title         string       `json:"title"`
	Message       string       `json:"message"`
	ScheduledTime string       `json:"scheduledTime"`
	ScheduledDate string       `json:"scheduledDate"`
	IsRecurring   bool         `json:"isRecurring"`
	RecurringDays []int        `json:"recurringDays"`
	IsActive      bool         `json:"isActive"`
}

func (d ReminderDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrReminderTitleEmpty
	}
	if !d.Type.Valid() {
		return ErrInvalidReminderType
	}
	if err := validateSchedule(d.ScheduledDate, d.ScheduledTime); err != nil {
		return err
	}
	if err := validateWeekdays(d.RecurringDays); err != nil {
		return err
	}
	if d.IsRecurring && len(d.RecurringDays) == 0 {
		return ErrRecurringNoDays
	}
	if !d.IsRecurring && d.ScheduledDate == "" {
		return ErrOneTimeNoDate
	}
	return nil
}

func (d ReminderDraft) Build(id string, now time.Time) Reminder {
	r := Reminder{
		ID:            id,
		Type:          d.Type,
		Title:         strings.TrimSpace(d.Title),
		Message:       strings.TrimSpace(d.Message),
		ScheduledTime: d.ScheduledTime,
		IsRecurring:   d.IsRecurring,
		IsActive:      d.IsActive,
		CreatedAt:     now.UTC(),
	}
	if d.IsRecurring {
		r.RecurringDays = normalizeWeekdays(d.RecurringDays)
	} else {
		r.ScheduledDate = d.ScheduledDate
	}
	return r
}

type ReminderPatch struct {
	Title         *string       `json:"title,omitempty"`
	Message       *string       `json:"message,omitempty"`
	Type          *ReminderType `json:"type,omitempty"`
	ScheduledTime *string       `json:"scheduledTime,omitempty"`
	ScheduledDate *string       `json:"scheduledDate,omitempty"`
	IsRecurring   *bool         `json:"isRecurring,omitempty"`
	RecurringDays *[]int        `json:"recurringDays,omitempty"`
	IsActive      *bool         `json:"isActive,omitempty"`
}

func (p ReminderPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrReminderTitleEmpty
	}
	if p.Type != nil && !p.Type.Valid() {
		return ErrInvalidReminderType
	}
	if p.ScheduledTime != nil && !timeOfDayRegex.MatchString(*p.ScheduledTime) {
		return ErrInvalidTimeFormat
	}
	if p.ScheduledDate != nil && *p.ScheduledDate != "" {
		if _, err := parseDate(*p.ScheduledDate); err != nil {
			return ErrInvalidDateFormat
		}
	}
	if p.RecurringDays != nil {
		if err := validateWeekdays(*p.RecurringDays); err != nil {
			return err
		}
	}
	return nil
}

func (p ReminderPatch) Apply(r Reminder) Reminder {
	if p.Title != nil {
		r.Title = strings.TrimSpace(*p.Title)
	}
	if p.Message != nil {
		r.Message = strings.TrimSpace(*p.Message)
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.ScheduledTime != nil {
		r.ScheduledTime = *p.ScheduledTime
	}
	if p.ScheduledDate != nil {
		r.ScheduledDate = *p.ScheduledDate
	}
	if p.IsRecurring != nil {
		r.IsRecurring = *p.IsRecurring
	}
	if p.RecurringDays != nil {
		r.RecurringDays = normalizeWeekdays(*p.RecurringDays)
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
	return r
}
