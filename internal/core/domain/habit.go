package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrHabitNotFound     = errors.New("habit not found")
	ErrHabitNameEmpty    = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong  = errors.New("habit name is too long (max 100 chars)")
	ErrInvalidStreak     = errors.New("streak cannot be negative")
	ErrCategoryEmpty     = errors.New("category cannot be empty")
	ErrInvalidTimeFormat = errors.New("invalid time format (must be HH:MM 24h)")
	ErrInvalidDateFormat = errors.New("invalid date format (must be YYYY-MM-DD)")
)

var timeOfDayRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MaxNameLen = 100
)

type Habit struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	Streak    int    `json:"streak"`
	Category  string `json:"category"`
}

func (h Habit) GetID() int { return h.ID }

func (h Habit) Clone() Habit { return h }

// HabitDraft carries the caller-supplied fields of a habit that does not exist yet.
type HabitDraft struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Completed bool   `json:"completed"`
	Streak    int    `json:"streak"`
}

func (d HabitDraft) Validate() error {
	if err := validateName(d.Name, ErrHabitNameEmpty, ErrHabitNameTooLong); err != nil {
		return err
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrCategoryEmpty
	}
	if d.Streak < 0 {
		return ErrInvalidStreak
	}
	return nil
}

func (d HabitDraft) Build(id int) Habit {
	return Habit{
		ID:        id,
		Name:      strings.TrimSpace(d.Name),
		Category:  strings.TrimSpace(d.Category),
		Completed: d.Completed,
		Streak:    d.Streak,
	}
}

// HabitPatch lists the fields of a habit that may be changed after creation.
// A nil field is left untouched. Completion and streak only change through
// ToggleCompletion.
type HabitPatch struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
}

func (p HabitPatch) Validate() error {
	if p.Name != nil {
		if err := validateName(*p.Name, ErrHabitNameEmpty, ErrHabitNameTooLong); err != nil {
			return err
		}
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return ErrCategoryEmpty
	}
	return nil
}

func (p HabitPatch) Apply(h Habit) Habit {
	if p.Name != nil {
		h.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		h.Category = strings.TrimSpace(*p.Category)
	}
	return h
}

// ToggleCompletion flips the completion flag. The streak grows only on the
// false -> true transition and is never decremented.
func (h Habit) ToggleCompletion() Habit {
	if !h.Completed {
		h.Streak++
	}
	h.Completed = !h.Completed
	return h
}

func validateName(name string, errEmpty, errTooLong error) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errEmpty
	}
	if len(trimmed) > MaxNameLen {
		return errTooLong
	}
	return nil
}

func validateSchedule(date, tod string) error {
	if !timeOfDayRegex.MatchString(tod) {
		return ErrInvalidTimeFormat
	}
	if date != "" {
		if _, err := parseDate(date); err != nil {
			return ErrInvalidDateFormat
		}
	}
	return nil
}
