package domain

import (
	"errors"
	"strings"
)

var (
	ErrSupplementNotFound    = errors.New("supplement not found")
	ErrSupplementNameEmpty   = errors.New("supplement name cannot be empty")
	ErrSupplementNameTooLong = errors.New("supplement name is too long (max 100 chars)")
	ErrDosageEmpty           = errors.New("dosage and unit are required")
)

const DefaultFrequency = "daily"

type Supplement struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Dosage        string `json:"dosage"`
	Unit          string `json:"unit"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
	Frequency     string `json:"frequency"`
	Notes         string `json:"notes,omitempty"`
	Completed     bool   `json:"completed"`
	Streak        int    `json:"streak"`
}

func (s Supplement) GetID() int { return s.ID }

func (s Supplement) Clone() Supplement { return s }

type SupplementDraft struct {
	Name          string `json:"name"`
	Dosage        string `json:"dosage"`
	Unit          string `json:"unit"`
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime"`
	Frequency     string `json:"frequency"`
	Notes         string `json:"notes"`
	Completed     bool   `json:"completed"`
	Streak        int    `json:"streak"`
}

func (d SupplementDraft) Validate() error {
	if err := validateName(d.Name, ErrSupplementNameEmpty, ErrSupplementNameTooLong); err != nil {
		return err
	}
	if strings.TrimSpace(d.Dosage) == "" || strings.TrimSpace(d.Unit) == "" {
		return ErrDosageEmpty
	}
	if d.ScheduledDate == "" {
		return ErrScheduledDateNeed
	}
	if err := validateSchedule(d.ScheduledDate, d.ScheduledTime); err != nil {
		return err
	}
	if d.Streak < 0 {
		return ErrInvalidStreak
	}
	return nil
}

func (d SupplementDraft) Build(id int) Supplement {
	freq := strings.TrimSpace(d.Frequency)
	if freq == "" {
		freq = DefaultFrequency
	}
	return Supplement{
		ID:            id,
		Name:          strings.TrimSpace(d.Name),
		Dosage:        strings.TrimSpace(d.Dosage),
		Unit:          strings.TrimSpace(d.Unit),
		ScheduledDate: d.ScheduledDate,
		ScheduledTime: d.ScheduledTime,
		Frequency:     freq,
		Notes:         strings.TrimSpace(d.Notes),
		Completed:     d.Completed,
		Streak:        d.Streak,
	}
}

// SupplementPatch, like HabitPatch, leaves completion and streak to
// ToggleCompletion.
type SupplementPatch struct {
	Name      *string `json:"name,omitempty"`
	Dosage    *string `json:"dosage,omitempty"`
	Unit      *string `json:"unit,omitempty"`
	Frequency *string `json:"frequency,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (p SupplementPatch) Validate() error {
	if p.Name != nil {
		if err := validateName(*p.Name, ErrSupplementNameEmpty, ErrSupplementNameTooLong); err != nil {
			return err
		}
	}
	if (p.Dosage != nil && strings.TrimSpace(*p.Dosage) == "") || (p.Unit != nil && strings.TrimSpace(*p.Unit) == "") {
		return ErrDosageEmpty
	}
	return nil
}

func (p SupplementPatch) Apply(s Supplement) Supplement {
	if p.Name != nil {
		s.Name = strings.TrimSpace(*p.Name)
	}
	if p.Dosage != nil {
		s.Dosage = strings.TrimSpace(*p.Dosage)
	}
	if p.Unit != nil {
		s.Unit = strings.TrimSpace(*p.Unit)
	}
	if p.Frequency != nil {
		s.Frequency = strings.TrimSpace(*p.Frequency)
	}
	if p.Notes != nil {
		s.Notes = strings.TrimSpace(*p.Notes)
	}
	return s
}

// ToggleCompletion follows the same streak rule as Habit.ToggleCompletion.
func (s Supplement) ToggleCompletion() Supplement {
	if !s.Completed {
		s.Streak++
	}
	s.Completed = !s.Completed
	return s
}
