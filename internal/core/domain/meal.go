package domain

import (
	"errors"
	"strings"
)

var (
	ErrMealNotFound      = errors.New("meal prep not found")
	ErrMealNameEmpty     = errors.New("meal name cannot be empty")
	ErrMealNameTooLong   = errors.New("meal name is too long (max 100 chars)")
	ErrInvalidNutrition  = errors.New("calories and protein cannot be negative")
	ErrScheduledDateNeed = errors.New("scheduled date is required")
)

type MealPrep struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Foods         []string `json:"foods"`
	ScheduledDate string   `json:"scheduledDate"`
	ScheduledTime string   `json:"scheduledTime"`
	Calories      float64  `json:"calories"`
	Protein       float64  `json:"protein"`
	Completed     bool     `json:"completed"`
}

func (m MealPrep) GetID() int { return m.ID }

func (m MealPrep) Clone() MealPrep {
	m.Foods = cloneStrings(m.Foods)
	return m
}

type MealDraft struct {
	Name          string   `json:"name"`
	Foods         []string `json:"foods"`
	ScheduledDate string   `json:"scheduledDate"`
	ScheduledTime string   `json:"scheduledTime"`
	Calories      float64  `json:"calories"`
	Protein       float64  `json:"protein"`
	Completed     bool     `json:"completed"`
}

func (d MealDraft) Validate() error {
	if err := validateName(d.Name, ErrMealNameEmpty, ErrMealNameTooLong); err != nil {
		return err
	}
	if d.ScheduledDate == "" {
		return ErrScheduledDateNeed
	}
	if err := validateSchedule(d.ScheduledDate, d.ScheduledTime); err != nil {
		return err
	}
	if d.Calories < 0 || d.Protein < 0 {
		return ErrInvalidNutrition
	}
	return nil
}

func (d MealDraft) Build(id int) MealPrep {
	return MealPrep{
		ID:            id,
		Name:          strings.TrimSpace(d.Name),
		Foods:         normalizeLabels(d.Foods),
		ScheduledDate: d.ScheduledDate,
		ScheduledTime: d.ScheduledTime,
		Calories:      d.Calories,
		Protein:       d.Protein,
		Completed:     d.Completed,
	}
}

// MealPatch has no scheduling fields: date and time are fixed once a meal is planned.
type MealPatch struct {
	Name      *string   `json:"name,omitempty"`
	Foods     *[]string `json:"foods,omitempty"`
	Calories  *float64  `json:"calories,omitempty"`
	Protein   *float64  `json:"protein,omitempty"`
	Completed *bool     `json:"completed,omitempty"`
}

func (p MealPatch) Validate() error {
	if p.Name != nil {
		if err := validateName(*p.Name, ErrMealNameEmpty, ErrMealNameTooLong); err != nil {
			return err
		}
	}
	if (p.Calories != nil && *p.Calories < 0) || (p.Protein != nil && *p.Protein < 0) {
		return ErrInvalidNutrition
	}
	return nil
}

func (p MealPatch) Apply(m MealPrep) MealPrep {
	if p.Name != nil {
		m.Name = strings.TrimSpace(*p.Name)
	}
	if p.Foods != nil {
		m.Foods = normalizeLabels(*p.Foods)
	}
	if p.Calories != nil {
		m.Calories = *p.Calories
	}
	if p.Protein != nil {
		m.Protein = *p.Protein
	}
	if p.Completed != nil {
		m.Completed = *p.Completed
	}
	return m
}

func (m MealPrep) ToggleCompletion() MealPrep {
	m.Completed = !m.Completed
	return m
}

// normalizeLabels trims labels, drops empty ones and removes duplicates
// while keeping first-seen order.
func normalizeLabels(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
