package domain

import (
	"errors"
	"slices"
	"strings"
	"time"
)

var (
	ErrAddictionNotFound    = errors.New("addiction not found")
	ErrAddictionNameEmpty   = errors.New("addiction name cannot be empty")
	ErrAddictionNameTooLong = errors.New("addiction name is too long (max 100 chars)")
	ErrInvalidAddictionType = errors.New("invalid addiction type (must be substance, behavioral, digital, or other)")
	ErrInvalidSeverity      = errors.New("invalid severity (must be low, moderate, or high)")
	ErrInvalidDaysSober     = errors.New("days sober cannot be negative")
	ErrLabelEmpty           = errors.New("label cannot be empty")
	ErrInvalidTipCategory   = errors.New("invalid tip category (must be motivation, strategy, emergency, or mindfulness)")
)

type AddictionType string

const (
	AddictionSubstance  AddictionType = "substance"
	AddictionBehavioral AddictionType = "behavioral"
	AddictionDigital    AddictionType = "digital"
	AddictionOther      AddictionType = "other"
)

func (t AddictionType) Valid() bool {
	switch t {
	case AddictionSubstance, AddictionBehavioral, AddictionDigital, AddictionOther:
		return true
	}
	return false
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityModerate, SeverityHigh:
		return true
	}
	return false
}

type Addiction struct {
	ID               int           `json:"id"`
	Name             string        `json:"name"`
	Type             AddictionType `json:"type"`
	Severity         Severity      `json:"severity"`
	DaysSober        int           `json:"daysSober"`
	LastRelapse      *time.Time    `json:"lastRelapse,omitempty"`
	Triggers         []string      `json:"triggers"`
	CopingStrategies []string      `json:"copingStrategies"`
	Notes            string        `json:"notes,omitempty"`
	IsActive         bool          `json:"isActive"`
	CreatedAt        time.Time     `json:"createdAt"`
}

func (a Addiction) GetID() int { return a.ID }

func (a Addiction) Clone() Addiction {
	a.LastRelapse = clonePtr(a.LastRelapse)
	a.Triggers = cloneStrings(a.Triggers)
	a.CopingStrategies = cloneStrings(a.CopingStrategies)
	return a
}

// RecordRelapse resets the counter and stamps the relapse time.
func (a Addiction) RecordRelapse(now time.Time) Addiction {
	a.DaysSober = 0
	t := now.UTC()
	a.LastRelapse = &t
	return a
}

// IncrementSoberDay never touches LastRelapse.
func (a Addiction) IncrementSoberDay() Addiction {
	a.DaysSober++
	return a
}

func (a Addiction) AddTrigger(trigger string) Addiction {
	a.Triggers = addLabel(a.Triggers, trigger)
	return a
}

func (a Addiction) RemoveTrigger(trigger string) Addiction {
	a.Triggers = removeLabel(a.Triggers, trigger)
	return a
}

func (a Addiction) AddCopingStrategy(strategy string) Addiction {
	a.CopingStrategies = addLabel(a.CopingStrategies, strategy)
	return a
}

func (a Addiction) RemoveCopingStrategy(strategy string) Addiction {
	a.CopingStrategies = removeLabel(a.CopingStrategies, strategy)
	return a
}

func addLabel(labels []string, label string) []string {
	label = strings.TrimSpace(label)
	if label == "" || slices.Contains(labels, label) {
		return labels
	}
	out := make([]string, 0, len(labels)+1)
	out = append(out, labels...)
	return append(out, label)
}

func removeLabel(labels []string, label string) []string {
	label = strings.TrimSpace(label)
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != label {
			out = append(out, l)
		}
	}
	return out
}

type AddictionDraft struct {
	Name             string        `json:"name"`
	Type             AddictionType `json:"type"`
	Severity         Severity      `json:"severity"`
	DaysSober        int           `json:"daysSober"`
	LastRelapse      *time.Time    `json:"lastRelapse,omitempty"`
	Triggers         []string      `json:"triggers"`
	CopingStrategies []string      `json:"copingStrategies"`
	Notes            string        `json:"notes"`
	IsActive         bool          `json:"isActive"`
}

func (d AddictionDraft) Validate() error {
	if err := validateName(d.Name, ErrAddictionNameEmpty, ErrAddictionNameTooLong); err != nil {
		return err
	}
	if !d.Type.Valid() {
		return ErrInvalidAddictionType
	}
	if !d.Severity.Valid() {
		return ErrInvalidSeverity
	}
	if d.DaysSober < 0 {
		return ErrInvalidDaysSober
	}
	return nil
}

func (d AddictionDraft) Build(id int, now time.Time) Addiction {
	return Addiction{
		ID:               id,
		Name:             strings.TrimSpace(d.Name),
		Type:             d.Type,
		Severity:         d.Severity,
		DaysSober:        d.DaysSober,
		LastRelapse:      clonePtr(d.LastRelapse),
		Triggers:         normalizeLabels(d.Triggers),
		CopingStrategies: normalizeLabels(d.CopingStrategies),
		Notes:            strings.TrimSpace(d.Notes),
		IsActive:         d.IsActive,
		CreatedAt:        now.UTC(),
	}
}

// AddictionPatch never carries CreatedAt or LastRelapse: the first is
// immutable and the second is only set through RecordRelapse.
type AddictionPatch struct {
	Name             *string        `json:"name,omitempty"`
	Type             *AddictionType `json:"type,omitempty"`
	Severity         *Severity      `json:"severity,omitempty"`
	DaysSober        *int           `json:"daysSober,omitempty"`
	Triggers         *[]string      `json:"triggers,omitempty"`
	CopingStrategies *[]string      `json:"copingStrategies,omitempty"`
	Notes            *string        `json:"notes,omitempty"`
	IsActive         *bool          `json:"isActive,omitempty"`
}

func (p AddictionPatch) Validate() error {
	if p.Name != nil {
		if err := validateName(*p.Name, ErrAddictionNameEmpty, ErrAddictionNameTooLong); err != nil {
			return err
		}
	}
	if p.Type != nil && !p.Type.Valid() {
		return ErrInvalidAddictionType
	}
	if p.Severity != nil && !p.Severity.Valid() {
		return ErrInvalidSeverity
	}
	if p.DaysSober != nil && *p.DaysSober < 0 {
		return ErrInvalidDaysSober
	}
	return nil
}

func (p AddictionPatch) Apply(a Addiction) Addiction {
	if p.Name != nil {
		a.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Severity != nil {
		a.Severity = *p.Severity
	}
	if p.DaysSober != nil {
		a.DaysSober = *p.DaysSober
	}
	if p.Triggers != nil {
		a.Triggers = normalizeLabels(*p.Triggers)
	}
	if p.CopingStrategies != nil {
		a.CopingStrategies = normalizeLabels(*p.CopingStrategies)
	}
	if p.Notes != nil {
		a.Notes = strings.TrimSpace(*p.Notes)
	}
	if p.IsActive != nil {
		a.IsActive = *p.IsActive
	}
	return a
}

type TipCategory string

const (
	TipMotivation  TipCategory = "motivation"
	TipStrategy    TipCategory = "strategy"
	TipEmergency   TipCategory = "emergency"
	TipMindfulness TipCategory = "mindfulness"
)

func (c TipCategory) Valid() bool {
	switch c {
	case TipMotivation, TipStrategy, TipEmergency, TipMindfulness:
		return true
	}
	return false
}

type AddictionTip struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Content        string          `json:"content"`
	Category       TipCategory     `json:"category"`
	AddictionTypes []AddictionType `json:"addictionTypes"`
}

// Matches reports whether the tip applies to addictionType. Tips tagged
// "other" apply to every type. An empty category matches all categories.
func (t AddictionTip) Matches(addictionType AddictionType, category TipCategory) bool {
	if category != "" && t.Category != category {
		return false
	}
	return slices.Contains(t.AddictionTypes, addictionType) || slices.Contains(t.AddictionTypes, AddictionOther)
}
