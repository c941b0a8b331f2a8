package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func TestHabitDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		draft   domain.HabitDraft
		wantErr error
	}{
		{"Success: Valid habit", domain.HabitDraft{Name: "Stretch", Category: "fitness"}, nil},
		{"Fail: Empty name", domain.HabitDraft{Name: "   ", Category: "fitness"}, domain.ErrHabitNameEmpty},
		{"Fail: Name too long", domain.HabitDraft{Name: strings.Repeat("a", 101), Category: "fitness"}, domain.ErrHabitNameTooLong},
		{"Fail: Empty category", domain.HabitDraft{Name: "Stretch"}, domain.ErrCategoryEmpty},
		{"Fail: Negative streak", domain.HabitDraft{Name: "Stretch", Category: "fitness", Streak: -1}, domain.ErrInvalidStreak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, tt.draft.Validate())
		})
	}
}

func TestHabitDraft_Build(t *testing.T) {
	h := domain.HabitDraft{Name: "  Stretch ", Category: " fitness", Streak: 2}.Build(9)

	assert.Equal(t, domain.Habit{ID: 9, Name: "Stretch", Category: "fitness", Streak: 2}, h)
}

func TestHabit_ToggleCompletion(t *testing.T) {
	t.Run("Success: Completing increments the streak", func(t *testing.T) {
		h := domain.Habit{ID: 1, Streak: 7}.ToggleCompletion()

		assert.True(t, h.Completed)
		assert.Equal(t, 8, h.Streak)
	})

	t.Run("Success: Un-completing keeps the streak", func(t *testing.T) {
		h := domain.Habit{ID: 1, Streak: 15, Completed: true}.ToggleCompletion()

		assert.False(t, h.Completed)
		assert.Equal(t, 15, h.Streak)
	})

	t.Run("Success: Double toggle nets one streak day", func(t *testing.T) {
		h := domain.Habit{ID: 1, Streak: 3}.ToggleCompletion().ToggleCompletion()

		assert.False(t, h.Completed)
		assert.Equal(t, 4, h.Streak)
	})
}

func TestHabitPatch(t *testing.T) {
	name := " Read "
	empty := ""

	t.Run("Success: Applies only the set fields", func(t *testing.T) {
		p := domain.HabitPatch{Name: &name}
		require.NoError(t, p.Validate())

		h := p.Apply(domain.Habit{ID: 3, Name: "Old", Category: "learning", Streak: 3, Completed: true})

		assert.Equal(t, domain.Habit{ID: 3, Name: "Read", Category: "learning", Streak: 3, Completed: true}, h)
	})

	t.Run("Success: Completion and streak are not patchable", func(t *testing.T) {
		var p domain.HabitPatch
		err := json.Unmarshal([]byte(`{"completed":true,"streak":0}`), &p)
		require.NoError(t, err)

		h := p.Apply(domain.Habit{ID: 1, Streak: 7})

		assert.False(t, h.Completed)
		assert.Equal(t, 7, h.Streak)
	})

	t.Run("Fail: Empty name", func(t *testing.T) {
		assert.Equal(t, domain.ErrHabitNameEmpty, domain.HabitPatch{Name: &empty}.Validate())
	})

	t.Run("Fail: Empty category", func(t *testing.T) {
		assert.Equal(t, domain.ErrCategoryEmpty, domain.HabitPatch{Category: &empty}.Validate())
	})
}

func TestMealDraft_Validate(t *testing.T) {
	valid := domain.MealDraft{Name: "Oats", ScheduledDate: "2026-05-04", ScheduledTime: "07:30", Calories: 300}

	tests := []struct {
		name    string
		mutate  func(d *domain.MealDraft)
		wantErr error
	}{
		{"Success: Valid meal", func(d *domain.MealDraft) {}, nil},
		{"Fail: Empty name", func(d *domain.MealDraft) { d.Name = "" }, domain.ErrMealNameEmpty},
		{"Fail: Missing date", func(d *domain.MealDraft) { d.ScheduledDate = "" }, domain.ErrScheduledDateNeed},
		{"Fail: Malformed date", func(d *domain.MealDraft) { d.ScheduledDate = "04/05/2026" }, domain.ErrInvalidDateFormat},
		{"Fail: 12h time", func(d *domain.MealDraft) { d.ScheduledTime = "7:30" }, domain.ErrInvalidTimeFormat},
		{"Fail: Out of range time", func(d *domain.MealDraft) { d.ScheduledTime = "24:00" }, domain.ErrInvalidTimeFormat},
		{"Fail: Negative calories", func(d *domain.MealDraft) { d.Calories = -1 }, domain.ErrInvalidNutrition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			assert.Equal(t, tt.wantErr, d.Validate())
		})
	}
}

func TestMealDraft_BuildNormalizesFoods(t *testing.T) {
	m := domain.MealDraft{
		Name:          "Bowl",
		Foods:         []string{" Rice", "", "Rice", "Tofu "},
		ScheduledDate: "2026-05-04",
		ScheduledTime: "12:00",
	}.Build(4)

	assert.Equal(t, []string{"Rice", "Tofu"}, m.Foods)
	assert.Equal(t, 4, m.ID)

	empty := domain.MealDraft{Name: "Bowl"}.Build(5)
	assert.NotNil(t, empty.Foods)
	assert.Empty(t, empty.Foods)
}

func TestMealPrep_CloneIsDeep(t *testing.T) {
	m := domain.MealPrep{ID: 1, Foods: []string{"Eggs"}}
	c := m.Clone()
	c.Foods[0] = "Toast"

	assert.Equal(t, "Eggs", m.Foods[0])
}

func TestSupplement(t *testing.T) {
	t.Run("Success: Build defaults frequency to daily", func(t *testing.T) {
		s := domain.SupplementDraft{Name: "Zinc", Dosage: "15", Unit: "mg", ScheduledDate: "2026-05-04", ScheduledTime: "08:00"}.Build(3)

		assert.Equal(t, domain.DefaultFrequency, s.Frequency)
	})

	t.Run("Fail: Missing dosage", func(t *testing.T) {
		d := domain.SupplementDraft{Name: "Zinc", Unit: "mg", ScheduledDate: "2026-05-04", ScheduledTime: "08:00"}

		assert.Equal(t, domain.ErrDosageEmpty, d.Validate())
	})

	t.Run("Success: Toggle follows the habit streak rule", func(t *testing.T) {
		s := domain.Supplement{ID: 1, Streak: 5}.ToggleCompletion()
		assert.True(t, s.Completed)
		assert.Equal(t, 6, s.Streak)

		s = s.ToggleCompletion()
		assert.False(t, s.Completed)
		assert.Equal(t, 6, s.Streak)
	})
}
