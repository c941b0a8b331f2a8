package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

func TestReminder_IsDue(t *testing.T) {
	// 2026-05-04 is a Monday.
	monday := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	earlierToday := monday.Add(-time.Hour)
	yesterday := monday.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		reminder domain.Reminder
		want     bool
	}{
		{
			name:     "Success: One-time reminder on its date after its time",
			reminder: domain.Reminder{IsActive: true, ScheduledDate: "2026-05-04", ScheduledTime: "09:30"},
			want:     true,
		},
		{
			name:     "Success: Exactly at the scheduled minute",
			reminder: domain.Reminder{IsActive: true, ScheduledDate: "2026-05-04", ScheduledTime: "10:00"},
			want:     true,
		},
		{
			name:     "Fail: Scheduled later today",
			reminder: domain.Reminder{IsActive: true, ScheduledDate: "2026-05-04", ScheduledTime: "10:01"},
		},
		{
			name:     "Fail: Another date",
			reminder: domain.Reminder{IsActive: true, ScheduledDate: "2026-05-03", ScheduledTime: "09:00"},
		},
		{
			name:     "Fail: Inactive",
			reminder: domain.Reminder{ScheduledDate: "2026-05-04", ScheduledTime: "09:00"},
		},
		{
			name:     "Success: Recurring on Monday",
			reminder: domain.Reminder{IsActive: true, IsRecurring: true, RecurringDays: []int{1, 3}, ScheduledTime: "08:00"},
			want:     true,
		},
		{
			name:     "Fail: Recurring on other weekdays",
			reminder: domain.Reminder{IsActive: true, IsRecurring: true, RecurringDays: []int{0, 6}, ScheduledTime: "08:00"},
		},
		{
			name:     "Fail: Already triggered today",
			reminder: domain.Reminder{IsActive: true, IsRecurring: true, RecurringDays: []int{1}, ScheduledTime: "08:00", LastTriggered: &earlierToday},
		},
		{
			name:     "Success: Triggered yesterday fires again",
			reminder: domain.Reminder{IsActive: true, IsRecurring: true, RecurringDays: []int{1}, ScheduledTime: "08:00", LastTriggered: &yesterday},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reminder.IsDue(monday))
		})
	}
}

func TestReminder_IsDueUsesNowLocation(t *testing.T) {
	rome := time.FixedZone("CEST", 2*60*60)
	// 23:30 UTC on Sunday is already Monday 01:30 in Rome.
	now := time.Date(2026, 5, 3, 23, 30, 0, 0, time.UTC).In(rome)

	r := domain.Reminder{IsActive: true, ScheduledDate: "2026-05-04", ScheduledTime: "01:00"}

	assert.True(t, r.IsDue(now))
	assert.False(t, r.IsDue(now.UTC()))
}

func TestReminderDraft(t *testing.T) {
	oneTime := domain.ReminderDraft{
		Type:          domain.ReminderWater,
		Title:         "Drink water",
		ScheduledTime: "10:00",
		ScheduledDate: "2026-05-04",
		IsActive:      true,
	}

	tests := []struct {
		name    string
		mutate  func(d *domain.ReminderDraft)
		wantErr error
	}{
		{"Success: One-time reminder", func(d *domain.ReminderDraft) {}, nil},
		{"Success: Recurring reminder", func(d *domain.ReminderDraft) {
			d.ScheduledDate = ""
			d.IsRecurring = true
			d.RecurringDays = []int{1, 2}
		}, nil},
		{"Fail: Empty title", func(d *domain.ReminderDraft) { d.Title = " " }, domain.ErrReminderTitleEmpty},
		{"Fail: Unknown type", func(d *domain.ReminderDraft) { d.Type = "yoga" }, domain.ErrInvalidReminderType},
		{"Fail: Bad time", func(d *domain.ReminderDraft) { d.ScheduledTime = "25:00" }, domain.ErrInvalidTimeFormat},
		{"Fail: Bad weekday", func(d *domain.ReminderDraft) {
			d.IsRecurring = true
			d.RecurringDays = []int{7}
		}, domain.ErrInvalidWeekdays},
		{"Fail: Recurring without days", func(d *domain.ReminderDraft) { d.IsRecurring = true }, domain.ErrRecurringNoDays},
		{"Fail: One-time without date", func(d *domain.ReminderDraft) { d.ScheduledDate = "" }, domain.ErrOneTimeNoDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := oneTime
			tt.mutate(&d)
			assert.Equal(t, tt.wantErr, d.Validate())
		})
	}

	t.Run("Success: Build sorts and dedupes weekdays", func(t *testing.T) {
		d := oneTime
		d.IsRecurring = true
		d.RecurringDays = []int{5, 1, 5, 3}

		r := d.Build("r-1", monday())

		assert.Equal(t, []int{1, 3, 5}, r.RecurringDays)
		assert.Empty(t, r.ScheduledDate, "recurring reminders carry no date")
		assert.Equal(t, "r-1", r.ID)
	})
}

func TestReminderPatch(t *testing.T) {
	days := []int{6, 0}
	inactive := false
	base := domain.Reminder{ID: "r-1", IsActive: true, IsRecurring: true, RecurringDays: []int{1}, ScheduledTime: "08:00"}

	p := domain.ReminderPatch{RecurringDays: &days, IsActive: &inactive}
	require.NoError(t, p.Validate())

	r := p.Apply(base)

	assert.Equal(t, []int{0, 6}, r.RecurringDays)
	assert.False(t, r.IsActive)
	assert.Equal(t, []int{1}, base.RecurringDays)

	bad := "8am"
	assert.Equal(t, domain.ErrInvalidTimeFormat, domain.ReminderPatch{ScheduledTime: &bad}.Validate())
}

func TestDueReminders(t *testing.T) {
	now := monday()
	reminders := []domain.Reminder{
		{ID: "a", Type: domain.ReminderWater, IsActive: true, ScheduledDate: "2026-05-04", ScheduledTime: "09:00"},
		{ID: "b", Type: domain.ReminderMeal, IsActive: false, ScheduledDate: "2026-05-04", ScheduledTime: "09:00"},
		{ID: "c", Type: domain.ReminderWater, IsActive: true, ScheduledDate: "2026-05-04", ScheduledTime: "23:00"},
	}

	due := domain.DueReminders(reminders, now)
	require.Len(t, due, 1)
	assert.Equal(t, "a", due[0].ID)

	assert.Len(t, domain.ActiveReminders(reminders), 2)
	assert.Len(t, domain.RemindersByType(reminders, domain.ReminderWater), 2)
	assert.Empty(t, domain.RemindersByType(reminders, domain.ReminderCustom))
}

func monday() time.Time {
	return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
}
