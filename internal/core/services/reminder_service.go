package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/collection"
	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type ReminderService struct {
	reminders *collection.Collection[string, domain.Reminder]
	now       func() time.Time
	newID     func() string
}

func NewReminderService(reminders *collection.Collection[string, domain.Reminder]) *ReminderService {
	return &ReminderService{
		reminders: reminders,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *ReminderService) WithClock(now func() time.Time) *ReminderService {
	s.now = now
	return s
}

func (s *ReminderService) List() []domain.Reminder {
	return s.reminders.List()
}

func (s *ReminderService) Get(id string) (domain.Reminder, error) {
	return s.reminders.Find(id)
}

func (s *ReminderService) Add(ctx context.Context, draft domain.ReminderDraft) (domain.Reminder, error) {
	now := s.now()
	return s.reminders.Add(ctx, func([]domain.Reminder) (domain.Reminder, error) {
		return draft.Build(s.newID(), now), nil
	})
}

func (s *ReminderService) Update(ctx context.Context, id string, patch domain.ReminderPatch) (domain.Reminder, error) {
	return s.reminders.Update(ctx, id, func(r domain.Reminder) (domain.Reminder, error) {
		return patch.Apply(r), nil
	})
}

func (s *ReminderService) Delete(ctx context.Context, id string) error {
	return s.reminders.Delete(ctx, id)
}

func (s *ReminderService) Complete(ctx context.Context, id string) (domain.Reminder, error) {
	now := s.now().UTC()
	return s.reminders.Update(ctx, id, func(r domain.Reminder) (domain.Reminder, error) {
		r.LastCompleted = &now
		return r, nil
	})
}

func (s *ReminderService) ByType(t domain.ReminderType) []domain.Reminder {
	return domain.RemindersByType(s.reminders.List(), t)
}

func (s *ReminderService) Active() []domain.Reminder {
	return domain.ActiveReminders(s.reminders.List())
}

// CheckDue returns the reminders due at now and stamps them as triggered,
// so each fires at most once per day.
func (s *ReminderService) CheckDue(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	if len(domain.DueReminders(s.reminders.List(), now)) == 0 {
		return nil, nil
	}

	stamp := now.UTC()
	var due []domain.Reminder
	_, err := s.reminders.Mutate(ctx, func(current []domain.Reminder) ([]domain.Reminder, error) {
		due = due[:0]
		for i, r := range current {
			if !r.IsDue(now) {
				continue
			}
			triggered := stamp
			current[i].LastTriggered = &triggered
			due = append(due, current[i].Clone())
		}
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	return due, nil
}
