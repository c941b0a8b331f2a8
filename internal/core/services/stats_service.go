package services

import (
	"time"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

type Dashboard struct {
	Date     string                   `json:"date"`
	Schedule []domain.ScheduleItem    `json:"schedule"`
	Summary  domain.CompletionSummary `json:"summary"`
	Recovery domain.RecoveryStats     `json:"recovery"`
}

// StatsService computes derived views on demand; nothing is cached or stored.
type StatsService struct {
	habits      *HabitService
	meals       *MealService
	supplements *SupplementService
	addictions  *AddictionService
	now         func() time.Time
}

func NewStatsService(habits *HabitService, meals *MealService, supplements *SupplementService, addictions *AddictionService) *StatsService {
	return &StatsService{
		habits:      habits,
		meals:       meals,
		supplements: supplements,
		addictions:  addictions,
		now:         time.Now,
	}
}

func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

func (s *StatsService) Today() string {
	return s.now().Format(domain.DateLayout)
}

func (s *StatsService) Schedule(date string) []domain.ScheduleItem {
	return domain.TodaySchedule(s.meals.List(), s.supplements.List(), date)
}

// Dashboard builds the home screen view for date, or today when date is empty.
func (s *StatsService) Dashboard(date string) Dashboard {
	if date == "" {
		date = s.Today()
	}
	return Dashboard{
		Date:     date,
		Schedule: s.Schedule(date),
		Summary:  domain.Summarize(s.habits.List(), s.meals.List(), s.supplements.List()),
		Recovery: s.addictions.Recovery(),
	}
}
