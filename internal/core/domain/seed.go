package domain

import "time"

// Seed datasets written on first run, when a collection key is absent.

func SeedHabits() []Habit {
	return []Habit{
		{ID: 1, Name: "Drink 8 glasses of water", Completed: false, Streak: 7, Category: "health"},
		{ID: 2, Name: "Meditate 10 minutes", Completed: true, Streak: 15, Category: "mindfulness"},
		{ID: 3, Name: "Read for 30 minutes", Completed: false, Streak: 3, Category: "learning"},
		{ID: 4, Name: "Exercise", Completed: true, Streak: 12, Category: "fitness"},
	}
}

// SeedMeals schedules the sample meals on now's calendar date.
func SeedMeals(now time.Time) []MealPrep {
	today := now.Format(DateLayout)
	return []MealPrep{
		{
			ID: 1, Name: "Greek Yogurt Bowl",
			Foods:         []string{"Greek yogurt", "Blueberries", "Granola", "Honey"},
			ScheduledDate: today, ScheduledTime: "08:00",
			Calories: 320, Protein: 20, Completed: true,
		},
		{
			ID: 2, Name: "Quinoa Power Salad",
			Foods:         []string{"Quinoa", "Chicken breast", "Spinach", "Cherry tomatoes", "Avocado"},
			ScheduledDate: today, ScheduledTime: "12:30",
			Calories: 450, Protein: 35, Completed: false,
		},
		{
			ID: 3, Name: "Grilled Salmon Dinner",
			Foods:         []string{"Salmon fillet", "Asparagus", "Sweet potato", "Olive oil"},
			ScheduledDate: today, ScheduledTime: "19:00",
			Calories: 520, Protein: 38, Completed: false,
		},
	}
}

func SeedSupplements(now time.Time) []Supplement {
	today := now.Format(DateLayout)
	return []Supplement{
		{
			ID: 1, Name: "Vitamin D3", Dosage: "2000", Unit: "IU",
			ScheduledDate: today, ScheduledTime: "09:00", Frequency: "daily",
			Notes: "Take with food for better absorption", Completed: false, Streak: 5,
		},
		{
			ID: 2, Name: "Omega-3", Dosage: "1000", Unit: "mg",
			ScheduledDate: today, ScheduledTime: "18:00", Frequency: "daily",
			Notes: "Fish oil supplement for heart health", Completed: true, Streak: 12,
		},
	}
}

func SeedAddictions(now time.Time) []Addiction {
	now = now.UTC()
	day := 24 * time.Hour
	lastRelapse := now.Add(-45 * day)
	return []Addiction{
		{
			ID: 1, Name: "Social Media", Type: AddictionDigital, Severity: SeverityModerate,
			DaysSober:        7,
			Triggers:         []string{"Boredom", "Stress", "FOMO"},
			CopingStrategies: []string{"Read a book", "Go for a walk", "Call a friend"},
			Notes:            "Trying to limit usage to 30 minutes per day",
			IsActive:         true,
			CreatedAt:        now.Add(-30 * day),
		},
		{
			ID: 2, Name: "Smoking", Type: AddictionSubstance, Severity: SeverityHigh,
			DaysSober:        45,
			LastRelapse:      &lastRelapse,
			Triggers:         []string{"Stress", "Alcohol", "Work breaks"},
			CopingStrategies: []string{"Deep breathing", "Chew gum", "Exercise"},
			Notes:            "Using nicotine patches to help with withdrawal",
			IsActive:         true,
			CreatedAt:        now.Add(-90 * day),
		},
	}
}

func AddictionTips() []AddictionTip {
	all := []AddictionType{AddictionSubstance, AddictionBehavioral, AddictionDigital, AddictionOther}
	return []AddictionTip{
		{
			ID: 1, Title: "The 5-4-3-2-1 Grounding Technique",
			Content:        "When you feel a craving, identify: 5 things you can see, 4 things you can touch, 3 things you can hear, 2 things you can smell, and 1 thing you can taste.",
			Category:       TipEmergency,
			AddictionTypes: []AddictionType{AddictionSubstance, AddictionBehavioral, AddictionDigital},
		},
		{
			ID: 2, Title: "Progress Over Perfection",
			Content:        "Recovery is not about being perfect. Every day you choose recovery is a victory, no matter how small it may seem.",
			Category:       TipMotivation,
			AddictionTypes: all,
		},
		{
			ID: 3, Title: "Replace the Habit",
			Content:        "Instead of just stopping a behavior, replace it with a positive one. If you reach for your phone, reach for a book instead.",
			Category:       TipStrategy,
			AddictionTypes: []AddictionType{AddictionDigital, AddictionBehavioral},
		},
		{
			ID: 4, Title: "Mindful Breathing",
			Content:        "Take 10 deep breaths, focusing only on the sensation of breathing. This helps reset your nervous system and reduce cravings.",
			Category:       TipMindfulness,
			AddictionTypes: all,
		},
		{
			ID: 5, Title: "Your Why Matters",
			Content:        "Remember why you started this journey. Write down your reasons and read them when motivation is low.",
			Category:       TipMotivation,
			AddictionTypes: all,
		},
		{
			ID: 6, Title: "HALT Check",
			Content:        "Before giving in to a craving, ask yourself: Am I Hungry, Angry, Lonely, or Tired? Address the real need first.",
			Category:       TipStrategy,
			AddictionTypes: all,
		},
	}
}

// MockAccount is one demo account of the fixed allow-list.
type MockAccount struct {
	User     User
	Password string
}

func MockAccounts() []MockAccount {
	return []MockAccount{
		{User: User{ID: 1, Username: "victoria_doe", Name: "Victoria", Theme: "default"}, Password: "password123"},
		{User: User{ID: 2, Username: "jane_smith", Name: "Jane", Theme: "ocean"}, Password: "mypass456"},
	}
}
