package services

import "github.com/rBrgv/KRF-sub000/models"

func ptr(v float64) *float64 { return &v }

// DefaultDefinition is the studio's built-in health questionnaire.
// Per-category weights sum to models.CategoryMax; the best choice of every
// choice question earns the question's full weight.
func DefaultDefinition() Definition {
	return Definition{
		Sections: []SectionDef{
			{ID: models.SectionPhysical, Title: "Physical Activity"},
			{ID: models.SectionPain, Title: "Pain & Mobility"},
			{ID: models.SectionLifestyle, Title: "Lifestyle & Nutrition"},
			{ID: models.SectionMental, Title: "Mental Wellbeing"},
			{ID: models.SectionGoal, Title: "Your Goals"},
		},
		Questions: []models.Question{
			// Physical (category physical = 25)
			{
				ID: "activity_level", Section: models.SectionPhysical, Category: models.CategoryPhysical,
				Type: models.QuestionTypeChoice, Required: true, Weight: 8,
				Text: "How active are you in a typical week?",
				Choices: []models.Choice{
					{Value: "sedentary", Label: "Mostly sitting, little exercise", Points: 0},
					{Value: "light", Label: "Light activity 1-2 days a week", Points: 3},
					{Value: "moderate", Label: "Moderate exercise 3-4 days a week", Points: 6},
					{Value: "active", Label: "Training 5 or more days a week", Points: 8},
				},
			},
			{
				ID: "strength_confidence", Section: models.SectionPhysical, Category: models.CategoryPhysical,
				Type: models.QuestionTypeScale, Required: true, Weight: 7,
				Text: "How confident are you lifting, carrying and climbing stairs? (1 = not at all, 5 = very)",
			},
			{
				ID: "cardio_endurance", Section: models.SectionPhysical, Category: models.CategoryPhysical,
				Type: models.QuestionTypeScale, Required: true, Weight: 5,
				Text: "How easily can you keep a brisk pace for 20 minutes? (1 = very hard, 5 = easily)",
			},
			{
				ID: "resting_heart_rate", Section: models.SectionPhysical, Category: models.CategoryPhysical,
				Type: models.QuestionTypeNumeric, Required: false, Weight: 5,
				Text: "Resting heart rate, if you know it", Unit: "bpm", Min: ptr(30), Max: ptr(220),
				Numeric: &models.NumericScoring{Direction: models.LowerIsBetter, Ideal: 60, Zero: 100},
			},

			// Pain (category pain_mobility = 10)
			{
				ID: "pain_frequency", Section: models.SectionPain, Category: models.CategoryPainMobility,
				Type: models.QuestionTypeChoice, Required: true, Weight: 6,
				Text: "How often do you feel joint or back pain?",
				Choices: []models.Choice{
					{Value: "daily", Label: "Every day", Points: 0},
					{Value: "weekly", Label: "A few times a week", Points: 2},
					{Value: "rarely", Label: "Rarely", Points: 4},
					{Value: "never", Label: "Never", Points: 6},
				},
			},
			{
				ID: "mobility_comfort", Section: models.SectionPain, Category: models.CategoryPainMobility,
				Type: models.QuestionTypeScale, Required: true, Weight: 4,
				Text: "How comfortably can you bend, squat and reach overhead? (1 = painful, 5 = freely)",
			},

			// Lifestyle (categories nutrition = 15, lifestyle = 15)
			{
				ID: "diet_quality", Section: models.SectionLifestyle, Category: models.CategoryNutrition,
				Type: models.QuestionTypeScale, Required: true, Weight: 6,
				Text: "How balanced is your everyday diet? (1 = mostly processed, 5 = mostly whole foods)",
			},
			{
				ID: "meals_per_day", Section: models.SectionLifestyle, Category: models.CategoryNutrition,
				Type: models.QuestionTypeChoice, Required: true, Weight: 5,
				Text: "How many proper meals do you eat a day?",
				Choices: []models.Choice{
					{Value: "one", Label: "One", Points: 0},
					{Value: "two", Label: "Two", Points: 2},
					{Value: "three", Label: "Three", Points: 5},
					{Value: "four_plus", Label: "Four or more", Points: 4},
				},
			},
			{
				ID: "water_intake", Section: models.SectionLifestyle, Category: models.CategoryNutrition,
				Type: models.QuestionTypeNumeric, Required: false, Weight: 4,
				Text: "How much water do you drink a day?", Unit: "litres", Min: ptr(0), Max: ptr(10),
				Numeric: &models.NumericScoring{Direction: models.HigherIsBetter, Ideal: 3, Zero: 0.5},
			},
			{
				ID: "sleep_hours", Section: models.SectionLifestyle, Category: models.CategoryLifestyle,
				Type: models.QuestionTypeNumeric, Required: true, Weight: 6,
				Text: "How many hours do you sleep on an average night?", Unit: "hours", Min: ptr(0), Max: ptr(24),
				Numeric: &models.NumericScoring{Direction: models.HigherIsBetter, Ideal: 7.5, Zero: 4},
			},
			{
				ID: "smoking", Section: models.SectionLifestyle, Category: models.CategoryLifestyle,
				Type: models.QuestionTypeChoice, Required: true, Weight: 5,
				Text: "Do you smoke?",
				Choices: []models.Choice{
					{Value: "daily", Label: "Yes, daily", Points: 0},
					{Value: "occasionally", Label: "Occasionally", Points: 2},
					{Value: "quit", Label: "I quit", Points: 4},
					{Value: "never", Label: "Never", Points: 5},
				},
			},
			{
				ID: "alcohol", Section: models.SectionLifestyle, Category: models.CategoryLifestyle,
				Type: models.QuestionTypeChoice, Required: true, Weight: 4,
				Text: "How often do you drink alcohol?",
				Choices: []models.Choice{
					{Value: "daily", Label: "Daily", Points: 0},
					{Value: "weekly", Label: "Every week", Points: 2},
					{Value: "rarely", Label: "Rarely", Points: 3},
					{Value: "never", Label: "Never", Points: 4},
				},
			},

			// Mental (category mental = 20)
			{
				ID: "stress_management", Section: models.SectionMental, Category: models.CategoryMental,
				Type: models.QuestionTypeScale, Required: true, Weight: 7,
				Text: "How well are you handling stress lately? (1 = overwhelmed, 5 = in control)",
			},
			{
				ID: "mood", Section: models.SectionMental, Category: models.CategoryMental,
				Type: models.QuestionTypeScale, Required: true, Weight: 7,
				Text: "How would you rate your mood over the last two weeks? (1 = low, 5 = great)",
			},
			{
				ID: "sleep_quality", Section: models.SectionMental, Category: models.CategoryMental,
				Type: models.QuestionTypeScale, Required: true, Weight: 6,
				Text: "How rested do you feel when you wake up? (1 = exhausted, 5 = fully rested)",
			},

			// Goal (category goal_readiness = 15)
			{
				ID: "primary_goal", Section: models.SectionGoal, Category: models.CategoryGoalReadiness,
				Type: models.QuestionTypeChoice, Required: true, Weight: 3,
				Text: "What is your main goal?",
				Choices: []models.Choice{
					{Value: "weight_loss", Label: "Lose weight", Points: 3},
					{Value: "muscle_gain", Label: "Build muscle", Points: 3},
					{Value: "general_fitness", Label: "Get fitter overall", Points: 3},
					{Value: "pain_relief", Label: "Move without pain", Points: 3},
					{Value: "not_sure", Label: "Not sure yet", Points: 0},
				},
			},
			{
				ID: "commitment", Section: models.SectionGoal, Category: models.CategoryGoalReadiness,
				Type: models.QuestionTypeScale, Required: true, Weight: 6,
				Text: "How ready are you to commit to a routine right now? (1 = not ready, 5 = all in)",
			},
			{
				ID: "weekly_sessions", Section: models.SectionGoal, Category: models.CategoryGoalReadiness,
				Type: models.QuestionTypeChoice, Required: true, Weight: 6,
				Text: "How many sessions a week can you realistically train?",
				Choices: []models.Choice{
					{Value: "one", Label: "One", Points: 1},
					{Value: "two", Label: "Two", Points: 3},
					{Value: "three", Label: "Three", Points: 5},
					{Value: "four_plus", Label: "Four or more", Points: 6},
				},
			},
		},
		Rules: defaultRules(),
	}
}

func defaultRules() []Rule {
	return []Rule{
		{
			ID: "high_resting_hr", Category: models.CategoryPhysical, Priority: 100,
			Text: "Your resting heart rate is high. Please check in with your doctor before starting intense training.",
			When: Condition{Question: "resting_heart_rate", Above: ptr(90)},
		},
		{
			ID: "frequent_pain", Category: models.CategoryPainMobility, Priority: 95,
			Text: "Frequent pain needs attention first: start with a mobility assessment and corrective exercise sessions.",
			When: Condition{Question: "pain_frequency", AnyOf: []string{"daily", "weekly"}},
		},
		{
			ID: "smoker", Category: models.CategoryLifestyle, Priority: 90,
			Text: "Cutting down on smoking will improve your endurance faster than any workout. Ask us about a support plan.",
			When: Condition{Question: "smoking", AnyOf: []string{"daily", "occasionally"}},
		},
		{
			ID: "high_stress", Category: models.CategoryMental, Priority: 85,
			Text: "Stress is holding you back. Add two short breathing or walking breaks to every day.",
			When: Condition{Question: "stress_management", Below: ptr(3)},
		},
		{
			ID: "short_sleep", Category: models.CategoryLifestyle, Priority: 80,
			Text: "Aim for at least 7 hours of sleep; recovery is where your training results are made.",
			When: Condition{Question: "sleep_hours", Below: ptr(6)},
		},
		{
			ID: "sedentary", Category: models.CategoryPhysical, Priority: 75,
			Text: "Start with three 30-minute sessions a week of guided strength and walking work.",
			When: Condition{Question: "activity_level", AnyOf: []string{"sedentary", "light"}},
		},
		{
			ID: "daily_alcohol", Category: models.CategoryLifestyle, Priority: 70,
			Text: "Limit alcohol to the weekend to improve sleep quality and body composition.",
			When: Condition{Question: "alcohol", AnyOf: []string{"daily"}},
		},
		{
			ID: "low_mood", Category: models.CategoryMental, Priority: 68,
			Text: "Regular exercise lifts mood; pair your sessions with a friend or a group class.",
			When: Condition{Question: "mood", Below: ptr(3)},
		},
		{
			ID: "low_nutrition", Category: models.CategoryNutrition, Priority: 65,
			Text: "Build each meal around protein and vegetables; our nutrition check-in can help you plan the week.",
			When: Condition{Category: models.CategoryNutrition, BelowRatio: ptr(0.6)},
		},
		{
			ID: "low_water", Category: models.CategoryNutrition, Priority: 60,
			Text: "Drink at least 2.5 litres of water a day, more on training days.",
			When: Condition{Question: "water_intake", Below: ptr(2)},
		},
		{
			ID: "low_physical", Category: models.CategoryPhysical, Priority: 58,
			Text: "Your fitness base needs building: a progressive full-body programme is the best starting point.",
			When: Condition{Category: models.CategoryPhysical, BelowRatio: ptr(0.6)},
		},
		{
			ID: "low_mobility", Category: models.CategoryPainMobility, Priority: 56,
			Text: "Add 10 minutes of mobility work after each session to keep joints healthy.",
			When: Condition{Category: models.CategoryPainMobility, BelowRatio: ptr(0.6)},
		},
		{
			ID: "low_lifestyle", Category: models.CategoryLifestyle, Priority: 54,
			Text: "Small daily habits matter: fix your sleep schedule and keep alcohol occasional.",
			When: Condition{Category: models.CategoryLifestyle, BelowRatio: ptr(0.6)},
		},
		{
			ID: "low_mental", Category: models.CategoryMental, Priority: 52,
			Text: "Protect your recovery: schedule rest days and keep screens out of the bedroom.",
			When: Condition{Category: models.CategoryMental, BelowRatio: ptr(0.6)},
		},
		{
			ID: "low_commitment", Category: models.CategoryGoalReadiness, Priority: 50,
			Text: "Start small: two fixed sessions a week you never skip beat an ambitious plan you cannot keep.",
			When: Condition{Question: "commitment", Below: ptr(3)},
		},
		{
			ID: "low_goal_readiness", Category: models.CategoryGoalReadiness, Priority: 48,
			Text: "Let's set one clear, measurable goal together in your first session.",
			When: Condition{Category: models.CategoryGoalReadiness, BelowRatio: ptr(0.6)},
		},
		{
			ID: "maintain", Priority: 10,
			Text: "You are in great shape. Keep your routine varied and test yourself with a new challenge every quarter.",
			When: Condition{MinOverall: ptr(85)},
		},
	}
}
