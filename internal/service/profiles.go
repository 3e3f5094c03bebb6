package service

import "alcyxob/coach-studio/internal/domain"

var sampleClientProfiles = []domain.ClientProfile{
	{
		ID:             "1",
		Name:           "Alex Johnson",
		Age:            28,
		Gender:         "Male",
		Weight:         82,
		Height:         180,
		FitnessLevel:   domain.FitnessIntermediate,
		Goals:          "Build muscle mass and improve upper body strength",
		WorkoutHistory: "Trains 4 times a week for 2 years, mostly push/pull/legs split",
		Progress:       65,
	},
	{
		ID:             "2",
		Name:           "Maria Garcia",
		Age:            34,
		Gender:         "Female",
		Weight:         64,
		Height:         165,
		FitnessLevel:   domain.FitnessBeginner,
		Goals:          "Lose 6 kg and improve cardiovascular endurance",
		WorkoutHistory: "Started 3 months ago, two full body sessions and one run per week",
		Progress:       30,
	},
	{
		ID:             "3",
		Name:           "Daniel Kim",
		Age:            41,
		Gender:         "Male",
		Weight:         90,
		Height:         176,
		FitnessLevel:   domain.FitnessAdvanced,
		Goals:          "Maintain strength while recovering from a lower back injury",
		WorkoutHistory: "Competitive powerlifter for 10 years, currently on reduced volume",
		Progress:       80,
	},
}
