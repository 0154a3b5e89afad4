package health

// ScoreCategories rates every category of r, in Categories order.
func ScoreCategories(r Response) []CategoryScore {
	return []CategoryScore{
		ScorePhysicalActivity(ExerciseMinutes[r.ExerciseDuration]),
		ScoreSleep(r.SleepHours),
		ScoreHydration(r.WaterGlasses),
		ScoreMentalHealth(r.Mood, r.StressLevel),
		ScoreJunkFood(JunkFoodCount[r.JunkFoodFrequency]),
		ScoreScreenTime(r.ScreenTimeHours),
		ScoreBloodPressure(r.SystolicBP),
	}
}

// ScorePhysicalActivity rates daily activity minutes.
func ScorePhysicalActivity(minutes int) CategoryScore {
	cs := CategoryScore{Category: CategoryPhysicalActivity}
	switch {
	case minutes >= 60:
		cs.Score, cs.Status = 100, StatusExcellent
	case minutes >= 30:
		cs.Score, cs.Status = 80, StatusGood
	case minutes >= 10:
		cs.Score, cs.Status = 60, StatusFair
	case minutes > 0:
		cs.Score, cs.Status = 40, StatusNeedsImprovement
	default:
		cs.Score, cs.Status = 20, StatusNeedsImprovement
	}
	return cs
}

// ScoreSleep rates nightly sleep hours. More than 9 hours is Adequate, not Optimal.
func ScoreSleep(hours int) CategoryScore {
	cs := CategoryScore{Category: CategorySleep}
	switch {
	case hours >= 7 && hours <= 9:
		cs.Score, cs.Status = 100, StatusOptimal
	case hours >= 6:
		cs.Score, cs.Status = 70, StatusAdequate
	default:
		cs.Score, cs.Status = 40, StatusInsufficient
	}
	return cs
}

// ScoreHydration rates glasses of water per day.
func ScoreHydration(glasses int) CategoryScore {
	cs := CategoryScore{Category: CategoryHydration}
	switch {
	case glasses >= 8:
		cs.Score, cs.Status = 100, StatusExcellent
	case glasses >= 6:
		cs.Score, cs.Status = 80, StatusGood
	case glasses >= 4:
		cs.Score, cs.Status = 60, StatusNeedsImprovement
	default:
		cs.Score, cs.Status = 40, StatusNeedsImprovement
	}
	return cs
}

// ScoreMentalHealth rates mood and stress, both on a 1-5 scale.
func ScoreMentalHealth(mood, stress int) CategoryScore {
	cs := CategoryScore{
		Category: CategoryMentalHealth,
		Score:    clampScore((mood + (6 - stress)) * 10),
	}
	switch {
	case mood >= 4 && stress <= 2:
		cs.Status = StatusGood
	case mood >= 3 && stress <= 3:
		cs.Status = StatusFair
	default:
		cs.Status = StatusNeedsAttention
	}
	return cs
}

// ScoreJunkFood rates junk food servings per day.
func ScoreJunkFood(count int) CategoryScore {
	cs := CategoryScore{Category: CategoryJunkFood}
	switch {
	case count == 0:
		cs.Score, cs.Status = 100, StatusExcellent
	case count <= 1:
		cs.Score, cs.Status = 80, StatusGood
	case count <= 2:
		cs.Score, cs.Status = 60, StatusNeedsImprovement
	default:
		cs.Score, cs.Status = 40, StatusNeedsImprovement
	}
	return cs
}

// ScoreScreenTime rates recreational screen hours per day.
func ScoreScreenTime(hours float64) CategoryScore {
	cs := CategoryScore{Category: CategoryScreenTime}
	switch {
	case hours <= 2:
		cs.Score, cs.Status = 100, StatusOptimal
	case hours <= 4:
		cs.Score, cs.Status = 80, StatusModerate
	case hours <= 6:
		cs.Score, cs.Status = 60, StatusHigh
	default:
		cs.Score, cs.Status = 40, StatusHigh
	}
	return cs
}

// ScoreBloodPressure rates a systolic reading in mmHg. Readings below 90 and
// at or above 140 share one bucket.
func ScoreBloodPressure(systolic int) CategoryScore {
	cs := CategoryScore{Category: CategoryBloodPressure}
	switch {
	case systolic >= 90 && systolic <= 120:
		cs.Score, cs.Status = 100, StatusOptimal
	case systolic >= 121 && systolic <= 139:
		cs.Score, cs.Status = 80, StatusPreHypertension
	case systolic >= 140 || systolic < 90:
		cs.Score, cs.Status = 60, StatusHighLow
	default:
		cs.Score, cs.Status = 40, StatusHighLow
	}
	return cs
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
