package health

// Category identifies one scored health dimension.
type Category string

const (
	CategoryPhysicalActivity Category = "physical_activity"
	CategorySleep            Category = "sleep"
	CategoryHydration        Category = "hydration"
	CategoryMentalHealth     Category = "mental_health"
	CategoryJunkFood         Category = "junk_food"
	CategoryScreenTime       Category = "screen_time"
	CategoryBloodPressure    Category = "blood_pressure"
)

// Categories is the fixed scoring and reporting order.
var Categories = []Category{
	CategoryPhysicalActivity,
	CategorySleep,
	CategoryHydration,
	CategoryMentalHealth,
	CategoryJunkFood,
	CategoryScreenTime,
	CategoryBloodPressure,
}

func (c Category) Valid() bool {
	switch c {
	case CategoryPhysicalActivity, CategorySleep, CategoryHydration,
		CategoryMentalHealth, CategoryJunkFood, CategoryScreenTime,
		CategoryBloodPressure:
		return true
	}
	return false
}

// Label returns the display name used in reports.
func (c Category) Label() string {
	switch c {
	case CategoryPhysicalActivity:
		return "Physical Activity"
	case CategorySleep:
		return "Sleep"
	case CategoryHydration:
		return "Hydration"
	case CategoryMentalHealth:
		return "Mental Health"
	case CategoryJunkFood:
		return "Junk Food"
	case CategoryScreenTime:
		return "Screen Time"
	case CategoryBloodPressure:
		return "Blood Pressure"
	}
	return string(c)
}

// Statuses lists the labels a category can produce.
func (c Category) Statuses() []Status {
	switch c {
	case CategoryPhysicalActivity:
		return []Status{StatusExcellent, StatusGood, StatusFair, StatusNeedsImprovement}
	case CategorySleep:
		return []Status{StatusOptimal, StatusAdequate, StatusInsufficient}
	case CategoryHydration, CategoryJunkFood:
		return []Status{StatusExcellent, StatusGood, StatusNeedsImprovement}
	case CategoryMentalHealth:
		return []Status{StatusGood, StatusFair, StatusNeedsAttention}
	case CategoryScreenTime:
		return []Status{StatusOptimal, StatusModerate, StatusHigh}
	case CategoryBloodPressure:
		return []Status{StatusOptimal, StatusPreHypertension, StatusHighLow}
	}
	return nil
}

// Status is the label attached to a category score.
type Status string

const (
	StatusExcellent        Status = "Excellent"
	StatusGood             Status = "Good"
	StatusFair             Status = "Fair"
	StatusNeedsImprovement Status = "Needs Improvement"
	StatusOptimal          Status = "Optimal"
	StatusAdequate         Status = "Adequate"
	StatusInsufficient     Status = "Insufficient"
	StatusNeedsAttention   Status = "Needs Attention"
	StatusModerate         Status = "Moderate"
	StatusHigh             Status = "High"
	StatusPreHypertension  Status = "Pre-hypertension"
	StatusHighLow          Status = "High/Low"
)

// ValidFor reports whether s is one of the labels c can produce.
func (s Status) ValidFor(c Category) bool {
	for _, allowed := range c.Statuses() {
		if s == allowed {
			return true
		}
	}
	return false
}

// DurationBucket is the exercise duration answer.
type DurationBucket string

const (
	DurationNone    DurationBucket = "0"
	DurationUnder10 DurationBucket = "<10"
	Duration10To30  DurationBucket = "10-30"
	Duration30To60  DurationBucket = "30-60"
	DurationOver60  DurationBucket = "60+"
)

// FrequencyBucket is the junk food frequency answer.
type FrequencyBucket string

const (
	FrequencyNone  FrequencyBucket = "0"
	FrequencyOne   FrequencyBucket = "1"
	FrequencyTwo   FrequencyBucket = "2"
	FrequencyThree FrequencyBucket = "3"
	FrequencyFour  FrequencyBucket = "4"
	FrequencyOver5 FrequencyBucket = ">5"
)

// ExerciseMinutes maps each duration bucket to the minutes it is scored as.
var ExerciseMinutes = map[DurationBucket]int{
	DurationNone:    0,
	DurationUnder10: 5,
	Duration10To30:  20,
	Duration30To60:  45,
	DurationOver60:  75,
}

// JunkFoodCount maps each frequency bucket to the count it is scored as.
var JunkFoodCount = map[FrequencyBucket]int{
	FrequencyNone:  0,
	FrequencyOne:   1,
	FrequencyTwo:   2,
	FrequencyThree: 3,
	FrequencyFour:  4,
	FrequencyOver5: 6,
}

func (d DurationBucket) Valid() bool {
	_, ok := ExerciseMinutes[d]
	return ok
}

func (f FrequencyBucket) Valid() bool {
	_, ok := JunkFoodCount[f]
	return ok
}

// RecommendationSource records where a recommendation list came from.
type RecommendationSource string

const (
	SourceServer   RecommendationSource = "server"
	SourceFallback RecommendationSource = "fallback"
)

func (s RecommendationSource) Valid() bool {
	return s == SourceServer || s == SourceFallback
}
