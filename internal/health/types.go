// Package health implements the Diagnify health score engine: a pure mapping
// from one sanitized survey response to seven category scores, an overall
// score and a rule-based recommendation fallback.
package health

// Response is one sanitized survey submission. Every field holds a usable
// value; defaulting of missing or malformed answers happens before scoring.
type Response struct {
	ExerciseDuration  DurationBucket  `json:"exerciseDuration"`
	ExerciseType      string          `json:"exerciseType,omitempty"`
	SleepHours        int             `json:"sleepHours"`
	WaterGlasses      int             `json:"waterGlasses"`
	JunkFoodFrequency FrequencyBucket `json:"junkFoodFrequency"`
	Mood              int             `json:"mood"`
	StressLevel       int             `json:"stressLevel"`
	ScreenTimeHours   float64         `json:"screenTimeHours"`
	SystolicBP        int             `json:"systolicBP"`
}

// CategoryScore is the 0-100 rating of one category with its status label.
type CategoryScore struct {
	Category Category `json:"category"`
	Score    int      `json:"score"`
	Status   Status   `json:"status"`
}

// Assessment bundles everything the engine derives from one response.
type Assessment struct {
	Categories []CategoryScore `json:"categories"`
	Overall    int             `json:"overall"`
	Band       Band            `json:"band"`
}

// Recommendation is one advisory. Server-provided lists and the local
// fallback share this shape.
type Recommendation struct {
	Category Category `json:"category,omitempty"`
	Message  string   `json:"message"`
	Tips     []string `json:"tips,omitempty"`
}
