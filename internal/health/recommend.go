package health

// RecommendationThreshold is the score below which a category gets advice.
const RecommendationThreshold = 70

// PositiveMessage is emitted alone when no category needs advice.
const PositiveMessage = "Great job! You're maintaining healthy habits across the board. Keep it up!"

var advisories = map[Category]string{
	CategoryPhysicalActivity: "Try to get at least 30 minutes of moderate physical activity every day.",
	CategorySleep:            "Aim for 7-9 hours of sleep each night and keep a consistent bedtime.",
	CategoryHydration:        "Drink at least 8 glasses of water a day to stay hydrated.",
	CategoryMentalHealth:     "Make time to unwind: try mindfulness or breathing exercises, or talk to someone you trust.",
	CategoryJunkFood:         "Cut back on junk food and reach for fruit, vegetables and whole grains instead.",
	CategoryScreenTime:       "Reduce recreational screen time and take regular breaks away from your devices.",
	CategoryBloodPressure:    "Check your blood pressure regularly and see a doctor if readings stay outside the normal range.",
}

// Advisory returns the fixed message for c.
func Advisory(c Category) string {
	return advisories[c]
}

// FallbackRecommendations emits one advisory per category scoring below
// RecommendationThreshold, in Categories order. When none qualifies it
// returns PositiveMessage alone.
func FallbackRecommendations(scores []CategoryScore) []string {
	var out []string
	for _, c := range lowCategories(scores) {
		out = append(out, advisories[c])
	}
	if len(out) == 0 {
		return []string{PositiveMessage}
	}
	return out
}

// SelectRecommendations prefers a non-empty server list. Otherwise it builds
// the fallback, tagging each advisory with its category. Server
// recommendations naming an unknown category keep their message and tips
// but lose the category.
func SelectRecommendations(server []Recommendation, scores []CategoryScore) ([]Recommendation, RecommendationSource) {
	var usable []Recommendation
	for _, r := range server {
		if r.Message == "" {
			continue
		}
		if r.Category != "" && !r.Category.Valid() {
			r.Category = ""
		}
		usable = append(usable, r)
	}
	if len(usable) > 0 {
		return usable, SourceServer
	}

	low := lowCategories(scores)
	if len(low) == 0 {
		return []Recommendation{{Message: PositiveMessage}}, SourceFallback
	}
	recs := make([]Recommendation, 0, len(low))
	for _, c := range low {
		recs = append(recs, Recommendation{Category: c, Message: advisories[c]})
	}
	return recs, SourceFallback
}

// lowCategories returns the categories below the threshold in Categories
// order, each at most once. Unknown categories are ignored.
func lowCategories(scores []CategoryScore) []Category {
	low := make(map[Category]bool)
	for _, cs := range scores {
		if cs.Score < RecommendationThreshold {
			low[cs.Category] = true
		}
	}
	var out []Category
	for _, c := range Categories {
		if low[c] {
			out = append(out, c)
		}
	}
	return out
}
