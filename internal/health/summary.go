package health

// OverallScore is the unweighted mean of the category scores, rounded half-up.
// An empty slice scores 0.
func OverallScore(scores []CategoryScore) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, cs := range scores {
		sum += clampScore(cs.Score)
	}
	n := len(scores)
	return (2*sum + n) / (2 * n)
}

// Band is the overall score range a UI colours its gauge with.
type Band struct {
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	Status string `json:"status"`
}

var Bands = []Band{
	{Min: 90, Max: 100, Label: "Excellent", Color: "#4CAF50", Status: "excellent"},
	{Min: 70, Max: 89, Label: "Good", Color: "#8BC34A", Status: "good"},
	{Min: 50, Max: 69, Label: "Fair", Color: "#FF9800", Status: "fair"},
	{Min: 30, Max: 49, Label: "Needs Attention", Color: "#FF5722", Status: "attention"},
	{Min: 0, Max: 29, Label: "Critical", Color: "#F44336", Status: "critical"},
}

// BandFor returns the band containing score. Out-of-range scores fall into
// the lowest band.
func BandFor(score int) Band {
	for _, b := range Bands {
		if score >= b.Min && score <= b.Max {
			return b
		}
	}
	return Bands[len(Bands)-1]
}

// Evaluate scores r and derives the overall score and band.
func Evaluate(r Response) Assessment {
	scores := ScoreCategories(r)
	overall := OverallScore(scores)
	return Assessment{
		Categories: scores,
		Overall:    overall,
		Band:       BandFor(overall),
	}
}
