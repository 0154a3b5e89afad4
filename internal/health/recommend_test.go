package health

import "testing"

func TestFallbackRecommendationsAllHealthy(t *testing.T) {
	got := FallbackRecommendations(scoresOf(100, 70, 80, 100, 80, 100, 70))
	if len(got) != 1 || got[0] != PositiveMessage {
		t.Errorf("expected only the positive message, got %v", got)
	}
}

func TestFallbackRecommendationsLowCategories(t *testing.T) {
	// sleep, mental health and blood pressure are below 70
	scores := scoresOf(80, 40, 100, 20, 80, 100, 60)
	got := FallbackRecommendations(scores)
	want := []string{
		Advisory(CategorySleep),
		Advisory(CategoryMentalHealth),
		Advisory(CategoryBloodPressure),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d recommendations, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFallbackRecommendationsThresholdBoundary(t *testing.T) {
	got := FallbackRecommendations(scoresOf(69, 70, 70, 70, 70, 70, 70))
	if len(got) != 1 || got[0] != Advisory(CategoryPhysicalActivity) {
		t.Errorf("expected one physical activity advisory, got %v", got)
	}
}

func TestFallbackRecommendationsFixedOrderAndNoDuplicates(t *testing.T) {
	// scores supplied out of order and with a repeated category
	scores := []CategoryScore{
		{Category: CategoryScreenTime, Score: 40},
		{Category: CategoryHydration, Score: 40},
		{Category: CategoryScreenTime, Score: 60},
		{Category: CategoryPhysicalActivity, Score: 20},
	}
	got := FallbackRecommendations(scores)
	want := []string{
		Advisory(CategoryPhysicalActivity),
		Advisory(CategoryHydration),
		Advisory(CategoryScreenTime),
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFallbackRecommendationsEveryCategoryLow(t *testing.T) {
	got := FallbackRecommendations(scoresOf(20, 40, 40, 20, 40, 40, 60))
	if len(got) != 7 {
		t.Fatalf("expected 7 advisories, got %d", len(got))
	}
	seen := make(map[string]bool)
	for i, msg := range got {
		if msg == "" {
			t.Errorf("[%d] empty advisory", i)
		}
		if seen[msg] {
			t.Errorf("duplicate advisory %q", msg)
		}
		seen[msg] = true
		if msg != Advisory(Categories[i]) {
			t.Errorf("[%d] = %q, want advisory for %s", i, msg, Categories[i])
		}
	}
}

func TestSelectRecommendationsPrefersServer(t *testing.T) {
	server := []Recommendation{
		{Message: "Walk after dinner", Tips: []string{"15 minutes is enough"}},
		{Message: ""},
	}
	got, source := SelectRecommendations(server, scoresOf(20, 40, 40, 20, 40, 40, 60))
	if source != SourceServer {
		t.Errorf("source = %s, want server", source)
	}
	if len(got) != 1 || got[0].Message != "Walk after dinner" {
		t.Errorf("unexpected recommendations: %+v", got)
	}
}

func TestSelectRecommendationsUnknownServerCategory(t *testing.T) {
	server := []Recommendation{
		{Category: "nutrition", Message: "Eat more greens", Tips: []string{"Add a salad to lunch"}},
		{Category: CategorySleep, Message: "Go to bed earlier"},
	}
	got, source := SelectRecommendations(server, scoresOf(20, 40, 40, 20, 40, 40, 60))
	if source != SourceServer {
		t.Errorf("source = %s, want server", source)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recommendations, got %+v", got)
	}
	if got[0].Category != "" || got[0].Message != "Eat more greens" || len(got[0].Tips) != 1 {
		t.Errorf("unknown category should be cleared, keeping message and tips: %+v", got[0])
	}
	if got[1].Category != CategorySleep {
		t.Errorf("known category should be kept: %+v", got[1])
	}
	if server[0].Category != "nutrition" {
		t.Error("input slice was modified")
	}
}

func TestSelectRecommendationsFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		server []Recommendation
	}{
		{"nil", nil},
		{"empty", []Recommendation{}},
		{"blank messages", []Recommendation{{Message: ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := SelectRecommendations(tt.server, scoresOf(100, 40, 100, 100, 100, 100, 100))
			if source != SourceFallback {
				t.Errorf("source = %s, want fallback", source)
			}
			if len(got) != 1 || got[0].Category != CategorySleep || got[0].Message != Advisory(CategorySleep) {
				t.Errorf("unexpected recommendations: %+v", got)
			}
		})
	}
}

func TestSelectRecommendationsFallbackPositive(t *testing.T) {
	got, source := SelectRecommendations(nil, scoresOf(100, 100, 100, 100, 100, 100, 100))
	if source != SourceFallback {
		t.Errorf("source = %s, want fallback", source)
	}
	if len(got) != 1 || got[0].Message != PositiveMessage || got[0].Category != "" {
		t.Errorf("unexpected recommendations: %+v", got)
	}
}
