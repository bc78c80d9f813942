package core

import (
	"testing"
)

func TestIDFromTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		wantSame bool
	}{
		{
			name:     "same title produces same ID",
			title:    "The Matrix",
			wantSame: true,
		},
		{
			name:     "empty string",
			title:    "",
			wantSame: true,
		},
		{
			name:     "long title",
			title:    "Dr. Strangelove or: How I Learned to Stop Worrying and Love the Bomb",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromTitle(tt.title)
			id2 := IDFromTitle(tt.title)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromTitle() produced different IDs for same title: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromTitle_Different(t *testing.T) {
	id1 := IDFromTitle("Alien")
	id2 := IDFromTitle("Aliens")

	if id1 == id2 {
		t.Errorf("IDFromTitle() produced same ID for different titles")
	}
}

func TestIDFromTitle_CaseInsensitive(t *testing.T) {
	id1 := IDFromTitle("The Matrix")
	id2 := IDFromTitle("  the matrix ")

	if id1 != id2 {
		t.Errorf("IDFromTitle() should normalize case and whitespace: %d vs %d", id1, id2)
	}
}

func TestStrategy_String(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		want     string
	}{
		{
			name:     "title strategy",
			strategy: StrategyTitle,
			want:     "TITLE",
		},
		{
			name:     "category strategy",
			strategy: StrategyCategory,
			want:     "CATEGORY",
		},
		{
			name:     "zero value",
			strategy: Strategy(0),
			want:     "UNKNOWN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.strategy.String()
			if got != tt.want {
				t.Errorf("Strategy.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntent_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		want   bool
	}{
		{
			name:   "empty intent",
			intent: Intent{},
			want:   true,
		},
		{
			name:   "whitespace title only",
			intent: Intent{Title: "   "},
			want:   true,
		},
		{
			name:   "title only",
			intent: Intent{Title: "The Matrix"},
			want:   false,
		},
		{
			name:   "genres only",
			intent: Intent{Genres: []string{"horror"}},
			want:   false,
		},
		{
			name:   "keywords only",
			intent: Intent{Keywords: []string{"zombie"}},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.intent.IsEmpty()
			if got != tt.want {
				t.Errorf("Intent.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankedResult_Empty(t *testing.T) {
	full := RankedResult{Recommendations: []Recommendation{{Title: "Alien"}}}
	if full.Empty() {
		t.Error("RankedResult.Empty() = true for a result with recommendations")
	}

	empty := RankedResult{Strategy: StrategyCategory}
	if !empty.Empty() {
		t.Error("RankedResult.Empty() = false for a result with no recommendations")
	}
}
