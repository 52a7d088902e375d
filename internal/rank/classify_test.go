package rank

import (
	"testing"

	"github.com/AniruddhGohil/serp-checker/internal/models"
)

func intPtr(n int) *int { return &n }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		previous *int
		current  int
		want     models.Change
	}{
		{"first sighting", nil, 5, models.ChangeNew},
		{"first sighting not found", nil, 0, models.ChangeNew},
		{"moved up", intPtr(8), 3, models.ChangeImproved},
		{"moved down", intPtr(3), 8, models.ChangeDropped},
		{"unchanged", intPtr(4), 4, models.ChangeNone},
		{"still not found", intPtr(0), 0, models.ChangeNone},
		{"fell out of results", intPtr(5), 0, models.ChangeImproved},
		{"entered results", intPtr(0), 40, models.ChangeDropped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.previous, tt.current); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShouldAlert(t *testing.T) {
	tests := []struct {
		name     string
		previous *int
		current  int
		want     bool
	}{
		{"new keyword", nil, 3, false},
		{"unchanged", intPtr(3), 3, false},
		{"improved", intPtr(5), 3, true},
		{"dropped out", intPtr(5), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldAlert(tt.previous, tt.current); got != tt.want {
				t.Errorf("ShouldAlert() = %v, want %v", got, tt.want)
			}
		})
	}
}
