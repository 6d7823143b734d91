package gamification

import "testing"

func TestTierFor(t *testing.T) {
	tests := []struct {
		xp   int64
		want string
	}{
		{0, "bronze"},
		{10, "bronze"},
		{499, "bronze"},
		{500, "silver"},
		{1999, "silver"},
		{2000, "gold"},
		{9999, "gold"},
		{10000, "platinum"},
		{49999, "platinum"},
		{50000, "master"},
		{1000000, "master"},
	}

	for _, tt := range tests {
		if got := TierFor(tt.xp); got != tt.want {
			t.Errorf("TierFor(%d) = %s, want %s", tt.xp, got, tt.want)
		}
	}
}
