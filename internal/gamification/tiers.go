package gamification

import (
	"github.com/launchesoneth-glitch/pokevault-sub000/internal/config"
)

// TierFor returns the highest tier whose threshold the cumulative XP has
// crossed. Thresholds are strictly increasing, so a single descending scan
// finds the answer.
func TierFor(xp int64) string {
	for i := len(config.Tiers) - 1; i >= 0; i-- {
		if xp >= config.Tiers[i].MinXP {
			return config.Tiers[i].Name
		}
	}
	return config.Tiers[0].Name
}
