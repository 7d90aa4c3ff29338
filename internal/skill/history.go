package skill

// HistoryRecord summarizes a user's past results at one difficulty.
type HistoryRecord struct {
	Difficulty   float64 `json:"difficulty"`
	TimesCorrect int     `json:"times_correct"`
	TimesSeen    int     `json:"times_seen"`
}

// EstimateFromHistory bootstraps a skill level from aggregated past
// results. Each usable record contributes difficulty + (accuracy-0.7)*2,
// weighted by times seen: 70% accuracy at a difficulty implies skill at
// that difficulty, higher accuracy implies skill above it. Records never
// seen are skipped; no usable records yields the default level.
func EstimateFromHistory(records []HistoryRecord) float64 {
	var weightedSum, totalWeight float64

	for _, r := range records {
		if r.TimesSeen <= 0 {
			continue
		}
		accuracy := float64(r.TimesCorrect) / float64(r.TimesSeen)
		estimate := r.Difficulty + (accuracy-0.7)*2
		weight := float64(r.TimesSeen)
		weightedSum += estimate * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return DefaultLevel
	}
	return clampLevel(weightedSum / totalWeight)
}
