// Package risk computes a deterministic risk score from a structured
// incident report. Scoring is pure: identical inputs always produce
// identical assessments, regardless of client-submitted tag ordering.
package risk

// Age bands accepted by the scorer.
const (
	AgeBand10To12 = "10-12"
	AgeBand13To15 = "13-15"
	AgeBand16To17 = "16-17"
)

// Risk tag vocabulary.
const (
	TagUpcomingCeremony = "upcoming_ceremony"
	TagPressureAtHome   = "pressure_at_home"
	TagTravelPlan       = "travel_plan"
	TagInjurySigns      = "injury_signs"
	TagCommunityRumor   = "community_rumor"
	TagOther            = "other"
)

const (
	baselineScore    = 50
	maxScore         = 100
	minScore         = 0
	maxNoteBonus     = 20
	noteBonusDivisor = 10
	noteReasonFloor  = 10
)

// Assessment is the immutable scoring result. Reasons are ordered by
// evaluation: age band first, then tags in canonical order, then note
// length.
type Assessment struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// ageWeights encode that the middle band carries the greatest risk.
var ageWeights = map[string]struct {
	weight int
	reason string
}{
	AgeBand10To12: {20, "Younger age group (higher risk)"},
	AgeBand13To15: {35, "Critical age group (highest risk)"},
	AgeBand16To17: {10, "Older age group (moderate risk)"},
}

// tagWeights is the canonical tag evaluation order with additive
// weights. Unknown tags contribute nothing.
var tagWeights = []struct {
	tag    string
	weight int
	reason string
}{
	{TagUpcomingCeremony, 30, "Upcoming ceremony detected"},
	{TagPressureAtHome, 25, "Family pressure indicators"},
	{TagTravelPlan, 20, "Sudden travel plans"},
	{TagInjurySigns, 35, "Signs of injury or pain"},
	{TagCommunityRumor, 15, "Community rumors detected"},
}

// Score maps an age band, risk tags, and redacted note to a 0-100
// assessment. Behavior is defined only for the three valid age bands;
// validation belongs to the caller.
func Score(ageBand string, riskTags []string, redactedNote string) Assessment {
	score := float64(baselineScore)
	reasons := []string{}

	if aw, ok := ageWeights[ageBand]; ok {
		score += float64(aw.weight)
		reasons = append(reasons, aw.reason)
	}

	present := make(map[string]bool, len(riskTags))
	for _, tag := range riskTags {
		present[tag] = true
	}
	for _, tw := range tagWeights {
		if present[tw.tag] {
			score += float64(tw.weight)
			reasons = append(reasons, tw.reason)
		}
	}

	if redactedNote != "" {
		noteBonus := float64(len(redactedNote)) / noteBonusDivisor
		if noteBonus > maxNoteBonus {
			noteBonus = maxNoteBonus
		}
		score += noteBonus
		if noteBonus > noteReasonFloor {
			reasons = append(reasons, "Detailed report provided")
		}
	}

	if score > maxScore {
		score = maxScore
	}
	if score < minScore {
		score = minScore
	}

	return Assessment{Score: int(score), Reasons: reasons}
}

// Level maps a score to a display band.
func Level(score int) string {
	switch {
	case score >= 80:
		return "Critical"
	case score >= 60:
		return "High"
	case score >= 40:
		return "Medium"
	default:
		return "Low"
	}
}

// ValidAgeBand reports whether the band is one of the three accepted
// values.
func ValidAgeBand(ageBand string) bool {
	_, ok := ageWeights[ageBand]
	return ok
}

// ValidTag reports whether the tag is part of the controlled
// vocabulary.
func ValidTag(tag string) bool {
	if tag == TagOther {
		return true
	}
	for _, tw := range tagWeights {
		if tw.tag == tag {
			return true
		}
	}
	return false
}
