package ranking

import (
	"strings"

	"github.com/vijay-prabhu/foerdercheck/internal/profile"
)

// targetRule matches a target-group tag keyword against a profile attribute
type targetRule struct {
	keyword string
	applies func(profile.EvaluationProfile) bool
}

var targetRules = []targetRule{
	{"familie", func(p profile.EvaluationProfile) bool { return p.HasChildren }},
	{"alleinerziehend", func(p profile.EvaluationProfile) bool { return p.FamilyStatus == profile.FamilyStatusSingleParent }},
	{"geringverdiener", func(p profile.EvaluationProfile) bool { return p.IncomeClass == profile.IncomeLow }},
	{"rentner", func(p profile.EvaluationProfile) bool { return p.AgeClass == profile.AgeSenior }},
	{"student", func(p profile.EvaluationProfile) bool { return p.AgeClass == profile.AgeYoung }},
	{"mieter", func(p profile.EvaluationProfile) bool { return p.IsRenter }},
}

// matchesTargetGroup reports whether any keyword rule connects tag to the profile.
// Keywords match as substrings so "Familien" and "Alleinerziehende" count.
func matchesTargetGroup(tag string, p profile.EvaluationProfile) bool {
	lower := strings.ToLower(tag)
	for _, rule := range targetRules {
		if strings.Contains(lower, rule.keyword) && rule.applies(p) {
			return true
		}
	}
	return false
}

// targetGroupScore is the fraction of tags matching the profile.
// The second result is false when the program declares no target groups.
func targetGroupScore(tags []string, p profile.EvaluationProfile) (float64, bool) {
	var declared, matches int
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		declared++
		if matchesTargetGroup(tag, p) {
			matches++
		}
	}
	if declared == 0 {
		return 0, false
	}
	return float64(matches) / float64(declared), true
}
