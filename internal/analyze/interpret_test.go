package analyze

import (
	"errors"
	"testing"
)

const sampleVerdict = `{
  "variants": [
    {"id": "a1", "name": "Variant A", "score": 82, "strengths": ["clear CTA"], "weaknesses": ["weak trust signals"], "conversionPotential": "high", "targetAudience": "bargain hunters"},
    {"id": "b2", "name": "Variant B", "score": 74, "strengths": ["clean layout"], "weaknesses": ["CTA below fold"], "conversionPotential": "medium", "targetAudience": "returning users", "codeQuality": "semantic markup, missing alt text"}
  ],
  "winner": {"id": "a1", "reason": "Stronger call to action above the fold."},
  "comparison": {"visual hierarchy": "A leads with a single focal point."},
  "improvements": [{"variant": "Variant B", "suggestion": "Move the CTA above the fold", "impact": "high", "effort": "low"}],
  "gaps": [{"issue": "No loading states", "affectedVariants": ["Variant A", "Variant B"], "recommendation": "Add skeleton screens"}],
  "testingRecommendations": ["Run for two weeks minimum"]
}`

func TestParseAnalysis(t *testing.T) {
	result, err := ParseAnalysis(sampleVerdict)
	if err != nil {
		t.Fatalf("ParseAnalysis error: %v", err)
	}
	if len(result.Variants) != 2 {
		t.Fatalf("len(Variants) = %d, want 2", len(result.Variants))
	}
	if result.Variants[0].Score != 82 {
		t.Errorf("Variants[0].Score = %d, want 82", result.Variants[0].Score)
	}
	if result.Variants[1].CodeQuality == "" {
		t.Error("Variants[1].CodeQuality should be populated")
	}
	if result.Winner.ID != "a1" {
		t.Errorf("Winner.ID = %q, want a1", result.Winner.ID)
	}
	if got := result.Comparison["visual hierarchy"]; got == "" {
		t.Error("Comparison should carry the visual hierarchy dimension")
	}
	if len(result.Improvements) != 1 || result.Improvements[0].Effort != "low" {
		t.Errorf("Improvements = %+v", result.Improvements)
	}
	if len(result.Gaps) != 1 || len(result.Gaps[0].AffectedVariants) != 2 {
		t.Errorf("Gaps = %+v", result.Gaps)
	}
}

func TestParseAnalysis_StripsFences(t *testing.T) {
	for _, wrap := range []string{
		"```json\n" + sampleVerdict + "\n```",
		"```\n" + sampleVerdict + "\n```",
		"\n\n```json\n" + sampleVerdict + "\n```\n",
	} {
		result, err := ParseAnalysis(wrap)
		if err != nil {
			t.Fatalf("ParseAnalysis(fenced) error: %v", err)
		}
		if result.Winner.ID != "a1" {
			t.Errorf("Winner.ID = %q, want a1", result.Winner.ID)
		}
	}
}

func TestParseAnalysis_Malformed(t *testing.T) {
	for _, bad := range []string{
		"not json",
		"The winner is Variant A because of its CTA.",
		"```json\ntruncated {",
		"",
	} {
		_, err := ParseAnalysis(bad)
		var mae *MalformedAnalysisError
		if !errors.As(err, &mae) {
			t.Errorf("ParseAnalysis(%q) error = %v, want MalformedAnalysisError", bad, err)
		}
	}
}

func TestParseAnalysis_ToleratesMissingFields(t *testing.T) {
	result, err := ParseAnalysis(`{"variants": [], "winner": {"id": "x", "reason": "only option"}}`)
	if err != nil {
		t.Fatalf("ParseAnalysis error: %v", err)
	}
	if result.Comparison != nil && len(result.Comparison) != 0 {
		t.Errorf("Comparison = %v, want empty", result.Comparison)
	}
	if result.Winner.Reason != "only option" {
		t.Errorf("Winner.Reason = %q", result.Winner.Reason)
	}
}
