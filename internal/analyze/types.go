package analyze

// VariantVerdict is the model's assessment of a single variant. Optional
// fields are absent-tolerant: the model's output is not schema-enforced
// at the source.
type VariantVerdict struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Score               int      `json:"score"`
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	ConversionPotential string   `json:"conversionPotential"`
	TargetAudience      string   `json:"targetAudience"`
	CodeQuality         string   `json:"codeQuality,omitempty"`
}

// Winner names the winning variant and why.
type Winner struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Improvement is one suggested change for a variant.
type Improvement struct {
	Variant    string `json:"variant"`
	Suggestion string `json:"suggestion"`
	Impact     string `json:"impact"`
	Effort     string `json:"effort"`
}

// Gap is an issue shared by one or more variants.
type Gap struct {
	Issue            string   `json:"issue"`
	AffectedVariants []string `json:"affectedVariants"`
	Recommendation   string   `json:"recommendation"`
}

// Result is the parsed verdict for one analysis run. It is read-only
// display data, replaced wholesale on each successful analysis.
type Result struct {
	Variants               []VariantVerdict  `json:"variants"`
	Winner                 Winner            `json:"winner"`
	Comparison             map[string]string `json:"comparison"`
	Improvements           []Improvement     `json:"improvements"`
	Gaps                   []Gap             `json:"gaps"`
	TestingRecommendations []string          `json:"testingRecommendations"`
}
