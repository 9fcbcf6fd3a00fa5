package analyze

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Criteria steers the comparison, loaded from --criteria.
type Criteria struct {
	TargetAudience string   `json:"targetAudience,omitempty"`
	Dimensions     []string `json:"dimensions,omitempty"`
	BrandNotes     []string `json:"brandNotes,omitempty"`
}

// LoadCriteria loads a criteria file from disk. Returns nil Criteria and
// nil error if path is empty.
func LoadCriteria(path string) (*Criteria, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading criteria file: %w", err)
	}
	var c Criteria
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing criteria file: %w", err)
	}
	return &c, nil
}

// BuildCriteriaPromptSection returns additional prompt instructions
// derived from criteria.
func BuildCriteriaPromptSection(c *Criteria) string {
	if c == nil {
		return ""
	}

	var b strings.Builder

	if c.TargetAudience != "" {
		fmt.Fprintf(&b, "\nJudge for this target audience: %s.\n", c.TargetAudience)
	}

	if len(c.Dimensions) > 0 {
		fmt.Fprintf(&b, "\nThe comparison object must include these dimensions: %s.\n",
			strings.Join(c.Dimensions, ", "))
	}

	if len(c.BrandNotes) > 0 {
		b.WriteString("\nBrand constraints (weigh violations as weaknesses):\n")
		for _, note := range c.BrandNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	return b.String()
}
