package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ablens/ablens/internal/analyze"
)

// MarkdownWriter outputs a report suitable for pasting into a PR comment
// or a design doc.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, result *analyze.Result) error {
	fmt.Fprintf(w, "## A/B Variant Analysis\n\n")

	// Scoreboard table in verdict order.
	fmt.Fprintf(w, "| Variant | Score | Conversion potential |\n")
	fmt.Fprintf(w, "|---------|-------|----------------------|\n")
	for _, v := range result.Variants {
		name := v.Name
		if v.ID == result.Winner.ID {
			name = "**" + name + "** :trophy:"
		}
		fmt.Fprintf(w, "| %s | %d/100 | %s |\n", name, v.Score, v.ConversionPotential)
	}
	fmt.Fprintln(w)

	if result.Winner.Reason != "" {
		fmt.Fprintf(w, "**Why it wins:** %s\n\n", result.Winner.Reason)
	}

	for _, v := range result.Variants {
		fmt.Fprintf(w, "<details>\n<summary>%s (%d/100)</summary>\n\n", v.Name, v.Score)
		if len(v.Strengths) > 0 {
			fmt.Fprintf(w, "**Strengths**\n\n")
			for _, s := range v.Strengths {
				fmt.Fprintf(w, "- %s\n", s)
			}
			fmt.Fprintln(w)
		}
		if len(v.Weaknesses) > 0 {
			fmt.Fprintf(w, "**Weaknesses**\n\n")
			for _, s := range v.Weaknesses {
				fmt.Fprintf(w, "- %s\n", s)
			}
			fmt.Fprintln(w)
		}
		if v.TargetAudience != "" {
			fmt.Fprintf(w, "**Audience fit:** %s\n\n", v.TargetAudience)
		}
		if v.CodeQuality != "" {
			fmt.Fprintf(w, "**Code quality:** %s\n\n", v.CodeQuality)
		}
		fmt.Fprintf(w, "</details>\n\n")
	}

	if len(result.Comparison) > 0 {
		fmt.Fprintf(w, "### Head-to-head\n\n")
		for _, dim := range sortedKeys(result.Comparison) {
			fmt.Fprintf(w, "- **%s** — %s\n", dim, result.Comparison[dim])
		}
		fmt.Fprintln(w)
	}

	if len(result.Improvements) > 0 {
		fmt.Fprintf(w, "### Suggested improvements\n\n")
		fmt.Fprintf(w, "| Variant | Suggestion | Impact | Effort |\n")
		fmt.Fprintf(w, "|---------|------------|--------|--------|\n")
		for _, imp := range result.Improvements {
			fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
				imp.Variant, imp.Suggestion, imp.Impact, imp.Effort)
		}
		fmt.Fprintln(w)
	}

	if len(result.Gaps) > 0 {
		fmt.Fprintf(w, "### Shared gaps\n\n")
		for _, gap := range result.Gaps {
			fmt.Fprintf(w, "- %s (affects: %s)", gap.Issue, strings.Join(gap.AffectedVariants, ", "))
			if gap.Recommendation != "" {
				fmt.Fprintf(w, " — %s", gap.Recommendation)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	if len(result.TestingRecommendations) > 0 {
		fmt.Fprintf(w, "### Testing recommendations\n\n")
		for _, rec := range result.TestingRecommendations {
			fmt.Fprintf(w, "- %s\n", rec)
		}
	}

	return nil
}
