package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ablens/ablens/internal/analyze"
)

// TextWriter outputs a human-readable verdict for the terminal.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, result *analyze.Result) error {
	ew := &errWriter{w: w}

	ew.println("A/B Variant Analysis")
	ew.println(strings.Repeat("─", 60))

	// Scoreboard, highest score first; ties keep verdict order.
	verdicts := make([]analyze.VariantVerdict, len(result.Variants))
	copy(verdicts, result.Variants)
	sort.SliceStable(verdicts, func(i, j int) bool {
		return verdicts[i].Score > verdicts[j].Score
	})
	for _, v := range verdicts {
		marker := "  "
		if v.ID == result.Winner.ID {
			marker = "▸ "
		}
		ew.printf("%s%-12s %3d/100\n", marker, v.Name, v.Score)
	}

	if winner := findVerdict(result, result.Winner.ID); winner != nil {
		ew.printf("\nWinner: %s\n", winner.Name)
	} else if result.Winner.ID != "" {
		ew.printf("\nWinner: %s\n", result.Winner.ID)
	}
	for _, line := range wrapText(result.Winner.Reason, 70) {
		ew.printf("  %s\n", line)
	}

	for _, v := range result.Variants {
		ew.printf("\n%s (%d/100)\n", v.Name, v.Score)
		ew.println(strings.Repeat("─", 40))
		if len(v.Strengths) > 0 {
			ew.println("  Strengths:")
			for _, s := range v.Strengths {
				ew.printf("    + %s\n", s)
			}
		}
		if len(v.Weaknesses) > 0 {
			ew.println("  Weaknesses:")
			for _, s := range v.Weaknesses {
				ew.printf("    - %s\n", s)
			}
		}
		if v.ConversionPotential != "" {
			ew.printf("  Conversion potential: %s\n", v.ConversionPotential)
		}
		if v.TargetAudience != "" {
			ew.printf("  Audience fit: %s\n", v.TargetAudience)
		}
		if v.CodeQuality != "" {
			ew.println("  Code quality:")
			for _, line := range wrapText(v.CodeQuality, 70) {
				ew.printf("    %s\n", line)
			}
		}
	}

	if len(result.Comparison) > 0 {
		ew.println("\nHead-to-head")
		ew.println(strings.Repeat("─", 40))
		for _, dim := range sortedKeys(result.Comparison) {
			ew.printf("  %s:\n", dim)
			for _, line := range wrapText(result.Comparison[dim], 70) {
				ew.printf("    %s\n", line)
			}
		}
	}

	if len(result.Improvements) > 0 {
		ew.println("\nSuggested improvements")
		ew.println(strings.Repeat("─", 40))
		for _, imp := range result.Improvements {
			ew.printf("  [%s] %s (impact: %s, effort: %s)\n",
				imp.Variant, imp.Suggestion, imp.Impact, imp.Effort)
		}
	}

	if len(result.Gaps) > 0 {
		ew.println("\nShared gaps")
		ew.println(strings.Repeat("─", 40))
		for _, gap := range result.Gaps {
			ew.printf("  %s (affects: %s)\n", gap.Issue, strings.Join(gap.AffectedVariants, ", "))
			if gap.Recommendation != "" {
				for _, line := range wrapText(gap.Recommendation, 70) {
					ew.printf("    %s\n", line)
				}
			}
		}
	}

	if len(result.TestingRecommendations) > 0 {
		ew.println("\nTesting recommendations")
		ew.println(strings.Repeat("─", 40))
		for _, rec := range result.TestingRecommendations {
			ew.printf("  • %s\n", rec)
		}
	}

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func findVerdict(result *analyze.Result, id string) *analyze.VariantVerdict {
	for i := range result.Variants {
		if result.Variants[i].ID == id {
			return &result.Variants[i]
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
