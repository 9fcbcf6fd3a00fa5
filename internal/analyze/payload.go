package analyze

import (
	"fmt"
	"strings"

	"github.com/ablens/ablens/internal/providers"
	"github.com/ablens/ablens/internal/redact"
	"github.com/ablens/ablens/internal/variant"
)

const systemPrompt = `You are an expert conversion-rate optimizer and UI reviewer. You compare candidate UI designs ("variants") and produce a structured A/B-test verdict in JSON format.

Rules:
1. Judge each variant on visual hierarchy, clarity, trust signals, call-to-action strength, and likely conversion impact.
2. For code variants, also assess implementation quality (semantics, accessibility, responsiveness) under "codeQuality".
3. Score each variant 0-100. Scores must be comparable across variants.
4. Pick exactly one winner and explain why in one or two sentences.
5. Be concrete. Every improvement must name the variant it applies to and estimate impact and effort as "low", "medium", or "high".

You MUST respond with ONLY a JSON object. No markdown, no explanation, no preamble.

The object must have this exact structure:
{
  "variants": [{"id": "...", "name": "Variant A", "score": 0-100, "strengths": [], "weaknesses": [], "conversionPotential": "...", "targetAudience": "...", "codeQuality": "..."}],
  "winner": {"id": "...", "reason": "..."},
  "comparison": {"<dimension>": "<verdict text>"},
  "improvements": [{"variant": "...", "suggestion": "...", "impact": "low|medium|high", "effort": "low|medium|high"}],
  "gaps": [{"issue": "...", "affectedVariants": [], "recommendation": "..."}],
  "testingRecommendations": ["..."]
}`

// InsufficientVariantsError is returned when fewer than two variants are
// present at analysis time.
type InsufficientVariantsError struct {
	Count int
}

func (e *InsufficientVariantsError) Error() string {
	return fmt.Sprintf("need at least 2 variants to compare, have %d", e.Count)
}

// Options steers payload construction.
type Options struct {
	RedactSecrets bool
	Criteria      *Criteria
}

// SystemPrompt returns the fixed analysis instruction.
func SystemPrompt() string {
	return systemPrompt
}

// BuildRequest converts the current variant collection into a single
// multimodal analysis request: one image block per image variant followed
// by one text block carrying the variant enumeration and the full source
// of every code variant. Variant ordering mirrors collection order. No
// truncation happens here; file caps were applied at fetch time.
func BuildRequest(variants []variant.Variant, opts Options) (providers.AnalyzeRequest, error) {
	if len(variants) < 2 {
		return providers.AnalyzeRequest{}, &InsufficientVariantsError{Count: len(variants)}
	}

	var blocks []providers.ContentBlock
	for _, v := range variants {
		if v.Kind == variant.KindImage {
			blocks = append(blocks, providers.ImageBlock(v.MediaType, v.Image))
		}
	}
	blocks = append(blocks, providers.TextBlock(buildUserText(variants, opts)))

	return providers.AnalyzeRequest{
		System: SystemPrompt(),
		Blocks: blocks,
	}, nil
}

func buildUserText(variants []variant.Variant, opts Options) string {
	var b strings.Builder

	b.WriteString("Compare the following UI variants as an A/B test.\n\n")
	b.WriteString("Variants under comparison:\n")
	for _, v := range variants {
		fmt.Fprintf(&b, "- %s (id %s): %s", v.DisplayName, v.ID, describeVariant(v))
		b.WriteString("\n")
	}

	if section := BuildCriteriaPromptSection(opts.Criteria); section != "" {
		b.WriteString(section)
	}

	for _, v := range variants {
		if v.Kind != variant.KindCode {
			continue
		}
		fmt.Fprintf(&b, "\n=== %s source ===\n", v.DisplayName)
		for _, f := range v.Files {
			content := f.Content
			if opts.RedactSecrets {
				content = redact.File(content, f.RelativePath)
			}
			fmt.Fprintf(&b, "\n--- FILE: %s ---\n%s\n", f.RelativePath, content)
		}
	}

	return b.String()
}

func describeVariant(v variant.Variant) string {
	switch v.Kind {
	case variant.KindImage:
		return fmt.Sprintf("screenshot (%s, origin %s)", v.MediaType, v.Origin)
	default:
		desc := fmt.Sprintf("code, %d files (origin %s", len(v.Files), v.Origin)
		if v.Meta.Owner != "" {
			desc += fmt.Sprintf(", %s/%s@%s", v.Meta.Owner, v.Meta.Repo, v.Meta.Branch)
		}
		if v.Meta.PRNumber > 0 {
			desc += fmt.Sprintf(", PR #%d %q", v.Meta.PRNumber, v.Meta.PRTitle)
		}
		if v.Meta.FolderName != "" {
			desc += fmt.Sprintf(", folder %q", v.Meta.FolderName)
		}
		return desc + ")"
	}
}
