package analyze

import (
	"context"
	"fmt"
	"strings"

	"github.com/ablens/ablens/internal/cache"
	"github.com/ablens/ablens/internal/config"
	"github.com/ablens/ablens/internal/providers"
	"github.com/ablens/ablens/internal/variant"
)

// Run builds the analysis request for the given variants, sends it to the
// configured provider, and parses the verdict. The response cache is
// consulted first; a hit skips the provider call entirely. Failures are
// terminal; nothing here retries.
func Run(ctx context.Context, variants []variant.Variant, cfg config.Config, opts Options) (*Result, error) {
	req, err := BuildRequest(variants, opts)
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	key := cache.BuildKey(cfg.Provider, cfg.Model, fingerprint(req))
	if cached, ok := c.Get(key); ok {
		return ParseAnalysis(cached)
	}

	provider, err := providers.New(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}

	resp, err := provider.Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("provider analyze: %w", err)
	}

	result, err := ParseAnalysis(resp.Content)
	if err != nil {
		return nil, err
	}

	// Only verdicts that parsed cleanly are worth keeping.
	_ = c.PutFor(key, cfg.Provider, cfg.Model, resp.Content)
	return result, nil
}

// fingerprint flattens a request into key material: block order matters,
// image bytes included.
func fingerprint(req providers.AnalyzeRequest) string {
	var b strings.Builder
	b.WriteString(req.System)
	for _, block := range req.Blocks {
		b.WriteString("\x00")
		if block.Type == providers.BlockImage {
			b.WriteString(block.MediaType)
			b.WriteString(block.Data)
		} else {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}
