package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ablens/ablens/internal/config"
	"github.com/ablens/ablens/internal/variant"
)

// resetFlags resets all package-level flag variables to their zero values.
func resetFlags() {
	flagImages = nil
	flagFolders = nil
	flagGitHub = nil
	flagProvider = ""
	flagModel = ""
	flagFormat = ""
	flagOut = ""
	flagCriteria = ""
	flagNoRedact = false
	flagNoCache = false
	flagMaxFilesPerVariant = 0
	flagMaxTotalFiles = 0
	flagFetchConcurrency = 0
	flagFetchJSON = false
	exitCode = ExitSuccess
}

func TestBuildOverrides(t *testing.T) {
	resetFlags()
	defer resetFlags()

	flagProvider = "openai"
	flagModel = "gpt-4o"
	flagFormat = "json"
	flagCriteria = "criteria.json"
	flagMaxFilesPerVariant = 5
	flagMaxTotalFiles = 12
	flagFetchConcurrency = 2
	flagNoCache = true
	flagNoRedact = true

	m := buildOverrides()
	want := map[string]string{
		"provider":           "openai",
		"model":              "gpt-4o",
		"format":             "json",
		"criteriaFile":       "criteria.json",
		"maxFilesPerVariant": "5",
		"maxTotalFiles":      "12",
		"fetchConcurrency":   "2",
		"noCache":            "true",
		"noRedact":           "true",
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("overrides[%q] = %q, want %q", k, m[k], v)
		}
	}
}

func TestBuildOverrides_EmptyFlags(t *testing.T) {
	resetFlags()
	defer resetFlags()

	m := buildOverrides()
	if len(m) != 0 {
		t.Errorf("overrides = %v, want empty", m)
	}
}

func TestCapsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxFilesPerVariant = 7
	cfg.MaxTotalFiles = 21
	cfg.FetchConcurrency = 3

	caps := capsFromConfig(cfg)
	if caps.MaxFilesPerVariant != 7 || caps.MaxTotalFiles != 21 || caps.FetchConcurrency != 3 {
		t.Errorf("caps = %+v", caps)
	}
}

func TestCollectVariants_LocalSources(t *testing.T) {
	resetFlags()
	defer resetFlags()

	dir := t.TempDir()
	imgPath := filepath.Join(dir, "shot.png")
	// PNG magic bytes so media detection sees image/png.
	if err := os.WriteFile(imgPath, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}, 0o644); err != nil {
		t.Fatal(err)
	}

	folder := filepath.Join(dir, "landing")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folder, "index.html"), []byte("<main/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	flagImages = []string{imgPath}
	flagFolders = []string{folder}

	var coll variant.Collection
	failures := collectVariants(context.Background(), config.Default(), &coll)
	if failures != 0 {
		t.Fatalf("failures = %d, want 0", failures)
	}
	variants := coll.All()
	if len(variants) != 2 {
		t.Fatalf("len(variants) = %d, want 2", len(variants))
	}
	if variants[0].Kind != variant.KindImage || variants[0].MediaType != "image/png" {
		t.Errorf("variants[0] = %+v, want png image", variants[0])
	}
	if variants[0].DisplayName != "Variant A" || variants[1].DisplayName != "Variant B" {
		t.Errorf("display names = %q, %q", variants[0].DisplayName, variants[1].DisplayName)
	}
	if variants[1].Kind != variant.KindCode || len(variants[1].Files) != 1 {
		t.Errorf("variants[1] = %+v, want code variant with 1 file", variants[1])
	}
}

func TestCollectVariants_MissingSourcesAreWarnings(t *testing.T) {
	resetFlags()
	defer resetFlags()

	flagImages = []string{filepath.Join(t.TempDir(), "nope.png")}
	flagFolders = []string{filepath.Join(t.TempDir(), "nope")}

	var coll variant.Collection
	failures := collectVariants(context.Background(), config.Default(), &coll)
	if failures != 2 {
		t.Errorf("failures = %d, want 2", failures)
	}
	if coll.Len() != 0 {
		t.Errorf("Len = %d, want 0", coll.Len())
	}
	if exitCode != ExitSuccess {
		t.Errorf("exitCode = %d, missing sources should not be usage errors", exitCode)
	}
}

func TestCollectVariants_BadURLIsUsageError(t *testing.T) {
	resetFlags()
	defer resetFlags()

	flagGitHub = []string{"https://example.com/not/github"}

	var coll variant.Collection
	failures := collectVariants(context.Background(), config.Default(), &coll)
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
	if exitCode != ExitUsageError {
		t.Errorf("exitCode = %d, want %d", exitCode, ExitUsageError)
	}
}

func TestLookupKey(t *testing.T) {
	m := map[string]any{
		"provider": "anthropic",
		"cache": map[string]any{
			"ttlSeconds": float64(86400),
		},
	}

	v, ok := lookupKey(m, "provider")
	if !ok || v != "anthropic" {
		t.Errorf("lookupKey(provider) = %v, %v", v, ok)
	}
	v, ok = lookupKey(m, "cache.ttlSeconds")
	if !ok || v != float64(86400) {
		t.Errorf("lookupKey(cache.ttlSeconds) = %v, %v", v, ok)
	}
	if _, ok := lookupKey(m, "cache.missing"); ok {
		t.Error("lookupKey(cache.missing) should miss")
	}
	if _, ok := lookupKey(m, "provider.nested"); ok {
		t.Error("lookupKey through a scalar should miss")
	}
}

func TestKnownModels_CoverAllProviders(t *testing.T) {
	seen := make(map[string]bool)
	for _, info := range knownModels {
		seen[info.Provider] = true
		if len(info.Models) == 0 {
			t.Errorf("provider %s has no models", info.Provider)
		}
	}
	for _, p := range []string{"anthropic", "openai", "gemini", "ollama"} {
		if !seen[p] {
			t.Errorf("provider %s missing from knownModels", p)
		}
	}
}
