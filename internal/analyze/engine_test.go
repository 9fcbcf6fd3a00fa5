package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ablens/ablens/internal/config"
	"github.com/ablens/ablens/internal/variant"
)

// startModel serves an OpenAI-compatible chat endpoint returning the given
// content, counting calls.
func startModel(t *testing.T, content string, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
			"usage": map[string]any{"total_tokens": 128},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	t.Setenv("OLLAMA_HOST", server.URL)
	return server
}

func twoImageVariants() []variant.Variant {
	return []variant.Variant{
		{ID: "a1", DisplayName: "Variant A", Kind: variant.KindImage, Origin: variant.OriginUpload, MediaType: "image/png", Image: "iVBORw0KGgoAAA"},
		{ID: "b2", DisplayName: "Variant B", Kind: variant.KindImage, Origin: variant.OriginUpload, MediaType: "image/jpeg", Image: "/9j/4AAQSkZJRg"},
	}
}

func engineConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Provider = "ollama"
	cfg.Model = "llava"
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

func TestRun_EndToEnd(t *testing.T) {
	var calls atomic.Int64
	startModel(t, sampleVerdict, &calls)

	variants := twoImageVariants()
	result, err := Run(context.Background(), variants, engineConfig(t), Options{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.Winner.ID != "a1" {
		t.Errorf("Winner.ID = %q, want a1", result.Winner.ID)
	}
	if calls.Load() != 1 {
		t.Errorf("provider calls = %d, want 1", calls.Load())
	}
}

func TestRun_CacheHitSkipsProvider(t *testing.T) {
	var calls atomic.Int64
	startModel(t, sampleVerdict, &calls)
	cfg := engineConfig(t)

	variants := twoImageVariants()
	if _, err := Run(context.Background(), variants, cfg, Options{}); err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	if _, err := Run(context.Background(), variants, cfg, Options{}); err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("provider calls = %d, want 1 (second run should hit cache)", calls.Load())
	}
}

func TestRun_CacheDisabledAlwaysCalls(t *testing.T) {
	var calls atomic.Int64
	startModel(t, sampleVerdict, &calls)
	cfg := engineConfig(t)
	cfg.Cache.Enabled = false

	variants := twoImageVariants()
	for i := 0; i < 2; i++ {
		if _, err := Run(context.Background(), variants, cfg, Options{}); err != nil {
			t.Fatalf("Run %d error: %v", i, err)
		}
	}
	if calls.Load() != 2 {
		t.Errorf("provider calls = %d, want 2", calls.Load())
	}
}

func TestRun_MalformedResponseNotCached(t *testing.T) {
	var calls atomic.Int64
	startModel(t, "I think Variant A wins.", &calls)
	cfg := engineConfig(t)

	variants := twoImageVariants()
	_, err := Run(context.Background(), variants, cfg, Options{})
	var mae *MalformedAnalysisError
	if !errors.As(err, &mae) {
		t.Fatalf("Run error = %v, want MalformedAnalysisError", err)
	}

	// A rerun must go back to the provider, not replay the bad answer.
	_, _ = Run(context.Background(), variants, cfg, Options{})
	if calls.Load() != 2 {
		t.Errorf("provider calls = %d, want 2", calls.Load())
	}
}

func TestRun_TooFewVariants(t *testing.T) {
	_, err := Run(context.Background(), nil, engineConfig(t), Options{})
	var ive *InsufficientVariantsError
	if !errors.As(err, &ive) {
		t.Fatalf("Run error = %v, want InsufficientVariantsError", err)
	}
}

func TestRun_ProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error": "overloaded"}`)
	}))
	t.Cleanup(server.Close)
	t.Setenv("OLLAMA_HOST", server.URL)

	_, err := Run(context.Background(), twoImageVariants(), engineConfig(t), Options{})
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
}
