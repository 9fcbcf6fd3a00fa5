package source

import (
	"errors"
	"testing"

	"github.com/ablens/ablens/internal/github"
)

func blob(path string) github.TreeEntry {
	return github.TreeEntry{Path: path, Type: "blob", SHA: "x", Size: 1}
}

func TestFilterTree(t *testing.T) {
	entries := []github.TreeEntry{
		blob("index.html"),
		blob("src/App.tsx"),
		blob("src/styles/main.scss"),
		{Path: "src", Type: "tree"},
		blob("src/util.ts"),                   // not a UI extension
		blob("node_modules/pkg/button.jsx"),   // excluded segment
		blob("dist/bundle.css"),               // excluded segment
		blob("docs/.git/hooks/pre-commit.sh"), // excluded segment
		blob("README.md"),
	}

	got, err := FilterTree(entries, "", "acme/site@main")
	if err != nil {
		t.Fatalf("FilterTree error: %v", err)
	}
	want := []string{"index.html", "src/App.tsx", "src/styles/main.scss"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Path != w {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Path, w)
		}
	}
}

func TestFilterTree_ExcludesNodeModulesAlways(t *testing.T) {
	entries := []github.TreeEntry{
		blob("node_modules/ui/card.vue"),
		blob("a/node_modules/deep/page.html"),
	}
	_, err := FilterTree(entries, "", "acme/site@main")
	var nmf *NoMatchingFilesError
	if !errors.As(err, &nmf) {
		t.Fatalf("error = %v, want NoMatchingFilesError", err)
	}
}

func TestFilterTree_BasePath(t *testing.T) {
	entries := []github.TreeEntry{
		blob("variants/a/index.html"),
		blob("variants/b/index.html"),
		blob("other/index.html"),
		blob("variantsfake/index.html"), // prefix must match a whole segment
	}
	got, err := FilterTree(entries, "variants", "acme/site@main/variants")
	if err != nil {
		t.Fatalf("FilterTree error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(got), got)
	}
}

func TestFilterTree_Empty(t *testing.T) {
	_, err := FilterTree([]github.TreeEntry{blob("main.go")}, "", "acme/site@main")
	var nmf *NoMatchingFilesError
	if !errors.As(err, &nmf) {
		t.Fatalf("error = %v, want NoMatchingFilesError", err)
	}
	if nmf.Source != "acme/site@main" {
		t.Errorf("Source = %q", nmf.Source)
	}
}

func TestIsUISourceFile(t *testing.T) {
	yes := []string{"a.html", "b.HTM", "c.jsx", "d.tsx", "e.vue", "f.svelte", "g.astro", "h.css", "i.scss", "j.sass"}
	for _, p := range yes {
		if !IsUISourceFile(p) {
			t.Errorf("IsUISourceFile(%q) = false, want true", p)
		}
	}
	no := []string{"a.ts", "b.js", "c.go", "d.md", "e", "f.json"}
	for _, p := range no {
		if IsUISourceFile(p) {
			t.Errorf("IsUISourceFile(%q) = true, want false", p)
		}
	}
}
