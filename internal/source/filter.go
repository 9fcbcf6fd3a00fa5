package source

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/ablens/ablens/internal/github"
)

// Extensions recognized as UI source files.
var uiExtensions = []string{
	".html", ".htm", ".jsx", ".tsx", ".vue", ".svelte", ".astro",
	".css", ".scss", ".sass",
}

// Path segments excluded regardless of extension.
var excludedSegments = []string{"node_modules", ".git", "dist", "build"}

// NoMatchingFilesError reports a successful fetch that yielded zero
// qualifying files. It is explainable to the user rather than a hard
// failure.
type NoMatchingFilesError struct {
	Source string
}

func (e *NoMatchingFilesError) Error() string {
	return fmt.Sprintf("no UI source files found in %s (looked for %s, skipping %s)",
		e.Source, strings.Join(uiExtensions, " "), strings.Join(excludedSegments, ", "))
}

// IsUISourceFile reports whether a path carries one of the recognized UI
// source extensions.
func IsUISourceFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range uiExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// isExcluded reports whether any segment of the path is an excluded
// directory name.
func isExcluded(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		for _, ex := range excludedSegments {
			if seg == ex {
				return true
			}
		}
	}
	return false
}

// FilterTree reduces a recursive tree listing to regular files with a
// recognized UI extension, under basePath when one is given, and outside
// the excluded directories. Order is preserved. Returns
// NoMatchingFilesError when nothing qualifies.
func FilterTree(entries []github.TreeEntry, basePath, describe string) ([]github.TreeEntry, error) {
	prefix := strings.Trim(basePath, "/")

	var out []github.TreeEntry
	for _, e := range entries {
		if e.Type != "blob" {
			continue
		}
		if !IsUISourceFile(e.Path) {
			continue
		}
		if isExcluded(e.Path) {
			continue
		}
		if prefix != "" && e.Path != prefix && !strings.HasPrefix(e.Path, prefix+"/") {
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, &NoMatchingFilesError{Source: describe}
	}
	return out, nil
}

// FetchTree lists a branch and filters it in one step.
func FetchTree(ctx context.Context, client *github.Client, ref github.RepoRef) ([]github.TreeEntry, error) {
	entries, err := client.GetTree(ctx, ref.Owner, ref.Repo, ref.Branch)
	if err != nil {
		return nil, err
	}
	where := fmt.Sprintf("%s/%s@%s", ref.Owner, ref.Repo, ref.Branch)
	if ref.Path != "" {
		where += "/" + ref.Path
	}
	return FilterTree(entries, ref.Path, where)
}
