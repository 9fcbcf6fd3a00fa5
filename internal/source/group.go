package source

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/ablens/ablens/internal/github"
	"github.com/ablens/ablens/internal/variant"
)

// rootGroup collects files sitting directly at the base path.
const rootGroup = "root"

// Caps bound how much content a fetch may pull.
type Caps struct {
	MaxFilesPerVariant int
	MaxTotalFiles      int
	FetchConcurrency   int
}

// DefaultCaps mirror the config defaults.
func DefaultCaps() Caps {
	return Caps{MaxFilesPerVariant: 10, MaxTotalFiles: 30, FetchConcurrency: 4}
}

func (c Caps) concurrency() int {
	if c.FetchConcurrency > 0 {
		return c.FetchConcurrency
	}
	return 4
}

// GroupVariants partitions filtered tree entries into per-folder groups
// and fetches each group's contents, producing one code variant per group
// that yields at least one file.
//
// The group key is the first path segment after the base path; files with
// no remaining segment fall into the "root" group. Groups are processed
// in first-appearance order and sequentially: a group's fetches are fully
// joined before the next group starts, so the running total-file cap is
// exact. Groups reached after the total cap is spent contribute nothing.
func GroupVariants(ctx context.Context, client *github.Client, ref github.RepoRef, files []github.TreeEntry, caps Caps) []variant.Variant {
	prefix := strings.Trim(ref.Path, "/")

	groups := make(map[string][]github.TreeEntry)
	var order []string
	for _, f := range files {
		key := groupKey(f.Path, prefix)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], f)
	}

	var out []variant.Variant
	total := 0
	for _, key := range order {
		remaining := caps.MaxTotalFiles - total
		if remaining <= 0 {
			break
		}
		limit := caps.MaxFilesPerVariant
		if limit > remaining {
			limit = remaining
		}
		batch := groups[key]
		if len(batch) > limit {
			batch = batch[:limit]
		}
		total += len(batch)

		fetched := fetchContents(ctx, client, ref, batch, caps.concurrency())
		if len(fetched) < len(batch) {
			fmt.Fprintf(os.Stderr, "Warning: %s/%s %s: fetched %d of %d files\n",
				ref.Owner, ref.Repo, key, len(fetched), len(batch))
		}
		if len(fetched) == 0 {
			continue
		}
		out = append(out, variant.Variant{
			ID:     variant.NewID(),
			Kind:   variant.KindCode,
			Origin: variant.OriginGitHubBranch,
			Files:  fetched,
			Meta: variant.Meta{
				Owner:      ref.Owner,
				Repo:       ref.Repo,
				Branch:     ref.Branch,
				FolderName: key,
			},
		})
	}
	return out
}

// groupKey strips the base path prefix and returns the first remaining
// path segment, or rootGroup when the file sits directly at the base.
func groupKey(filePath, prefix string) string {
	rel := filePath
	if prefix != "" {
		rel = strings.TrimPrefix(strings.TrimPrefix(filePath, prefix), "/")
	}
	if i := strings.Index(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return rootGroup
}

// fetchContents retrieves file contents with bounded concurrency and
// returns them in the original listing order. A failed fetch drops that
// file only.
func fetchContents(ctx context.Context, client *github.Client, ref github.RepoRef, batch []github.TreeEntry, concurrency int) []variant.CodeFile {
	results := make([]*variant.CodeFile, len(batch))

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)
	for i, entry := range batch {
		wg.Add(1)
		go func(i int, entry github.TreeEntry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			content, err := client.GetFileContent(ctx, ref.Owner, ref.Repo, entry.Path, ref.Branch)
			if err != nil {
				return
			}
			results[i] = &variant.CodeFile{
				RelativePath: relativeTo(entry.Path, ref.Path),
				Content:      content,
				Extension:    strings.TrimPrefix(path.Ext(entry.Path), "."),
			}
		}(i, entry)
	}
	wg.Wait()

	var files []variant.CodeFile
	for _, r := range results {
		if r != nil {
			files = append(files, *r)
		}
	}
	return files
}

func relativeTo(filePath, basePath string) string {
	prefix := strings.Trim(basePath, "/")
	if prefix == "" {
		return filePath
	}
	return strings.TrimPrefix(strings.TrimPrefix(filePath, prefix), "/")
}
