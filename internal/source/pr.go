package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ablens/ablens/internal/github"
	"github.com/ablens/ablens/internal/variant"
)

// ExpandPullRequest resolves a pull request and produces one code variant
// per side: base first, then head. Sides are not subgrouped by folder;
// the whole side is one candidate design. A side that fails or yields no
// files produces no variant; variants from the surviving side are still
// returned alongside the other side's error, so callers should consume
// the variants even when err is non-nil.
//
// When both sides resolve but neither contains a qualifying file, the
// error is NoMatchingFilesError naming the pull request.
func ExpandPullRequest(ctx context.Context, client *github.Client, ref github.PullRequestRef, basePath string, caps Caps) ([]variant.Variant, error) {
	pr, err := client.GetPullRequest(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, err
	}

	var out []variant.Variant
	var sideErr error
	total := 0
	emptySides := 0

	sides := []struct {
		branch string
		origin variant.Origin
	}{
		{pr.Base.Ref, variant.OriginGitHubPRBase},
		{pr.Head.Ref, variant.OriginGitHubPRHead},
	}

	for _, side := range sides {
		branchRef := github.RepoRef{Owner: ref.Owner, Repo: ref.Repo, Branch: side.branch, Path: basePath}

		files, err := FetchTree(ctx, client, branchRef)
		if err != nil {
			var nmf *NoMatchingFilesError
			if errors.As(err, &nmf) {
				emptySides++
				continue
			}
			sideErr = fmt.Errorf("%s branch %q: %w", sideLabel(side.origin), side.branch, err)
			continue
		}

		remaining := caps.MaxTotalFiles - total
		if remaining <= 0 {
			emptySides++
			continue
		}
		limit := caps.MaxFilesPerVariant
		if limit > remaining {
			limit = remaining
		}
		if len(files) > limit {
			files = files[:limit]
		}
		total += len(files)

		fetched := fetchContents(ctx, client, branchRef, files, caps.concurrency())
		if len(fetched) < len(files) {
			fmt.Fprintf(os.Stderr, "Warning: PR #%d %s branch: fetched %d of %d files\n",
				ref.Number, sideLabel(side.origin), len(fetched), len(files))
		}
		if len(fetched) == 0 {
			emptySides++
			continue
		}
		out = append(out, variant.Variant{
			ID:     variant.NewID(),
			Kind:   variant.KindCode,
			Origin: side.origin,
			Files:  fetched,
			Meta: variant.Meta{
				Owner:    ref.Owner,
				Repo:     ref.Repo,
				Branch:   side.branch,
				PRNumber: pr.Number,
				PRTitle:  pr.Title,
			},
		})
	}

	if len(out) == 0 && sideErr != nil {
		return nil, sideErr
	}
	if len(out) == 0 && emptySides == len(sides) {
		return nil, &NoMatchingFilesError{
			Source: fmt.Sprintf("pull request #%d in %s/%s", ref.Number, ref.Owner, ref.Repo),
		}
	}
	return out, sideErr
}

func sideLabel(o variant.Origin) string {
	if o == variant.OriginGitHubPRBase {
		return "base"
	}
	return "head"
}
