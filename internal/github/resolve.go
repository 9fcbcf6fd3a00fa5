package github

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RepoRef identifies a branch (and optional path prefix) within a repository.
type RepoRef struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
}

// PullRequestRef identifies a pull request within a repository.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// SourceRef is the result of parsing a user-supplied GitHub URL. Exactly one
// of Repo or PullRequest is non-nil.
type SourceRef struct {
	Repo        *RepoRef
	PullRequest *PullRequestRef
}

// ErrInvalidURL is returned when a URL matches none of the supported forms.
type ErrInvalidURL struct {
	URL string
}

func (e *ErrInvalidURL) Error() string {
	return fmt.Sprintf("unrecognized GitHub URL: %s", e.URL)
}

var (
	pullURLRe   = regexp.MustCompile(`github\.com/([^/\s]+)/([^/\s]+)/pull/(\d+)`)
	branchURLRe = regexp.MustCompile(`github\.com/([^/\s]+)/([^/\s]+)/tree/([^/\s]+)(?:/(.*?))?/?$`)
	repoURLRe   = regexp.MustCompile(`github\.com/([^/\s]+)/([^/\s]+?)/?$`)
)

// ParseSourceURL parses a GitHub URL into a SourceRef. Supported forms:
//
//	https://github.com/{owner}/{repo}
//	https://github.com/{owner}/{repo}/tree/{branch}
//	https://github.com/{owner}/{repo}/tree/{branch}/{path...}
//	https://github.com/{owner}/{repo}/pull/{number}
//
// The pull-request form is tried first, then the progressively looser
// repository forms. A .git suffix on the repo name is stripped and the
// branch defaults to "main" when omitted. No network access occurs here.
func ParseSourceURL(raw string) (SourceRef, error) {
	url := strings.TrimSpace(raw)

	if m := pullURLRe.FindStringSubmatch(url); m != nil {
		number, err := strconv.Atoi(m[3])
		if err != nil {
			return SourceRef{}, &ErrInvalidURL{URL: raw}
		}
		return SourceRef{PullRequest: &PullRequestRef{
			Owner:  m[1],
			Repo:   strings.TrimSuffix(m[2], ".git"),
			Number: number,
		}}, nil
	}

	if m := branchURLRe.FindStringSubmatch(url); m != nil {
		return SourceRef{Repo: &RepoRef{
			Owner:  m[1],
			Repo:   strings.TrimSuffix(m[2], ".git"),
			Branch: m[3],
			Path:   strings.Trim(m[4], "/"),
		}}, nil
	}

	if m := repoURLRe.FindStringSubmatch(url); m != nil {
		return SourceRef{Repo: &RepoRef{
			Owner:  m[1],
			Repo:   strings.TrimSuffix(m[2], ".git"),
			Branch: "main",
		}}, nil
	}

	return SourceRef{}, &ErrInvalidURL{URL: raw}
}
