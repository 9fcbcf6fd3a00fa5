package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultAPIURL = "https://api.github.com"

// Client provides read access to the GitHub REST API. The token is
// optional; unauthenticated calls are allowed (rate limits permitting).
type Client struct {
	token   string
	apiURL  string
	httpCli *http.Client
}

// NewClient creates a GitHub client. GITHUB_TOKEN is attached when set,
// and GITHUB_API_URL overrides the endpoint (useful for GitHub Enterprise
// and tests).
func NewClient() *Client {
	apiURL := os.Getenv("GITHUB_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	return &Client{
		token:   os.Getenv("GITHUB_TOKEN"),
		apiURL:  strings.TrimRight(apiURL, "/"),
		httpCli: &http.Client{Timeout: 60 * time.Second},
	}
}

// BranchNotFoundError indicates the branch (or the repository itself)
// does not exist.
type BranchNotFoundError struct {
	Owner  string
	Repo   string
	Branch string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch %q not found in %s/%s (check the repository and branch name)", e.Branch, e.Owner, e.Repo)
}

// PullRequestNotFoundError indicates the pull request does not exist.
type PullRequestNotFoundError struct {
	Owner  string
	Repo   string
	Number int
}

func (e *PullRequestNotFoundError) Error() string {
	return fmt.Sprintf("pull request #%d not found in %s/%s", e.Number, e.Owner, e.Repo)
}

// APIError is any other non-2xx response from the GitHub API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API error (status %d): %s", e.Status, e.Body)
}

// TreeEntry is one entry in a recursive git tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	Size int    `json:"size"`
}

type treeResponse struct {
	SHA       string      `json:"sha"`
	Tree      []TreeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

// GetTree fetches the complete recursive file tree for a branch. A 404 is
// reported as BranchNotFoundError so the CLI can distinguish a bad branch
// from a generic request failure.
func (c *Client) GetTree(ctx context.Context, owner, repo, branch string) ([]TreeEntry, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", c.apiURL, owner, repo, url.PathEscape(branch))

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching tree: %w", err)
	}
	if status == http.StatusNotFound {
		return nil, &BranchNotFoundError{Owner: owner, Repo: repo, Branch: branch}
	}
	if status != http.StatusOK {
		return nil, &APIError{Status: status, Body: string(body)}
	}

	var tr treeResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("parsing tree response: %w", err)
	}
	return tr.Tree, nil
}

type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// GetFileContent fetches and decodes the content of a single file at the
// given ref.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s", c.apiURL, owner, repo, escapePath(path), url.QueryEscape(ref))

	body, status, err := c.get(ctx, u)
	if err != nil {
		return "", fmt.Errorf("fetching content of %s: %w", path, err)
	}
	if status != http.StatusOK {
		return "", &APIError{Status: status, Body: string(body)}
	}

	var cr contentsResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("parsing contents response for %s: %w", path, err)
	}
	if cr.Encoding != "base64" {
		return "", fmt.Errorf("unexpected encoding %q for %s", cr.Encoding, path)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(cr.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decoding content of %s: %w", path, err)
	}
	return string(decoded), nil
}

// PullRequest holds the pull-request details the fetch pipeline needs.
type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Base   PRRef  `json:"base"`
	Head   PRRef  `json:"head"`
}

// PRRef is one side of a pull request.
type PRRef struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

// GetPullRequest fetches pull-request metadata, including the base and
// head branch names.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.apiURL, owner, repo, number)

	body, status, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request: %w", err)
	}
	if status == http.StatusNotFound {
		return nil, &PullRequestNotFoundError{Owner: owner, Repo: repo, Number: number}
	}
	if status != http.StatusOK {
		return nil, &APIError{Status: status, Body: string(body)}
	}

	var pr PullRequest
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("parsing pull request response: %w", err)
	}
	return &pr, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// escapePath escapes each path segment without escaping the separators.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
