package github

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(serverURL string) *Client {
	return &Client{
		apiURL:  serverURL,
		httpCli: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGetTree(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/site/git/trees/main" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("recursive") != "1" {
			t.Errorf("recursive = %q, want 1", r.URL.Query().Get("recursive"))
		}
		w.Write([]byte(`{"sha":"abc","tree":[
			{"path":"a/index.html","type":"blob","sha":"s1","size":10},
			{"path":"a","type":"tree","sha":"s2","size":0}
		],"truncated":false}`))
	}))
	defer server.Close()

	entries, err := testClient(server.URL).GetTree(context.Background(), "acme", "site", "main")
	if err != nil {
		t.Fatalf("GetTree error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Path != "a/index.html" || entries[0].Type != "blob" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
}

func TestGetTree_TokenHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer tok")
		}
		w.Write([]byte(`{"tree":[]}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	c.token = "tok"
	if _, err := c.GetTree(context.Background(), "acme", "site", "main"); err != nil {
		t.Fatalf("GetTree error: %v", err)
	}
}

func TestGetTree_BranchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetTree(context.Background(), "acme", "site", "nope")
	var notFound *BranchNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want BranchNotFoundError", err)
	}
	if notFound.Branch != "nope" {
		t.Errorf("Branch = %q, want %q", notFound.Branch, "nope")
	}
}

func TestGetTree_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(403)
		w.Write([]byte(`{"message":"rate limit exceeded"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetTree(context.Background(), "acme", "site", "main")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.Status != 403 {
		t.Errorf("Status = %d, want 403", apiErr.Status)
	}
}

func TestGetFileContent(t *testing.T) {
	content := "<html><body>hello</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/site/contents/a/index.html" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("ref") != "dev" {
			t.Errorf("ref = %q, want dev", r.URL.Query().Get("ref"))
		}
		// GitHub wraps base64 content across lines
		enc := base64.StdEncoding.EncodeToString([]byte(content))
		w.Write([]byte(`{"content":"` + enc[:12] + `\n` + enc[12:] + `","encoding":"base64"}`))
	}))
	defer server.Close()

	got, err := testClient(server.URL).GetFileContent(context.Background(), "acme", "site", "a/index.html", "dev")
	if err != nil {
		t.Fatalf("GetFileContent error: %v", err)
	}
	if got != content {
		t.Errorf("content = %q, want %q", got, content)
	}
}

func TestGetFileContent_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetFileContent(context.Background(), "acme", "site", "gone.css", "main")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
}

func TestGetPullRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/site/pulls/42" {
			t.Errorf("Path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"number": 42,
			"title": "Redesign landing page",
			"base": {"ref": "main", "sha": "aaa"},
			"head": {"ref": "redesign", "sha": "bbb"}
		}`))
	}))
	defer server.Close()

	pr, err := testClient(server.URL).GetPullRequest(context.Background(), "acme", "site", 42)
	if err != nil {
		t.Fatalf("GetPullRequest error: %v", err)
	}
	if pr.Number != 42 || pr.Title != "Redesign landing page" {
		t.Errorf("pr = %+v", pr)
	}
	if pr.Base.Ref != "main" || pr.Head.Ref != "redesign" {
		t.Errorf("base/head = %q/%q, want main/redesign", pr.Base.Ref, pr.Head.Ref)
	}
}

func TestGetPullRequest_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).GetPullRequest(context.Background(), "acme", "site", 99)
	var notFound *PullRequestNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want PullRequestNotFoundError", err)
	}
	if notFound.Number != 99 {
		t.Errorf("Number = %d, want 99", notFound.Number)
	}
}
