package variant

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind distinguishes image variants from code variants.
type Kind string

const (
	KindImage Kind = "image"
	KindCode  Kind = "code"
)

// Origin records where a variant came from.
type Origin string

const (
	OriginUpload       Origin = "upload"
	OriginLocalFolder  Origin = "local-folder"
	OriginGitHubBranch Origin = "github-branch"
	OriginGitHubPRBase Origin = "github-pr-base"
	OriginGitHubPRHead Origin = "github-pr-head"
)

// CodeFile is one source file within a code variant.
type CodeFile struct {
	RelativePath string `json:"relativePath"`
	Content      string `json:"content"`
	Extension    string `json:"extension"`
}

// Meta carries optional repository coordinates for GitHub-derived variants.
type Meta struct {
	Owner      string `json:"owner,omitempty"`
	Repo       string `json:"repo,omitempty"`
	Branch     string `json:"branch,omitempty"`
	FolderName string `json:"folderName,omitempty"`
	PRNumber   int    `json:"prNumber,omitempty"`
	PRTitle    string `json:"prTitle,omitempty"`
}

// Variant is one candidate UI design. For KindImage, Image holds the
// base64-encoded bytes and MediaType the detected image type. For
// KindCode, Files holds the ordered source files. Variants are never
// mutated after creation.
type Variant struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Kind        Kind       `json:"kind"`
	Origin      Origin     `json:"origin"`
	Image       string     `json:"image,omitempty"`
	MediaType   string     `json:"mediaType,omitempty"`
	Files       []CodeFile `json:"files,omitempty"`
	Meta        Meta       `json:"meta"`
}

// NewID returns a process-unique variant identifier.
func NewID() string {
	return uuid.New().String()
}

// Collection is the append-only session holder for variants. Producers
// return Variant values; only the collection assigns display names and
// appends. It is not safe for concurrent use; fetch pipelines resolve
// fully before appending.
type Collection struct {
	variants []Variant
}

// Add assigns the next display name from the current count and appends.
// The stored variant is returned with its name filled in.
func (c *Collection) Add(v Variant) Variant {
	v.DisplayName = DisplayName(len(c.variants))
	c.variants = append(c.variants, v)
	return v
}

// Remove deletes the variant with the given ID. Remaining variants keep
// their display names. Reports whether a variant was removed.
func (c *Collection) Remove(id string) bool {
	for i, v := range c.variants {
		if v.ID == id {
			c.variants = append(c.variants[:i], c.variants[i+1:]...)
			return true
		}
	}
	return false
}

// Reset clears the collection.
func (c *Collection) Reset() {
	c.variants = nil
}

// Len returns the number of variants currently held.
func (c *Collection) Len() int {
	return len(c.variants)
}

// All returns the variants in insertion order. The returned slice is a
// copy; the collection remains append-only.
func (c *Collection) All() []Variant {
	out := make([]Variant, len(c.variants))
	copy(out, c.variants)
	return out
}

// DisplayName returns the sequential name for the variant at position n:
// "Variant A" through "Variant Z", then "Variant AA" onward.
func DisplayName(n int) string {
	letters := ""
	for n >= 0 {
		letters = string(rune('A'+n%26)) + letters
		n = n/26 - 1
	}
	return fmt.Sprintf("Variant %s", letters)
}
