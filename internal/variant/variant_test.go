package variant

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "Variant A"},
		{1, "Variant B"},
		{2, "Variant C"},
		{25, "Variant Z"},
		{26, "Variant AA"},
		{27, "Variant AB"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.n); got != tt.want {
			t.Errorf("DisplayName(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCollectionAdd_NamesByCount(t *testing.T) {
	var c Collection

	a := c.Add(Variant{ID: "1", Kind: KindImage, Origin: OriginUpload})
	b := c.Add(Variant{ID: "2", Kind: KindCode, Origin: OriginGitHubBranch})
	third := c.Add(Variant{ID: "3", Kind: KindCode, Origin: OriginLocalFolder})

	if a.DisplayName != "Variant A" || b.DisplayName != "Variant B" || third.DisplayName != "Variant C" {
		t.Errorf("names = %q %q %q", a.DisplayName, b.DisplayName, third.DisplayName)
	}
}

func TestCollectionRemove_NoRenumber(t *testing.T) {
	var c Collection
	c.Add(Variant{ID: "1"})
	c.Add(Variant{ID: "2"})
	c.Add(Variant{ID: "3"})

	if !c.Remove("2") {
		t.Fatal("Remove(2) = false, want true")
	}
	if c.Remove("2") {
		t.Error("second Remove(2) = true, want false")
	}

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("Len = %d, want 2", len(all))
	}
	// Survivors keep their original letters.
	if all[0].DisplayName != "Variant A" || all[1].DisplayName != "Variant C" {
		t.Errorf("names after remove = %q %q, want A and C", all[0].DisplayName, all[1].DisplayName)
	}

	// The next add continues from the current count, not the next free letter
	// after the highest: two present means the new one is "Variant C".
	next := c.Add(Variant{ID: "4"})
	if next.DisplayName != "Variant C" {
		t.Errorf("next name = %q, want %q", next.DisplayName, "Variant C")
	}
}

func TestCollectionReset(t *testing.T) {
	var c Collection
	c.Add(Variant{ID: "1"})
	c.Reset()
	if c.Len() != 0 {
		t.Errorf("Len after reset = %d, want 0", c.Len())
	}
	if got := c.Add(Variant{ID: "2"}).DisplayName; got != "Variant A" {
		t.Errorf("name after reset = %q, want %q", got, "Variant A")
	}
}

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}

func TestDetectMediaType(t *testing.T) {
	png := base64.StdEncoding.EncodeToString(pngBytes)
	if got := DetectMediaType(png); got != "image/png" {
		t.Errorf("png = %q, want image/png", got)
	}
	jpeg := base64.StdEncoding.EncodeToString(jpegBytes)
	if got := DetectMediaType(jpeg); got != "image/jpeg" {
		t.Errorf("jpeg = %q, want image/jpeg", got)
	}
	if got := DetectMediaType("AAAA"); got != "image/jpeg" {
		t.Errorf("unknown = %q, want image/jpeg fallback", got)
	}
}

func TestFromImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, pngBytes, 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := FromImageFile(path)
	if err != nil {
		t.Fatalf("FromImageFile error: %v", err)
	}
	if v.Kind != KindImage || v.Origin != OriginUpload {
		t.Errorf("kind/origin = %s/%s", v.Kind, v.Origin)
	}
	if v.MediaType != "image/png" {
		t.Errorf("MediaType = %q, want image/png", v.MediaType)
	}
	if v.ID == "" {
		t.Error("ID is empty")
	}
	if v.Image != base64.StdEncoding.EncodeToString(pngBytes) {
		t.Error("Image does not round-trip the file bytes")
	}
}

func TestFromImageFile_Missing(t *testing.T) {
	if _, err := FromImageFile(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
