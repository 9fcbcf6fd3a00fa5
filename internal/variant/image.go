package variant

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Base64 markers for the supported image formats. PNG data always encodes
// to "iVBOR" (the \x89PNG header); JPEG to "/9j/".
const (
	pngMarker  = "iVBOR"
	jpegMarker = "/9j/"
)

// DetectMediaType inspects the leading characters of base64-encoded image
// data and returns the media type. Unrecognized data is treated as JPEG.
func DetectMediaType(encoded string) string {
	if strings.HasPrefix(encoded, pngMarker) {
		return "image/png"
	}
	if strings.HasPrefix(encoded, jpegMarker) {
		return "image/jpeg"
	}
	return "image/jpeg"
}

// FromImageFile reads an image file and produces an image variant with
// origin "upload". The display name is assigned later by the collection.
func FromImageFile(path string) (Variant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Variant{}, fmt.Errorf("reading image %s: %w", path, err)
	}
	if len(data) == 0 {
		return Variant{}, fmt.Errorf("image %s is empty", path)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return Variant{
		ID:        NewID(),
		Kind:      KindImage,
		Origin:    OriginUpload,
		Image:     encoded,
		MediaType: DetectMediaType(encoded),
		Meta:      Meta{FolderName: filepath.Base(path)},
	}, nil
}
