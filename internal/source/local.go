package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ablens/ablens/internal/variant"
)

// FromLocalFolder scans a directory for UI source files and produces one
// code variant with origin "local-folder". The same extension and
// excluded-directory rules as GitHub fetches apply, and the per-variant
// file cap bounds how much is read.
func FromLocalFolder(dir string, caps Caps) (variant.Variant, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return variant.Variant{}, fmt.Errorf("reading folder %s: %w", dir, err)
	}
	if !info.IsDir() {
		return variant.Variant{}, fmt.Errorf("%s is not a directory", dir)
	}

	var paths []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, ex := range excludedSegments {
				if d.Name() == ex {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if IsUISourceFile(p) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return variant.Variant{}, fmt.Errorf("scanning folder %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return variant.Variant{}, &NoMatchingFilesError{Source: dir}
	}
	sort.Strings(paths)

	if caps.MaxFilesPerVariant > 0 && len(paths) > caps.MaxFilesPerVariant {
		paths = paths[:caps.MaxFilesPerVariant]
	}

	var files []variant.CodeFile
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			// Same policy as remote fetches: a failed read drops the file.
			continue
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			rel = p
		}
		files = append(files, variant.CodeFile{
			RelativePath: filepath.ToSlash(rel),
			Content:      string(data),
			Extension:    strings.TrimPrefix(filepath.Ext(p), "."),
		})
	}
	if len(files) == 0 {
		return variant.Variant{}, &NoMatchingFilesError{Source: dir}
	}

	return variant.Variant{
		ID:     variant.NewID(),
		Kind:   variant.KindCode,
		Origin: variant.OriginLocalFolder,
		Files:  files,
		Meta:   variant.Meta{FolderName: filepath.Base(dir)},
	}, nil
}
