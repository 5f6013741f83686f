package utils

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveEntry is one article file read from a zip archive
type ArchiveEntry struct {
	Name    string
	Content []byte
}

// ReadArticleArchive returns the files in a zip archive that accept
// matches, in archive order. Other files and hidden files are reported in
// skipped; directories are ignored. Each entry is read through an
// io.LimitReader capped at maxFileBytes.
func ReadArticleArchive(data []byte, maxFileBytes int64, accept func(name string) bool) (entries []ArchiveEntry, skipped []string, err error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, nil, fmt.Errorf("open zip archive: %w", err)
	}

	for _, file := range zr.File {
		if file.FileInfo().IsDir() {
			continue
		}
		if !accept(file.Name) || strings.HasPrefix(filepath.Base(file.Name), ".") {
			skipped = append(skipped, file.Name)
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", file.Name, err)
		}
		content, err := io.ReadAll(io.LimitReader(rc, maxFileBytes+1))
		rc.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", file.Name, err)
		}
		if int64(len(content)) > maxFileBytes {
			return nil, nil, fmt.Errorf("%s exceeds %d bytes", file.Name, maxFileBytes)
		}
		entries = append(entries, ArchiveEntry{Name: file.Name, Content: content})
	}
	return entries, skipped, nil
}

// CreateZipFromDirectory creates a zip archive of the files in a directory
// tree that accept matches. Used by the seeder to import a directory.
func CreateZipFromDirectory(dirPath string, accept func(name string) bool) (*bytes.Buffer, error) {
	zipBuffer := new(bytes.Buffer)
	zipWriter := zip.NewWriter(zipBuffer)

	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !accept(path) {
			return nil
		}

		relPath, err := filepath.Rel(dirPath, path)
		if err != nil {
			return err
		}
		w, err := zipWriter.Create(filepath.ToSlash(relPath))
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = w.Write(content)
		return err
	})
	if err != nil {
		zipWriter.Close()
		return nil, err
	}

	if err := zipWriter.Close(); err != nil {
		return nil, err
	}
	return zipBuffer, nil
}
