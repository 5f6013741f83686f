package utils

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFrontmatter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMeta ArticleMetadata
		wantBody string
		wantErr  bool
	}{
		{
			name:     "with frontmatter",
			input:    "---\ntitle: Harbour reopens\nsection: Local\nslug: harbour\n---\n\nFirst paragraph\n",
			wantMeta: ArticleMetadata{Title: "Harbour reopens", Section: "Local", Slug: "harbour"},
			wantBody: "First paragraph\n",
		},
		{
			name:     "crlf frontmatter",
			input:    "---\r\ntitle: T\r\n---\r\nBody",
			wantMeta: ArticleMetadata{Title: "T"},
			wantBody: "Body",
		},
		{
			name:     "no frontmatter",
			input:    "Just a body\n",
			wantBody: "Just a body\n",
		},
		{
			name:    "unclosed",
			input:   "---\ntitle: T\nBody",
			wantErr: true,
		},
		{
			name:    "bad yaml",
			input:   "---\ntitle: [unterminated\n---\nBody",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, body, err := ParseFrontmatter([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if *meta != tt.wantMeta {
				t.Errorf("meta = %+v, want %+v", *meta, tt.wantMeta)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Harbour Reopens After Storm", 0, "harbour-reopens-after-storm"},
		{"  Café société: 2024 review!  ", 0, "cafe-societe-2024-review"},
		{"---", 0, ""},
		{"Long title words", 10, "long-title"},
		{"ab cd", 3, "ab"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("Slugify(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func isText(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".md" || ext == ".txt"
}

func TestArchiveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.md":         "Alpha",
		"nested/b.txt": "Beta",
		"image.png":    "binary",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := CreateZipFromDirectory(dir, isText)
	if err != nil {
		t.Fatalf("CreateZipFromDirectory: %v", err)
	}

	entries, skipped, err := ReadArticleArchive(buf.Bytes(), 1024, isText)
	if err != nil {
		t.Fatalf("ReadArticleArchive: %v", err)
	}
	if len(entries) != 2 || len(skipped) != 0 {
		t.Fatalf("entries = %d, skipped = %v", len(entries), skipped)
	}
	got := map[string]string{}
	for _, e := range entries {
		got[e.Name] = string(e.Content)
	}
	if got["a.md"] != "Alpha" || got["nested/b.txt"] != "Beta" {
		t.Errorf("entries = %v", got)
	}
}

func TestReadArticleArchive_SkipsAndLimits(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"keep.md":    "ok",
		"notes.pdf":  "x",
		".hidden.md": "x",
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(content))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	entries, skipped, err := ReadArticleArchive(buf.Bytes(), 10, isText)
	if err != nil {
		t.Fatalf("ReadArticleArchive: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "keep.md" || len(skipped) != 2 {
		t.Errorf("entries = %v, skipped = %v", entries, skipped)
	}

	if _, _, err := ReadArticleArchive(buf.Bytes(), 1, isText); err == nil || !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("expected size error, got %v", err)
	}

	if _, _, err := ReadArticleArchive([]byte("not a zip"), 10, isText); err == nil {
		t.Error("expected error for invalid archive")
	}
}
