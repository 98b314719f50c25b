package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/akolanti/portfolio/internal/domain/commonModels"
)

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected commonModels.DocType
	}{
		{"resume.pdf", commonModels.PDF},
		{"CV.DOCX", commonModels.DOCX},
		{"cv.odt", commonModels.DOCX},
		{"notes.txt", commonModels.TXT},
		{"image.png", commonModels.ERR},
	}

	for _, tt := range tests {
		if got := getDocType(tt.path); got != tt.expected {
			t.Errorf("getDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestSplitTextIntoChunks(t *testing.T) {
	text := "This is a long sentence. This is another sentence that will be split. And a third one here."
	chunks := splitTextIntoChunks(text, 40, 10)

	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if strings.HasPrefix(c, " ") {
			t.Errorf("chunk starts with a space: %q", c)
		}
	}
	if got := splitTextIntoChunks("short", 40, 10); len(got) != 1 || got[0] != "short" {
		t.Errorf("short text got %v", got)
	}
}

func TestSplitTextIntoChunks_NoSeparator(t *testing.T) {
	chunks := splitTextIntoChunks(strings.Repeat("x", 25), 10, 2)
	if len(chunks) != 3 || chunks[2] != "xxxxx" {
		t.Errorf("got %v", chunks)
	}
}

func TestSplitTextIntoChunks_KeepsRunesWhole(t *testing.T) {
	noSeparator := strings.Repeat("é", 12)
	for _, c := range splitTextIntoChunks(noSeparator, 5, 2) {
		if !utf8.ValidString(c) || c == "" {
			t.Errorf("invalid chunk %q", c)
		}
	}
	if got := strings.Join(splitTextIntoChunks(noSeparator, 5, 2), ""); got != noSeparator {
		t.Errorf("chunks lost text: %q", got)
	}

	text := strings.Repeat("Résumé détaillé ", 10)
	for _, c := range splitTextIntoChunks(text, 40, 7) {
		if !utf8.ValidString(c) {
			t.Errorf("invalid chunk %q", c)
		}
	}
	if tail := overlapTail("ab Résumé", 6); !utf8.ValidString(tail) {
		t.Errorf("invalid overlap %q", tail)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractResume_PlainText(t *testing.T) {
	path := writeFile(t, "resume.txt", "Jane Smith\n\n  Senior Engineer.\tGo,   AWS, Kubernetes.\n")

	docs, err := ExtractResume(path)
	if err != nil {
		t.Fatalf("ExtractResume failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(docs))
	}
	d := docs[0]
	if d.Id != "resume" || d.Source != "Résumé" || d.URL != "/resume" {
		t.Errorf("metadata mismatch: %+v", d)
	}
	if d.Text != "Jane Smith Senior Engineer. Go, AWS, Kubernetes." {
		t.Errorf("text got %q", d.Text)
	}
}

func TestExtractResume_LongTextSplitsIntoSections(t *testing.T) {
	path := writeFile(t, "resume.txt", strings.Repeat("Built event driven services on AWS. ", 80))

	docs, err := ExtractResume(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) < 2 {
		t.Fatalf("Expected several sections, got %d", len(docs))
	}
	if docs[0].Id != "resume" || docs[1].Id != "resume-2" {
		t.Errorf("ids got %s, %s", docs[0].Id, docs[1].Id)
	}
}

func TestExtractResume_Errors(t *testing.T) {
	if _, err := ExtractResume(writeFile(t, "photo.png", "x")); err == nil {
		t.Error("Expected unsupported format error")
	}
	if _, err := ExtractResume(writeFile(t, "empty.txt", "  \n\t ")); err == nil {
		t.Error("Expected empty resume error")
	}
	if _, err := ExtractResume(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("Expected open error for missing pdf")
	}
}
