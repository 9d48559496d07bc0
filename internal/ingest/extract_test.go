package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestExtractFile_PlainText(t *testing.T) {
	path := writeTempFile(t, "evidence.txt", "Clause 1.1 is addressed.\n")

	text, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if text != "Clause 1.1 is addressed.\n" {
		t.Errorf("Expected passthrough, got %q", text)
	}
}

func TestExtractFile_MarkdownTreatedAsText(t *testing.T) {
	path := writeTempFile(t, "policy.md", "# Assessment Policy\n\nSee Standard 1.")

	text, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if !strings.Contains(text, "Standard 1") {
		t.Errorf("Expected markdown content preserved, got %q", text)
	}
}

func TestExtractFile_Latin1Fallback(t *testing.T) {
	// 0xE9 is é in latin-1 but invalid standalone UTF-8
	path := filepath.Join(t.TempDir(), "legacy.txt")
	if err := os.WriteFile(path, []byte{'c', 'a', 'f', 0xE9}, 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	text, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if text != "café" {
		t.Errorf("Expected latin-1 reinterpretation to yield café, got %q", text)
	}
}

func TestExtractFile_HTML(t *testing.T) {
	page := `<html><head>
<title>Policy</title>
<style>body { color: red; }</style>
<script>alert("hi")</script>
</head><body>
<h1>Assessment Policy</h1>
<p>Compliance with Clause 1.8.1 is mandatory.</p>
<noscript>enable js</noscript>
</body></html>`
	path := writeTempFile(t, "policy.html", page)

	text, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if !strings.Contains(text, "Clause 1.8.1 is mandatory.") {
		t.Errorf("Expected visible body text, got %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color: red") || strings.Contains(text, "enable js") {
		t.Errorf("Expected script/style/noscript content stripped, got %q", text)
	}
}

func TestExtractFile_UnknownFormatPlaceholder(t *testing.T) {
	path := writeTempFile(t, "scan.pdf", "%PDF-1.4 binary stuff")

	text, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if text != "[unextracted] scan.pdf" {
		t.Errorf("Expected placeholder, got %q", text)
	}
}

func TestExtractFile_MissingFile(t *testing.T) {
	if _, err := ExtractFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestVisibleText_CollapsesWhitespace(t *testing.T) {
	text, err := VisibleText("<p>  one </p><p>two</p>")
	if err != nil {
		t.Fatalf("VisibleText failed: %v", err)
	}
	if text != "one two" {
		t.Errorf("Expected trimmed, space-joined text, got %q", text)
	}
}
