package report2pdf

// Notes:
// - only plain relative paths are rewritten; URLs, anchors, data URIs,
//   and absolute paths pass through untouched
// - fragments do not gain an <html><body> wrapper

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	sourceDir := filepath.Join(string(filepath.Separator), "reports", "templates")
	abs := func(rel string) string {
		return "file://" + filepath.ToSlash(filepath.Join(sourceDir, rel))
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "relative img src",
			in:   `<img src="logo.png">`,
			want: abs("logo.png"),
		},
		{
			name: "relative stylesheet href",
			in:   `<link rel="stylesheet" href="css/report.css">`,
			want: abs("css/report.css"),
		},
		{
			name: "parent-relative path",
			in:   `<img src="../shared/logo.png">`,
			want: abs("../shared/logo.png"),
		},
		{
			name: "relative anchor href",
			in:   `<a href="appendix.html">appendix</a>`,
			want: abs("appendix.html"),
		},
		{
			name: "fragment anchor untouched",
			in:   `<a href="#totals">totals</a>`,
			want: `href="#totals"`,
		},
		{
			name: "http url untouched",
			in:   `<img src="https://example.com/logo.png">`,
			want: `https://example.com/logo.png`,
		},
		{
			name: "data uri untouched",
			in:   `<img src="data:image/png;base64,iVBOR">`,
			want: `data:image/png;base64,iVBOR`,
		},
		{
			name: "absolute path untouched",
			in:   `<img src="/var/assets/logo.png">`,
			want: `/var/assets/logo.png`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := rewriteRelativePaths(tt.in, sourceDir)
			if err != nil {
				t.Fatalf("rewriteRelativePaths() error: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("rewriteRelativePaths(%q) = %q, want it to contain %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRewriteRelativePaths_EmptySourceDir(t *testing.T) {
	t.Parallel()

	in := `<img src="logo.png">`
	got, err := rewriteRelativePaths(in, "")
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("markup changed without a source dir: %q", got)
	}
}

func TestRewriteRelativePaths_FragmentNotWrapped(t *testing.T) {
	t.Parallel()

	got, err := rewriteRelativePaths(`<p>hello</p>`, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<html") || strings.Contains(got, "<body") {
		t.Errorf("fragment gained a document wrapper: %q", got)
	}
}

func TestRewriteRelativePaths_FullDocumentPreserved(t *testing.T) {
	t.Parallel()

	in := `<!DOCTYPE html><html><head></head><body><img src="a.png"></body></html>`
	got, err := rewriteRelativePaths(in, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "<html") || !strings.Contains(got, "file://") {
		t.Errorf("document structure lost: %q", got)
	}
}
