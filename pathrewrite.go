package report2pdf

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewriteRelativePaths converts relative image and stylesheet references to
// absolute file:// URLs resolved against the template's directory, so an
// engine rendering from a temp file still finds the template's static
// assets. If sourceDir is empty the markup is returned unchanged.
//
// Rewrites img[src], link[href], and a[href]. Script sources are left alone; the
// engines run with scripting restricted and remote URLs are governed by the
// AllowNetwork render option, not by path rewriting.
func rewriteRelativePaths(markup, sourceDir string) (string, error) {
	if sourceDir == "" {
		return markup, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseMarkup(markup)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, absSourceDir)

	return renderMarkup(doc, isFragment)
}

// parseMarkup parses HTML, handling both full documents and fragments.
func parseMarkup(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	bodyCtx := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), bodyCtx)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderMarkup serializes the document back to a string. Fragments render
// children directly to avoid gaining an <html><body> wrapper.
func renderMarkup(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// rewriteNode walks the DOM rewriting relative asset references.
func rewriteNode(n *html.Node, sourceDir string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "img":
			rewriteAttr(n, "src", sourceDir)
		case "link", "a":
			rewriteAttr(n, "href", sourceDir)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, sourceDir)
	}
}

// rewriteAttr resolves a relative path attribute against sourceDir.
// Absolute paths, URLs, anchors, and data URIs are left untouched.
func rewriteAttr(n *html.Node, attrName, sourceDir string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName {
			continue
		}
		if !isRelativePath(attr.Val) {
			return
		}
		abs := filepath.Join(sourceDir, filepath.FromSlash(attr.Val))
		n.Attr[i].Val = "file://" + filepath.ToSlash(abs)
		return
	}
}

// isRelativePath reports whether the value is a plain relative file path.
func isRelativePath(val string) bool {
	if val == "" || strings.HasPrefix(val, "#") || strings.HasPrefix(val, "/") {
		return false
	}
	if u, err := url.Parse(val); err == nil && u.Scheme != "" {
		return false
	}
	// Windows drive letters ("C:\...") parse as a scheme above; this catches
	// backslash-absolute paths.
	return !strings.HasPrefix(val, `\`)
}
