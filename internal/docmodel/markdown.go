package docmodel

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ParseMarkdown flattens Markdown into the same element stream Parse
// produces for HTML, so the extractors work unchanged on Markdown-authored
// API documentation. Headings map to h1-h6, fenced code blocks to pre,
// inline code spans to code, links to a, paragraphs and list items to
// their HTML tags.
func ParseMarkdown(src []byte) (*Document, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	d := &Document{}

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			d.add(fmt.Sprintf("h%d", node.Level), inlineText(n, src), "", "")
		case *ast.FencedCodeBlock:
			d.add("pre", blockText(n, src), "", "")
		case *ast.CodeBlock:
			d.add("pre", blockText(n, src), "", "")
		case *ast.CodeSpan:
			d.add("code", inlineText(n, src), "", "")
		case *ast.Link:
			d.add("a", inlineText(n, src), "", "")
		case *ast.AutoLink:
			d.add("a", string(node.URL(src)), "", "")
		case *ast.Paragraph:
			d.add("p", inlineText(n, src), firstLinkText(n, src), firstCodeText(n, src))
		case *ast.ListItem:
			d.add("li", inlineText(n, src), firstLinkText(n, src), firstCodeText(n, src))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return d, nil
}

// blockText joins the raw source lines of a block node.
func blockText(n ast.Node, src []byte) string {
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimSpace(buf.String())
}

// inlineText renders the text of a node's inline content.
func inlineText(n ast.Node, src []byte) string {
	var buf strings.Builder
	var extract func(ast.Node)
	extract = func(n ast.Node) {
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func firstLinkText(n ast.Node, src []byte) string {
	var found string
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found != "" {
			return ast.WalkContinue, nil
		}
		if _, ok := c.(*ast.Link); ok {
			found = inlineText(c, src)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

func firstCodeText(n ast.Node, src []byte) string {
	var found string
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found != "" {
			return ast.WalkContinue, nil
		}
		if _, ok := c.(*ast.CodeSpan); ok {
			found = inlineText(c, src)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
