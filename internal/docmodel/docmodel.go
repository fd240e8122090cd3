// Package docmodel flattens a parsed markup document into a stream of
// elements in document order and exposes the traversal primitives the
// extraction heuristics need. Callers never touch raw markup nodes.
package docmodel

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Element is an immutable view over one markup element.
type Element struct {
	Tag   string // lowercased tag name, e.g. "h3", "code", "p"
	Text  string // rendered text content, whitespace-trimmed
	Index int    // position in document order

	linkText string // text of the first hyperlink descendant
	codeText string // text of the first code/pre descendant
}

// HeadingLevel returns 1-6 for h1-h6 elements and 0 otherwise.
func (e *Element) HeadingLevel() int {
	if len(e.Tag) == 2 && e.Tag[0] == 'h' && e.Tag[1] >= '1' && e.Tag[1] <= '6' {
		return int(e.Tag[1] - '0')
	}
	return 0
}

// IsHeading reports whether the element is any heading h1-h6.
func (e *Element) IsHeading() bool {
	return e.HeadingLevel() > 0
}

// LinkText returns the text of the element itself when it is a hyperlink,
// or of its first hyperlink descendant. Empty when there is no link.
func (e *Element) LinkText() string {
	if e.Tag == "a" {
		return e.Text
	}
	return e.linkText
}

// CodeText returns the element's own text when it is a code or
// preformatted block, or the text of its first such descendant.
func (e *Element) CodeText() string {
	if e.Tag == "code" || e.Tag == "pre" {
		return e.Text
	}
	return e.codeText
}

// Document owns the flattened element stream for one parsed page.
type Document struct {
	elements []*Element
}

// Elements returns every element in document order.
func (d *Document) Elements() []*Element {
	return d.elements
}

// Len returns the number of elements in the document.
func (d *Document) Len() int {
	return len(d.elements)
}

// After returns up to limit elements following e in document order.
// A limit <= 0 means all remaining elements.
func (d *Document) After(e *Element, limit int) []*Element {
	start := e.Index + 1
	if start >= len(d.elements) {
		return nil
	}
	end := len(d.elements)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return d.elements[start:end]
}

// CodeSpans returns every code element in document order. Endpoint
// declarations in the observed corpus live in code spans.
func (d *Document) CodeSpans() []*Element {
	var out []*Element
	for _, e := range d.elements {
		if e.Tag == "code" {
			out = append(out, e)
		}
	}
	return out
}

func (d *Document) add(tag, text, linkText, codeText string) {
	d.elements = append(d.elements, &Element{
		Tag:      tag,
		Text:     text,
		Index:    len(d.elements),
		linkText: linkText,
		codeText: codeText,
	})
}

// Parse reads HTML and flattens it into a Document. Containers appear
// before their descendants, so a forward walk over the stream visits the
// same elements, in the same order, as a full next-element traversal of
// the markup tree.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	d := &Document{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "html", "head", "body":
				// Structural wrappers carry the whole page's text; skip
				// the element but keep walking.
			default:
				d.add(n.Data, textContent(n), descendantText(n, "a"), descendantText(n, "code", "pre"))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}

	return d, nil
}

// textContent renders the text of a node and all its descendants.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// descendantText returns the text of the first descendant matching one of
// the given tag names, or "" when there is none.
func descendantText(n *html.Node, tags ...string) string {
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				for _, t := range tags {
					if c.Data == t {
						return c
					}
				}
			}
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	if found := find(n); found != nil {
		return textContent(found)
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
