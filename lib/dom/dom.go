// Package dom is the small DOM layer regions are bound against.
//
// Rendered markup is parsed into golang.org/x/net/html trees and queried
// with CSS selectors compiled by cascadia. Lookups never fail loudly: an
// unknown or invalid selector resolves to nil.
package dom

import (
	"bytes"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element node.
func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	if tag == "" {
		tag = "div"
	}
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
}

// Parse parses a full HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseFragment parses markup as the children of context. A nil context
// parses as if inside a <div>.
func ParseFragment(r io.Reader, context *html.Node) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = NewElement("div")
	}
	return html.ParseFragment(r, context)
}

// Find returns the first descendant of root matching selector, in document
// order. Invalid selectors and nil roots resolve to nil.
func Find(root *html.Node, selector string) *html.Node {
	if root == nil || selector == "" {
		return nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return first(root, sel)
}

func first(n *html.Node, sel cascadia.Selector) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && sel.Match(c) {
			return c
		}
		if found := first(c, sel); found != nil {
			return found
		}
	}
	return nil
}

// Valid reports whether selector compiles.
func Valid(selector string) bool {
	_, err := cascadia.Compile(selector)
	return err == nil
}

// Detach removes each node from its parent.
func Detach(nodes []*html.Node) {
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// Append moves nodes to the end of parent's children.
func Append(parent *html.Node, nodes []*html.Node) {
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		parent.AppendChild(n)
	}
}

// InsertBefore moves nodes in front of ref, which must have a parent.
func InsertBefore(ref *html.Node, nodes []*html.Node) {
	parent := ref.Parent
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		parent.InsertBefore(n, ref)
	}
}

// Children returns a snapshot of n's direct children.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ReplaceChildren detaches n's current children and appends nodes.
func ReplaceChildren(n *html.Node, nodes []*html.Node) []*html.Node {
	old := Children(n)
	Detach(old)
	Append(n, nodes)
	return old
}

// Contains reports whether n is ancestor or one of its descendants.
func Contains(ancestor, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// Attr returns the value of key on n.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// OuterHTML renders n including its own tag.
func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// InnerHTML renders n's children.
func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// Describe returns a short tag#id.class label for n, used in diagnostics.
func Describe(n *html.Node) string {
	if n == nil {
		return "(missing)"
	}
	if n.Type != html.ElementNode {
		return "#" + nodeTypeName(n.Type)
	}
	var sb strings.Builder
	sb.WriteString(n.Data)
	if id := Attr(n, "id"); id != "" {
		sb.WriteString("#")
		sb.WriteString(id)
	}
	for _, class := range strings.Fields(Attr(n, "class")) {
		sb.WriteString(".")
		sb.WriteString(class)
	}
	return sb.String()
}

func nodeTypeName(t html.NodeType) string {
	switch t {
	case html.TextNode:
		return "text"
	case html.DocumentNode:
		return "document"
	case html.CommentNode:
		return "comment"
	default:
		return "node"
	}
}
