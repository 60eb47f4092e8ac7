package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is an element node of a Document.
type Element struct {
	node *html.Node
}

// Attribute returns the value of the named attribute. An attribute present
// with an empty value returns ("", true).
func (e *Element) Attribute(name string) (string, bool) {
	return attr(e.node, name)
}

// SetTextContent replaces all children of the element with a single text
// node holding text.
func (e *Element) SetTextContent(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	if text == "" {
		return
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// TextContent returns the concatenated text of all descendant text nodes.
func (e *Element) TextContent() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}
