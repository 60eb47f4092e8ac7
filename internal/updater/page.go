package updater

import "github.com/ahmetb/timeago/internal/dom"

// Page is the document hosting the time label.
type Page interface {
	// Do runs fn with exclusive access to the page.
	Do(fn func())
	// ElementByID returns the element with the given id, if any.
	ElementByID(id string) (Element, bool)
}

// Element is the display element holding the timestamp attribute.
type Element interface {
	Attribute(name string) (string, bool)
	SetTextContent(text string)
}

// ForDocument adapts a parsed HTML document to a Page.
func ForDocument(doc *dom.Document) Page {
	return documentPage{doc}
}

type documentPage struct {
	doc *dom.Document
}

func (p documentPage) Do(fn func()) { p.doc.Do(fn) }

func (p documentPage) ElementByID(id string) (Element, bool) {
	el, ok := p.doc.ElementByID(id)
	if !ok {
		return nil, false
	}
	return el, true
}
