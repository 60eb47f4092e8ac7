// Package dom holds an HTML document in memory and exposes the small subset
// of page operations the time label needs: lookup by id, attribute reads and
// text content writes.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/net/html"
)

// Document is a parsed HTML document. Lookups and element accessors are not
// synchronized; callers sharing a document across goroutines run them inside
// Do, which excludes concurrent Do and Render calls.
type Document struct {
	mu   sync.Mutex
	root *html.Node
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing html document: %w", err)
	}
	return &Document{root: root}, nil
}

// Do runs fn while holding the document lock.
func (d *Document) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// ElementByID returns the first element, in document order, whose id
// attribute equals id.
func (d *Document) ElementByID(id string) (*Element, bool) {
	n := findByID(d.root, id)
	if n == nil {
		return nil, false
	}
	return &Element{node: n}, true
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		if v, ok := attr(n, "id"); ok && v == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// Render writes the document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	var b bytes.Buffer
	d.mu.Lock()
	err := html.Render(&b, d.root)
	d.mu.Unlock()
	if err != nil {
		return fmt.Errorf("error rendering html document: %w", err)
	}
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("error writing html document: %w", err)
	}
	return nil
}

// WriteFile renders the document into path. The content is written to a
// temporary file in the same directory first and renamed over path.
func (d *Document) WriteFile(path string) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp) // no-op after a successful rename

	if err := d.Render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", tmp, err)
	}
	if fi, err := os.Stat(path); err == nil {
		if err := os.Chmod(tmp, fi.Mode().Perm()); err != nil {
			return fmt.Errorf("error setting mode on %s: %w", tmp, err)
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("error replacing %s: %w", path, err)
	}
	return nil
}
