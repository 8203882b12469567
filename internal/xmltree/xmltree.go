// Package xmltree wraps beevik/etree with the navigation primitives the
// format modules need: well-formedness parsing and element lookup by local
// name, ignoring whatever namespace prefixes a document happens to bind.
package xmltree

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Parse parses raw XML into a document tree. An input without a root
// element (including the empty string) is reported as malformed.
func Parse(raw []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	return doc, nil
}

// RootNamespace returns the namespace URI of the document's root element,
// or "" when the root carries no namespace.
func RootNamespace(doc *etree.Document) string {
	root := doc.Root()
	if root == nil {
		return ""
	}
	return root.NamespaceURI()
}

// Child returns the first direct child of elem whose local name matches,
// regardless of namespace prefix. Returns nil when no child matches.
func Child(elem *etree.Element, localName string) *etree.Element {
	if elem == nil {
		return nil
	}
	for _, c := range elem.ChildElements() {
		if c.Tag == localName {
			return c
		}
	}
	return nil
}

// Children returns all direct children of elem with the given local name,
// in document order.
func Children(elem *etree.Element, localName string) []*etree.Element {
	if elem == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range elem.ChildElements() {
		if c.Tag == localName {
			out = append(out, c)
		}
	}
	return out
}

// Find walks a path of local names from elem, taking the first matching
// child at each step. Returns nil when any step is missing.
func Find(elem *etree.Element, path ...string) *etree.Element {
	cur := elem
	for _, name := range path {
		cur = Child(cur, name)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Text returns the trimmed text content of the element at path, or ""
// when the path does not resolve.
func Text(elem *etree.Element, path ...string) string {
	found := Find(elem, path...)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text())
}

// Attr returns the value of the named attribute on the element at path,
// or "" when the path or attribute is missing.
func Attr(elem *etree.Element, attr string, path ...string) string {
	found := Find(elem, path...)
	if found == nil {
		return ""
	}
	a := found.SelectAttr(attr)
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a.Value)
}

// FindRecursive searches elem and its descendants depth-first for the
// first element with the given local name.
func FindRecursive(elem *etree.Element, localName string) *etree.Element {
	if elem == nil {
		return nil
	}
	if elem.Tag == localName {
		return elem
	}
	for _, c := range elem.ChildElements() {
		if found := FindRecursive(c, localName); found != nil {
			return found
		}
	}
	return nil
}
