package xml

import (
	"strings"

	"github.com/beevik/etree"
)

// Locator resolves field paths expressed as local (namespace-free) tag names
// against a parsed document. FatturaPA producers disagree on the namespace
// prefix of the root element, and malformed ones omit the namespace entirely,
// so matching on the local name is the default strategy. When the document
// declares no prefixes at all, etree's native path engine is used as a fast
// path before falling back to the local-name walk.
//
// Matching is case-sensitive. Path segments after the first always match
// direct children; the entry point chooses whether the first segment must be
// a direct child (Find) or may live anywhere in the subtree (FindAnywhere).
type Locator struct {
	plain bool // root carries no namespace prefix
}

// NewLocator creates a locator for the document rooted at root.
func NewLocator(root *etree.Element) *Locator {
	return &Locator{plain: root != nil && root.Space == ""}
}

// Find walks path as a chain of direct children starting at parent.
// Returns nil when any segment is missing.
func (l *Locator) Find(parent *etree.Element, path ...string) *etree.Element {
	if parent == nil || len(path) == 0 {
		return nil
	}
	if l.plain {
		if elem := parent.FindElement(strings.Join(path, "/")); elem != nil {
			return elem
		}
	}
	elem := parent
	for _, name := range path {
		elem = childByLocalName(elem, name)
		if elem == nil {
			return nil
		}
	}
	return elem
}

// FindAnywhere locates the first segment anywhere in parent's subtree
// (document order), then walks the remaining segments as direct children.
func (l *Locator) FindAnywhere(parent *etree.Element, path ...string) *etree.Element {
	if parent == nil || len(path) == 0 {
		return nil
	}
	if l.plain {
		if elem := parent.FindElement(".//" + strings.Join(path, "/")); elem != nil {
			return elem
		}
	}
	for _, candidate := range descendantsByLocalName(parent, path[0]) {
		if len(path) == 1 {
			return candidate
		}
		if elem := l.Find(candidate, path[1:]...); elem != nil {
			return elem
		}
	}
	return nil
}

// FindAll returns every element in parent's subtree whose local name matches,
// in document order.
func (l *Locator) FindAll(parent *etree.Element, name string) []*etree.Element {
	if parent == nil {
		return nil
	}
	return descendantsByLocalName(parent, name)
}

// Text returns the trimmed text of the element at path under parent, or ""
// when the element is absent or empty.
func (l *Locator) Text(parent *etree.Element, path ...string) string {
	return elementText(l.Find(parent, path...))
}

// TextAnywhere is Text with FindAnywhere traversal for the first segment.
func (l *Locator) TextAnywhere(parent *etree.Element, path ...string) string {
	return elementText(l.FindAnywhere(parent, path...))
}

func elementText(elem *etree.Element) string {
	if elem == nil {
		return ""
	}
	return strings.TrimSpace(elem.Text())
}

func childByLocalName(parent *etree.Element, name string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag == name {
			return child
		}
	}
	return nil
}

func descendantsByLocalName(parent *etree.Element, name string) []*etree.Element {
	var found []*etree.Element
	for _, child := range parent.ChildElements() {
		if child.Tag == name {
			found = append(found, child)
		}
		found = append(found, descendantsByLocalName(child, name)...)
	}
	return found
}
