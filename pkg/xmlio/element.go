// Package xmlio provides the XML reading and writing primitives shared by
// all record types: a generic element tree for parsing fragments, optional
// child readers that map absent elements to nil, and a streaming writer
// that skips absent optional fields entirely.
package xmlio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Element is a parsed XML element: its name, attributes, character data,
// and child elements in document order. Elements the caller does not
// recognize are preserved verbatim, so unknown content survives a
// parse/write round trip.
type Element struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
	Nodes   []*Element `xml:",any"`
}

// Parse decodes an XML fragment into an element tree rooted at the
// fragment's outermost element. Empty or whitespace-only input returns
// ErrEmptyDocument.
func Parse(data []byte) (*Element, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	var root Element
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	return &root, nil
}

// Name returns the local name of the element, or "" for a nil element.
func (e *Element) Name() string {
	if e == nil {
		return ""
	}
	return e.XMLName.Local
}

// Text returns the element's character data with surrounding whitespace
// trimmed. A nil element has no text.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Content)
}

// Child returns the first child element with the given name, or nil when
// no such child exists. Calling Child on a nil element is allowed and
// returns nil, which lets optional readers treat a missing parent the
// same as a missing child.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, n := range e.Nodes {
		if n.XMLName.Local == name {
			return n
		}
	}
	return nil
}

// Children returns all child elements with the given name, in document
// order.
func (e *Element) Children(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, n := range e.Nodes {
		if n.XMLName.Local == name {
			out = append(out, n)
		}
	}
	return out
}

// RequireChild returns the child element with the given name, or a
// StructureError when it is absent.
func (e *Element) RequireChild(name string) (*Element, error) {
	if c := e.Child(name); c != nil {
		return c, nil
	}
	return nil, &StructureError{Element: name}
}

// Attr returns the value of the named attribute and whether it was
// present.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Locate resolves the element a parser should read from: the element
// itself when it already has the given name, otherwise its first child
// with that name. It returns ErrNilElement for a nil receiver and a
// StructureError when neither the element nor any child matches. This
// lets parsers accept both a bare fragment and the same fragment nested
// inside a wrapper.
func (e *Element) Locate(name string) (*Element, error) {
	if e == nil {
		return nil, ErrNilElement
	}
	if e.XMLName.Local == name {
		return e, nil
	}
	if c := e.Child(name); c != nil {
		return c, nil
	}
	return nil, &StructureError{Element: name}
}

// Write re-emits the element subtree through the writer, preserving
// attributes, text, and child order.
func (e *Element) Write(w *Writer) {
	if e == nil {
		return
	}
	w.Start(e.XMLName.Local, e.Attrs...)
	if t := e.Text(); t != "" {
		w.CharData(t)
	}
	for _, n := range e.Nodes {
		n.Write(w)
	}
	w.End()
}
