package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Writer emits XML elements to an underlying stream. It is sticky on
// error: after the first failure every later call is a no-op, and the
// error surfaces from Err or Close. Optional emitters take pointers and
// write nothing at all for nil, so an absent field leaves no trace in
// the output.
type Writer struct {
	enc  *xml.Encoder
	open []string
	err  error
}

// NewWriter returns a Writer that emits to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: xml.NewEncoder(w)}
}

// Indent configures pretty-printed output. By default output is compact.
func (w *Writer) Indent(prefix, indent string) {
	w.enc.Indent(prefix, indent)
}

// Attr builds an xml.Attr with a local name, for passing to Start.
func Attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// Start opens an element with the given name and attributes.
func (w *Writer) Start(name string, attrs ...xml.Attr) {
	if w.err != nil {
		return
	}
	start := xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
	if err := w.enc.EncodeToken(start); err != nil {
		w.err = err
		return
	}
	w.open = append(w.open, name)
}

// End closes the most recently opened element.
func (w *Writer) End() {
	if w.err != nil {
		return
	}
	if len(w.open) == 0 {
		w.err = fmt.Errorf("xml writer: end without open element")
		return
	}
	name := w.open[len(w.open)-1]
	w.open = w.open[:len(w.open)-1]
	w.err = w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

// CharData writes character data inside the currently open element.
func (w *Writer) CharData(s string) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(xml.CharData(s))
}

// Text writes <name>value</name>.
func (w *Writer) Text(name, value string) {
	w.Start(name)
	w.CharData(value)
	w.End()
}

// Bool writes a boolean element as "true" or "false".
func (w *Writer) Bool(name string, v bool) {
	w.Text(name, strconv.FormatBool(v))
}

// Int writes an integer element.
func (w *Writer) Int(name string, v int) {
	w.Text(name, strconv.Itoa(v))
}

// Float writes a floating-point element using the shortest decimal form.
func (w *Writer) Float(name string, v float64) {
	w.Text(name, strconv.FormatFloat(v, 'f', -1, 64))
}

// Time writes a timestamp element in UTC using TimeLayout.
func (w *Writer) Time(name string, t time.Time) {
	w.Text(name, t.UTC().Format(TimeLayout))
}

// Date writes a calendar date element using DateLayout.
func (w *Writer) Date(name string, t time.Time) {
	w.Text(name, t.Format(DateLayout))
}

// OptionalText writes <name>…</name> when v is non-nil and nothing
// otherwise.
func (w *Writer) OptionalText(name string, v *string) {
	if v != nil {
		w.Text(name, *v)
	}
}

// OptionalBool writes a boolean element when v is non-nil.
func (w *Writer) OptionalBool(name string, v *bool) {
	if v != nil {
		w.Bool(name, *v)
	}
}

// OptionalInt writes an integer element when v is non-nil.
func (w *Writer) OptionalInt(name string, v *int) {
	if v != nil {
		w.Int(name, *v)
	}
}

// OptionalFloat writes a floating-point element when v is non-nil.
func (w *Writer) OptionalFloat(name string, v *float64) {
	if v != nil {
		w.Float(name, *v)
	}
}

// OptionalTime writes a timestamp element when v is non-nil.
func (w *Writer) OptionalTime(name string, v *time.Time) {
	if v != nil {
		w.Time(name, *v)
	}
}

// OptionalDate writes a calendar date element when v is non-nil.
func (w *Writer) OptionalDate(name string, v *time.Time) {
	if v != nil {
		w.Date(name, *v)
	}
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Close flushes buffered output. It fails if any element is still open
// or a previous call failed.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if len(w.open) != 0 {
		return fmt.Errorf("xml writer: element %q left open", w.open[len(w.open)-1])
	}
	return w.enc.Flush()
}
