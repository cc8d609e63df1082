package record

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// formatFloat renders a float the way the wire format does, with the
// shortest decimal form that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Value is the contract shared by composite values that map to a single
// XML element. A value parses from the element it is handed and writes
// itself under a caller-chosen element name, since the same value type
// appears under different names in different items.
type Value interface {
	ParseXML(el *xmlio.Element) error
	WriteXML(w *xmlio.Writer, name string) error

	// String renders the value for display. It never fails; when
	// fields are unset it returns a partial or empty string.
	String() string
}

// CodedValue is a single code from a vocabulary: the code itself plus
// the optional vocabulary family, name, and version that scope it.
type CodedValue struct {
	Value   string  // The code (required, non-blank).
	Family  *string // Vocabulary family, e.g. "wc".
	Type    *string // Vocabulary name.
	Version *string // Vocabulary version.
}

// NewCodedValue returns a CodedValue carrying the given code.
func NewCodedValue(value string) (*CodedValue, error) {
	var c CodedValue
	if err := c.SetValue(value); err != nil {
		return nil, err
	}
	return &c, nil
}

// SetValue sets the code. Blank values are rejected.
func (c *CodedValue) SetValue(v string) error {
	if err := validText("value", v); err != nil {
		return err
	}
	c.Value = v
	return nil
}

// ParseXML reads a coded value from el. Missing children leave their
// fields unset.
func (c *CodedValue) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out CodedValue
	if v := xmlio.OptionalString(el, "value"); v != nil {
		out.Value = *v
	}
	out.Family = xmlio.OptionalString(el, "family")
	out.Type = xmlio.OptionalString(el, "type")
	out.Version = xmlio.OptionalString(el, "version")
	*c = out
	return nil
}

// WriteXML writes the coded value under the given element name. The
// code itself is mandatory.
func (c *CodedValue) WriteXML(w *xmlio.Writer, name string) error {
	if err := xmlio.RequireText(c.Value, "value"); err != nil {
		return err
	}
	w.Start(name)
	w.Text("value", c.Value)
	w.OptionalText("family", c.Family)
	w.OptionalText("type", c.Type)
	w.OptionalText("version", c.Version)
	w.End()
	return w.Err()
}

func (c *CodedValue) String() string {
	return c.Value
}

// CodableValue is display text plus zero or more vocabulary codes for
// the same concept. The text stands alone; codes refine it.
type CodableValue struct {
	Text  string       // Display text (required, non-blank).
	Codes []CodedValue // Vocabulary codes, in document order.
}

// NewCodableValue returns a CodableValue carrying the given text.
func NewCodableValue(text string) (*CodableValue, error) {
	var c CodableValue
	if err := c.SetText(text); err != nil {
		return nil, err
	}
	return &c, nil
}

// SetText sets the display text. Blank values are rejected.
func (c *CodableValue) SetText(v string) error {
	if err := validText("text", v); err != nil {
		return err
	}
	c.Text = v
	return nil
}

// ParseXML reads a codable value from el.
func (c *CodableValue) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out CodableValue
	if v := xmlio.OptionalString(el, "text"); v != nil {
		out.Text = *v
	}
	for _, node := range el.Children("code") {
		var code CodedValue
		if err := code.ParseXML(node); err != nil {
			return err
		}
		out.Codes = append(out.Codes, code)
	}
	*c = out
	return nil
}

// WriteXML writes the codable value under the given element name.
func (c *CodableValue) WriteXML(w *xmlio.Writer, name string) error {
	if err := xmlio.RequireText(c.Text, "text"); err != nil {
		return err
	}
	for i := range c.Codes {
		if err := xmlio.RequireText(c.Codes[i].Value, "value"); err != nil {
			return err
		}
	}
	w.Start(name)
	w.Text("text", c.Text)
	for i := range c.Codes {
		if err := c.Codes[i].WriteXML(w, "code"); err != nil {
			return err
		}
	}
	w.End()
	return w.Err()
}

func (c *CodableValue) String() string {
	return c.Text
}

// DisplayValue is the "as entered" rendering of a measurement: the
// numeric value in the units the user chose, which may differ from the
// canonical units the item stores.
type DisplayValue struct {
	Value     float64 // The value as entered.
	Units     string  // Display units (required, non-blank).
	UnitsCode *string // Vocabulary code for the units.
}

// NewDisplayValue returns a DisplayValue for the given value and units.
func NewDisplayValue(value float64, units string) (*DisplayValue, error) {
	d := DisplayValue{Value: value}
	if err := d.SetUnits(units); err != nil {
		return nil, err
	}
	return &d, nil
}

// SetUnits sets the display units. Blank values are rejected.
func (d *DisplayValue) SetUnits(v string) error {
	if err := validText("units", v); err != nil {
		return err
	}
	d.Units = v
	return nil
}

// ParseXML reads a display value. Units arrive as attributes and the
// value as element text: <display units="lb" units-code="lb">180</display>.
func (d *DisplayValue) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out DisplayValue
	v, err := xmlio.Float(el)
	if err != nil {
		return err
	}
	out.Value = v
	if units, ok := el.Attr("units"); ok {
		out.Units = units
	}
	if code, ok := el.Attr("units-code"); ok {
		out.UnitsCode = &code
	}
	*d = out
	return nil
}

// WriteXML writes the display value under the given element name.
func (d *DisplayValue) WriteXML(w *xmlio.Writer, name string) error {
	if err := xmlio.RequireText(d.Units, "units"); err != nil {
		return err
	}
	attrs := []xml.Attr{xmlio.Attr("units", d.Units)}
	if d.UnitsCode != nil {
		attrs = append(attrs, xmlio.Attr("units-code", *d.UnitsCode))
	}
	w.Start(name, attrs...)
	w.CharData(formatFloat(d.Value))
	w.End()
	return w.Err()
}

func (d *DisplayValue) String() string {
	if d.Units == "" {
		return formatFloat(d.Value)
	}
	return fmt.Sprintf("%s %s", formatFloat(d.Value), d.Units)
}
