package record

import (
	"fmt"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// Range is a closed numeric interval, used for lab reference ranges and
// goal target zones. Both bounds are required and the maximum may not
// be below the minimum.
type Range struct {
	Minimum *float64 // Lower bound (required).
	Maximum *float64 // Upper bound (required, >= Minimum).
}

// NewRange returns a Range with the given bounds.
func NewRange(min, max float64) (*Range, error) {
	var r Range
	if err := r.SetBounds(min, max); err != nil {
		return nil, err
	}
	return &r, nil
}

// SetBounds sets both bounds at once, so the interval is never left in
// an inverted state. A maximum below the minimum is rejected and leaves
// the current bounds in place.
func (r *Range) SetBounds(min, max float64) error {
	if max < min {
		return &ValidationError{Field: "maximum-value", Reason: "must not be less than minimum-value"}
	}
	r.Minimum = &min
	r.Maximum = &max
	return nil
}

// ParseXML reads a range from el. An inverted interval in the document
// is rejected the same way the setter rejects one.
func (r *Range) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out Range
	min, err := xmlio.OptionalFloat(el, "minimum-value")
	if err != nil {
		return err
	}
	max, err := xmlio.OptionalFloat(el, "maximum-value")
	if err != nil {
		return err
	}
	if min != nil && max != nil && *max < *min {
		return &ValidationError{Field: "maximum-value", Reason: "must not be less than minimum-value"}
	}
	out.Minimum = min
	out.Maximum = max
	*r = out
	return nil
}

// WriteXML writes the range under the given element name.
func (r *Range) WriteXML(w *xmlio.Writer, name string) error {
	if err := xmlio.RequireSet(r.Minimum, "minimum-value"); err != nil {
		return err
	}
	if err := xmlio.RequireSet(r.Maximum, "maximum-value"); err != nil {
		return err
	}
	w.Start(name)
	w.Float("minimum-value", *r.Minimum)
	w.Float("maximum-value", *r.Maximum)
	w.End()
	return w.Err()
}

func (r *Range) String() string {
	if r.Minimum == nil || r.Maximum == nil {
		return ""
	}
	return fmt.Sprintf("%s - %s", formatFloat(*r.Minimum), formatFloat(*r.Maximum))
}

// Zone is a named target interval for a goal, such as a desired weight
// band.
type Zone struct {
	Name  *string // Label for the zone.
	Range *Range  // The interval itself (required).
}

// ParseXML reads a zone from el.
func (z *Zone) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out Zone
	out.Name = xmlio.OptionalString(el, "name")
	rng, err := xmlio.Optional(el, "range", parseRange)
	if err != nil {
		return err
	}
	out.Range = rng
	*z = out
	return nil
}

// WriteXML writes the zone under the given element name.
func (z *Zone) WriteXML(w *xmlio.Writer, name string) error {
	if err := xmlio.RequireSet(z.Range, "range"); err != nil {
		return err
	}
	if err := xmlio.RequireSet(z.Range.Minimum, "minimum-value"); err != nil {
		return err
	}
	if err := xmlio.RequireSet(z.Range.Maximum, "maximum-value"); err != nil {
		return err
	}
	w.Start(name)
	w.OptionalText("name", z.Name)
	if err := z.Range.WriteXML(w, "range"); err != nil {
		return err
	}
	w.End()
	return w.Err()
}

func (z *Zone) String() string {
	rng := ""
	if z.Range != nil {
		rng = z.Range.String()
	}
	if z.Name != nil && *z.Name != "" {
		if rng == "" {
			return *z.Name
		}
		return fmt.Sprintf("%s (%s)", *z.Name, rng)
	}
	return rng
}

func parseRange(el *xmlio.Element) (Range, error) {
	var v Range
	err := v.ParseXML(el)
	return v, err
}

func parseZone(el *xmlio.Element) (Zone, error) {
	var v Zone
	err := v.ParseXML(el)
	return v, err
}
