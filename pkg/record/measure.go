package record

import (
	"fmt"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// WeightValue is a weight stored canonically in kilograms, optionally
// paired with the display value the user entered.
type WeightValue struct {
	Kilograms *float64      // Canonical weight in kg (required, >= 0).
	Display   *DisplayValue // The value as entered, e.g. in pounds.
}

// NewWeightValue returns a WeightValue for the given weight in kilograms.
func NewWeightValue(kilograms float64) (*WeightValue, error) {
	var v WeightValue
	if err := v.SetKilograms(kilograms); err != nil {
		return nil, err
	}
	return &v, nil
}

// SetKilograms sets the canonical weight. Negative values are rejected
// and leave the current value in place.
func (v *WeightValue) SetKilograms(kg float64) error {
	if err := validNonNegative("kg", kg); err != nil {
		return err
	}
	v.Kilograms = &kg
	return nil
}

// ParseXML reads a weight value from el.
func (v *WeightValue) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out WeightValue
	kg, err := xmlio.OptionalFloat(el, "kg")
	if err != nil {
		return err
	}
	if kg != nil {
		if err := validNonNegative("kg", *kg); err != nil {
			return err
		}
	}
	out.Kilograms = kg
	out.Display, err = xmlio.Optional(el, "display", parseDisplayValue)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// WriteXML writes the weight value under the given element name.
func (v *WeightValue) WriteXML(w *xmlio.Writer, name string) error {
	if err := xmlio.RequireSet(v.Kilograms, "kg"); err != nil {
		return err
	}
	w.Start(name)
	w.Float("kg", *v.Kilograms)
	if v.Display != nil {
		if err := v.Display.WriteXML(w, "display"); err != nil {
			return err
		}
	}
	w.End()
	return w.Err()
}

func (v *WeightValue) String() string {
	if v.Display != nil {
		return v.Display.String()
	}
	if v.Kilograms == nil {
		return ""
	}
	return fmt.Sprintf("%s kg", formatFloat(*v.Kilograms))
}

// Measurement is a general numeric result: a magnitude plus optional
// coded units and an optional preformatted display string. Lab results
// use it for values whose units vary by test.
type Measurement struct {
	Value   *float64      // Magnitude (required).
	Units   *CodableValue // Units, when the test defines them.
	Display *string       // Preformatted rendering, when provided.
}

// NewMeasurement returns a Measurement with the given magnitude.
func NewMeasurement(value float64) *Measurement {
	return &Measurement{Value: &value}
}

// ParseXML reads a measurement from el.
func (m *Measurement) ParseXML(el *xmlio.Element) error {
	if el == nil {
		return xmlio.ErrNilElement
	}
	var out Measurement
	v, err := xmlio.OptionalFloat(el, "value")
	if err != nil {
		return err
	}
	out.Value = v
	out.Units, err = xmlio.Optional(el, "units", parseCodableValue)
	if err != nil {
		return err
	}
	out.Display = xmlio.OptionalString(el, "display")
	*m = out
	return nil
}

// WriteXML writes the measurement under the given element name.
func (m *Measurement) WriteXML(w *xmlio.Writer, name string) error {
	if err := xmlio.RequireSet(m.Value, "value"); err != nil {
		return err
	}
	if m.Units != nil {
		if err := xmlio.RequireText(m.Units.Text, "text"); err != nil {
			return err
		}
	}
	w.Start(name)
	w.Float("value", *m.Value)
	if m.Units != nil {
		if err := m.Units.WriteXML(w, "units"); err != nil {
			return err
		}
	}
	w.OptionalText("display", m.Display)
	w.End()
	return w.Err()
}

func (m *Measurement) String() string {
	if m.Display != nil {
		return *m.Display
	}
	if m.Value == nil {
		return ""
	}
	if m.Units != nil && m.Units.Text != "" {
		return fmt.Sprintf("%s %s", formatFloat(*m.Value), m.Units.Text)
	}
	return formatFloat(*m.Value)
}

// Parse helpers for xmlio.Optional.

func parseDisplayValue(el *xmlio.Element) (DisplayValue, error) {
	var v DisplayValue
	err := v.ParseXML(el)
	return v, err
}

func parseCodableValue(el *xmlio.Element) (CodableValue, error) {
	var v CodableValue
	err := v.ParseXML(el)
	return v, err
}

func parseMeasurement(el *xmlio.Element) (Measurement, error) {
	var v Measurement
	err := v.ParseXML(el)
	return v, err
}
