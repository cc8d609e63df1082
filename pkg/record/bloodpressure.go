package record

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// BloodPressureTypeID is the fixed type identifier for blood pressure
// items.
var BloodPressureTypeID = uuid.MustParse("ca3c57f4-f4c1-4e15-be67-0d3caf82d408")

func init() {
	Register(Type{ID: BloodPressureTypeID, Name: "blood-pressure", New: func() ItemData { return new(BloodPressure) }})
}

// BloodPressure is a single blood pressure reading in mmHg, with an
// optional pulse and irregular heartbeat flag.
type BloodPressure struct {
	When               time.Time // When the reading was taken (required).
	Systolic           *int      // Systolic pressure (required, >= 0).
	Diastolic          *int      // Diastolic pressure (required, >= 0).
	Pulse              *int      // Pulse in beats per minute (>= 0).
	IrregularHeartbeat *bool     // Whether an irregular heartbeat was noted.
}

// NewBloodPressure returns a reading taken at the given time.
func NewBloodPressure(when time.Time, systolic, diastolic int) (*BloodPressure, error) {
	if when.IsZero() {
		return nil, &ValidationError{Field: "when", Reason: "must be set"}
	}
	var b BloodPressure
	if err := b.SetSystolic(systolic); err != nil {
		return nil, err
	}
	if err := b.SetDiastolic(diastolic); err != nil {
		return nil, err
	}
	b.When = when
	return &b, nil
}

// SetSystolic sets the systolic pressure. Negative values are rejected
// and leave the current value in place.
func (b *BloodPressure) SetSystolic(v int) error {
	if err := validNonNegative("systolic", float64(v)); err != nil {
		return err
	}
	b.Systolic = &v
	return nil
}

// SetDiastolic sets the diastolic pressure. Negative values are
// rejected and leave the current value in place.
func (b *BloodPressure) SetDiastolic(v int) error {
	if err := validNonNegative("diastolic", float64(v)); err != nil {
		return err
	}
	b.Diastolic = &v
	return nil
}

// SetPulse sets the pulse. Negative values are rejected and leave the
// current value in place.
func (b *BloodPressure) SetPulse(v int) error {
	if err := validNonNegative("pulse", float64(v)); err != nil {
		return err
	}
	b.Pulse = &v
	return nil
}

// TypeID returns the blood pressure item type identifier.
func (b *BloodPressure) TypeID() uuid.UUID { return BloodPressureTypeID }

// XMLName returns the root element name of a blood pressure fragment.
func (b *BloodPressure) XMLName() string { return "blood-pressure" }

// ParseXML reads a blood pressure item. Pressures and pulse carry the
// same domain as the setters, so a negative value in the document is
// rejected.
func (b *BloodPressure) ParseXML(el *xmlio.Element) error {
	root, err := el.Locate("blood-pressure")
	if err != nil {
		return err
	}
	var out BloodPressure
	when, err := xmlio.OptionalTime(root, "when", xmlio.TimeLayout)
	if err != nil {
		return err
	}
	if when != nil {
		out.When = *when
	}
	for _, f := range []struct {
		name string
		dst  **int
	}{
		{"systolic", &out.Systolic},
		{"diastolic", &out.Diastolic},
		{"pulse", &out.Pulse},
	} {
		v, err := xmlio.OptionalInt(root, f.name)
		if err != nil {
			return err
		}
		if v != nil {
			if err := validNonNegative(f.name, float64(*v)); err != nil {
				return err
			}
		}
		*f.dst = v
	}
	out.IrregularHeartbeat, err = xmlio.OptionalBool(root, "irregular-heartbeat")
	if err != nil {
		return err
	}
	*b = out
	return nil
}

// WriteXML writes the blood pressure fragment: when, systolic,
// diastolic, pulse, irregular-heartbeat.
func (b *BloodPressure) WriteXML(w *xmlio.Writer) error {
	if err := xmlio.RequireTime(b.When, "when"); err != nil {
		return err
	}
	if err := xmlio.RequireSet(b.Systolic, "systolic"); err != nil {
		return err
	}
	if err := xmlio.RequireSet(b.Diastolic, "diastolic"); err != nil {
		return err
	}
	w.Start("blood-pressure")
	w.Time("when", b.When)
	w.Int("systolic", *b.Systolic)
	w.Int("diastolic", *b.Diastolic)
	w.OptionalInt("pulse", b.Pulse)
	w.OptionalBool("irregular-heartbeat", b.IrregularHeartbeat)
	w.End()
	return w.Err()
}

func (b *BloodPressure) String() string {
	if b.Systolic == nil || b.Diastolic == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d", *b.Systolic, *b.Diastolic)
}
